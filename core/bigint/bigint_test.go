package bigint

import (
	"math"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fromDigits builds an Int from little-endian digits for tests.
func fromDigits(neg bool, d ...uint64) *Int {
	x := new(Int)
	x.setDigits(append([]uint64(nil), d...), neg)
	return x
}

// toBig converts x to a math/big value used as the reference implementation.
func toBig(x *Int) *big.Int {
	r := new(big.Int)
	d := x.Digits()
	for i := len(d) - 1; i >= 0; i-- {
		r.Lsh(r, 64)
		r.Or(r, new(big.Int).SetUint64(d[i]))
	}
	if x.IsNegative() {
		r.Neg(r)
	}
	return r
}

// assertNormalized checks the canonical representation rules.
func assertNormalized(t *testing.T, x *Int) {
	t.Helper()
	switch {
	case x.n == 0:
		assert.False(t, x.neg, "zero must not be negative")
		assert.Nil(t, x.large, "zero must not own digits")
		assert.Zero(t, x.small)
	case x.n == 1:
		assert.NotZero(t, x.small, "one-digit value must be non-zero")
		assert.Nil(t, x.large, "one-digit value must be inline")
	default:
		require.Len(t, x.large, x.n)
		assert.NotZero(t, x.large[x.n-1], "top digit must be non-zero")
	}
}

func TestInit(t *testing.T) {
	var x Int

	InitUnsigned(&x, 0)
	assert.True(t, x.IsZero())
	assertNormalized(t, &x)

	InitUnsigned(&x, math.MaxUint64)
	assert.Equal(t, "18446744073709551615", x.String())
	assert.Equal(t, 1, x.DigitCount())

	InitSigned(&x, -42)
	assert.Equal(t, "-42", x.String())
	assert.Equal(t, -1, x.Sign())

	InitSigned(&x, math.MinInt64)
	assert.Equal(t, "-9223372036854775808", x.String())

	InitSigned(&x, 0)
	assert.False(t, x.IsNegative())
	assertNormalized(t, &x)
}

func TestInitFromIsDeepCopy(t *testing.T) {
	src := fromDigits(false, 1, 2, 3)
	var dst Int
	InitFrom(&dst, src)

	src.large[0] = 99
	assert.Equal(t, []uint64{1, 2, 3}, dst.Digits())
	assertNormalized(t, &dst)
}

func TestAddCarryPropagation(t *testing.T) {
	tests := []struct {
		name string
		a, b *Int
		want []uint64
	}{
		{"single word overflow", fromDigits(false, math.MaxUint64), fromDigits(false, 1), []uint64{0, 1}},
		{"ripple through words", fromDigits(false, math.MaxUint64, math.MaxUint64), fromDigits(false, 1), []uint64{0, 0, 1}},
		{"no carry", fromDigits(false, 5, 7), fromDigits(false, 6), []uint64{11, 7}},
		{"max plus max", fromDigits(false, math.MaxUint64), fromDigits(false, math.MaxUint64), []uint64{math.MaxUint64 - 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Int
			Add(&got, tt.a, tt.b)
			assert.Equal(t, tt.want, got.Digits())
			assertNormalized(t, &got)
		})
	}
}

func TestAddMixedSigns(t *testing.T) {
	var a, b, got Int

	InitSigned(&a, 10)
	InitSigned(&b, -10)
	Add(&got, &a, &b)
	assert.True(t, got.IsZero())
	assertNormalized(t, &got)

	InitSigned(&b, -15)
	Add(&got, &a, &b)
	assert.Equal(t, "-5", got.String())

	Add(&got, &b, &a)
	assert.Equal(t, "-5", got.String())

	InitSigned(&b, -3)
	Add(&got, &a, &b)
	assert.Equal(t, "7", got.String())
}

func TestSubCollapsesToInline(t *testing.T) {
	a := fromDigits(false, 0, 1) // 2^64
	var one, got Int
	InitUnsigned(&one, 1)

	Sub(&got, a, &one)
	assert.Equal(t, []uint64{math.MaxUint64}, got.Digits())
	assertNormalized(t, &got)

	Sub(&got, &one, a)
	assert.Equal(t, "-18446744073709551615", got.String())
	assertNormalized(t, &got)

	var same Int
	InitFrom(&same, a)
	Sub(&got, a, &same)
	assert.True(t, got.IsZero())
	assertNormalized(t, &got)
}

func TestSubZeroOperands(t *testing.T) {
	var zero, five, got Int
	InitUnsigned(&five, 5)

	Sub(&got, &zero, &five)
	assert.Equal(t, "-5", got.String())

	Sub(&got, &five, &zero)
	assert.Equal(t, "5", got.String())

	Sub(&got, &zero, &zero)
	assert.True(t, got.IsZero())
	assertNormalized(t, &got)
}

func TestMul(t *testing.T) {
	var a, b, got Int

	InitSigned(&a, -7)
	InitSigned(&b, 6)
	Mul(&got, &a, &b)
	assert.Equal(t, "-42", got.String())

	InitSigned(&b, -6)
	Mul(&got, &a, &b)
	assert.Equal(t, "42", got.String())

	InitUnsigned(&b, 0)
	Mul(&got, &a, &b)
	assert.True(t, got.IsZero())
	assertNormalized(t, &got)

	InitUnsigned(&a, math.MaxUint64)
	InitUnsigned(&b, math.MaxUint64)
	Mul(&got, &a, &b)
	assert.Equal(t, []uint64{1, math.MaxUint64 - 1}, got.Digits())
}

// TestMulMatchesReference checks exactness of two-digit products against
// math/big.
func TestMulMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	edge := []uint64{0, 1, math.MaxUint32, math.MaxUint32 + 1, math.MaxUint64}

	pick := func() uint64 {
		if rng.Intn(4) == 0 {
			return edge[rng.Intn(len(edge))]
		}
		return rng.Uint64()
	}

	for i := 0; i < 2000; i++ {
		a := fromDigits(false, pick(), pick())
		b := fromDigits(false, pick(), pick())

		var got Int
		Mul(&got, a, b)
		assertNormalized(t, &got)

		want := new(big.Int).Mul(toBig(a), toBig(b))
		require.Equal(t, want.Text(10), got.Text(10), "a=%s b=%s", a, b)
	}
}

func TestAddSubMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	random := func() *Int {
		d := make([]uint64, rng.Intn(4))
		for i := range d {
			d[i] = rng.Uint64()
		}
		return fromDigits(rng.Intn(2) == 0, d...)
	}

	for i := 0; i < 2000; i++ {
		a, b := random(), random()
		var sum, diff Int
		Add(&sum, a, b)
		Sub(&diff, a, b)
		assertNormalized(t, &sum)
		assertNormalized(t, &diff)

		require.Equal(t, new(big.Int).Add(toBig(a), toBig(b)).String(), sum.String())
		require.Equal(t, new(big.Int).Sub(toBig(a), toBig(b)).String(), diff.String())
	}
}

func TestShl(t *testing.T) {
	tests := []struct {
		name  string
		a     *Int
		shift uint64
		want  string
	}{
		{"fits inline", fromDigits(false, 3), 4, "48"},
		{"zero shift", fromDigits(false, 3), 0, "3"},
		{"crosses word", fromDigits(false, 1), 64, "18446744073709551616"},
		{"bit carry", fromDigits(false, math.MaxUint64), 1, "36893488147419103230"},
		{"negative", fromDigits(true, 5), 2, "-20"},
		{"zero value", new(Int), 100, "0"},
		{"multi word", fromDigits(false, 1, 1), 65, "680564733841876926963642703010955526144"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var shift, got Int
			InitUnsigned(&shift, tt.shift)
			Shl(&got, tt.a, &shift)
			assert.Equal(t, tt.want, got.String())
			assertNormalized(t, &got)

			want := new(big.Int).Lsh(toBig(tt.a), uint(tt.shift))
			assert.Equal(t, want.String(), got.String())
		})
	}
}

func TestShlContract(t *testing.T) {
	a := fromDigits(false, 1)
	var got Int

	assert.Panics(t, func() { Shl(&got, a, fromDigits(true, 1)) })
	assert.Panics(t, func() { Shl(&got, a, fromDigits(false, 1, 1)) })
}

func TestAliasingPanics(t *testing.T) {
	a := fromDigits(false, 1)
	b := fromDigits(false, 2)

	assert.Panics(t, func() { Add(a, a, b) })
	assert.Panics(t, func() { Sub(b, a, b) })
	assert.Panics(t, func() { Mul(a, a, a) })
}

func TestCmp(t *testing.T) {
	tests := []struct {
		name string
		a, b *Int
		want Ordering
	}{
		{"equal zero", new(Int), new(Int), Equal},
		{"negative below zero", fromDigits(true, 1), new(Int), Less},
		{"zero above negative", new(Int), fromDigits(true, 1), Greater},
		{"fewer digits smaller", fromDigits(false, math.MaxUint64), fromDigits(false, 0, 1), Less},
		{"fewer digits larger when negative", fromDigits(true, math.MaxUint64), fromDigits(true, 0, 1), Greater},
		{"top digit decides", fromDigits(false, 9, 2), fromDigits(false, 1, 3), Less},
		{"low digit decides", fromDigits(false, 2, 3), fromDigits(false, 1, 3), Greater},
		{"equal multi", fromDigits(true, 4, 5), fromDigits(true, 4, 5), Equal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cmp(tt.a, tt.b))
			assert.Equal(t, -tt.want, Cmp(tt.b, tt.a))
		})
	}
}

func TestNegate(t *testing.T) {
	var got Int

	Negate(&got, new(Int))
	assert.True(t, got.IsZero())
	assert.False(t, got.IsNegative(), "negating zero must stay non-negative")

	Negate(&got, fromDigits(false, 7, 1))
	assert.True(t, got.IsNegative())
	assert.Equal(t, []uint64{7, 1}, got.Digits())

	var back Int
	Negate(&back, &got)
	assert.Equal(t, Equal, Cmp(&back, fromDigits(false, 7, 1)))
}

func TestText(t *testing.T) {
	x := fromDigits(false, 0, 0, 1) // 2^128
	assert.Equal(t, "340282366920938463463374607431768211456", x.Text(10))
	assert.Equal(t, "100000000000000000000000000000000", x.Text(16))
	assert.Equal(t, "1"+strings.Repeat("0", 128), x.Text(2))

	neg := fromDigits(true, 1, 1)
	assert.Equal(t, "-18446744073709551617", neg.Text(10))
	assert.Equal(t, toBig(neg).Text(36), neg.Text(36))

	assert.Panics(t, func() { x.Text(1) })
}

func TestUint64(t *testing.T) {
	v, ok := fromDigits(false, 12).Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(12), v)

	_, ok = fromDigits(true, 12).Uint64()
	assert.False(t, ok)
	assert.False(t, fromDigits(false, 0, 1).FitsInU64())
	assert.True(t, new(Int).FitsInU64())
}

func BenchmarkHornerDecimal(b *testing.B) {
	var acc, scratch, radix, digit Int
	InitUnsigned(&radix, 10)
	for i := 0; i < b.N; i++ {
		InitUnsigned(&acc, 0)
		for j := 0; j < 60; j++ {
			InitUnsigned(&digit, uint64(j%10))
			Mul(&scratch, &acc, &radix)
			Add(&acc, &scratch, &digit)
		}
	}
}
