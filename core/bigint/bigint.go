// Package bigint implements the sign-magnitude arbitrary-precision integers
// the lexer uses to accumulate integer literals.
//
// Values are stored as 64-bit digits, least-significant first. A value with
// at most one digit lives inline; anything wider owns a digit slice. Every
// operation writes a normalized result into a caller-supplied destination,
// which must not be one of its operands.
package bigint

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/aledsdavies/frontc/core/invariant"
)

// Ordering is the result of Cmp.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	default:
		return "Ordering(" + strconv.Itoa(int(o)) + ")"
	}
}

// Int is an arbitrary-precision integer. The zero value is 0.
//
// Storage is a tagged variant chosen by n: small holds the digit when
// n <= 1, large holds exactly n digits when n > 1. Zero is always n == 0
// with neg == false.
type Int struct {
	neg   bool
	n     int
	small uint64
	large []uint64
}

// InitUnsigned sets dst to v.
func InitUnsigned(dst *Int, v uint64) {
	invariant.NotNil(dst, "dst")
	dst.setSmall(v, false)
}

// InitSigned sets dst to v.
func InitSigned(dst *Int, v int64) {
	invariant.NotNil(dst, "dst")
	if v < 0 {
		// -(v+1)+1 keeps math.MinInt64 in range.
		dst.setSmall(uint64(-(v+1))+1, true)
		return
	}
	dst.setSmall(uint64(v), false)
}

// InitFrom sets dst to a deep copy of src.
func InitFrom(dst, src *Int) {
	invariant.NotNil(dst, "dst")
	invariant.NotNil(src, "src")
	if dst == src {
		return
	}
	if src.n <= 1 {
		dst.setSmall(src.small, src.neg)
		return
	}
	digits := make([]uint64, src.n)
	copy(digits, src.large)
	dst.setDigits(digits, src.neg)
}

// Add sets dst to a + b.
func Add(dst, a, b *Int) {
	checkOperands(dst, a, b)
	add(dst, a, b, b.neg)
}

// Sub sets dst to a - b.
func Sub(dst, a, b *Int) {
	checkOperands(dst, a, b)
	add(dst, a, b, !b.neg && b.n > 0)
}

// add sets dst to a + b, treating b as having sign bneg.
func add(dst, a, b *Int, bneg bool) {
	if b.n == 0 {
		InitFrom(dst, a)
		return
	}
	if a.n == 0 {
		InitFrom(dst, b)
		dst.neg = bneg
		return
	}

	if a.neg == bneg {
		if a.n == 1 && b.n == 1 {
			sum, carry := bits.Add64(a.small, b.small, 0)
			if carry == 0 {
				dst.setSmall(sum, a.neg)
			} else {
				dst.setDigits([]uint64{sum, carry}, a.neg)
			}
			return
		}
		dst.setDigits(addMagnitudes(a.digits(), b.digits()), a.neg)
		return
	}

	// Signs differ: subtract the smaller magnitude from the larger and keep
	// the larger operand's sign.
	switch cmpMagnitudes(a.digits(), b.digits()) {
	case Equal:
		dst.setZero()
	case Greater:
		dst.setDigits(subMagnitudes(a.digits(), b.digits()), a.neg)
	case Less:
		dst.setDigits(subMagnitudes(b.digits(), a.digits()), bneg)
	}
}

// Mul sets dst to a * b.
func Mul(dst, a, b *Int) {
	checkOperands(dst, a, b)
	if a.n == 0 || b.n == 0 {
		dst.setZero()
		return
	}

	neg := a.neg != b.neg
	if a.n == 1 && b.n == 1 {
		hi, lo := bits.Mul64(a.small, b.small)
		if hi == 0 {
			dst.setSmall(lo, neg)
		} else {
			dst.setDigits([]uint64{lo, hi}, neg)
		}
		return
	}

	x, y := a.digits(), b.digits()
	product := make([]uint64, len(x)+len(y))
	for i, d := range y {
		if d == 0 {
			continue
		}
		mulAddWord(product[i:], x, d)
	}
	dst.setDigits(product, neg)
}

// Shl sets dst to a << shift. shift must be non-negative and fit in a
// single digit.
func Shl(dst, a, shift *Int) {
	checkOperands(dst, a, shift)
	invariant.Precondition(!shift.neg, "shift amount must not be negative")
	invariant.Precondition(shift.n <= 1, "shift amount must fit in one digit, has %d", shift.n)

	if a.n == 0 {
		dst.setZero()
		return
	}
	s := shift.small
	wordShift, bitShift := s/64, uint(s%64)
	invariant.Precondition(wordShift <= maxWordShift, "shift amount %d is too large", s)

	if a.n == 1 && wordShift == 0 {
		shifted := a.small << bitShift
		if shifted>>bitShift == a.small {
			dst.setSmall(shifted, a.neg)
			return
		}
	}

	src := a.digits()
	ws := int(wordShift)
	out := make([]uint64, len(src)+ws+1)
	if bitShift == 0 {
		copy(out[ws:], src)
	} else {
		var carry uint64
		for i, d := range src {
			out[i+ws] = d<<bitShift | carry
			carry = d >> (64 - bitShift)
		}
		out[len(src)+ws] = carry
	}
	dst.setDigits(out, a.neg)
}

// maxWordShift bounds the digits a single Shl may add.
const maxWordShift = 1 << 24

// Negate sets dst to -src.
func Negate(dst, src *Int) {
	invariant.NotNil(dst, "dst")
	invariant.NotNil(src, "src")
	InitFrom(dst, src)
	dst.neg = !dst.neg
	dst.normalize()
}

// Cmp compares a and b.
func Cmp(a, b *Int) Ordering {
	invariant.NotNil(a, "a")
	invariant.NotNil(b, "b")
	if a.neg != b.neg {
		if a.neg {
			return Less
		}
		return Greater
	}
	o := cmpMagnitudes(a.digits(), b.digits())
	if a.neg {
		return -o
	}
	return o
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return x.n == 0 }

// IsNegative reports whether x < 0.
func (x *Int) IsNegative() bool { return x.neg }

// Sign returns -1, 0 or 1.
func (x *Int) Sign() int {
	switch {
	case x.n == 0:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// DigitCount returns the number of 64-bit digits in the magnitude.
func (x *Int) DigitCount() int { return x.n }

// Digits returns a copy of the magnitude, least-significant digit first.
func (x *Int) Digits() []uint64 {
	out := make([]uint64, x.n)
	copy(out, x.digits())
	return out
}

// Uint64 returns x as a uint64 and whether it fits.
func (x *Int) Uint64() (uint64, bool) {
	if x.neg || x.n > 1 {
		return 0, false
	}
	return x.small, true
}

// FitsInU64 reports whether x is representable as a uint64.
func (x *Int) FitsInU64() bool {
	_, ok := x.Uint64()
	return ok
}

// String returns x in base 10.
func (x *Int) String() string { return x.Text(10) }

// Text returns x rendered in the given base, 2 through 36, lower-case,
// with a leading '-' for negative values.
func (x *Int) Text(base int) string {
	invariant.InRange(base, 2, 36, "base")
	if x.n <= 1 {
		s := strconv.FormatUint(x.small, base)
		if x.neg {
			return "-" + s
		}
		return s
	}

	// Peel off chunks of the largest power of base that fits in a digit.
	chunkDigits, chunk := 1, uint64(base)
	for {
		hi, next := bits.Mul64(chunk, uint64(base))
		if hi != 0 {
			break
		}
		chunk = next
		chunkDigits++
	}

	q := make([]uint64, x.n)
	copy(q, x.large)
	var parts []string
	for len(q) > 0 {
		var rem uint64
		for i := len(q) - 1; i >= 0; i-- {
			q[i], rem = bits.Div64(rem, q[i], chunk)
		}
		for len(q) > 0 && q[len(q)-1] == 0 {
			q = q[:len(q)-1]
		}
		parts = append(parts, strconv.FormatUint(rem, base))
	}

	var b strings.Builder
	if x.neg {
		b.WriteByte('-')
	}
	b.WriteString(parts[len(parts)-1])
	for i := len(parts) - 2; i >= 0; i-- {
		b.WriteString(strings.Repeat("0", chunkDigits-len(parts[i])))
		b.WriteString(parts[i])
	}
	return b.String()
}

func checkOperands(dst, a, b *Int) {
	invariant.NotNil(dst, "dst")
	invariant.NotNil(a, "a")
	invariant.NotNil(b, "b")
	invariant.Precondition(dst != a && dst != b, "destination must not alias an operand")
}

// digits returns a read-only view of the magnitude.
func (x *Int) digits() []uint64 {
	switch x.n {
	case 0:
		return nil
	case 1:
		return []uint64{x.small}
	default:
		return x.large
	}
}

func (x *Int) setZero() {
	*x = Int{}
}

func (x *Int) setSmall(v uint64, neg bool) {
	x.large = nil
	x.small = v
	x.neg = neg
	x.n = 0
	if v != 0 {
		x.n = 1
	}
	x.normalize()
}

// setDigits takes ownership of d and normalizes.
func (x *Int) setDigits(d []uint64, neg bool) {
	x.large = d
	x.small = 0
	x.n = len(d)
	x.neg = neg
	x.normalize()
}

// normalize trims high zero digits, moves one-digit values inline and
// clears the sign of zero.
func (x *Int) normalize() {
	if x.large != nil {
		for x.n > 0 && x.large[x.n-1] == 0 {
			x.n--
		}
		switch x.n {
		case 0:
			x.large = nil
		case 1:
			x.small = x.large[0]
			x.large = nil
		default:
			x.large = x.large[:x.n]
		}
	}
	if x.n == 1 && x.small == 0 {
		x.n = 0
	}
	if x.n == 0 {
		x.neg = false
		x.small = 0
	}
	invariant.Postcondition(x.n <= 1 || x.large[x.n-1] != 0, "top digit must be non-zero")
}

func addMagnitudes(x, y []uint64) []uint64 {
	if len(x) < len(y) {
		x, y = y, x
	}
	out := make([]uint64, len(x)+1)
	var carry uint64
	for i := range x {
		var d uint64
		if i < len(y) {
			d = y[i]
		}
		out[i], carry = bits.Add64(x[i], d, carry)
	}
	out[len(x)] = carry
	return out
}

// subMagnitudes returns x - y; x must be at least y.
func subMagnitudes(x, y []uint64) []uint64 {
	out := make([]uint64, len(x))
	var borrow uint64
	for i := range x {
		var d uint64
		if i < len(y) {
			d = y[i]
		}
		out[i], borrow = bits.Sub64(x[i], d, borrow)
	}
	invariant.Invariant(borrow == 0, "magnitude subtraction underflowed")
	return out
}

func cmpMagnitudes(x, y []uint64) Ordering {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return Less
		}
		return Greater
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return Less
			}
			return Greater
		}
	}
	return Equal
}

// mulAddWord adds x*y into z. z must be long enough to absorb the carry.
func mulAddWord(z, x []uint64, y uint64) {
	var carry uint64
	for i, d := range x {
		hi, lo := bits.Mul64(d, y)
		var c uint64
		lo, c = bits.Add64(lo, carry, 0)
		hi += c
		z[i], c = bits.Add64(z[i], lo, 0)
		carry = hi + c
	}
	for i := len(x); carry != 0; i++ {
		z[i], carry = bits.Add64(z[i], carry, 0)
	}
}
