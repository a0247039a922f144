package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/frontc/core/bigint"
)

func TestHornerAccumulation(t *testing.T) {
	var want bigint.Int
	bigint.InitUnsigned(&want, 255)

	for _, input := range []string{"255", "0xFF", "0xff", "0b11111111", "0o377"} {
		t.Run(input, func(t *testing.T) {
			tok := single(t, input)
			require.Equal(t, INT_LITERAL, tok.ID)
			require.NotNil(t, tok.Int)
			assert.Equal(t, bigint.Equal, bigint.Cmp(tok.Int, &want), "got %s", tok.Int)
			assert.Equal(t, len(input), tok.Len())
		})
	}
}

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
		base  int
	}{
		{"0", "0", 10},
		{"7", "7", 10},
		{"007", "7", 10},
		{"18446744073709551615", "18446744073709551615", 10},
		{"18446744073709551616", "18446744073709551616", 10},
		{"340282366920938463463374607431768211456", "340282366920938463463374607431768211456", 10},
		{"0xFFFFFFFFFFFFFFFFFFFF", "ffffffffffffffffffff", 16},
		{"0x0", "0", 16},
		{"0b1010", "1010", 2},
		{"0o17", "17", 8},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := single(t, tt.input)
			require.Equal(t, INT_LITERAL, tok.ID)
			assert.Equal(t, tt.want, tok.Int.Text(tt.base))
			assert.False(t, tok.Int.IsNegative())
		})
	}
}

func TestLargeLiteralIsNormalized(t *testing.T) {
	tok := single(t, "0x00000000000000000000000000000001")
	assert.Equal(t, 1, tok.Int.DigitCount())
	assert.Equal(t, "1", tok.Int.String())
}

func TestFloatLiterals(t *testing.T) {
	tests := []struct {
		input    string
		overflow bool
	}{
		{"1.5", false},
		{"0.25", false},
		{"1e10", false},
		{"1E10", false},
		{"2.5e-3", false},
		{"2.5e+3", false},
		{"0x1.8p3", false},
		{"0x1P-2", false},
		{"0xA.Bp0", false},
		{"1e4932", false},
		{"1e4933", true},
		{"1e-99999", false},
		{"0x1p16383", false},
		{"0x1p16384", true},
		{"9.9e99999999999999999999", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := single(t, tt.input)
			require.Equal(t, FLOAT_LITERAL, tok.ID)
			assert.Nil(t, tok.Int)
			assert.Equal(t, tt.overflow, tok.Float.Overflow)
			assert.Equal(t, Float128{}, tok.Float.Value)
			assert.Equal(t, len(tt.input), tok.Len())
		})
	}
}

func TestNumberFollowedByDots(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tokenExpectation
	}{
		{"range", "1..5", []tokenExpectation{
			{INT_LITERAL, "1", 0, 0},
			{DOT_DOT, "..", 0, 1},
			{INT_LITERAL, "5", 0, 3},
			{EOF, "", 0, 3},
		}},
		{"ellipsis", "0...", []tokenExpectation{
			{INT_LITERAL, "0", 0, 0},
			{ELLIPSIS, "...", 0, 1},
			{EOF, "", 0, 1},
		}},
		{"field access", "1.foo", []tokenExpectation{
			{INT_LITERAL, "1", 0, 0},
			{DOT, ".", 0, 1},
			{SYMBOL, "foo", 0, 2},
			{EOF, "", 0, 2},
		}},
		{"trailing dot", "12.", []tokenExpectation{
			{INT_LITERAL, "12", 0, 0},
			{DOT, ".", 0, 2},
			{EOF, "", 0, 2},
		}},
		{"binary has no fraction", "0b1.1", []tokenExpectation{
			{INT_LITERAL, "0b1", 0, 0},
			{DOT, ".", 0, 3},
			{INT_LITERAL, "1", 0, 4},
			{EOF, "", 0, 4},
		}},
		{"float then range", "1.5..2", []tokenExpectation{
			{FLOAT_LITERAL, "1.5", 0, 0},
			{DOT_DOT, "..", 0, 3},
			{INT_LITERAL, "2", 0, 5},
			{EOF, "", 0, 5},
		}},
		{"number then paren", "(42)", []tokenExpectation{
			{LPAREN, "(", 0, 0},
			{INT_LITERAL, "42", 0, 1},
			{RPAREN, ")", 0, 3},
			{EOF, "", 0, 3},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.want)
		})
	}
}

func TestNumberErrors(t *testing.T) {
	tests := []struct {
		input string
		want  Error
	}{
		{"0x", Error{Msg: "unterminated number literal", Line: 0, Column: 2}},
		{"0x;", Error{Msg: "unterminated number literal", Line: 0, Column: 2}},
		{"0b2", Error{Msg: "unterminated number literal", Line: 0, Column: 2}},
		{"12a", Error{Msg: "invalid character: 'a'", Line: 0, Column: 2}},
		{"0b102", Error{Msg: "invalid character: '2'", Line: 0, Column: 4}},
		{"0o8", Error{Msg: "unterminated number literal", Line: 0, Column: 2}},
		{"1e", Error{Msg: "unterminated number literal", Line: 0, Column: 2}},
		{"1e+", Error{Msg: "unterminated number literal", Line: 0, Column: 3}},
		{"1e+x", Error{Msg: "unterminated number literal", Line: 0, Column: 3}},
		{"1.5x", Error{Msg: "invalid character: 'x'", Line: 0, Column: 3}},
		{"1e5z", Error{Msg: "invalid character: 'z'", Line: 0, Column: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := assertLexError(t, tt.input, tt.want)
			assert.Equal(t, EOF, result.Tokens[len(result.Tokens)-1].ID)
		})
	}
}
