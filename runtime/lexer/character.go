package lexer

import "fmt"

// ASCII character lookup tables for fast classification.
//
// Use inline bounds-checked lookups:
//
//	if ch < 128 && isSymbolStart[ch] { ... }
//
// Bytes >= 128 never start or continue a symbol.
var (
	isDigit       [128]bool // 0-9
	isSymbolStart [128]bool // a-z, A-Z, _
	isSymbolChar  [128]bool // symbol start or digit
	digitValues   [128]int8 // value of 0-9, a-z, A-Z as a digit, or -1
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		isDigit[i] = '0' <= ch && ch <= '9'
		isSymbolStart[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
		isSymbolChar[i] = isSymbolStart[i] || isDigit[i]

		switch {
		case isDigit[i]:
			digitValues[i] = int8(ch - '0')
		case 'a' <= ch && ch <= 'z':
			digitValues[i] = int8(ch-'a') + 10
		case 'A' <= ch && ch <= 'Z':
			digitValues[i] = int8(ch-'A') + 10
		default:
			digitValues[i] = -1
		}
	}
}

// digitValue returns the value of c as a digit in bases up to 36, or -1.
func digitValue(c byte) int {
	if c >= 128 {
		return -1
	}
	return int(digitValues[c])
}

// isSymbolByte reports whether c may continue a symbol.
func isSymbolByte(c byte) bool {
	return c < 128 && isSymbolChar[c]
}

// isExponentMarker reports whether c starts a float exponent in radix.
func isExponentMarker(c byte, radix uint64) bool {
	switch radix {
	case 10:
		return c == 'e' || c == 'E'
	case 16:
		return c == 'p' || c == 'P'
	default:
		return false
	}
}

// describeByte renders c for error messages, escaping control characters.
func describeByte(c byte) string {
	switch c {
	case '\n':
		return `'\n'`
	case '\r':
		return `'\r'`
	case '\t':
		return `'\t'`
	case '\'':
		return `'\''`
	case 0:
		return `'\0'`
	}
	if c < 0x20 || c == 0x7f {
		return fmt.Sprintf(`'\x%02x'`, c)
	}
	if c >= 0x80 {
		return fmt.Sprintf("byte 0x%02x", c)
	}
	return fmt.Sprintf("'%c'", c)
}
