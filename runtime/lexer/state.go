package lexer

import "fmt"

// State is a state of the scanning automaton.
type State int

const (
	StateStart State = iota
	StateSymbol
	StateZero
	StateNumber
	StateNumberDot
	StateFloatFraction
	StateFloatExponentUnsigned
	StateFloatExponentNumber
	StateString
	StateStringEscape
	StateUnicodeEscapeBrace
	StateCharCode
	StateCharLiteral
	StateCharLiteralEnd
	StateSawBackslash
	StateMultilineStringLine
	StateMultilineStringLineEnd
	StateMultilineStringContinue
	StateLineComment
	StateSawEq
	StateSawBang
	StateSawLessThan
	StateSawLessThanLessThan
	StateSawGreaterThan
	StateSawGreaterThanGreaterThan
	StateSawPlus
	StateSawPlusPercent
	StateSawDash
	StateSawDashPercent
	StateSawStar
	StateSawStarPercent
	StateSawSlash
	StateSawPercent
	StateSawAmpersand
	StateSawCaret
	StateSawPipe
	StateSawDot
	StateSawDotDot
	StateError

	stateCount
)

var stateNames = [stateCount]string{
	StateStart:                     "Start",
	StateSymbol:                    "Symbol",
	StateZero:                      "Zero",
	StateNumber:                    "Number",
	StateNumberDot:                 "NumberDot",
	StateFloatFraction:             "FloatFraction",
	StateFloatExponentUnsigned:     "FloatExponentUnsigned",
	StateFloatExponentNumber:       "FloatExponentNumber",
	StateString:                    "String",
	StateStringEscape:              "StringEscape",
	StateUnicodeEscapeBrace:        "UnicodeEscapeBrace",
	StateCharCode:                  "CharCode",
	StateCharLiteral:               "CharLiteral",
	StateCharLiteralEnd:            "CharLiteralEnd",
	StateSawBackslash:              "SawBackslash",
	StateMultilineStringLine:       "MultilineStringLine",
	StateMultilineStringLineEnd:    "MultilineStringLineEnd",
	StateMultilineStringContinue:   "MultilineStringContinue",
	StateLineComment:               "LineComment",
	StateSawEq:                     "SawEq",
	StateSawBang:                   "SawBang",
	StateSawLessThan:               "SawLessThan",
	StateSawLessThanLessThan:       "SawLessThanLessThan",
	StateSawGreaterThan:            "SawGreaterThan",
	StateSawGreaterThanGreaterThan: "SawGreaterThanGreaterThan",
	StateSawPlus:                   "SawPlus",
	StateSawPlusPercent:            "SawPlusPercent",
	StateSawDash:                   "SawDash",
	StateSawDashPercent:            "SawDashPercent",
	StateSawStar:                   "SawStar",
	StateSawStarPercent:            "SawStarPercent",
	StateSawSlash:                  "SawSlash",
	StateSawPercent:                "SawPercent",
	StateSawAmpersand:              "SawAmpersand",
	StateSawCaret:                  "SawCaret",
	StateSawPipe:                   "SawPipe",
	StateSawDot:                    "SawDot",
	StateSawDotDot:                 "SawDotDot",
	StateError:                     "Error",
}

func (s State) String() string {
	if s < 0 || s >= stateCount {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}
