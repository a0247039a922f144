package lexer

import (
	"fmt"

	"github.com/aledsdavies/frontc/core/bigint"
)

// TokenID classifies a token.
type TokenID int

const (
	// Special tokens
	EOF TokenID = iota

	// Literals and names
	SYMBOL                   // foo, _bar2
	INT_LITERAL              // 255, 0xFF, 0b1010, 0o17
	FLOAT_LITERAL            // 1.5, 1e10, 0x1.8p3
	STRING_LITERAL           // "text"
	MULTILINE_STRING_LITERAL // \\text
	CHAR_LITERAL             // 'a'

	// Keywords
	ALIGN
	AND
	ASM
	ASYNC
	AWAIT
	BREAK
	CATCH
	COMPTIME
	CONST
	CONTINUE
	DEFER
	ELSE
	ENUM
	ERRDEFER
	ERROR
	EXPORT
	EXTERN
	FALSE
	FN
	FOR
	IF
	INLINE
	NOALIAS
	NULL
	OR
	ORELSE
	PACKED
	PUB
	RESUME
	RETURN
	SECTION
	STRUCT
	SUSPEND
	SWITCH
	TEST
	TRUE
	TRY
	UNDEFINED
	UNION
	UNREACHABLE
	USINGNAMESPACE
	VAR
	VOLATILE
	WHILE

	// Punctuation
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LSQUARE   // [
	RSQUARE   // ]
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	TILDE     // ~
	AT        // @
	HASH      // #
	QUESTION  // ?
	DOT       // .
	DOT_DOT   // .. (reserved for ranges)
	ELLIPSIS  // ...
	ARROW     // ->
	FAT_ARROW // =>

	// Operators
	EQUALS               // =
	EQ_EQ                // ==
	BANG                 // !
	NOT_EQ               // !=
	LT                   // <
	LT_EQ                // <=
	SHL                  // <<
	SHL_ASSIGN           // <<=
	GT                   // >
	GT_EQ                // >=
	SHR                  // >>
	SHR_ASSIGN           // >>=
	PLUS                 // +
	PLUS_ASSIGN          // +=
	PLUS_PLUS            // ++
	PLUS_WRAP            // +%
	PLUS_WRAP_ASSIGN     // +%=
	MINUS                // -
	MINUS_ASSIGN         // -=
	MINUS_WRAP           // -%
	MINUS_WRAP_ASSIGN    // -%=
	MULTIPLY             // *
	MULTIPLY_ASSIGN      // *=
	POWER                // **
	MULTIPLY_WRAP        // *%
	MULTIPLY_WRAP_ASSIGN // *%=
	DIVIDE               // /
	DIVIDE_ASSIGN        // /=
	MODULO               // %
	MODULO_ASSIGN        // %=
	AMPERSAND            // &
	AMPERSAND_ASSIGN     // &=
	CARET                // ^
	CARET_ASSIGN         // ^=
	PIPE                 // |
	PIPE_ASSIGN          // |=
	PIPE_PIPE            // ||

	tokenIDCount
)

// tokenInfo holds the display name and, for fixed tokens, the exact source text.
type tokenInfo struct {
	name   string
	symbol string
}

var tokenTable = [tokenIDCount]tokenInfo{
	EOF:                      {"EOF", ""},
	SYMBOL:                   {"SYMBOL", ""},
	INT_LITERAL:              {"INT_LITERAL", ""},
	FLOAT_LITERAL:            {"FLOAT_LITERAL", ""},
	STRING_LITERAL:           {"STRING_LITERAL", ""},
	MULTILINE_STRING_LITERAL: {"MULTILINE_STRING_LITERAL", ""},
	CHAR_LITERAL:             {"CHAR_LITERAL", ""},

	ALIGN:          {"ALIGN", "align"},
	AND:            {"AND", "and"},
	ASM:            {"ASM", "asm"},
	ASYNC:          {"ASYNC", "async"},
	AWAIT:          {"AWAIT", "await"},
	BREAK:          {"BREAK", "break"},
	CATCH:          {"CATCH", "catch"},
	COMPTIME:       {"COMPTIME", "comptime"},
	CONST:          {"CONST", "const"},
	CONTINUE:       {"CONTINUE", "continue"},
	DEFER:          {"DEFER", "defer"},
	ELSE:           {"ELSE", "else"},
	ENUM:           {"ENUM", "enum"},
	ERRDEFER:       {"ERRDEFER", "errdefer"},
	ERROR:          {"ERROR", "error"},
	EXPORT:         {"EXPORT", "export"},
	EXTERN:         {"EXTERN", "extern"},
	FALSE:          {"FALSE", "false"},
	FN:             {"FN", "fn"},
	FOR:            {"FOR", "for"},
	IF:             {"IF", "if"},
	INLINE:         {"INLINE", "inline"},
	NOALIAS:        {"NOALIAS", "noalias"},
	NULL:           {"NULL", "null"},
	OR:             {"OR", "or"},
	ORELSE:         {"ORELSE", "orelse"},
	PACKED:         {"PACKED", "packed"},
	PUB:            {"PUB", "pub"},
	RESUME:         {"RESUME", "resume"},
	RETURN:         {"RETURN", "return"},
	SECTION:        {"SECTION", "section"},
	STRUCT:         {"STRUCT", "struct"},
	SUSPEND:        {"SUSPEND", "suspend"},
	SWITCH:         {"SWITCH", "switch"},
	TEST:           {"TEST", "test"},
	TRUE:           {"TRUE", "true"},
	TRY:            {"TRY", "try"},
	UNDEFINED:      {"UNDEFINED", "undefined"},
	UNION:          {"UNION", "union"},
	UNREACHABLE:    {"UNREACHABLE", "unreachable"},
	USINGNAMESPACE: {"USINGNAMESPACE", "usingnamespace"},
	VAR:            {"VAR", "var"},
	VOLATILE:       {"VOLATILE", "volatile"},
	WHILE:          {"WHILE", "while"},

	LPAREN:    {"LPAREN", "("},
	RPAREN:    {"RPAREN", ")"},
	LBRACE:    {"LBRACE", "{"},
	RBRACE:    {"RBRACE", "}"},
	LSQUARE:   {"LSQUARE", "["},
	RSQUARE:   {"RSQUARE", "]"},
	COMMA:     {"COMMA", ","},
	SEMICOLON: {"SEMICOLON", ";"},
	COLON:     {"COLON", ":"},
	TILDE:     {"TILDE", "~"},
	AT:        {"AT", "@"},
	HASH:      {"HASH", "#"},
	QUESTION:  {"QUESTION", "?"},
	DOT:       {"DOT", "."},
	DOT_DOT:   {"DOT_DOT", ".."},
	ELLIPSIS:  {"ELLIPSIS", "..."},
	ARROW:     {"ARROW", "->"},
	FAT_ARROW: {"FAT_ARROW", "=>"},

	EQUALS:               {"EQUALS", "="},
	EQ_EQ:                {"EQ_EQ", "=="},
	BANG:                 {"BANG", "!"},
	NOT_EQ:               {"NOT_EQ", "!="},
	LT:                   {"LT", "<"},
	LT_EQ:                {"LT_EQ", "<="},
	SHL:                  {"SHL", "<<"},
	SHL_ASSIGN:           {"SHL_ASSIGN", "<<="},
	GT:                   {"GT", ">"},
	GT_EQ:                {"GT_EQ", ">="},
	SHR:                  {"SHR", ">>"},
	SHR_ASSIGN:           {"SHR_ASSIGN", ">>="},
	PLUS:                 {"PLUS", "+"},
	PLUS_ASSIGN:          {"PLUS_ASSIGN", "+="},
	PLUS_PLUS:            {"PLUS_PLUS", "++"},
	PLUS_WRAP:            {"PLUS_WRAP", "+%"},
	PLUS_WRAP_ASSIGN:     {"PLUS_WRAP_ASSIGN", "+%="},
	MINUS:                {"MINUS", "-"},
	MINUS_ASSIGN:         {"MINUS_ASSIGN", "-="},
	MINUS_WRAP:           {"MINUS_WRAP", "-%"},
	MINUS_WRAP_ASSIGN:    {"MINUS_WRAP_ASSIGN", "-%="},
	MULTIPLY:             {"MULTIPLY", "*"},
	MULTIPLY_ASSIGN:      {"MULTIPLY_ASSIGN", "*="},
	POWER:                {"POWER", "**"},
	MULTIPLY_WRAP:        {"MULTIPLY_WRAP", "*%"},
	MULTIPLY_WRAP_ASSIGN: {"MULTIPLY_WRAP_ASSIGN", "*%="},
	DIVIDE:               {"DIVIDE", "/"},
	DIVIDE_ASSIGN:        {"DIVIDE_ASSIGN", "/="},
	MODULO:               {"MODULO", "%"},
	MODULO_ASSIGN:        {"MODULO_ASSIGN", "%="},
	AMPERSAND:            {"AMPERSAND", "&"},
	AMPERSAND_ASSIGN:     {"AMPERSAND_ASSIGN", "&="},
	CARET:                {"CARET", "^"},
	CARET_ASSIGN:         {"CARET_ASSIGN", "^="},
	PIPE:                 {"PIPE", "|"},
	PIPE_ASSIGN:          {"PIPE_ASSIGN", "|="},
	PIPE_PIPE:            {"PIPE_PIPE", "||"},
}

// String returns the token kind name, e.g. "SHR_ASSIGN".
func (t TokenID) String() string {
	if t < 0 || t >= tokenIDCount {
		return fmt.Sprintf("TokenID(%d)", int(t))
	}
	return tokenTable[t].name
}

// Symbol returns the exact source text of fixed tokens (keywords,
// punctuation, operators) and "" for literals, symbols and EOF.
func (t TokenID) Symbol() string {
	if t < 0 || t >= tokenIDCount {
		return ""
	}
	return tokenTable[t].symbol
}

// IsKeyword reports whether t is a reserved word.
func (t TokenID) IsKeyword() bool { return t >= ALIGN && t <= WHILE }

// IsLiteral reports whether t carries a literal payload.
func (t TokenID) IsLiteral() bool { return t >= INT_LITERAL && t <= CHAR_LITERAL }

// IsPunctuation reports whether t is a bracket, separator or arrow.
func (t TokenID) IsPunctuation() bool { return t >= LPAREN && t <= FAT_ARROW }

// IsOperator reports whether t is an arithmetic, comparison, bitwise or
// assignment operator.
func (t TokenID) IsOperator() bool { return t >= EQUALS && t <= PIPE_PIPE }

// AllTokenIDs returns every token kind in declaration order.
func AllTokenIDs() []TokenID {
	ids := make([]TokenID, tokenIDCount)
	for i := range ids {
		ids[i] = TokenID(i)
	}
	return ids
}

// Float128 reserves the bit pattern of a binary128 value. Float literal
// parsing is not implemented, so lexed literals always carry the zero value.
type Float128 struct {
	Lo, Hi uint64
}

// FloatLiteral is the payload of a FLOAT_LITERAL token.
type FloatLiteral struct {
	Value Float128
	// Overflow is set when the literal cannot be represented, currently
	// when its exponent is outside the binary128 range.
	Overflow bool
}

// Token is a lexeme with its source range and payload.
//
// Lines and columns are 0-based byte positions; StartPos/EndPos are byte
// offsets with EndPos exclusive. Which payload field is set depends on ID:
// Text for SYMBOL, STRING_LITERAL and MULTILINE_STRING_LITERAL, Char for
// CHAR_LITERAL, Int for INT_LITERAL and Float for FLOAT_LITERAL.
type Token struct {
	ID          TokenID
	StartLine   int
	StartColumn int
	StartPos    int
	EndPos      int

	Text  []byte
	Char  byte
	Int   *bigint.Int
	Float FloatLiteral
}

// String returns a debugging representation such as SYMBOL("foo")@1:4.
func (t Token) String() string {
	var payload string
	switch t.ID {
	case SYMBOL, STRING_LITERAL, MULTILINE_STRING_LITERAL:
		payload = fmt.Sprintf("(%q)", t.Text)
	case CHAR_LITERAL:
		payload = fmt.Sprintf("(%q)", t.Char)
	case INT_LITERAL:
		if t.Int != nil {
			payload = "(" + t.Int.String() + ")"
		}
	case FLOAT_LITERAL:
		if t.Float.Overflow {
			payload = "(overflow)"
		}
	}
	return fmt.Sprintf("%s%s@%d:%d", t.ID, payload, t.StartLine+1, t.StartColumn+1)
}

// Len returns the number of source bytes covered by the token.
func (t Token) Len() int { return t.EndPos - t.StartPos }
