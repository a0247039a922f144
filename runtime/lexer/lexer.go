// Package lexer turns source bytes into a stream of classified tokens.
//
// The scanner is an explicit state machine driven one byte at a time. A
// state that sees a byte which cannot extend its token finishes the token
// and hands the same byte back to StateStart without moving the cursor, so
// no lookahead beyond the current byte is ever needed.
package lexer

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/aledsdavies/frontc/core/bigint"
	"github.com/aledsdavies/frontc/core/invariant"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Binary128 exponent limits for float literal overflow detection.
const (
	maxDecimalExponent = 4932
	maxBinaryExponent  = 16383
)

// Error messages shared between states.
const (
	msgCarriageReturn     = "invalid carriage return, only '\\n' line endings are supported"
	msgUnterminatedString = "unterminated string literal"
	msgUnterminatedChar   = "unterminated character literal"
	msgUnterminatedNumber = "unterminated number literal"
	msgUnexpectedEOF      = "unexpected EOF"
	msgDoubleAmpersand    = "`&&` is invalid. Note that `and` is boolean AND"
)

// startAction describes what Start does with a byte that begins a token.
type startAction struct {
	id    TokenID
	next  State // StateStart for single-byte tokens
	valid bool
}

// extension is an operator continuation: in some state, byte c turns the
// open token into id and moves to next.
type extension struct {
	c    byte
	id   TokenID
	next State
}

var startActions [128]startAction

var operatorExtensions = [stateCount][]extension{
	StateSawEq:                     {{'=', EQ_EQ, StateStart}, {'>', FAT_ARROW, StateStart}},
	StateSawBang:                   {{'=', NOT_EQ, StateStart}},
	StateSawLessThan:               {{'=', LT_EQ, StateStart}, {'<', SHL, StateSawLessThanLessThan}},
	StateSawLessThanLessThan:       {{'=', SHL_ASSIGN, StateStart}},
	StateSawGreaterThan:            {{'=', GT_EQ, StateStart}, {'>', SHR, StateSawGreaterThanGreaterThan}},
	StateSawGreaterThanGreaterThan: {{'=', SHR_ASSIGN, StateStart}},
	StateSawPlus:                   {{'=', PLUS_ASSIGN, StateStart}, {'+', PLUS_PLUS, StateStart}, {'%', PLUS_WRAP, StateSawPlusPercent}},
	StateSawPlusPercent:            {{'=', PLUS_WRAP_ASSIGN, StateStart}},
	StateSawDash:                   {{'=', MINUS_ASSIGN, StateStart}, {'>', ARROW, StateStart}, {'%', MINUS_WRAP, StateSawDashPercent}},
	StateSawDashPercent:            {{'=', MINUS_WRAP_ASSIGN, StateStart}},
	StateSawStar:                   {{'=', MULTIPLY_ASSIGN, StateStart}, {'*', POWER, StateStart}, {'%', MULTIPLY_WRAP, StateSawStarPercent}},
	StateSawStarPercent:            {{'=', MULTIPLY_WRAP_ASSIGN, StateStart}},
	StateSawSlash:                  {{'=', DIVIDE_ASSIGN, StateStart}},
	StateSawPercent:                {{'=', MODULO_ASSIGN, StateStart}},
	StateSawAmpersand:              {{'=', AMPERSAND_ASSIGN, StateStart}},
	StateSawCaret:                  {{'=', CARET_ASSIGN, StateStart}},
	StateSawPipe:                   {{'=', PIPE_ASSIGN, StateStart}, {'|', PIPE_PIPE, StateStart}},
	StateSawDot:                    {{'.', DOT_DOT, StateSawDotDot}},
	StateSawDotDot:                 {{'.', ELLIPSIS, StateStart}},
}

func init() {
	for _, id := range []TokenID{LPAREN, RPAREN, LSQUARE, RSQUARE, LBRACE, RBRACE, COMMA, SEMICOLON, COLON, TILDE, AT, HASH, QUESTION} {
		startActions[id.Symbol()[0]] = startAction{id: id, next: StateStart, valid: true}
	}

	operators := []struct {
		id   TokenID
		next State
	}{
		{EQUALS, StateSawEq},
		{BANG, StateSawBang},
		{LT, StateSawLessThan},
		{GT, StateSawGreaterThan},
		{PLUS, StateSawPlus},
		{MINUS, StateSawDash},
		{MULTIPLY, StateSawStar},
		{DIVIDE, StateSawSlash},
		{MODULO, StateSawPercent},
		{AMPERSAND, StateSawAmpersand},
		{CARET, StateSawCaret},
		{PIPE, StateSawPipe},
		{DOT, StateSawDot},
	}
	for _, op := range operators {
		startActions[op.id.Symbol()[0]] = startAction{id: op.id, next: op.next, valid: true}
	}
}

// Lexer scans source bytes into tokens. A Lexer may be reused for several
// inputs but must not be used concurrently.
type Lexer struct {
	config LexerConfig
	logger *slog.Logger

	src    []byte
	pos    int
	line   int
	column int
	state  State

	// Token under construction.
	cur      Token
	open     bool
	openedAt time.Time
	tokens   []Token
	lines    []int
	err      *Error

	// Numeric literal state.
	radix     uint64
	digits    int
	exponent  int
	expDigits int
	expNeg    bool
	dotPos    int
	dotLine   int
	dotColumn int

	// Escape state.
	escapeFor   State // StateString or StateCharLiteral
	code        uint32
	codeDigits  int
	braceOpened bool

	// Multiline string state.
	lineEnd int

	// Horner scratch values, reused across digits.
	scratch  bigint.Int
	digitInt bigint.Int
	radixInt bigint.Int

	tokenTelemetry map[TokenID]*TokenTelemetry
	debugEvents    []DebugEvent
}

// NewLexer creates a lexer with optional configuration.
func NewLexer(opts ...LexerOpt) *Lexer {
	config := LexerConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	l := &Lexer{config: config, logger: config.logger}
	if l.logger == nil {
		l.logger = defaultLogger()
	}

	// Only allocate telemetry structures when needed
	if config.telemetry > TelemetryOff {
		l.tokenTelemetry = make(map[TokenID]*TokenTelemetry)
	}
	if config.debug > DebugOff {
		l.debugEvents = make([]DebugEvent, 0, 256)
	}
	return l
}

// Tokenize lexes src with a fresh lexer.
func Tokenize(src []byte, opts ...LexerOpt) *Result {
	return NewLexer(opts...).Tokenize(src)
}

// Tokenize lexes src in a single forward pass. It never panics on malformed
// input: the first lexical error is reported in Result.Err and the token
// list collected up to that point is kept.
func (l *Lexer) Tokenize(src []byte) *Result {
	l.reset(src)

	// Columns on the first line count from after the BOM.
	if bytes.HasPrefix(src, utf8BOM) {
		l.pos = len(utf8BOM)
	}

	for l.pos < len(l.src) {
		c := l.src[l.pos]
		before := l.state
		if !l.step(c) {
			// Re-dispatch c in the new state without consuming it.
			invariant.Invariant(l.state != before, "state %s re-dispatched %s without changing state", before, describeByte(c))
			continue
		}
		l.advance(c)
	}

	l.atEOF()
	l.appendEOF()

	l.logger.Debug("tokenize complete",
		"bytes", len(src),
		"tokens", len(l.tokens),
		"lines", len(l.lines),
		"error", l.err != nil)

	return &Result{
		Tokens:      l.tokens,
		LineOffsets: l.lines,
		Err:         l.err,
		src:         src,
	}
}

// GetTokenTelemetry returns a copy of per-kind telemetry, or nil when
// telemetry is off.
func (l *Lexer) GetTokenTelemetry() map[TokenID]*TokenTelemetry {
	if l.config.telemetry == TelemetryOff || l.tokenTelemetry == nil {
		return nil
	}

	result := make(map[TokenID]*TokenTelemetry, len(l.tokenTelemetry))
	for k, v := range l.tokenTelemetry {
		telemetryCopy := *v
		result[k] = &telemetryCopy
	}
	return result
}

// GetDebugEvents returns a copy of the recorded debug events, or nil when
// debugging is off.
func (l *Lexer) GetDebugEvents() []DebugEvent {
	if l.config.debug == DebugOff || l.debugEvents == nil {
		return nil
	}

	result := make([]DebugEvent, len(l.debugEvents))
	copy(result, l.debugEvents)
	return result
}

func (l *Lexer) reset(src []byte) {
	l.src = src
	l.pos, l.line, l.column = 0, 0, 0
	l.state = StateStart
	l.cur, l.open = Token{}, false
	l.tokens = make([]Token, 0, len(src)/4+1)
	l.lines = []int{0}
	l.err = nil

	for k := range l.tokenTelemetry {
		delete(l.tokenTelemetry, k)
	}
	if l.debugEvents != nil {
		l.debugEvents = l.debugEvents[:0]
	}
}

// advance consumes c, keeping the line table and column in step.
func (l *Lexer) advance(c byte) {
	l.pos++
	if c == '\n' {
		l.lines = append(l.lines, l.pos)
		l.line++
		l.column = 0
		return
	}
	l.column++
}

// step feeds c to the current state. It returns false when c was not
// consumed and must be dispatched again in the (changed) state.
func (l *Lexer) step(c byte) bool {
	switch l.state {
	case StateStart:
		return l.stepStart(c)
	case StateError:
		return true
	case StateSymbol:
		if isSymbolByte(c) {
			return true
		}
		return l.endToken(l.pos)
	case StateZero:
		return l.stepZero(c)
	case StateNumber:
		return l.stepNumber(c)
	case StateNumberDot:
		return l.stepNumberDot(c)
	case StateFloatFraction:
		return l.stepFloatFraction(c)
	case StateFloatExponentUnsigned:
		if c == '+' || c == '-' {
			l.expNeg = c == '-'
			l.setState(StateFloatExponentNumber)
			return true
		}
		l.setState(StateFloatExponentNumber)
		return false
	case StateFloatExponentNumber:
		return l.stepFloatExponent(c)
	case StateString:
		return l.stepString(c)
	case StateStringEscape:
		return l.stepEscape(c)
	case StateCharCode:
		return l.stepCharCode(c)
	case StateUnicodeEscapeBrace:
		return l.stepUnicodeEscape(c)
	case StateCharLiteral:
		return l.stepCharLiteral(c)
	case StateCharLiteralEnd:
		switch c {
		case '\'':
			return l.endToken(l.pos + 1)
		case '\r':
			return l.fail(msgCarriageReturn)
		case '\n':
			return l.failAt(msgUnterminatedChar, l.cur.StartLine, l.cur.StartColumn)
		default:
			return l.fail(invalidCharacter(c))
		}
	case StateSawBackslash:
		if c == '\\' {
			l.setState(StateMultilineStringLine)
			return true
		}
		return l.failAt(invalidCharacter('\\'), l.cur.StartLine, l.cur.StartColumn)
	case StateMultilineStringLine:
		return l.stepMultilineLine(c)
	case StateMultilineStringLineEnd:
		switch c {
		case ' ':
			return true
		case '\\':
			l.setState(StateMultilineStringContinue)
			return true
		default:
			return l.endToken(l.lineEnd)
		}
	case StateMultilineStringContinue:
		if c == '\\' {
			l.cur.Text = append(l.cur.Text, '\n')
			l.setState(StateMultilineStringLine)
			return true
		}
		return l.failAt(invalidCharacter('\\'), l.line, l.column-1)
	case StateLineComment:
		switch c {
		case '\n':
			l.setState(StateStart)
		case '\r':
			return l.fail(msgCarriageReturn)
		}
		return true
	case StateSawSlash:
		if c == '/' {
			l.discard()
			l.setState(StateLineComment)
			return true
		}
		return l.stepOperator(c)
	case StateSawAmpersand:
		if c == '&' {
			return l.failAt(msgDoubleAmpersand, l.cur.StartLine, l.cur.StartColumn)
		}
		return l.stepOperator(c)
	default:
		return l.stepOperator(c)
	}
}

func (l *Lexer) stepStart(c byte) bool {
	switch {
	case c == ' ' || c == '\n':
		return true
	case c == '\r':
		return l.fail(msgCarriageReturn)
	case c < 128 && isSymbolStart[c]:
		l.begin(SYMBOL)
		l.setState(StateSymbol)
		return true
	case c == '0':
		l.beginNumber()
		l.setState(StateZero)
		return true
	case c < 128 && isDigit[c]:
		l.beginNumber()
		l.setState(StateNumber)
		return false
	case c == '"':
		l.begin(STRING_LITERAL)
		l.cur.Text = []byte{}
		l.setState(StateString)
		return true
	case c == '\'':
		l.begin(CHAR_LITERAL)
		l.setState(StateCharLiteral)
		return true
	case c == '\\':
		l.begin(MULTILINE_STRING_LITERAL)
		l.cur.Text = []byte{}
		l.setState(StateSawBackslash)
		return true
	case c < 128 && startActions[c].valid:
		action := startActions[c]
		l.begin(action.id)
		if action.next == StateStart {
			l.finish(l.pos + 1)
			return true
		}
		l.setState(action.next)
		return true
	default:
		return l.fail(invalidCharacter(c))
	}
}

// stepOperator extends the open operator token or ends it before c.
func (l *Lexer) stepOperator(c byte) bool {
	for _, ext := range operatorExtensions[l.state] {
		if ext.c != c {
			continue
		}
		l.cur.ID = ext.id
		if ext.next == StateStart {
			return l.endToken(l.pos + 1)
		}
		l.setState(ext.next)
		return true
	}
	return l.endToken(l.pos)
}

func (l *Lexer) beginNumber() {
	l.begin(INT_LITERAL)
	l.cur.Int = new(bigint.Int)
	l.radix = 10
	l.digits = 0
}

func (l *Lexer) stepZero(c byte) bool {
	switch c {
	case 'b':
		l.radix = 2
	case 'o':
		l.radix = 8
	case 'x':
		l.radix = 16
	default:
		// The zero is the first decimal digit; the accumulator already holds it.
		l.digits = 1
		l.setState(StateNumber)
		return false
	}
	l.setState(StateNumber)
	return true
}

func (l *Lexer) stepNumber(c byte) bool {
	d := digitValue(c)
	switch {
	case d >= 0 && uint64(d) < l.radix:
		l.foldDigit(uint64(d))
		return true
	case l.digits == 0:
		return l.fail(msgUnterminatedNumber)
	case c == '.':
		l.dotPos, l.dotLine, l.dotColumn = l.pos, l.line, l.column
		l.setState(StateNumberDot)
		return true
	case isExponentMarker(c, l.radix):
		l.toFloat()
		l.setState(StateFloatExponentUnsigned)
		return true
	case isSymbolByte(c):
		return l.fail(invalidCharacter(c))
	default:
		return l.endToken(l.pos)
	}
}

// foldDigit accumulates d with Horner's method: acc = acc*radix + d.
func (l *Lexer) foldDigit(d uint64) {
	bigint.InitUnsigned(&l.digitInt, d)
	bigint.InitUnsigned(&l.radixInt, l.radix)
	bigint.Mul(&l.scratch, l.cur.Int, &l.radixInt)
	bigint.Add(l.cur.Int, &l.scratch, &l.digitInt)
	l.digits++
}

// stepNumberDot runs with the '.' after an integer already consumed.
func (l *Lexer) stepNumberDot(c byte) bool {
	d := digitValue(c)
	if d >= 0 && uint64(d) < l.radix && (l.radix == 10 || l.radix == 16) {
		l.toFloat()
		l.setState(StateFloatFraction)
		return false
	}
	// Not a fraction: the integer ends before the dot, which becomes its
	// own token and continues as '.', '..' or '...'.
	l.splitAtDot()
	l.setState(StateSawDot)
	return false
}

func (l *Lexer) splitAtDot() {
	l.finish(l.dotPos)
	l.beginAt(DOT, l.dotPos, l.dotLine, l.dotColumn)
}

func (l *Lexer) toFloat() {
	l.cur.ID = FLOAT_LITERAL
	l.cur.Int = nil
	l.exponent, l.expDigits, l.expNeg = 0, 0, false
}

func (l *Lexer) stepFloatFraction(c byte) bool {
	d := digitValue(c)
	switch {
	case d >= 0 && uint64(d) < l.radix:
		return true
	case isExponentMarker(c, l.radix):
		l.setState(StateFloatExponentUnsigned)
		return true
	case isSymbolByte(c):
		return l.fail(invalidCharacter(c))
	default:
		return l.endToken(l.pos)
	}
}

func (l *Lexer) stepFloatExponent(c byte) bool {
	switch {
	case c < 128 && isDigit[c]:
		if l.exponent <= maxBinaryExponent {
			l.exponent = l.exponent*10 + int(c-'0')
		}
		l.expDigits++
		return true
	case l.expDigits == 0:
		return l.fail(msgUnterminatedNumber)
	case isSymbolByte(c):
		return l.fail(invalidCharacter(c))
	default:
		return l.endToken(l.pos)
	}
}

// floatOverflows reports whether the literal's exponent is outside the
// binary128 range.
func (l *Lexer) floatOverflows() bool {
	if l.expNeg {
		return false
	}
	if l.radix == 16 {
		return l.exponent > maxBinaryExponent
	}
	return l.exponent > maxDecimalExponent
}

func (l *Lexer) stepString(c byte) bool {
	switch {
	case c == '"':
		return l.endToken(l.pos + 1)
	case c == '\\':
		l.escapeFor = StateString
		l.setState(StateStringEscape)
		return true
	case c == '\n':
		return l.fail("newline not allowed in string literal")
	case c == '\r':
		return l.fail(msgCarriageReturn)
	case isControl(c):
		return l.fail(invalidCharacter(c))
	default:
		l.cur.Text = append(l.cur.Text, c)
		return true
	}
}

func (l *Lexer) stepCharLiteral(c byte) bool {
	switch {
	case c == '\'':
		return l.fail("empty character literal")
	case c == '\\':
		l.escapeFor = StateCharLiteral
		l.setState(StateStringEscape)
		return true
	case c == '\n':
		return l.failAt(msgUnterminatedChar, l.cur.StartLine, l.cur.StartColumn)
	case c == '\r':
		return l.fail(msgCarriageReturn)
	case isControl(c):
		return l.fail(invalidCharacter(c))
	default:
		l.cur.Char = c
		l.setState(StateCharLiteralEnd)
		return true
	}
}

func (l *Lexer) stepEscape(c byte) bool {
	switch c {
	case 'n':
		return l.escaped('\n')
	case 'r':
		return l.escaped('\r')
	case 't':
		return l.escaped('\t')
	case '\\', '\'', '"':
		return l.escaped(c)
	case 'x':
		l.code, l.codeDigits = 0, 0
		l.setState(StateCharCode)
		return true
	case 'u':
		l.code, l.codeDigits, l.braceOpened = 0, 0, false
		l.setState(StateUnicodeEscapeBrace)
		return true
	case '\r':
		return l.fail(msgCarriageReturn)
	default:
		return l.fail(fmt.Sprintf("invalid escape character: %s", describeByte(c)))
	}
}

// stepCharCode reads the two hex digits of a \x escape.
func (l *Lexer) stepCharCode(c byte) bool {
	d := digitValue(c)
	if d < 0 || d >= 16 {
		return l.fail(invalidCharacter(c))
	}
	l.code = l.code<<4 | uint32(d)
	l.codeDigits++
	if l.codeDigits == 2 {
		return l.escaped(byte(l.code))
	}
	return true
}

// stepUnicodeEscape reads the {hex} body of a \u escape.
func (l *Lexer) stepUnicodeEscape(c byte) bool {
	if !l.braceOpened {
		if c != '{' {
			return l.fail(fmt.Sprintf("expected '{' after \\u, found %s", describeByte(c)))
		}
		l.braceOpened = true
		return true
	}

	if c == '}' {
		if l.codeDigits == 0 {
			return l.fail("empty unicode escape sequence")
		}
		r := rune(l.code)
		if l.code > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
			return l.fail(fmt.Sprintf("unicode escape U+%X is not a valid codepoint", l.code))
		}
		if l.escapeFor == StateCharLiteral {
			if l.code > 0xFF {
				return l.fail(fmt.Sprintf("unicode escape U+%X does not fit in a character literal", l.code))
			}
			return l.escaped(byte(l.code))
		}
		l.cur.Text = utf8.AppendRune(l.cur.Text, r)
		l.setState(StateString)
		return true
	}

	d := digitValue(c)
	if d < 0 || d >= 16 {
		return l.fail(invalidCharacter(c))
	}
	if l.codeDigits == 6 {
		return l.fail("unicode escape sequence has too many digits")
	}
	l.code = l.code<<4 | uint32(d)
	l.codeDigits++
	return true
}

// escaped stores one decoded escape byte and returns to the literal.
func (l *Lexer) escaped(b byte) bool {
	if l.escapeFor == StateCharLiteral {
		l.cur.Char = b
		l.setState(StateCharLiteralEnd)
		return true
	}
	l.cur.Text = append(l.cur.Text, b)
	l.setState(StateString)
	return true
}

func (l *Lexer) stepMultilineLine(c byte) bool {
	switch {
	case c == '\n':
		l.lineEnd = l.pos
		l.setState(StateMultilineStringLineEnd)
		return true
	case c == '\r':
		return l.fail(msgCarriageReturn)
	case isControl(c):
		return l.fail(invalidCharacter(c))
	default:
		l.cur.Text = append(l.cur.Text, c)
		return true
	}
}

// atEOF applies the end-of-input policy of the current state.
func (l *Lexer) atEOF() {
	switch l.state {
	case StateStart, StateError, StateLineComment:
	case StateString:
		l.failAt(msgUnterminatedString, l.cur.StartLine, l.cur.StartColumn)
	case StateCharLiteral, StateCharLiteralEnd:
		l.failAt(msgUnterminatedChar, l.cur.StartLine, l.cur.StartColumn)
	case StateStringEscape, StateCharCode, StateUnicodeEscapeBrace,
		StateSawBackslash, StateMultilineStringContinue:
		l.fail(msgUnexpectedEOF)
	case StateNumber:
		if l.digits == 0 {
			l.fail(msgUnterminatedNumber)
			return
		}
		l.endToken(l.pos)
	case StateFloatExponentUnsigned:
		l.fail(msgUnterminatedNumber)
	case StateFloatExponentNumber:
		if l.expDigits == 0 {
			l.fail(msgUnterminatedNumber)
			return
		}
		l.endToken(l.pos)
	case StateNumberDot:
		l.splitAtDot()
		l.endToken(l.pos)
	case StateMultilineStringLineEnd:
		l.endToken(l.lineEnd)
	default:
		// Symbols, zero, fractions, multiline lines and every operator state
		// hold a complete token.
		l.endToken(l.pos)
	}
}

// appendEOF adds the terminating token at the start of the last real one.
func (l *Lexer) appendEOF() {
	eof := Token{ID: EOF}
	if n := len(l.tokens); n > 0 {
		last := l.tokens[n-1]
		eof.StartLine = last.StartLine
		eof.StartColumn = last.StartColumn
		eof.StartPos = last.StartPos
		eof.EndPos = last.StartPos
	}
	l.tokens = append(l.tokens, eof)
	l.recordTokenTelemetry(EOF, 0)
}

func (l *Lexer) begin(id TokenID) {
	l.beginAt(id, l.pos, l.line, l.column)
}

func (l *Lexer) beginAt(id TokenID, pos, line, column int) {
	invariant.Precondition(!l.open, "cannot begin %s while %s is open", id, l.cur.ID)
	l.cur = Token{ID: id, StartLine: line, StartColumn: column, StartPos: pos}
	l.open = true
	if l.config.telemetry >= TelemetryTiming {
		l.openedAt = time.Now()
	}
	if l.config.debug >= DebugPaths {
		l.recordDebugEvent("begin_token", id.String())
	}
}

// finish closes the open token at end (exclusive) and appends it.
func (l *Lexer) finish(end int) {
	invariant.Precondition(l.open, "no token open at offset %d", end)
	invariant.Invariant(end > l.cur.StartPos, "%s token would be empty at offset %d", l.cur.ID, end)

	l.cur.EndPos = end
	switch l.cur.ID {
	case SYMBOL:
		text := l.src[l.cur.StartPos:end]
		if id, ok := LookupKeyword(text); ok {
			l.cur.ID = id
		} else {
			l.cur.Text = bytes.Clone(text)
		}
	case FLOAT_LITERAL:
		l.cur.Float = FloatLiteral{Overflow: l.floatOverflows()}
	}

	l.tokens = append(l.tokens, l.cur)
	l.open = false

	var elapsed time.Duration
	if l.config.telemetry >= TelemetryTiming {
		elapsed = time.Since(l.openedAt)
	}
	l.recordTokenTelemetry(l.cur.ID, elapsed)
	if l.config.debug >= DebugPaths {
		l.recordDebugEvent("end_token", l.cur.ID.String())
	}
}

// endToken finishes the open token at end and returns to Start. It reports
// whether the current byte was consumed, which is the case when end lies
// past it.
func (l *Lexer) endToken(end int) bool {
	l.finish(end)
	l.setState(StateStart)
	return end > l.pos
}

// discard drops the open token without emitting it.
func (l *Lexer) discard() {
	invariant.Precondition(l.open, "no token open to discard")
	l.cur, l.open = Token{}, false
}

func (l *Lexer) fail(msg string) bool {
	return l.failAt(msg, l.line, l.column)
}

// failAt records the first error and makes the machine terminal. The byte
// being examined is consumed.
func (l *Lexer) failAt(msg string, line, column int) bool {
	if l.err == nil {
		l.err = &Error{Msg: msg, Line: line, Column: column}
		l.logger.Debug("lex error", "line", line+1, "column", column+1, "msg", msg)
	}
	l.open = false
	if l.config.debug >= DebugPaths {
		l.recordDebugEvent("error", msg)
	}
	l.setState(StateError)
	return true
}

func (l *Lexer) setState(s State) {
	if l.config.debug >= DebugDetailed && s != l.state {
		l.recordDebugEvent("transition", l.state.String()+" -> "+s.String())
	}
	l.state = s
}

// recordTokenTelemetry records per-kind telemetry (production safe)
func (l *Lexer) recordTokenTelemetry(id TokenID, elapsed time.Duration) {
	if l.tokenTelemetry == nil {
		return
	}
	telemetry, exists := l.tokenTelemetry[id]
	if !exists {
		telemetry = &TokenTelemetry{ID: id, MinTime: elapsed, MaxTime: elapsed}
		l.tokenTelemetry[id] = telemetry
	}

	telemetry.Count++
	if l.config.telemetry >= TelemetryTiming {
		telemetry.TotalTime += elapsed
		telemetry.AvgTime = telemetry.TotalTime / time.Duration(telemetry.Count)
		if elapsed < telemetry.MinTime {
			telemetry.MinTime = elapsed
		}
		if elapsed > telemetry.MaxTime {
			telemetry.MaxTime = elapsed
		}
	}
}

// recordDebugEvent records debug events when debug tracing is enabled
func (l *Lexer) recordDebugEvent(event, detail string) {
	if l.debugEvents == nil {
		return
	}
	l.debugEvents = append(l.debugEvents, DebugEvent{
		Event:  event,
		Pos:    l.pos,
		Line:   l.line,
		Column: l.column,
		State:  l.state,
		Detail: detail,
	})
	l.logger.Debug(event, "pos", l.pos, "state", l.state.String(), "detail", detail)
}

func invalidCharacter(c byte) string {
	return "invalid character: " + describeByte(c)
}

// isControl reports bytes that may not appear literally in source text.
func isControl(c byte) bool {
	return c < 0x20 || c == 0x7f
}
