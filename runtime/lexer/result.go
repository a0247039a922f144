package lexer

import (
	"fmt"

	"github.com/aledsdavies/frontc/core/invariant"
)

// Error is the first lexical error of a pass. Line and Column are 0-based.
type Error struct {
	Msg    string
	Line   int
	Column int
}

// Error renders the error with 1-based line and column.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line+1, e.Column+1, e.Msg)
}

// Result is the outcome of one lexing pass.
//
// Tokens always ends with an EOF token, even when Err is set. LineOffsets
// holds the byte offset of every line start; LineOffsets[0] is 0.
type Result struct {
	Tokens      []Token
	LineOffsets []int
	Err         *Error

	src []byte
}

// AsError returns Err as an error, or nil when lexing succeeded.
func (r *Result) AsError() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

// Source returns the bytes a token was lexed from.
func (r *Result) Source(t Token) []byte {
	invariant.Precondition(t.StartPos >= 0 && t.StartPos <= t.EndPos && t.EndPos <= len(r.src),
		"token range [%d, %d) outside source of %d bytes", t.StartPos, t.EndPos, len(r.src))
	return r.src[t.StartPos:t.EndPos]
}

// LineCount returns the number of lines in the source.
func (r *Result) LineCount() int { return len(r.LineOffsets) }

// LineSpan returns the byte offset and length of a 0-based line, excluding
// its terminating newline.
func (r *Result) LineSpan(line int) (start, length int) {
	invariant.InRange(line, 0, len(r.LineOffsets)-1, "line")
	start = r.LineOffsets[line]
	end := len(r.src)
	if line+1 < len(r.LineOffsets) {
		end = r.LineOffsets[line+1] - 1
	}
	return start, end - start
}

// Line returns the text of a 0-based line without its newline.
func (r *Result) Line(line int) []byte {
	start, length := r.LineSpan(line)
	return r.src[start : start+length]
}
