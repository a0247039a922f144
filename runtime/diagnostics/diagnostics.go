// Package diagnostics renders lexer errors and token notes as
// "path:line:column: severity: message" followed by the offending source
// line and a caret underline.
//
// Positions arrive 0-based, exactly as the lexer reports them; conversion
// to 1-based display happens here and nowhere else.
package diagnostics

import (
	"fmt"

	"github.com/aledsdavies/frontc/runtime/lexer"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) color() string {
	switch s {
	case SeverityError:
		return ColorRed
	case SeverityWarning:
		return ColorYellow
	default:
		return ColorCyan
	}
}

// Diagnostic is a message anchored to a source range.
type Diagnostic struct {
	Severity Severity
	Path     string
	Line     int // 0-based
	Column   int // 0-based byte column
	Length   int // bytes to underline; values below 1 underline one column
	Message  string
}

// Source is the view of a lexed file a Formatter needs.
// *lexer.Result implements it.
type Source interface {
	LineCount() int
	Line(line int) []byte
}

var _ Source = (*lexer.Result)(nil)

// FromLexError builds an error diagnostic from the lexer's first error.
func FromLexError(path string, err *lexer.Error) Diagnostic {
	return Diagnostic{
		Severity: SeverityError,
		Path:     path,
		Line:     err.Line,
		Column:   err.Column,
		Length:   1,
		Message:  err.Msg,
	}
}

// FromToken builds a diagnostic underlining a whole token.
func FromToken(path string, tok lexer.Token, severity Severity, message string) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Path:     path,
		Line:     tok.StartLine,
		Column:   tok.StartColumn,
		Length:   tok.Len(),
		Message:  message,
	}
}
