package lexer

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// quiet keeps test output free of lexer debug logging.
var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// tokenExpectation is the comparable view of a token used by the tables.
type tokenExpectation struct {
	ID     TokenID
	Source string
	Line   int
	Column int
}

func expectationsOf(r *Result) []tokenExpectation {
	actual := make([]tokenExpectation, 0, len(r.Tokens))
	for _, tok := range r.Tokens {
		actual = append(actual, tokenExpectation{
			ID:     tok.ID,
			Source: string(r.Source(tok)),
			Line:   tok.StartLine,
			Column: tok.StartColumn,
		})
	}
	return actual
}

// assertTokens lexes input and compares kinds, source text and positions.
// Lexing must succeed.
func assertTokens(t *testing.T, name string, input string, expected []tokenExpectation) {
	t.Helper()

	result := Tokenize([]byte(input), quiet)
	if result.Err != nil {
		t.Fatalf("%s: unexpected lex error: %v", name, result.Err)
	}
	if diff := cmp.Diff(expected, expectationsOf(result)); diff != "" {
		t.Errorf("%s: token mismatch (-expected +actual):\n%s", name, diff)
	}
}

// assertLexError lexes input and checks the first error and its position.
func assertLexError(t *testing.T, input string, want Error) *Result {
	t.Helper()

	result := Tokenize([]byte(input), quiet)
	if result.Err == nil {
		t.Fatalf("expected error %q for %q, got tokens %v", want.Msg, input, result.Tokens)
	}
	if diff := cmp.Diff(want, *result.Err); diff != "" {
		t.Errorf("error mismatch for %q (-expected +actual):\n%s", input, diff)
	}
	return result
}

// single lexes input that must produce exactly one token before EOF.
func single(t *testing.T, input string) Token {
	t.Helper()

	result := Tokenize([]byte(input), quiet)
	if result.Err != nil {
		t.Fatalf("unexpected lex error for %q: %v", input, result.Err)
	}
	if len(result.Tokens) != 2 {
		t.Fatalf("expected one token for %q, got %v", input, result.Tokens)
	}
	return result.Tokens[0]
}
