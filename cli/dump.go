package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"sigs.k8s.io/yaml"

	"github.com/aledsdavies/frontc/pkgs/errors"
	"github.com/aledsdavies/frontc/runtime/lexer"
)

// tokenRecord is the serialized form of a token. Lines and columns are
// 1-based; Start and End are byte offsets.
type tokenRecord struct {
	Kind     string `json:"kind" cbor:"kind"`
	Line     int    `json:"line" cbor:"line"`
	Column   int    `json:"column" cbor:"column"`
	Start    int    `json:"start" cbor:"start"`
	End      int    `json:"end" cbor:"end"`
	Text     string `json:"text,omitempty" cbor:"text,omitempty"`
	Value    string `json:"value,omitempty" cbor:"value,omitempty"`
	Overflow bool   `json:"overflow,omitempty" cbor:"overflow,omitempty"`
}

type errorRecord struct {
	Message string `json:"message" cbor:"message"`
	Line    int    `json:"line" cbor:"line"`
	Column  int    `json:"column" cbor:"column"`
}

// tokenDump is the document written by `frontc tokens`.
type tokenDump struct {
	Path   string        `json:"path" cbor:"path"`
	Digest string        `json:"digest,omitempty" cbor:"digest,omitempty"`
	Tokens []tokenRecord `json:"tokens" cbor:"tokens"`
	Error  *errorRecord  `json:"error,omitempty" cbor:"error,omitempty"`
}

func newTokenRecord(result *lexer.Result, tok lexer.Token) tokenRecord {
	rec := tokenRecord{
		Kind:   tok.ID.String(),
		Line:   tok.StartLine + 1,
		Column: tok.StartColumn + 1,
		Start:  tok.StartPos,
		End:    tok.EndPos,
	}
	switch tok.ID {
	case lexer.SYMBOL, lexer.STRING_LITERAL, lexer.MULTILINE_STRING_LITERAL:
		rec.Text = string(tok.Text)
	case lexer.CHAR_LITERAL:
		rec.Text = string(result.Source(tok))
		rec.Value = strconv.Itoa(int(tok.Char))
	case lexer.INT_LITERAL:
		rec.Text = string(result.Source(tok))
		if tok.Int != nil {
			rec.Value = tok.Int.String()
		}
	case lexer.FLOAT_LITERAL:
		rec.Text = string(result.Source(tok))
		rec.Overflow = tok.Float.Overflow
	}
	return rec
}

// newTokenDump converts result, keeping only tokens accepted by keep.
func newTokenDump(path string, result *lexer.Result, keep kindFilter) *tokenDump {
	dump := &tokenDump{Path: path, Tokens: []tokenRecord{}}
	for _, tok := range result.Tokens {
		if keep.Match(tok.ID) {
			dump.Tokens = append(dump.Tokens, newTokenRecord(result, tok))
		}
	}
	if result.Err != nil {
		dump.Error = &errorRecord{
			Message: result.Err.Msg,
			Line:    result.Err.Line + 1,
			Column:  result.Err.Column + 1,
		}
	}
	return dump
}

// encoder writes a token dump in one output format.
type encoder func(w io.Writer, dump *tokenDump) error

var encoders = map[string]encoder{
	"text": encodeText,
	"json": encodeJSON,
	"yaml": encodeYAML,
	"cbor": encodeCBOR,
}

func formatNames() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupEncoder(format string) (encoder, error) {
	enc, ok := encoders[strings.ToLower(format)]
	if !ok {
		return nil, errors.NewUsageError(
			fmt.Sprintf("unknown output format '%s'", format),
			"Use one of: "+strings.Join(formatNames(), ", "),
		)
	}
	return enc, nil
}

// encodeText prints one token per line: position, kind, payload.
func encodeText(w io.Writer, dump *tokenDump) error {
	var b strings.Builder
	if dump.Digest != "" {
		fmt.Fprintf(&b, "# %s %s\n", dump.Path, dump.Digest)
	}
	for _, rec := range dump.Tokens {
		pos := fmt.Sprintf("%d:%d", rec.Line, rec.Column)
		payload := textPayload(rec)
		if payload == "" {
			fmt.Fprintf(&b, "%-8s %s\n", pos, rec.Kind)
			continue
		}
		fmt.Fprintf(&b, "%-8s %-24s %s\n", pos, rec.Kind, payload)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func textPayload(rec tokenRecord) string {
	switch rec.Kind {
	case lexer.SYMBOL.String(), lexer.STRING_LITERAL.String(), lexer.MULTILINE_STRING_LITERAL.String():
		return strconv.Quote(rec.Text)
	case lexer.CHAR_LITERAL.String():
		return rec.Text + " = " + rec.Value
	case lexer.INT_LITERAL.String():
		return rec.Value
	case lexer.FLOAT_LITERAL.String():
		if rec.Overflow {
			return rec.Text + " (overflow)"
		}
		return rec.Text
	default:
		return ""
	}
}

func encodeJSON(w io.Writer, dump *tokenDump) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		return errors.NewEncodeError("json", err)
	}
	return nil
}

func encodeYAML(w io.Writer, dump *tokenDump) error {
	data, err := yaml.Marshal(dump)
	if err != nil {
		return errors.NewEncodeError("yaml", err)
	}
	_, err = w.Write(data)
	return err
}

// cborMode encodes deterministically so equal dumps are byte-identical.
var cborMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: canonical encoding options rejected: %v", err))
	}
	return mode
}()

func encodeCBOR(w io.Writer, dump *tokenDump) error {
	data, err := cborMode.Marshal(dump)
	if err != nil {
		return errors.NewEncodeError("cbor", err)
	}
	_, err = w.Write(data)
	return err
}
