package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Formatter renders diagnostics. Paths are shown relative to the working
// directory it was constructed with.
type Formatter struct {
	cwd      string
	useColor bool
}

// FormatterOpt configures a Formatter.
type FormatterOpt func(*Formatter)

// WithColor enables ANSI colors in the header and underline.
func WithColor(enabled bool) FormatterOpt {
	return func(f *Formatter) {
		f.useColor = enabled
	}
}

// NewFormatter creates a formatter resolving paths against cwd. An empty
// cwd leaves paths untouched.
func NewFormatter(cwd string, opts ...FormatterOpt) *Formatter {
	f := &Formatter{cwd: cwd}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// DisplayPath returns path relative to the working directory when it lies
// beneath it, and path unchanged otherwise.
func (f *Formatter) DisplayPath(path string) string {
	if path == "" || f.cwd == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(f.cwd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// Format writes d to w. When src is non-nil and holds d's line, the line is
// printed with a caret underline beneath the reported range.
func (f *Formatter) Format(w io.Writer, d Diagnostic, src Source) error {
	var b strings.Builder

	loc := fmt.Sprintf("%d:%d:", d.Line+1, d.Column+1)
	if d.Path != "" {
		loc = f.DisplayPath(d.Path) + ":" + loc
	}
	b.WriteString(Colorize(loc, ColorBold, f.useColor))
	b.WriteByte(' ')
	b.WriteString(Colorize(d.Severity.String()+":", d.Severity.color(), f.useColor))
	b.WriteByte(' ')
	b.WriteString(d.Message)
	b.WriteByte('\n')

	if src != nil && d.Line >= 0 && d.Line < src.LineCount() {
		f.writeSnippet(&b, d, src.Line(d.Line))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// String renders d the way Format would.
func (f *Formatter) String(d Diagnostic, src Source) string {
	var b strings.Builder
	_ = f.Format(&b, d, src)
	return b.String()
}

func (f *Formatter) writeSnippet(b *strings.Builder, d Diagnostic, text []byte) {
	if d.Line == 0 {
		text = bytes.TrimPrefix(text, utf8BOM)
	}

	col := min(max(d.Column, 0), len(text))
	end := min(col+max(d.Length, 1), len(text))

	gutter := strconv.Itoa(d.Line + 1)
	pad := strings.Repeat(" ", len(gutter))

	fmt.Fprintf(b, "%s |\n", pad)
	fmt.Fprintf(b, "%s | %s\n", gutter, visible(text))

	underline := "^" + strings.Repeat("~", max(displayWidth(text[col:end])-1, 0))
	fmt.Fprintf(b, "%s | %s%s\n", pad, indentFor(text[:col]), Colorize(underline, d.Severity.color(), f.useColor))
}

// indentFor returns whitespace occupying the same display columns as prefix.
// Tabs are kept so the caret lines up under terminals' tab stops.
func indentFor(prefix []byte) string {
	var b strings.Builder
	for len(prefix) > 0 {
		r, size := utf8.DecodeRune(prefix)
		prefix = prefix[size:]
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runeWidth(r, size)))
	}
	return b.String()
}

func displayWidth(text []byte) int {
	n := 0
	for len(text) > 0 {
		r, size := utf8.DecodeRune(text)
		text = text[size:]
		n += runeWidth(r, size)
	}
	return n
}

// runeWidth is the number of terminal columns r occupies.
func runeWidth(r rune, size int) int {
	if r == utf8.RuneError && size <= 1 {
		return 1
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// visible replaces control bytes other than tab with spaces so the echoed
// line cannot drive the terminal.
func visible(text []byte) string {
	out := bytes.Clone(text)
	for i, c := range out {
		if (c < 0x20 && c != '\t') || c == 0x7f {
			out[i] = ' '
		}
	}
	return string(out)
}
