package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/frontc/pkgs/errors"
)

// run executes the CLI with args and returns what it wrote.
func run(t *testing.T, stdin io.Reader, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{stdin: stdin, stdout: &out, stderr: &errOut}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// writeFile creates dir/name with content, making parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fields splits output into whitespace-separated fields per line.
func fields(output string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, nil, "bogus")
	assert.Error(t, err)
}

func TestFormatErrorCLIError(t *testing.T) {
	err := errors.Wrap(errors.ErrInputRead, "Failed to read 'a.fc'", io.ErrUnexpectedEOF).
		WithContext("path", "a.fc").
		WithHint("Check the file")

	var buf bytes.Buffer
	FormatError(&buf, err, false)

	want := strings.Join([]string{
		"Error: Failed to read 'a.fc'",
		"  Cause: unexpected EOF",
		"  path=a.fc",
		"Hint: Check the file",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestFormatErrorHidesSuggestionsContext(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, errors.NewUnknownKindError("PLSU", []string{"PLUS"}), false)

	assert.NotContains(t, buf.String(), "suggestions=")
	assert.Contains(t, buf.String(), "Hint: Did you mean PLUS?")
}

func TestFormatErrorGeneric(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, io.EOF, false)
	assert.Equal(t, "Error: EOF\n", buf.String())

	buf.Reset()
	FormatError(&buf, io.EOF, true)
	assert.Equal(t, ColorRed+"Error: "+ColorReset+"EOF\n", buf.String())

	buf.Reset()
	FormatError(&buf, nil, false)
	assert.Empty(t, buf.String())
}

func TestUseColorOnlyForTerminals(t *testing.T) {
	a := &app{}
	assert.False(t, a.useColor(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.False(t, a.useColor(f))
}

func TestReadSourceModes(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.fc", "x")

	a := &app{stdin: strings.NewReader("piped")}
	name, src, err := a.readSource("")
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", name)
	assert.Equal(t, "piped", string(src))

	a = &app{stdin: strings.NewReader("explicit")}
	name, src, err = a.readSource("-")
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", name)
	assert.Equal(t, "explicit", string(src))

	name, src, err = a.readSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, name)
	assert.Equal(t, "x", string(src))

	_, _, err = a.readSource(filepath.Join(dir, "missing.fc"))
	assert.True(t, errors.IsErrorType(err, errors.ErrFileNotFound))

	a = &app{}
	_, _, err = a.readSource("")
	assert.True(t, errors.IsErrorType(err, errors.ErrUsage))
}
