package main

import (
	"io"
	"os"

	"github.com/aledsdavies/frontc/pkgs/errors"
)

const stdinPath = "-"

// readSource handles the 3 modes of input:
// 1. Explicit stdin with -
// 2. Piped input (auto-detected when no path is given)
// 3. File input
func (a *app) readSource(path string) (string, []byte, error) {
	if path == "" {
		if !a.hasPipedInput() {
			return "", nil, errors.NewUsageError("no input", "Pass a file path, '-' or pipe source on stdin")
		}
		path = stdinPath
	}

	if path == stdinPath {
		src, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", nil, errors.NewInputError("<stdin>", err)
		}
		return "<stdin>", src, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, errors.NewInputError(path, err)
	}
	return path, src, nil
}

// hasPipedInput detects if there's data piped to stdin. Readers that are not
// files, such as test buffers, count as piped.
func (a *app) hasPipedInput() bool {
	f, ok := a.stdin.(*os.File)
	if !ok {
		return a.stdin != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	// Pipes may not report a size, so only the mode is checked
	return (stat.Mode() & os.ModeCharDevice) == 0
}
