package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"github.com/aledsdavies/frontc/pkgs/errors"
)

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var cliErr *errors.CLIError
	if stderrors.As(err, &cliErr) {
		formatCLIError(w, cliErr, useColor)
		return
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, err *errors.CLIError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Message)

	if err.Cause != nil {
		_, _ = fmt.Fprintf(w, "%s%v\n", Colorize("  Cause: ", ColorGray, useColor), err.Cause)
	}

	keys := make([]string, 0, len(err.Context))
	for k := range err.Context {
		if k == "suggestions" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s%s=%v\n", Colorize("  ", ColorGray, useColor), k, err.Context[k])
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), err.Hint)
	}
}
