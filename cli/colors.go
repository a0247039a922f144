package main

import (
	"os"

	"github.com/aledsdavies/frontc/runtime/diagnostics"
)

// Re-export color constants from diagnostics package for convenience
const (
	ColorReset  = diagnostics.ColorReset
	ColorBold   = diagnostics.ColorBold
	ColorRed    = diagnostics.ColorRed
	ColorGreen  = diagnostics.ColorGreen
	ColorYellow = diagnostics.ColorYellow
	ColorCyan   = diagnostics.ColorCyan
	ColorGray   = diagnostics.ColorGray
)

// Colorize wraps text in ANSI color codes if color is enabled
func Colorize(text, color string, useColor bool) string {
	return diagnostics.Colorize(text, color, useColor)
}

// ShouldUseColor determines if color output should be used for f
func ShouldUseColor(f *os.File, noColorFlag bool) bool {
	return diagnostics.ShouldUseColor(f, noColorFlag)
}
