package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/frontc/runtime/diagnostics"
	"github.com/aledsdavies/frontc/runtime/lexer"
)

// app carries the streams and global flags shared by every subcommand.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cwd    string

	debug   bool
	noColor bool
}

func main() {
	cwd, _ := os.Getwd()
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		cwd:    cwd,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	if err != nil {
		FormatError(os.Stderr, err, a.useColor(os.Stderr))
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "frontc [command]",
		Short:         "Inspect and check source files with the frontc lexer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log lexer state transitions to stderr")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newTokensCmd(a), newCheckCmd(a), newKindsCmd(a))
	return rootCmd
}

// useColor reports whether w should receive ANSI colors. Only terminals do.
func (a *app) useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return ShouldUseColor(f, a.noColor)
}

func (a *app) formatter() *diagnostics.Formatter {
	return diagnostics.NewFormatter(a.cwd, diagnostics.WithColor(a.useColor(a.stderr)))
}

// lexerOpts returns the options every lexing pass in this run uses.
func (a *app) lexerOpts() []lexer.LexerOpt {
	if !a.debug {
		return []lexer.LexerOpt{lexer.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}
	}
	handler := slog.NewTextHandler(a.stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) == 0 && attr.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return attr
		},
	})
	return []lexer.LexerOpt{lexer.WithLogger(slog.New(handler)), lexer.WithDebugPaths()}
}

// reportLexError prints the lexer's first error as a source diagnostic.
func (a *app) reportLexError(path string, result *lexer.Result) {
	d := diagnostics.FromLexError(path, result.Err)
	if err := a.formatter().Format(a.stderr, d, result); err != nil {
		_, _ = fmt.Fprintln(a.stderr, result.Err)
	}
}
