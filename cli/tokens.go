package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/frontc/pkgs/errors"
	"github.com/aledsdavies/frontc/runtime/lexcache"
)

func newTokensCmd(a *app) *cobra.Command {
	var (
		format string
		kinds  []string
		digest bool
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "tokens [FILE|-]",
		Short: "Print the token stream of a source file",
		Long: `Print the token stream of a source file.

Without FILE, source is read from piped stdin. Lexing stops at the first
error; the tokens before it are still printed and the error is reported
on stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encode, err := lookupEncoder(format)
			if err != nil {
				return err
			}
			keep, err := parseKindFilter(kinds)
			if err != nil {
				return err
			}
			cache, err := lexcache.New(lexcache.DefaultSize, a.lexerOpts()...)
			if err != nil {
				return err
			}

			p := &tokenPrinter{app: a, cache: cache, encode: encode, keep: keep, digest: digest}

			var path string
			if len(args) == 1 {
				path = args[0]
			}
			if watch {
				if path == "" || path == stdinPath {
					return errors.NewUsageError("--watch needs a file path", "Pass the file to watch as an argument")
				}
				return p.watch(cmd.Context(), path)
			}

			name, src, err := a.readSource(path)
			if err != nil {
				return err
			}
			return p.print(name, src)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "text", "Output format: text, json, yaml or cbor")
	cmd.Flags().StringSliceVarP(&kinds, "kind", "k", nil, "Only print these kinds or categories (e.g. SYMBOL,keyword,'>>=')")
	cmd.Flags().BoolVar(&digest, "digest", false, "Include the blake2b digest of the source")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-print whenever the file changes")
	return cmd
}

// tokenPrinter lexes sources and writes their token dumps.
type tokenPrinter struct {
	app    *app
	cache  *lexcache.Cache
	encode encoder
	keep   kindFilter
	digest bool
}

func (p *tokenPrinter) print(path string, src []byte) error {
	result, sum := p.cache.Tokenize(src)

	dump := newTokenDump(path, result, p.keep)
	if p.digest {
		dump.Digest = sum.String()
	}
	if err := p.encode(p.app.stdout, dump); err != nil {
		return err
	}

	if result.Err != nil {
		p.app.reportLexError(path, result)
		return errors.NewLexError(path, result.Err)
	}
	return nil
}

// watch prints path now and again after every change to its content until
// ctx is cancelled. Failures while watching are reported and do not stop
// the loop.
func (p *tokenPrinter) watch(ctx context.Context, path string) error {
	var (
		last    lexcache.Digest
		printed bool
	)
	render := func() {
		src, err := os.ReadFile(path)
		if err != nil {
			FormatError(p.app.stderr, errors.NewInputError(path, err), p.app.useColor(p.app.stderr))
			return
		}
		sum := lexcache.Sum(src)
		if printed && sum == last {
			return
		}
		printed, last = true, sum

		err = p.print(path, src)
		if err != nil && !errors.IsErrorType(err, errors.ErrLex) {
			FormatError(p.app.stderr, err, p.app.useColor(p.app.stderr))
		}
	}

	render()
	return watchFile(ctx, path, render)
}
