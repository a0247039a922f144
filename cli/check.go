package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/frontc/pkgs/errors"
	"github.com/aledsdavies/frontc/runtime/lexcache"
	"github.com/aledsdavies/frontc/runtime/lexmetrics"
)

const defaultMatch = "**.fc"

func newCheckCmd(a *app) *cobra.Command {
	var (
		match       string
		metricsPath string
	)

	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Lex files and report the first error in each",
		Long: `Lex every given file, and every file under each given directory whose
slash-separated path relative to that directory matches --match. Each
failing file gets a diagnostic on stderr.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := glob.Compile(match, '/')
			if err != nil {
				return errors.NewUsageError(
					fmt.Sprintf("invalid --match pattern '%s': %v", match, err),
					"Patterns use '*' within a path segment and '**' across segments",
				)
			}

			files, err := collectFiles(args, pattern)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.NewUsageError("no source files matched", fmt.Sprintf("Check the paths or the --match pattern '%s'", match))
			}

			cache, err := lexcache.New(lexcache.DefaultSize, a.lexerOpts()...)
			if err != nil {
				return err
			}
			metrics := lexmetrics.New(cache)

			var failed, tokens int
			for _, path := range files {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				src, err := os.ReadFile(path)
				if err != nil {
					return errors.NewInputError(path, err)
				}
				result, _ := cache.Tokenize(src)
				metrics.Observe(src, result)
				tokens += len(result.Tokens) - 1
				if result.Err != nil {
					failed++
					a.reportLexError(path, result)
				}
			}

			if metricsPath != "" {
				if err := metrics.WriteTextfile(metricsPath); err != nil {
					return errors.Wrap(errors.ErrEncode, "Failed to write metrics", err).
						WithContext("path", metricsPath)
				}
			}

			if failed > 0 {
				return errors.New(errors.ErrLex, fmt.Sprintf("%d of %d files failed to lex", failed, len(files)))
			}
			_, _ = fmt.Fprintf(a.stdout, "%s %d files, %d tokens\n",
				Colorize("ok", ColorGreen, a.useColor(a.stdout)), len(files), tokens)
			return nil
		},
	}

	cmd.Flags().StringVar(&match, "match", defaultMatch, "Glob selecting files inside directories")
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "Write Prometheus metrics to this textfile")
	return cmd
}

// collectFiles expands args into the files to check. Files named directly
// are always included; directories are walked in lexical order, skipping
// hidden subdirectories, and filtered by pattern.
func collectFiles(args []string, pattern glob.Glob) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.NewInputError(arg, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(arg))
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(arg, path)
			if err != nil {
				return err
			}
			if pattern.Match(filepath.ToSlash(rel)) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.NewInputError(arg, err)
		}
	}
	return files, nil
}
