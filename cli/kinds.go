package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/frontc/runtime/lexer"
)

func newKindsCmd(a *app) *cobra.Command {
	var filter []string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List token kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, err := parseKindFilter(filter)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "KIND\tCATEGORY\tSPELLING")
			for _, id := range lexer.AllTokenIDs() {
				if !keep.Match(id) {
					continue
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", id, categoryOf(id), id.Symbol())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringSliceVarP(&filter, "kind", "k", nil, "Only list these kinds or categories")
	return cmd
}

func categoryOf(id lexer.TokenID) string {
	switch {
	case id.IsKeyword():
		return "keyword"
	case id.IsLiteral():
		return "literal"
	case id.IsOperator():
		return "operator"
	case id.IsPunctuation():
		return "punctuation"
	default:
		return strings.ToLower(id.String())
	}
}
