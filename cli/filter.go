package main

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aledsdavies/frontc/pkgs/errors"
	"github.com/aledsdavies/frontc/runtime/lexer"
)

// maxSuggestions caps the "did you mean" list for unknown kinds.
const maxSuggestions = 3

// kindFilter selects token kinds. A nil filter keeps everything.
type kindFilter map[lexer.TokenID]bool

// Match reports whether tokens of kind id pass the filter.
func (f kindFilter) Match(id lexer.TokenID) bool {
	return f == nil || f[id]
}

// categories maps filter names to whole groups of kinds.
var categories = map[string]func(lexer.TokenID) bool{
	"keyword":     lexer.TokenID.IsKeyword,
	"literal":     lexer.TokenID.IsLiteral,
	"operator":    lexer.TokenID.IsOperator,
	"punctuation": lexer.TokenID.IsPunctuation,
}

// parseKindFilter resolves kind names, fixed token spellings (">>=") and
// category names (keyword, literal, operator, punctuation) into a filter.
// Names are case-insensitive; an empty list keeps every kind.
func parseKindFilter(names []string) (kindFilter, error) {
	if len(names) == 0 {
		return nil, nil
	}

	filter := make(kindFilter)
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		ids, ok := resolveKind(name)
		if !ok {
			return nil, errors.NewUnknownKindError(name, suggestKinds(name))
		}
		for _, id := range ids {
			filter[id] = true
		}
	}
	return filter, nil
}

func resolveKind(name string) ([]lexer.TokenID, bool) {
	category := strings.TrimSuffix(strings.ToLower(name), "s")
	if member, ok := categories[category]; ok {
		var ids []lexer.TokenID
		for _, id := range lexer.AllTokenIDs() {
			if member(id) {
				ids = append(ids, id)
			}
		}
		return ids, true
	}

	for _, id := range lexer.AllTokenIDs() {
		if strings.EqualFold(id.String(), name) || (id.Symbol() != "" && id.Symbol() == name) {
			return []lexer.TokenID{id}, true
		}
	}
	return nil, false
}

// suggestKinds returns the closest kind names to name, best first.
func suggestKinds(name string) []string {
	candidates := make([]string, 0, len(lexer.AllTokenIDs()))
	for _, id := range lexer.AllTokenIDs() {
		candidates = append(candidates, id.String())
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Sort(ranks)

	suggestions := make([]string, 0, maxSuggestions)
	for _, r := range ranks {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, r.Target)
	}
	return suggestions
}
