package command

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/markup/lexer"
	"github.com/opal-lang/markup/markuperr"
)

// Registry is a name -> Handler map. Keys must be unique; inserting a
// duplicate name replaces the prior entry. The registry holds only
// references; handlers are owned by the embedder (spec.md §3).
type Registry[T lexer.CodeUnit] struct {
	handlers map[string]Handler[T]
}

// NewRegistry creates an empty Registry.
func NewRegistry[T lexer.CodeUnit]() *Registry[T] {
	return &Registry[T]{handlers: make(map[string]Handler[T])}
}

// Register adds or replaces the handler for h.Name().
func (r *Registry[T]) Register(h Handler[T]) {
	r.handlers[h.Name()] = h
}

// Lookup resolves name to its Handler, or a ValidationError ("command not
// found") carrying pos and, when the registry holds any named handler, a
// "did you mean" suggestion: the best-ranked fuzzy.RankFindFold match from
// github.com/lithammer/fuzzysearch/fuzzy — the same library and the same
// call the teacher's planner uses to suggest close command names
// (runtime/planner/planner.go) — or, when no name matches that way, the
// name at the smallest Levenshtein distance.
func (r *Registry[T]) Lookup(name string, pos lexer.Position) (Handler[T], error) {
	if h, ok := r.handlers[name]; ok {
		return h, nil
	}
	candidates := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		candidates = append(candidates, k)
	}
	suggestion := closestMatch(name, candidates)
	if suggestion != "" {
		return nil, markuperr.New(markuperr.ValidationError, pos.Diagnostic(),
			"command not found: %q (did you mean %q?)", name, suggestion)
	}
	return nil, markuperr.New(markuperr.ValidationError, pos.Diagnostic(),
		"command not found: %q", name)
}

func closestMatch(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDistance := "", -1
	for _, c := range candidates {
		if c == "" {
			continue
		}
		d := fuzzy.LevenshteinDistance(target, c)
		if bestDistance < 0 || d < bestDistance || (d == bestDistance && c < best) {
			best, bestDistance = c, d
		}
	}
	return best
}
