package method

import (
	"errors"
	"fmt"
	pathpkg "path"
	"strings"
)

// ErrEmptyMethodSet is returned when pattern resolution yields no methods.
var ErrEmptyMethodSet = errors.New("no compression method matched")

// ErrInvalidMethodGlob is returned when a glob pattern is malformed.
var ErrInvalidMethodGlob = errors.New("invalid method glob")

// patternSeparators split a single pattern argument into sub-patterns.
const patternSeparators = ",|"

// Selector resolves user-supplied glob patterns against a registry.
type Selector struct {
	registry *Registry
}

// NewSelector creates a selector over the given registry.
func NewSelector(registry *Registry) *Selector {
	return &Selector{registry: registry}
}

// Resolve expands patterns into a concrete ordered method list. Each
// pattern argument may contain comma- or pipe-separated sub-patterns.
// Resolution is order-preserving and deduplicating: a method appears once,
// at the position of its first match.
//
// A pattern that matches nothing produces a warning, not an error, unless
// the final set is empty, which fails with ErrEmptyMethodSet. An empty
// pattern list selects every registered method.
func (s *Selector) Resolve(patterns []string) (methods []Method, warnings []string, err error) {
	if len(patterns) == 0 {
		return s.registry.All(), nil, nil
	}

	selected := make([]Method, 0, len(s.registry.ordered))
	seen := make(map[string]struct{}, len(s.registry.ordered))

	for _, pattern := range splitPatterns(patterns) {
		// The predecessor tool took regular expressions; keep its ".*"
		// wildcard working under glob matching.
		pattern = strings.ReplaceAll(pattern, ".*", "*")

		matched, matchErr := s.matchOne(pattern)
		if matchErr != nil {
			return nil, warnings, matchErr
		}

		if len(matched) == 0 {
			warnings = append(warnings, fmt.Sprintf("pattern %q matched no methods", pattern))

			continue
		}

		for _, m := range matched {
			if _, exists := seen[m.Name()]; exists {
				continue
			}

			seen[m.Name()] = struct{}{}
			selected = append(selected, m)
		}
	}

	if len(selected) == 0 {
		return nil, warnings, fmt.Errorf("%w: %s", ErrEmptyMethodSet, strings.Join(patterns, ","))
	}

	return selected, warnings, nil
}

func (s *Selector) matchOne(pattern string) ([]Method, error) {
	if !hasGlobMeta(pattern) {
		m, ok := s.registry.Lookup(pattern)
		if !ok {
			return nil, nil
		}

		return []Method{m}, nil
	}

	matched := make([]Method, 0, len(s.registry.ordered))

	for _, m := range s.registry.ordered {
		isMatch, err := pathpkg.Match(pattern, m.Name())
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidMethodGlob, pattern, err)
		}

		if isMatch {
			matched = append(matched, m)
		}
	}

	return matched, nil
}

func splitPatterns(patterns []string) []string {
	split := make([]string, 0, len(patterns))

	for _, raw := range patterns {
		for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
			return strings.ContainsRune(patternSeparators, r)
		}) {
			part = strings.TrimSpace(part)
			if part != "" {
				split = append(split, part)
			}
		}
	}

	return split
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}
