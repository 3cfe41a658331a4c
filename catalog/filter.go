package catalog

import (
	"strings"

	"github.com/echodl/echodl/echo360"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Filter keeps the sections whose code or name fuzzily matches query,
// closest first. An empty query keeps every section in its original order.
func Filter(sections []echo360.Section, query string) []echo360.Section {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return sections
	}

	matched := lo.Filter(sections, func(s echo360.Section, _ int) bool {
		return fuzzy.MatchFold(query, s.CourseCode) || fuzzy.MatchFold(query, s.CourseName)
	})

	distance := func(s echo360.Section) int {
		return min(
			levenshtein.Distance(query, strings.ToLower(s.CourseCode)),
			levenshtein.Distance(query, strings.ToLower(s.CourseName)),
		)
	}

	slices.SortStableFunc(matched, func(a, b echo360.Section) int {
		return distance(a) - distance(b)
	})

	return matched
}
