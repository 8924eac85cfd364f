package list

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// sorted returns the entries ordered by title. Callers hold l.mu.
func (l *List[E]) sorted() []E {
	entries := lo.Values(l.entries)
	slices.SortFunc(entries, func(a, b E) int {
		if c := strings.Compare(strings.ToLower(a.Base().Title), strings.ToLower(b.Base().Title)); c != 0 {
			return c
		}
		return a.Key().ID - b.Key().ID
	})
	return entries
}

// Entries returns the cached entries sorted by title.
func (l *List[E]) Entries() []E {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sorted()
}

// Filter returns the entries with any title fuzzily matching keyword.
func (l *List[E]) Filter(keyword string) []E {
	return lo.Filter(l.Entries(), func(e E, _ int) bool {
		return lo.SomeBy(e.Base().Titles(), func(title string) bool {
			return fuzzy.MatchNormalizedFold(keyword, title)
		})
	})
}

// Closest returns the entry whose title is nearest to title by edit distance.
func (l *List[E]) Closest(title string) mo.Option[E] {
	entries := l.Entries()
	if len(entries) == 0 {
		return mo.None[E]()
	}

	title = strings.ToLower(title)
	distance := func(e E) int {
		return lo.Min(lo.Map(e.Base().Titles(), func(t string, _ int) int {
			return levenshtein.Distance(title, strings.ToLower(t))
		}))
	}

	return mo.Some(lo.MinBy(entries, func(a, b E) bool {
		return distance(a) < distance(b)
	}))
}
