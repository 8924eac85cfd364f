// Package query keeps the history of catalog searches and suggests previous keywords.
package query

import (
	"strings"
	"sync"

	"github.com/anisan-cli/anisync/filesystem"
	"github.com/anisan-cli/anisync/key"
	"github.com/anisan-cli/anisync/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

// history maps a media kind to its remembered queries.
type history map[string]map[string]*queryRecord

var (
	mu     sync.Mutex
	cacher *gache.Cache[history]
)

func cache() *gache.Cache[history] {
	if cacher == nil {
		cacher = gache.New[history](&gache.Options{
			Path:       where.Queries(),
			FileSystem: &filesystem.GacheFs{},
		})
	}
	return cacher
}

func load() history {
	cached, expired, err := cache().Get()
	if expired || err != nil || cached == nil {
		return make(history)
	}
	return cached
}

// Remember records a search for kind or raises its rank by weight.
func Remember(kind, q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached := load()
	records, ok := cached[kind]
	if !ok {
		records = make(map[string]*queryRecord)
		cached[kind] = records
	}

	if record, ok := records[q]; ok {
		record.Rank += weight
	} else {
		records[q] = &queryRecord{Rank: weight, Query: q}
	}

	return cache().Set(cached)
}

// Suggest returns the most popular previous query for kind matching the partial input.
func Suggest(kind, q string) mo.Option[string] {
	suggestions := SuggestMany(kind, q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns previous queries for kind fuzzily matching the partial input, most popular first.
func SuggestMany(kind, q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	cached := load()
	mu.Unlock()

	records := lo.Filter(lo.Values(cached[kind]), func(record *queryRecord, _ int) bool {
		return fuzzy.Match(q, record.Query)
	})

	slices.SortFunc(records, func(a, b *queryRecord) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
