// Package list holds the local copy of a remote list, queues local changes and
// reconciles them with the bound provider on Sync.
package list

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/log"
	"github.com/anisan-cli/anisync/provider"
	"github.com/anisan-cli/anisync/query"
	"github.com/anisan-cli/anisync/util"
	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// Kind is the media kind a list holds.
type Kind string

const (
	Anime Kind = "anime"
	Manga Kind = "manga"
)

// State is the lifecycle step of a list.
type State int

const (
	Loaded State = iota
	Syncing
)

func (s State) String() string {
	if s == Syncing {
		return "syncing"
	}
	return "loaded"
}

// Item is an anime or a manga.
type Item[E any] interface {
	Key() entry.Key
	Base() *entry.Entry
	Replace(E) error
}

// List is the cached remote list of one account for one media kind.
//
// Add, Remove and Update only touch the cache and queue the entry; Sync pushes the queue
// and refreshes the cache. Mutating the list while Sync runs is not serialized against
// the drain; callers must not overlap them.
type List[E Item[E]] struct {
	kind    Kind
	backend backend[E]
	cache   *gache.Cache[*snapshot[E]]
	log     *logrus.Entry

	mu      sync.Mutex
	entries map[int]E
	pending util.Queue[int]

	syncing atomic.Bool
}

func newList[E Item[E]](kind Kind, b backend[E]) *List[E] {
	return &List[E]{
		kind:    kind,
		backend: b,
		cache:   newCache[E](kind, b.Account()),
		log:     log.WithProvider(b.ID()).WithField("list", kind),
		entries: make(map[int]E),
	}
}

// NewAnimeList returns an empty anime list bound to p.
func NewAnimeList(p provider.AnimeProvider) *List[*entry.Anime] {
	return newList[*entry.Anime](Anime, animeBackend{p})
}

// NewMangaList returns an empty manga list bound to p.
func NewMangaList(p provider.MangaProvider) *List[*entry.Manga] {
	return newList[*entry.Manga](Manga, mangaBackend{p})
}

// Kind returns the media kind of the list.
func (l *List[E]) Kind() Kind { return l.kind }

// Provider returns the adapter the list is bound to.
func (l *List[E]) Provider() provider.Provider { return l.backend }

// State reports whether a Sync is running.
func (l *List[E]) State() State {
	if l.syncing.Load() {
		return Syncing
	}
	return Loaded
}

func (l *List[E]) checkProvider(e E) error {
	if e.Key().Provider != l.backend.ID() {
		return fault.New(fault.Validation, l.backend.ID(), "entry %d belongs to %q", e.Key().ID, e.Key().Provider)
	}
	return nil
}

// Add puts e on the list with status and queues it.
// Adding a title that is already listed fails with fault.Rejected.
func (l *List[E]) Add(e E, status entry.Status) error {
	if !status.Listed() {
		return fault.New(fault.Validation, l.backend.ID(), "cannot add with status %s", status)
	}
	if err := l.checkProvider(e); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := e.Key().ID
	if existing, ok := l.entries[id]; ok {
		if existing.Base().Status.Listed() {
			return fault.New(fault.Rejected, l.backend.ID(), "%q is already in the list", existing.Base().Title)
		}
		if err := existing.Replace(e); err != nil {
			return err
		}
		e = existing
	}

	e.Base().Status = status
	l.entries[id] = e
	l.pending.Push(id)
	return nil
}

// Remove marks the title as not in list and queues it. The entry stays cached until the
// provider has recorded the removal.
func (l *List[E]) Remove(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, ok := l.entries[id]
	if !ok {
		return fault.New(fault.Validation, l.backend.ID(), "%d is not in the list", id)
	}

	existing.Base().Status = entry.NotInList
	l.pending.Push(id)
	return nil
}

// Update copies the fields of e into the cached entry with the same id and queues it.
func (l *List[E]) Update(e E) error {
	if err := l.checkProvider(e); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := e.Key().ID
	existing, ok := l.entries[id]
	if !ok {
		return fault.New(fault.Validation, l.backend.ID(), "%d is not in the list", id)
	}
	if err := existing.Replace(e); err != nil {
		return err
	}

	l.pending.Push(id)
	return nil
}

// Find searches the provider catalog and remembers the keywords.
func (l *List[E]) Find(ctx context.Context, keywords string) ([]E, error) {
	if err := query.Remember(string(l.kind), keywords, 1); err != nil {
		l.log.WithError(err).Warn("query not remembered")
	}
	return l.backend.find(ctx, keywords)
}

// Get returns the cached entry with id.
func (l *List[E]) Get(id int) mo.Option[E] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[id]; ok {
		return mo.Some(e)
	}
	return mo.None[E]()
}

// Len returns the number of cached entries.
func (l *List[E]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Pending returns the queued entries, oldest first.
func (l *List[E]) Pending() []E {
	l.mu.Lock()
	defer l.mu.Unlock()

	queued := make([]E, 0, l.pending.Len())
	for _, id := range l.pending.Items() {
		queued = append(queued, l.entries[id])
	}
	return queued
}
