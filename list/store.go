package list

import (
	"context"
	"strings"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/filesystem"
	"github.com/anisan-cli/anisync/provider"
	"github.com/anisan-cli/anisync/where"
	"github.com/metafates/gache"
	"github.com/pkg/errors"
)

// snapshotVersion changes whenever the cache layout does; older files are discarded.
const snapshotVersion = 1

type snapshot[E any] struct {
	Version  int    `json:"version"`
	Provider string `json:"provider"`
	Username string `json:"username"`
	Entries  []E    `json:"entries"`
	Pending  []int  `json:"pending"`
}

func newCache[E any](kind Kind, account provider.Account) *gache.Cache[*snapshot[E]] {
	return gache.New[*snapshot[E]](&gache.Options{
		Path:       where.List(string(kind), account.Provider, account.Username),
		FileSystem: &filesystem.GacheFs{},
	})
}

// LoadAnimeList restores the anime list of p from disk. When there is no usable cache
// the list starts empty and is synced right away; the list is returned even if that Sync fails.
func LoadAnimeList(ctx context.Context, p provider.AnimeProvider) (*List[*entry.Anime], error) {
	return load(ctx, NewAnimeList(p))
}

// LoadMangaList is LoadAnimeList for manga.
func LoadMangaList(ctx context.Context, p provider.MangaProvider) (*List[*entry.Manga], error) {
	return load(ctx, NewMangaList(p))
}

func load[E Item[E]](ctx context.Context, l *List[E]) (*List[E], error) {
	if err := l.restore(); err != nil {
		l.log.WithError(err).Info("cache not usable, pulling")
		if _, err := l.Sync(ctx); err != nil {
			return l, err
		}
	}
	return l, nil
}

// Save writes the entries and the queue to disk.
func (l *List[E]) Save() error {
	l.mu.Lock()
	account := l.backend.Account()
	cached := &snapshot[E]{
		Version:  snapshotVersion,
		Provider: account.Provider,
		Username: account.Username,
		Entries:  l.sorted(),
		Pending:  l.pending.Items(),
	}
	l.mu.Unlock()

	return errors.Wrap(l.cache.Set(cached), "saving list")
}

func (l *List[E]) restore() error {
	cached, expired, err := l.cache.Get()
	switch {
	case err != nil:
		return errors.Wrap(err, "reading list cache")
	case expired || cached == nil:
		return errors.New("no list cache")
	case cached.Version != snapshotVersion:
		return errors.Errorf("list cache version %d, want %d", cached.Version, snapshotVersion)
	}

	account := l.backend.Account()
	if cached.Provider != account.Provider || !strings.EqualFold(cached.Username, account.Username) {
		return errors.Errorf("list cache belongs to %s/%s", cached.Provider, cached.Username)
	}

	entries := make(map[int]E, len(cached.Entries))
	for _, e := range cached.Entries {
		if e.Key().Provider != account.Provider {
			return errors.Errorf("cached entry %d belongs to %q", e.Key().ID, e.Key().Provider)
		}
		entries[e.Key().ID] = e
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = entries
	l.pending.Clear()
	for _, id := range cached.Pending {
		if _, ok := entries[id]; ok {
			l.pending.Push(id)
		}
	}
	return nil
}
