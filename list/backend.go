package list

import (
	"context"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/provider"
)

// backend is the media-specific half of a provider, so that one List serves both kinds.
type backend[E any] interface {
	provider.Provider

	add(ctx context.Context, id int, status entry.Status) error
	update(ctx context.Context, e E) (bool, error)
	find(ctx context.Context, keywords string) ([]E, error)
	pull(ctx context.Context) ([]E, error)
}

type animeBackend struct {
	provider.AnimeProvider
}

func (b animeBackend) add(ctx context.Context, id int, status entry.Status) error {
	return b.AddAnime(ctx, id, status)
}

func (b animeBackend) update(ctx context.Context, anime *entry.Anime) (bool, error) {
	return b.UpdateAnime(ctx, anime)
}

func (b animeBackend) find(ctx context.Context, keywords string) ([]*entry.Anime, error) {
	return b.FindAnime(ctx, keywords)
}

func (b animeBackend) pull(ctx context.Context) ([]*entry.Anime, error) {
	return b.PullAnimeList(ctx)
}

type mangaBackend struct {
	provider.MangaProvider
}

func (b mangaBackend) add(ctx context.Context, id int, status entry.Status) error {
	return b.AddManga(ctx, id, status)
}

func (b mangaBackend) update(ctx context.Context, manga *entry.Manga) (bool, error) {
	return b.UpdateManga(ctx, manga)
}

func (b mangaBackend) find(ctx context.Context, keywords string) ([]*entry.Manga, error) {
	return b.FindManga(ctx, keywords)
}

func (b mangaBackend) pull(ctx context.Context) ([]*entry.Manga, error) {
	return b.PullMangaList(ctx)
}
