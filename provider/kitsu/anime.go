package kitsu

import (
	"context"

	"github.com/anisan-cli/anisync/entry"
)

func (a *Adapter) AddAnime(ctx context.Context, id int, status entry.Status) error {
	return a.add(ctx, kindAnime, id, status)
}

func (a *Adapter) RemoveAnime(ctx context.Context, id int) error {
	return a.remove(ctx, kindAnime, id)
}

func (a *Adapter) UpdateAnime(ctx context.Context, anime *entry.Anime) (bool, error) {
	return a.save(ctx, kindAnime, &anime.Entry, anime.CurrentEpisode)
}

func (a *Adapter) FindAnime(ctx context.Context, keywords string) ([]*entry.Anime, error) {
	found, err := a.search(ctx, kindAnime, keywords)
	if err != nil {
		return nil, err
	}

	animes := make([]*entry.Anime, 0, len(found))
	for _, r := range found {
		anime, err := decodeAnime(r)
		if err != nil {
			return nil, err
		}
		animes = append(animes, anime)
	}
	return animes, nil
}

func (a *Adapter) PullAnimeList(ctx context.Context) ([]*entry.Anime, error) {
	items, err := a.pull(ctx, kindAnime)
	if err != nil {
		return nil, err
	}

	animes := make([]*entry.Anime, 0, len(items))
	for i := range items {
		anime, err := decodeAnime(items[i].media)
		if err != nil {
			return nil, err
		}
		if err := items[i].attrs.user(&anime.Entry); err != nil {
			return nil, err
		}
		anime.CurrentEpisode = items[i].attrs.Progress
		animes = append(animes, anime)
	}
	return animes, nil
}
