package anilist

import (
	"context"

	"github.com/anisan-cli/anisync/entry"
)

func (a *Adapter) AddAnime(ctx context.Context, id int, status entry.Status) error {
	return a.add(ctx, mediaAnime, id, status)
}

func (a *Adapter) RemoveAnime(ctx context.Context, id int) error {
	return a.remove(ctx, mediaAnime, id)
}

func (a *Adapter) UpdateAnime(ctx context.Context, anime *entry.Anime) (bool, error) {
	return a.save(ctx, mediaAnime, &anime.Entry, map[string]any{
		"progress": anime.CurrentEpisode,
	})
}

func (a *Adapter) FindAnime(ctx context.Context, keywords string) ([]*entry.Anime, error) {
	found, err := a.search(ctx, mediaAnime, keywords)
	if err != nil {
		return nil, err
	}

	animes := make([]*entry.Anime, 0, len(found))
	for i := range found {
		anime, err := found[i].anime()
		if err != nil {
			return nil, err
		}
		animes = append(animes, anime)
	}
	return animes, nil
}

func (a *Adapter) PullAnimeList(ctx context.Context) ([]*entry.Anime, error) {
	items, err := a.pull(ctx, mediaAnime)
	if err != nil {
		return nil, err
	}

	animes := make([]*entry.Anime, 0, len(items))
	for i := range items {
		anime, err := items[i].Media.anime()
		if err != nil {
			return nil, err
		}
		if err := items[i].user(&anime.Entry); err != nil {
			return nil, err
		}
		anime.CurrentEpisode = items[i].Progress
		animes = append(animes, anime)
	}
	return animes, nil
}
