package mal

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

// UpdateAnime marks every episode watched when the anime is completed and its length is known.
func (a *Adapter) UpdateAnime(ctx context.Context, anime *entry.Anime) (bool, error) {
	episode := anime.CurrentEpisode
	if anime.Status == entry.Completed && anime.Episodes > 0 {
		episode = anime.Episodes
	}
	return a.update(ctx, kindAnime, &anime.Entry, listEntry{Episode: &episode})
}

func (a *Adapter) FindAnime(ctx context.Context, keywords string) ([]*entry.Anime, error) {
	found, err := a.search(ctx, kindAnime, keywords)
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

// PullAnimeList leaves the catalog fields the export lacks empty.
func (a *Adapter) PullAnimeList(ctx context.Context) ([]*entry.Anime, error) {
	list, err := a.pull(ctx, kindAnime)
	if err != nil {
		return nil, err
	}

	animes := make([]*entry.Anime, 0, len(list.Anime))
	for i := range list.Anime {
		anime, err := list.Anime[i].anime()
		if err != nil {
			return nil, err
		}
		animes = append(animes, anime)
	}
	return animes, nil
}
