package anilist

import (
	"context"

	"github.com/anisan-cli/anisync/entry"
)

func (a *Adapter) AddManga(ctx context.Context, id int, status entry.Status) error {
	return a.add(ctx, mediaManga, id, status)
}

func (a *Adapter) RemoveManga(ctx context.Context, id int) error {
	return a.remove(ctx, mediaManga, id)
}

func (a *Adapter) UpdateManga(ctx context.Context, manga *entry.Manga) (bool, error) {
	return a.save(ctx, mediaManga, &manga.Entry, map[string]any{
		"progress":        manga.CurrentChapter,
		"progressVolumes": manga.CurrentVolume,
	})
}

func (a *Adapter) FindManga(ctx context.Context, keywords string) ([]*entry.Manga, error) {
	found, err := a.search(ctx, mediaManga, keywords)
	if err != nil {
		return nil, err
	}

	mangas := make([]*entry.Manga, 0, len(found))
	for i := range found {
		manga, err := found[i].manga()
		if err != nil {
			return nil, err
		}
		mangas = append(mangas, manga)
	}
	return mangas, nil
}

func (a *Adapter) PullMangaList(ctx context.Context) ([]*entry.Manga, error) {
	items, err := a.pull(ctx, mediaManga)
	if err != nil {
		return nil, err
	}

	mangas := make([]*entry.Manga, 0, len(items))
	for i := range items {
		manga, err := items[i].Media.manga()
		if err != nil {
			return nil, err
		}
		if err := items[i].user(&manga.Entry); err != nil {
			return nil, err
		}
		manga.CurrentChapter = items[i].Progress
		manga.CurrentVolume = items[i].ProgressVolumes
		mangas = append(mangas, manga)
	}
	return mangas, nil
}
