package mal

import (
	"context"

	"github.com/anisan-cli/anisync/entry"
)

func (a *Adapter) AddManga(ctx context.Context, id int, status entry.Status) error {
	return a.add(ctx, kindManga, id, status)
}

func (a *Adapter) RemoveManga(ctx context.Context, id int) error {
	return a.remove(ctx, kindManga, id)
}

func (a *Adapter) UpdateManga(ctx context.Context, manga *entry.Manga) (bool, error) {
	chapter, volume := manga.CurrentChapter, manga.CurrentVolume
	if manga.Status == entry.Completed {
		if manga.Chapters > 0 {
			chapter = manga.Chapters
		}
		if manga.Volumes > 0 {
			volume = manga.Volumes
		}
	}
	return a.update(ctx, kindManga, &manga.Entry, listEntry{Chapter: &chapter, Volume: &volume})
}

func (a *Adapter) FindManga(ctx context.Context, keywords string) ([]*entry.Manga, error) {
	found, err := a.search(ctx, kindManga, keywords)
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
	list, err := a.pull(ctx, kindManga)
	if err != nil {
		return nil, err
	}

	mangas := make([]*entry.Manga, 0, len(list.Manga))
	for i := range list.Manga {
		manga, err := list.Manga[i].manga()
		if err != nil {
			return nil, err
		}
		mangas = append(mangas, manga)
	}
	return mangas, nil
}
