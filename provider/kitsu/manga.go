package kitsu

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

// UpdateManga pushes chapter progress. Kitsu library entries carry no volume progress.
func (a *Adapter) UpdateManga(ctx context.Context, manga *entry.Manga) (bool, error) {
	return a.save(ctx, kindManga, &manga.Entry, manga.CurrentChapter)
}

func (a *Adapter) FindManga(ctx context.Context, keywords string) ([]*entry.Manga, error) {
	found, err := a.search(ctx, kindManga, keywords)
	if err != nil {
		return nil, err
	}

	mangas := make([]*entry.Manga, 0, len(found))
	for _, r := range found {
		manga, err := decodeManga(r)
		if err != nil {
			return nil, err
		}
		mangas = append(mangas, manga)
	}
	return mangas, nil
}

func (a *Adapter) PullMangaList(ctx context.Context) ([]*entry.Manga, error) {
	items, err := a.pull(ctx, kindManga)
	if err != nil {
		return nil, err
	}

	mangas := make([]*entry.Manga, 0, len(items))
	for i := range items {
		manga, err := decodeManga(items[i].media)
		if err != nil {
			return nil, err
		}
		if err := items[i].attrs.user(&manga.Entry); err != nil {
			return nil, err
		}
		manga.CurrentChapter = items[i].attrs.Progress
		mangas = append(mangas, manga)
	}
	return mangas, nil
}
