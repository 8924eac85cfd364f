package anilist

import (
	"context"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/provider"
	"github.com/pkg/errors"
)

// listEntryID looks up the id of the list entry holding media id, 0 when it is not listed.
func (a *Adapter) listEntryID(ctx context.Context, mediaType string, id int) (int, error) {
	var data struct {
		Media struct {
			ID             int `json:"id"`
			MediaListEntry *struct {
				ID int `json:"id"`
			} `json:"mediaListEntry"`
		} `json:"Media"`
	}

	if err := a.query(ctx, listEntryQuery(mediaType), map[string]any{"id": id}, &data); err != nil {
		return 0, err
	}
	if data.Media.MediaListEntry == nil {
		return 0, nil
	}
	return data.Media.MediaListEntry.ID, nil
}

func (a *Adapter) add(ctx context.Context, mediaType string, id int, status entry.Status) error {
	if !status.Listed() {
		return fault.New(fault.Validation, ID, "cannot add %d as %s", id, status)
	}

	entryID, err := a.listEntryID(ctx, mediaType, id)
	if err != nil {
		return err
	}
	if entryID != 0 {
		return fault.New(fault.Rejected, ID, "%d is already in the list", id)
	}

	native, err := statuses.Native(status)
	if err != nil {
		return err
	}

	a.log.WithField("id", id).WithField("status", native).Info("adding")
	return a.query(ctx, saveMutation, map[string]any{"mediaId": id, "status": native}, nil)
}

func (a *Adapter) remove(ctx context.Context, mediaType string, id int) error {
	entryID, err := a.listEntryID(ctx, mediaType, id)
	if errors.Is(err, errNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if entryID == 0 {
		return nil
	}

	return a.deleteEntry(ctx, id, entryID)
}

func (a *Adapter) deleteEntry(ctx context.Context, id, entryID int) error {
	a.log.WithField("id", id).Info("removing")
	return a.query(ctx, deleteMutation, map[string]any{"id": entryID}, nil)
}

// save pushes the user fields of e plus the media-specific progress variables.
func (a *Adapter) save(ctx context.Context, mediaType string, e *entry.Entry, progress map[string]any) (bool, error) {
	entryID, err := a.listEntryID(ctx, mediaType, e.ID())
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if entryID == 0 {
		return false, nil
	}

	if e.Status == entry.NotInList {
		return true, a.deleteEntry(ctx, e.ID(), entryID)
	}

	native, err := statuses.Native(e.Status)
	if err != nil {
		return false, err
	}

	variables := map[string]any{
		"mediaId":     e.ID(),
		"status":      native,
		"scoreRaw":    e.UserScore() * 10,
		"notes":       e.Notes,
		"startedAt":   fuzzyInput(e.Start),
		"completedAt": fuzzyInput(e.End),
	}
	for name, value := range progress {
		variables[name] = value
	}

	a.log.WithField("id", e.ID()).WithField("status", native).Info("updating")
	if err := a.query(ctx, saveMutation, variables, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (a *Adapter) pull(ctx context.Context, mediaType string) ([]listItem, error) {
	if _, err := a.token(ctx); err != nil {
		return nil, err
	}
	userID, _ := a.session.User()

	return provider.Paginate(ctx, 0, func(ctx context.Context, page int) ([]listItem, bool, error) {
		var data struct {
			Page struct {
				PageInfo struct {
					HasNextPage bool `json:"hasNextPage"`
				} `json:"pageInfo"`
				MediaList []listItem `json:"mediaList"`
			} `json:"Page"`
		}

		err := a.query(ctx, listQuery(mediaType), map[string]any{
			"userId":  userID,
			"page":    page,
			"perPage": perPage,
		}, &data)

		return data.Page.MediaList, data.Page.PageInfo.HasNextPage, err
	})
}

// search does not need a session.
func (a *Adapter) search(ctx context.Context, mediaType, keywords string) ([]media, error) {
	return provider.Paginate(ctx, provider.FindPageCap, func(ctx context.Context, page int) ([]media, bool, error) {
		var data struct {
			Page struct {
				PageInfo struct {
					HasNextPage bool `json:"hasNextPage"`
				} `json:"pageInfo"`
				Media []media `json:"media"`
			} `json:"Page"`
		}

		err := a.do(ctx, "", searchQuery(mediaType), map[string]any{
			"search":  keywords,
			"page":    page,
			"perPage": perPage,
		}, &data)

		return data.Page.Media, data.Page.PageInfo.HasNextPage, err
	})
}
