package kitsu

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/provider"
	"github.com/pkg/errors"
)

// libraryItem is a library entry joined with its included media resource.
type libraryItem struct {
	attrs entryAttributes
	media resource
}

func (a *Adapter) userID() int {
	id, _ := a.session.User()
	return id
}

// libraryEntryID finds the library entry holding media id, 0 when it is not listed.
func (a *Adapter) libraryEntryID(ctx context.Context, kind string, id int) (int, error) {
	if _, err := a.token(ctx); err != nil {
		return 0, err
	}

	query := url.Values{}
	query.Set("filter[userId]", strconv.Itoa(a.userID()))
	query.Set("filter[kind]", kind)
	query.Set("filter["+kind+"Id]", strconv.Itoa(id))

	var doc document
	if err := a.call(ctx, http.MethodGet, "/library-entries", query, nil, &doc); err != nil {
		return 0, err
	}

	entries, err := doc.resources()
	if err != nil || len(entries) == 0 {
		return 0, err
	}
	return resourceID(entries[0])
}

func (a *Adapter) add(ctx context.Context, kind string, id int, status entry.Status) error {
	if !status.Listed() {
		return fault.New(fault.Validation, ID, "cannot add %d as %s", id, status)
	}

	entryID, err := a.libraryEntryID(ctx, kind, id)
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

	attributes, err := jsonObject(map[string]any{"status": native})
	if err != nil {
		return err
	}
	body := payload{Data: resource{
		Type:       "libraryEntries",
		Attributes: attributes,
		Relationships: map[string]relationship{
			"user": {Data: &link{Type: "users", ID: strconv.Itoa(a.userID())}},
			kind:   {Data: &link{Type: kind, ID: strconv.Itoa(id)}},
		},
	}}

	a.log.WithField("id", id).WithField("status", native).Info("adding")
	return a.call(ctx, http.MethodPost, "/library-entries", nil, body, nil)
}

func (a *Adapter) remove(ctx context.Context, kind string, id int) error {
	entryID, err := a.libraryEntryID(ctx, kind, id)
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
	err := a.call(ctx, http.MethodDelete, "/library-entries/"+strconv.Itoa(entryID), nil, nil, nil)
	if errors.Is(err, errNotFound) {
		return nil
	}
	return err
}

// save patches the library entry of e with every user field plus progress.
func (a *Adapter) save(ctx context.Context, kind string, e *entry.Entry, progress int) (bool, error) {
	entryID, err := a.libraryEntryID(ctx, kind, e.ID())
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

	attributes, err := jsonObject(map[string]any{
		"status":       native,
		"progress":     progress,
		"ratingTwenty": ratingTwenty(e.UserScore()),
		"notes":        e.Notes,
		"startedAt":    dateValue(e.Start),
		"finishedAt":   dateValue(e.End),
	})
	if err != nil {
		return false, err
	}

	body := payload{Data: resource{
		ID:         strconv.Itoa(entryID),
		Type:       "libraryEntries",
		Attributes: attributes,
	}}

	a.log.WithField("id", e.ID()).WithField("status", native).Info("updating")
	if err := a.call(ctx, http.MethodPatch, "/library-entries/"+strconv.Itoa(entryID), nil, body, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (a *Adapter) pull(ctx context.Context, kind string) ([]libraryItem, error) {
	if _, err := a.token(ctx); err != nil {
		return nil, err
	}
	userID := strconv.Itoa(a.userID())

	return provider.Paginate(ctx, 0, func(ctx context.Context, page int) ([]libraryItem, bool, error) {
		query := url.Values{}
		query.Set("filter[userId]", userID)
		query.Set("filter[kind]", kind)
		query.Set("include", kind)
		query.Set("page[limit]", strconv.Itoa(pageLimit))
		query.Set("page[offset]", strconv.Itoa((page-1)*pageLimit))

		var doc document
		if err := a.call(ctx, http.MethodGet, "/library-entries", query, nil, &doc); err != nil {
			return nil, false, err
		}

		entries, err := doc.resources()
		if err != nil {
			return nil, false, err
		}

		items := make([]libraryItem, 0, len(entries))
		for _, r := range entries {
			var item libraryItem
			if err := decodeAttributes(r, &item.attrs); err != nil {
				return nil, false, err
			}

			media, ok := doc.included(r.Relationships[kind])
			if !ok {
				return nil, false, fault.New(fault.Protocol, ID, "library entry %s has no included %s", r.ID, kind)
			}
			item.media = media
			items = append(items, item)
		}

		return items, doc.Links.Next != "", nil
	})
}

// search does not need a session.
func (a *Adapter) search(ctx context.Context, kind, keywords string) ([]resource, error) {
	return provider.Paginate(ctx, provider.FindPageCap, func(ctx context.Context, page int) ([]resource, bool, error) {
		query := url.Values{}
		query.Set("filter[text]", keywords)
		query.Set("page[limit]", strconv.Itoa(pageLimit))
		query.Set("page[offset]", strconv.Itoa((page-1)*pageLimit))

		var doc document
		if err := a.do(ctx, "", http.MethodGet, "/"+kind, query, nil, &doc); err != nil {
			return nil, false, err
		}

		found, err := doc.resources()
		return found, doc.Links.Next != "", err
	})
}
