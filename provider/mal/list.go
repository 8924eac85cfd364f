package mal

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/anisan-cli/anisync/entry"
	"github.com/anisan-cli/anisync/fault"
)

func (a *Adapter) listURL(kind, action string, id int) string {
	return a.apiURL + "/" + kind + "list/" + action + "/" + strconv.Itoa(id) + ".xml"
}

func (a *Adapter) post(ctx context.Context, kind, action string, id int, data listEntry) (int, string, error) {
	document, err := encodeXML(data)
	if err != nil {
		return 0, "", err
	}

	form := url.Values{}
	form.Set("data", document)

	status, body, err := a.call(ctx, http.MethodPost, a.listURL(kind, action, id), form)
	return status, strings.TrimSpace(string(body)), err
}

func (a *Adapter) add(ctx context.Context, kind string, id int, status entry.Status) error {
	if !status.Listed() {
		return fault.New(fault.Validation, ID, "cannot add %d as %s", id, status)
	}

	native, err := statuses.Native(status)
	if err != nil {
		return err
	}

	a.log.WithField("id", id).WithField("status", native).Info("adding")

	code, body, err := a.post(ctx, kind, "add", id, listEntry{
		Status:     native,
		DateStart:  formatDate(entry.Unset),
		DateFinish: formatDate(entry.Unset),
	})
	if err != nil {
		return err
	}
	if code >= 300 {
		return fault.New(fault.Rejected, ID, "add %d: %s", id, body)
	}
	return nil
}

// remove treats a refused delete as the title being absent.
func (a *Adapter) remove(ctx context.Context, kind string, id int) error {
	a.log.WithField("id", id).Info("removing")

	status, body, err := a.call(ctx, http.MethodPost, a.listURL(kind, "delete", id), url.Values{})
	if err != nil {
		return err
	}
	if status >= 300 {
		a.log.WithField("id", id).WithField("response", body).Debug("nothing to remove")
	}
	return nil
}

// update pushes data. It reports false when the title is not on the list.
func (a *Adapter) update(ctx context.Context, kind string, e *entry.Entry, data listEntry) (bool, error) {
	if e.Status == entry.NotInList {
		return true, a.remove(ctx, kind, e.ID())
	}

	native, err := statuses.Native(e.Status)
	if err != nil {
		return false, err
	}

	data.Status = native
	data.Score = e.UserScore()
	data.DateStart = formatDate(e.Start)
	data.DateFinish = formatDate(e.End)
	data.Tags = e.Notes

	a.log.WithField("id", e.ID()).WithField("status", native).Info("updating")

	code, body, err := a.post(ctx, kind, "update", e.ID(), data)
	if err != nil {
		return false, err
	}
	if code >= 300 {
		if notListed(body) {
			return false, nil
		}
		return false, fault.New(fault.Rejected, ID, "update %d: %s", e.ID(), body)
	}
	return true, nil
}

func notListed(body string) bool {
	body = strings.ToLower(body)
	return strings.Contains(body, "not on your list") || strings.Contains(body, "not in your list")
}

// pull reads the legacy export. It has no paging: the whole list comes in one response.
func (a *Adapter) pull(ctx context.Context, kind string) (*export, error) {
	if _, err := a.password(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("u", a.account.Username)
	query.Set("status", "all")
	query.Set("type", kind)

	status, body, err := a.send(ctx, "", http.MethodGet, a.legacyURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fault.New(fault.Transport, ID, "list export: %d", status)
	}

	var list export
	if err := decodeXML(body, &list); err != nil {
		return nil, err
	}
	if list.Error != "" {
		return nil, fault.New(fault.Auth, ID, "list export: %s", list.Error)
	}
	return &list, nil
}

// search issues one request; the endpoint takes no page parameter. 204 means no match.
func (a *Adapter) search(ctx context.Context, kind, keywords string) ([]result, error) {
	query := url.Values{}
	query.Set("q", keywords)
	target := a.apiURL + "/" + kind + "/search.xml?" + query.Encode()

	status, body, err := a.call(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fault.New(fault.Transport, ID, "search: %d", status)
	}

	var found results
	if err := decodeXML(body, &found); err != nil {
		return nil, err
	}
	return found.Entries, nil
}
