package kitsu

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/network"
	"github.com/pkg/errors"
)

// errNotFound marks a 404 from the API.
var errNotFound = errors.New("not found")

type link struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type relationship struct {
	Data *link `json:"data"`
}

type resource struct {
	ID            string                  `json:"id,omitempty"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes,omitempty"`
	Relationships map[string]relationship `json:"relationships,omitempty"`
}

// document is a JSON:API top-level document. Data is an object or an array.
type document struct {
	Data     json.RawMessage `json:"data"`
	Included []resource      `json:"included"`
	Links    struct {
		Next string `json:"next"`
	} `json:"links"`
}

func (d *document) resources() ([]resource, error) {
	var list []resource
	if len(d.Data) == 0 || string(d.Data) == "null" {
		return nil, nil
	}
	if err := json.Unmarshal(d.Data, &list); err != nil {
		return nil, fault.Wrap(fault.Protocol, ID, err, "decode resources")
	}
	return list, nil
}

// included finds the included resource a relationship points at.
func (d *document) included(rel relationship) (resource, bool) {
	if rel.Data == nil {
		return resource{}, false
	}
	for _, r := range d.Included {
		if r.ID == rel.Data.ID && r.Type == rel.Data.Type {
			return r, true
		}
	}
	return resource{}, false
}

type payload struct {
	Data resource `json:"data"`
}

// call runs an authenticated request and expires the session on 401.
func (a *Adapter) call(ctx context.Context, method, path string, query url.Values, body any, out *document) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	err = a.do(ctx, token, method, path, query, body, out)
	if fault.Is(err, fault.Auth) {
		a.session.Expire()
	}
	return err
}

// do sends a JSON:API request. An empty token sends no authorization.
func (a *Adapter) do(ctx context.Context, token, method, path string, query url.Values, body any, out *document) error {
	target := a.apiURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fault.Wrap(fault.Validation, ID, err, "encode request")
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fault.Wrap(fault.Validation, ID, err, "build request")
	}
	req.Header.Set("Accept", mediaType)
	if body != nil {
		req.Header.Set("Content-Type", mediaType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	a.log.WithField("method", method).WithField("path", path).Debug("request")

	resp, err := network.Do(a.client, ID, req)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return fault.Wrap(fault.Rejected, ID, errNotFound, method+" "+path)
	}
	if err := network.Check(ID, resp); err != nil {
		return err
	}

	raw, err := network.ReadAll(ID, resp)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fault.Wrap(fault.Protocol, ID, err, "decode document")
	}
	return nil
}

func jsonObject(fields map[string]any) (json.RawMessage, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fault.Wrap(fault.Validation, ID, err, "encode attributes")
	}
	return raw, nil
}
