package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/network"
	"github.com/pkg/errors"
)

// errNotFound marks a GraphQL 404, which AniList returns for unknown media ids.
var errNotFound = errors.New("not found")

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	} `json:"errors"`
}

// query runs a privileged operation.
func (a *Adapter) query(ctx context.Context, query string, variables map[string]any, out any) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	err = a.do(ctx, token, query, variables, out)
	if fault.Is(err, fault.Auth) {
		a.session.Expire()
	}
	return err
}

// do posts a GraphQL operation and decodes its data into out. An empty token sends no authorization.
func (a *Adapter) do(ctx context.Context, token, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fault.Wrap(fault.Validation, ID, err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return fault.Wrap(fault.Validation, ID, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	a.log.WithField("variables", variables).Debug("graphql request")

	resp, err := network.Do(a.client, ID, req)
	if err != nil {
		return err
	}

	raw, err := network.ReadAll(ID, resp)
	if err != nil {
		return err
	}

	var decoded response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fault.New(fault.Transport, ID, "graphql: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return fault.Wrap(fault.Protocol, ID, err, "decode response")
	}

	if len(decoded.Errors) > 0 {
		status := decoded.Errors[0].Status
		if status == 0 {
			status = resp.StatusCode
		}
		return classify(status, decoded.Errors[0].Message)
	}

	if resp.StatusCode != http.StatusOK {
		return fault.New(fault.Transport, ID, "graphql: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return fault.Wrap(fault.Protocol, ID, err, "decode data")
	}
	return nil
}

func classify(status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fault.New(fault.Auth, ID, "%s", message)
	case http.StatusNotFound:
		return fault.Wrap(fault.Rejected, ID, errNotFound, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fault.New(fault.Rejected, ID, "%s", message)
	default:
		return fault.New(fault.Transport, ID, "graphql: %d %s", status, message)
	}
}
