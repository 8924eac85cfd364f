package kitsu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/network"
	"github.com/pkg/errors"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token returns a bearer token, granting a new one with the stored password when there is none
// or it has expired. The user id is resolved once per session.
func (a *Adapter) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if token, ok := a.session.Token(); ok {
		return token, nil
	}

	if err := a.grant(ctx); err != nil {
		a.session.Reset()
		return "", err
	}

	token, _ := a.session.Token()
	if id, _ := a.session.User(); id != 0 {
		return token, nil
	}

	id, err := a.lookupUser(ctx, token)
	if err != nil {
		a.session.Reset()
		return "", err
	}
	a.session.Identify(id, a.account.Username)
	a.log.WithField("user", id).Info("authenticated")

	return token, nil
}

func (a *Adapter) grant(ctx context.Context) error {
	password, err := a.store.Secret(auth.Key(ID, a.account.Username))
	if errors.Is(err, auth.ErrNoSecret) {
		return fault.New(fault.Auth, ID, "no password stored for %s", a.account.Username)
	}
	if err != nil {
		return fault.Wrap(fault.Auth, ID, err, "read credentials")
	}

	a.session.Begin()

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", a.account.Username)
	form.Set("password", password)
	form.Set("client_id", a.config.ClientID)
	form.Set("client_secret", a.config.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fault.Wrap(fault.Validation, ID, err, "build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := network.Do(a.client, ID, req)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return fault.New(fault.Auth, ID, "username or password was refused")
	}
	if err := network.Check(ID, resp); err != nil {
		return err
	}

	raw, err := network.ReadAll(ID, resp)
	if err != nil {
		return err
	}

	var tokens tokenResponse
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return fault.Wrap(fault.Protocol, ID, err, "decode token response")
	}
	if tokens.AccessToken == "" {
		return fault.New(fault.Protocol, ID, "token response has no access token")
	}

	a.session.AuthenticateFor(tokens.AccessToken, time.Duration(tokens.ExpiresIn)*time.Second)

	return nil
}

// lookupUser resolves the numeric id of the account.
func (a *Adapter) lookupUser(ctx context.Context, token string) (int, error) {
	query := url.Values{}
	query.Set("filter[name]", a.account.Username)

	var doc document
	if err := a.do(ctx, token, http.MethodGet, "/users", query, nil, &doc); err != nil {
		return 0, err
	}

	users, err := doc.resources()
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, fault.New(fault.Auth, ID, "user %q does not exist", a.account.Username)
	}

	id, err := strconv.Atoi(users[0].ID)
	if err != nil {
		return 0, fault.Wrap(fault.Protocol, ID, err, "user id")
	}
	return id, nil
}
