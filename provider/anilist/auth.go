package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/network"
	"github.com/pkg/errors"
)

// tokenRecord replaces the single-use authorization code in the credential store after the exchange.
type tokenRecord struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      int       `json:"user_id"`
	Username    string    `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

const viewerQuery = `
query {
	Viewer {
		id
		name
	}
}`

// AuthorizeURL is the page where the user grants access and receives an authorization code.
func (a *Adapter) AuthorizeURL() string {
	query := url.Values{}
	query.Set("client_id", a.config.ClientID)
	query.Set("redirect_uri", a.config.RedirectURI)
	query.Set("response_type", "code")
	return authorizeURL + "?" + query.Encode()
}

func (a *Adapter) secretKey() string {
	return auth.Key(ID, a.account.Username)
}

// token returns a usable access token. A missing token is restored from the credential store,
// an expired one is renewed through the reauthorizer, which may block until a human answers.
func (a *Adapter) token(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session.State() == auth.NoToken {
		if err := a.restore(ctx); err != nil {
			return "", err
		}
	}

	if token, ok := a.session.Token(); ok {
		return token, nil
	}

	return a.reauthorize(ctx)
}

// restore loads the stored secret. A token record resumes the session, anything else is
// treated as an authorization code and exchanged.
func (a *Adapter) restore(ctx context.Context) error {
	secret, err := a.store.Secret(a.secretKey())
	if errors.Is(err, auth.ErrNoSecret) {
		return nil
	}
	if err != nil {
		return fault.Wrap(fault.Auth, ID, err, "read credentials")
	}

	var record tokenRecord
	if json.Unmarshal([]byte(secret), &record) != nil || record.Username == "" {
		return a.exchange(ctx, strings.TrimSpace(secret))
	}

	if err := a.checkAccount(record.Username); err != nil {
		return err
	}

	a.session.Authenticate(record.AccessToken, record.ExpiresAt)
	a.session.Identify(record.UserID, record.Username)
	a.log.WithField("state", a.session.State()).Info("session restored")
	return nil
}

func (a *Adapter) reauthorize(ctx context.Context) (string, error) {
	a.log.Info("access token expired, waiting for a new authorization code")

	code, err := a.reauth.Reauthorize(ctx, ID, a.AuthorizeURL())
	if err != nil {
		return "", err
	}

	if err := a.exchange(ctx, strings.TrimSpace(code)); err != nil {
		return "", err
	}

	token, _ := a.session.Token()
	return token, nil
}

// exchange trades an authorization code for an access token, resolves the viewer and
// persists the resulting token record.
func (a *Adapter) exchange(ctx context.Context, code string) error {
	a.session.Begin()

	tokens, err := a.requestToken(ctx, code)
	if err != nil {
		a.session.Reset()
		return err
	}

	expiry := a.session.AuthenticateFor(tokens.AccessToken, time.Duration(tokens.ExpiresIn)*time.Second)

	var data struct {
		Viewer struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"Viewer"`
	}
	if err := a.do(ctx, tokens.AccessToken, viewerQuery, nil, &data); err != nil {
		a.session.Reset()
		return err
	}

	if err := a.checkAccount(data.Viewer.Name); err != nil {
		return err
	}

	a.session.Identify(data.Viewer.ID, data.Viewer.Name)
	a.log.WithField("user", data.Viewer.Name).Info("authenticated")

	record, err := json.Marshal(tokenRecord{
		AccessToken: tokens.AccessToken,
		ExpiresAt:   expiry,
		UserID:      data.Viewer.ID,
		Username:    data.Viewer.Name,
	})
	if err == nil {
		err = a.store.SetSecret(a.secretKey(), string(record))
	}
	if err != nil {
		a.log.WithError(err).Warn("token record not saved")
	}

	return nil
}

// checkAccount rejects a token that belongs to another user and clears the stored secret.
func (a *Adapter) checkAccount(username string) error {
	if strings.EqualFold(username, a.account.Username) {
		return nil
	}

	a.session.Reset()
	if err := a.store.DeleteSecret(a.secretKey()); err != nil {
		a.log.WithError(err).Warn("stale credentials not deleted")
	}

	return fault.New(fault.Auth, ID, "token belongs to %q, expected %q", username, a.account.Username)
}

func (a *Adapter) requestToken(ctx context.Context, code string) (*tokenResponse, error) {
	if code == "" {
		return nil, fault.New(fault.Auth, ID, "authorization code is empty")
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":    "authorization_code",
		"client_id":     a.config.ClientID,
		"client_secret": a.config.ClientSecret,
		"redirect_uri":  a.config.RedirectURI,
		"code":          code,
	})
	if err != nil {
		return nil, fault.Wrap(fault.Validation, ID, err, "encode token request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fault.Wrap(fault.Validation, ID, err, "build token request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := network.Do(a.client, ID, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, fault.New(fault.Auth, ID, "authorization code was refused")
	}
	if err := network.Check(ID, resp); err != nil {
		return nil, err
	}

	raw, err := network.ReadAll(ID, resp)
	if err != nil {
		return nil, err
	}

	var tokens tokenResponse
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, fault.Wrap(fault.Protocol, ID, err, "decode token response")
	}
	if tokens.AccessToken == "" {
		return nil, fault.New(fault.Protocol, ID, "token response has no access token")
	}

	return &tokens, nil
}
