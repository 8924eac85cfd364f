// Package mal adapts MyAnimeList to the provider contracts. The full list comes from the legacy
// bulk export, search and single-item changes go through the XML REST API, both with Basic auth.
package mal

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/log"
	"github.com/anisan-cli/anisync/network"
	"github.com/anisan-cli/anisync/provider"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	ID   = "mal"
	Name = "MyAnimeList"
)

const (
	apiURL    = "https://myanimelist.net/api"
	legacyURL = "https://myanimelist.net/malappinfo.php"

	requestsPerSecond = 1
)

// Adapter talks to MyAnimeList on behalf of one account.
type Adapter struct {
	account provider.Account
	store   auth.Store
	client  *http.Client
	log     *logrus.Entry

	mu sync.Mutex
	// session holds the verified password; Basic credentials never expire.
	session auth.Session

	apiURL    string
	legacyURL string
}

var _ provider.ListProvider = (*Adapter)(nil)

// New returns an adapter. Credentials are verified on the first privileged call.
func New(opts provider.Options) (*Adapter, error) {
	if opts.Account.Username == "" {
		return nil, fault.New(fault.Validation, ID, "username is not set")
	}
	if opts.Store == nil {
		return nil, fault.New(fault.Validation, ID, "credential store is required")
	}

	client := opts.Client
	if client == nil {
		client = network.NewClient(requestsPerSecond, 1)
	}

	account := opts.Account
	account.Provider = ID

	return &Adapter{
		account:   account,
		store:     opts.Store,
		client:    client,
		log:       log.WithProvider(ID),
		apiURL:    apiURL,
		legacyURL: legacyURL,
	}, nil
}

func (a *Adapter) ID() string { return ID }

func (a *Adapter) Name() string { return Name }

func (a *Adapter) Account() provider.Account { return a.account }

// VerifyCredentials checks the stored password against the API.
func (a *Adapter) VerifyCredentials(ctx context.Context) (bool, error) {
	if _, err := a.password(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// password returns the verified password, verifying it on first use.
func (a *Adapter) password(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if password, ok := a.session.Token(); ok {
		return password, nil
	}

	password, err := a.store.Secret(auth.Key(ID, a.account.Username))
	if errors.Is(err, auth.ErrNoSecret) {
		return "", fault.New(fault.Auth, ID, "no password stored for %s", a.account.Username)
	}
	if err != nil {
		return "", fault.Wrap(fault.Auth, ID, err, "read credentials")
	}

	a.session.Begin()

	status, body, err := a.send(ctx, password, http.MethodGet, a.apiURL+"/account/verify_credentials.xml", nil)
	if err != nil {
		a.session.Reset()
		return "", err
	}
	if status != http.StatusOK {
		a.session.Reset()
		return "", fault.New(fault.Transport, ID, "verify credentials: %d", status)
	}

	var user verifiedUser
	if err := decodeXML(body, &user); err != nil {
		a.session.Reset()
		return "", err
	}

	a.session.Authenticate(password, time.Time{})
	a.session.Identify(user.ID, user.Username)
	a.log.WithField("user", user.Username).Info("authenticated")

	return password, nil
}

// call sends an authenticated request.
func (a *Adapter) call(ctx context.Context, method, target string, form url.Values) (int, []byte, error) {
	password, err := a.password(ctx)
	if err != nil {
		return 0, nil, err
	}

	status, body, err := a.send(ctx, password, method, target, form)
	if fault.Is(err, fault.Auth) {
		a.session.Reset()
	}
	return status, body, err
}

// send returns the status and body of any response that is not an auth failure.
// An empty password sends no credentials.
func (a *Adapter) send(ctx context.Context, password, method, target string, form url.Values) (int, []byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, fault.Wrap(fault.Validation, ID, err, "build request")
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if password != "" {
		req.SetBasicAuth(a.account.Username, password)
	}

	a.log.WithField("method", method).WithField("url", req.URL.Path).Debug("request")

	resp, err := network.Do(a.client, ID, req)
	if err != nil {
		return 0, nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		return resp.StatusCode, nil, fault.New(fault.Auth, ID, "credentials were refused")
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return 0, nil, network.Check(ID, resp)
	}

	raw, err := network.ReadAll(ID, resp)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}
