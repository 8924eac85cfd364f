// Package anilist adapts the AniList GraphQL API and its OAuth2 authorization-code flow
// to the provider contracts.
package anilist

import (
	"context"
	"net/http"
	"sync"

	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/log"
	"github.com/anisan-cli/anisync/network"
	"github.com/anisan-cli/anisync/provider"
	"github.com/sirupsen/logrus"
)

const (
	ID   = "anilist"
	Name = "AniList"
)

const (
	graphqlURL   = "https://graphql.anilist.co"
	tokenURL     = "https://anilist.co/api/v2/oauth/token"
	authorizeURL = "https://anilist.co/api/v2/oauth/authorize"

	perPage = 50

	// requestsPerMinute is the documented AniList budget.
	requestsPerMinute = 90
)

// Config is the OAuth2 client registration used for the code exchange.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Adapter talks to AniList on behalf of one account.
type Adapter struct {
	config  Config
	account provider.Account
	store   auth.Store
	reauth  auth.Reauthorizer
	client  *http.Client
	log     *logrus.Entry

	mu      sync.Mutex
	session auth.Session

	endpoint      string
	tokenEndpoint string
}

var _ provider.ListProvider = (*Adapter)(nil)

// New returns an adapter. No request is made until the first privileged call.
func New(config Config, opts provider.Options) (*Adapter, error) {
	if opts.Account.Username == "" {
		return nil, fault.New(fault.Validation, ID, "username is not set")
	}
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, fault.New(fault.Validation, ID, "client credentials are not configured")
	}
	if opts.Store == nil {
		return nil, fault.New(fault.Validation, ID, "credential store is required")
	}

	client := opts.Client
	if client == nil {
		client = network.NewClient(network.PerMinute(requestsPerMinute), 5)
	}

	account := opts.Account
	account.Provider = ID

	return &Adapter{
		config:        config,
		account:       account,
		store:         opts.Store,
		reauth:        opts.Reauthorizer(),
		client:        client,
		log:           log.WithProvider(ID),
		endpoint:      graphqlURL,
		tokenEndpoint: tokenURL,
	}, nil
}

func (a *Adapter) ID() string { return ID }

func (a *Adapter) Name() string { return Name }

func (a *Adapter) Account() provider.Account { return a.account }

// VerifyCredentials runs the handshake if needed and reports whether the session is usable.
func (a *Adapter) VerifyCredentials(ctx context.Context) (bool, error) {
	if _, err := a.token(ctx); err != nil {
		return false, err
	}
	return true, nil
}
