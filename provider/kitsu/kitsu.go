// Package kitsu adapts the Kitsu JSON:API and its OAuth2 password grant to the provider contracts.
package kitsu

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
	ID   = "kitsu"
	Name = "Kitsu"
)

const (
	apiURL   = "https://kitsu.io/api/edge"
	tokenURL = "https://kitsu.io/api/oauth/token"

	mediaType = "application/vnd.api+json"

	// pageLimit is the largest page Kitsu serves for every resource used here.
	pageLimit = 20

	requestsPerSecond = 10
)

// Config is the OAuth2 client registration used for the password grant.
type Config struct {
	ClientID     string
	ClientSecret string
}

// Adapter talks to Kitsu on behalf of one account.
type Adapter struct {
	config  Config
	account provider.Account
	store   auth.Store
	client  *http.Client
	log     *logrus.Entry

	mu      sync.Mutex
	session auth.Session

	apiURL   string
	tokenURL string
}

var _ provider.ListProvider = (*Adapter)(nil)

// New returns an adapter. The password grant runs on the first privileged call.
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
		client = network.NewClient(requestsPerSecond, requestsPerSecond)
	}

	account := opts.Account
	account.Provider = ID

	return &Adapter{
		config:   config,
		account:  account,
		store:    opts.Store,
		client:   client,
		log:      log.WithProvider(ID),
		apiURL:   apiURL,
		tokenURL: tokenURL,
	}, nil
}

func (a *Adapter) ID() string { return ID }

func (a *Adapter) Name() string { return Name }

func (a *Adapter) Account() provider.Account { return a.account }

// VerifyCredentials runs the password grant and the user id lookup.
func (a *Adapter) VerifyCredentials(ctx context.Context) (bool, error) {
	if _, err := a.token(ctx); err != nil {
		return false, err
	}
	return true, nil
}
