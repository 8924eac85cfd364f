// Package integration is the registry of the built-in provider adapters.
// It is the only place that turns configuration into adapter settings.
package integration

import (
	"strings"

	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/fault"
	"github.com/anisan-cli/anisync/key"
	"github.com/anisan-cli/anisync/provider"
	"github.com/anisan-cli/anisync/provider/anilist"
	"github.com/anisan-cli/anisync/provider/kitsu"
	"github.com/anisan-cli/anisync/provider/mal"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Integration describes a built-in adapter.
type Integration struct {
	ID   string
	Name string
	// UsernameKey is the config key holding the account the lists belong to.
	UsernameKey string
	// Secret names what the credential store keeps for the account.
	Secret string

	create func(provider.Options) (provider.ListProvider, error)
}

var builtins = []*Integration{
	{
		ID:          anilist.ID,
		Name:        anilist.Name,
		UsernameKey: key.AnilistUsername,
		Secret:      "authorization code",
		create: func(opts provider.Options) (provider.ListProvider, error) {
			return anilist.New(anilist.Config{
				ClientID:     viper.GetString(key.AnilistClientID),
				ClientSecret: viper.GetString(key.AnilistClientSecret),
				RedirectURI:  viper.GetString(key.AnilistRedirectURI),
			}, opts)
		},
	},
	{
		ID:          kitsu.ID,
		Name:        kitsu.Name,
		UsernameKey: key.KitsuUsername,
		Secret:      "password",
		create: func(opts provider.Options) (provider.ListProvider, error) {
			return kitsu.New(kitsu.Config{
				ClientID:     viper.GetString(key.KitsuClientID),
				ClientSecret: viper.GetString(key.KitsuClientSecret),
			}, opts)
		},
	},
	{
		ID:          mal.ID,
		Name:        mal.Name,
		UsernameKey: key.MalUsername,
		Secret:      "password",
		create: func(opts provider.Options) (provider.ListProvider, error) {
			return mal.New(opts)
		},
	},
}

// Builtins returns every built-in adapter.
func Builtins() []*Integration {
	return builtins
}

// IDs returns the ids of the built-in adapters.
func IDs() []string {
	return lo.Map(builtins, func(i *Integration, _ int) string { return i.ID })
}

// Get finds the adapter with id, case-insensitively.
func Get(id string) (*Integration, error) {
	found, ok := lo.Find(builtins, func(i *Integration) bool {
		return strings.EqualFold(i.ID, strings.TrimSpace(id))
	})
	if !ok {
		return nil, fault.New(fault.Validation, "", "unknown provider %q, available: %s", id, strings.Join(IDs(), ", "))
	}
	return found, nil
}

// Default returns the adapter named by the provider.default setting.
func Default() (*Integration, error) {
	return Get(viper.GetString(key.ProviderDefault))
}

// Username returns the configured account name.
func (i *Integration) Username() string {
	return viper.GetString(i.UsernameKey)
}

// Account returns the configured account.
func (i *Integration) Account() provider.Account {
	return provider.Account{Provider: i.ID, Username: i.Username()}
}

// Create builds the adapter. A missing account is taken from the configuration
// and a missing store defaults to the system keyring.
func (i *Integration) Create(opts provider.Options) (provider.ListProvider, error) {
	if opts.Account.Username == "" {
		opts.Account = i.Account()
	}
	opts.Account.Provider = i.ID

	if opts.Store == nil {
		opts.Store = auth.Keyring{}
	}

	return i.create(opts)
}
