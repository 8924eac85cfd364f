// Package provider defines the capability contracts every remote list service adapter implements.
package provider

import (
	"context"
	"net/http"

	"github.com/anisan-cli/anisync/auth"
	"github.com/anisan-cli/anisync/entry"
)

// Account names the remote account a list is bound to.
type Account struct {
	Provider string
	Username string
}

func (a Account) String() string {
	return a.Username + "@" + a.Provider
}

// Options carries the collaborators an adapter is constructed with.
type Options struct {
	Account Account
	// Store holds the password, authorization code or token record of the account.
	Store auth.Store
	// Reauth is asked for a new secret when a token expires and cannot be refreshed silently.
	// Nil declines every request.
	Reauth auth.Reauthorizer
	// Client overrides the adapter's rate-limited client.
	Client *http.Client
}

// Reauthorizer returns the configured reauthorizer or one that always declines.
func (o Options) Reauthorizer() auth.Reauthorizer {
	if o.Reauth == nil {
		return auth.Decline
	}
	return o.Reauth
}

// Provider is the part of the contract that does not depend on media kind.
type Provider interface {
	// ID is the tag stamped on every entry the adapter returns.
	ID() string
	// Name is a human-readable name.
	Name() string
	Account() Account
	// VerifyCredentials establishes or validates a session.
	// It may perform the full handshake as a side effect.
	VerifyCredentials(ctx context.Context) (bool, error)
}

// AnimeProvider manages the anime list of an account.
type AnimeProvider interface {
	Provider

	// AddAnime puts the title on the list with status. A title that is already listed fails with fault.Rejected.
	AddAnime(ctx context.Context, id int, status entry.Status) error
	// RemoveAnime takes the title off the list. Removing an absent title succeeds.
	RemoveAnime(ctx context.Context, id int) error
	// UpdateAnime pushes every user field of anime.
	// It reports false when the title has no remote counterpart.
	UpdateAnime(ctx context.Context, anime *entry.Anime) (bool, error)
	// FindAnime searches the catalog. Results carry no user fields.
	FindAnime(ctx context.Context, keywords string) ([]*entry.Anime, error)
	// PullAnimeList fetches the whole list with user fields populated.
	PullAnimeList(ctx context.Context) ([]*entry.Anime, error)
}

// MangaProvider manages the manga list of an account.
type MangaProvider interface {
	Provider

	AddManga(ctx context.Context, id int, status entry.Status) error
	RemoveManga(ctx context.Context, id int) error
	UpdateManga(ctx context.Context, manga *entry.Manga) (bool, error)
	FindManga(ctx context.Context, keywords string) ([]*entry.Manga, error)
	PullMangaList(ctx context.Context) ([]*entry.Manga, error)
}

// ListProvider serves both media kinds.
type ListProvider interface {
	AnimeProvider
	MangaProvider
}
