// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Provider Selection - the adapter bound to the lists when a command does not name one.
const (
	ProviderDefault = "provider.default"
)

// AniList - OAuth2 client registration and the account the lists belong to.
const (
	AnilistUsername     = "anilist.username"
	AnilistClientID     = "anilist.client_id"
	AnilistClientSecret = "anilist.client_secret"
	AnilistRedirectURI  = "anilist.redirect_uri"
)

// Kitsu - password grant client registration and account.
const (
	KitsuUsername     = "kitsu.username"
	KitsuClientID     = "kitsu.client_id"
	KitsuClientSecret = "kitsu.client_secret"
)

// MyAnimeList - account used for Basic authentication.
const (
	MalUsername = "mal.username"
)

// Synchronization.
const (
	SyncInterval = "sync.interval"
)

// Networking.
const (
	NetworkTimeout = "network.timeout"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-interactive application behavior.
const (
	CliColored = "cli.colored"
)
