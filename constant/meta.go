// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Anisync is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Anisync = "anisync"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to a list provider.
	UserAgent = Anisync + "/" + Version + " (+https://github.com/anisan-cli/anisync)"
)

// Build metadata, set with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
