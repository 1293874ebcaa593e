// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Poolsuite is the canonical application identifier used for filesystem paths and CLI branding.
	Poolsuite = "poolsuite"

	// Version is the current application semantic version string.
	Version = "2.0.0"

	// UserAgent is the HTTP User-Agent string sent to the catalogue API.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, injected with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
