// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Echodl is the canonical application identifier used for filesystem paths and CLI branding.
	Echodl = "echodl"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is the default HTTP User-Agent string presented to the lecture platform.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36"
)

// Build metadata, overridden with -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
