// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Storage Layout - these keys locate the harvested catalog, transcripts and videos.
const (
	PathsData = "paths.data"
)

// Lecture Platform - these keys describe the remote platform and its manifest conventions.
const (
	PlatformBaseURL       = "platform.base_url"
	PlatformUserAgent     = "platform.user_agent"
	PlatformQualityMarker = "platform.quality_marker"
	PlatformManifestExt   = "platform.manifest_ext"
	PlatformSegmentExt    = "platform.segment_ext"
)

// Networking - these keys tune the shared HTTP client.
const (
	NetworkTimeout             = "network.timeout"
	NetworkDownloadIdleTimeout = "network.download_idle_timeout"
	NetworkTLSFingerprint      = "network.tls_fingerprint"
)

// Authentication - these keys configure where the session cookie comes from.
const (
	AuthCookieFile = "auth.cookie_file"
)

// Multiplexer - these keys configure the external remux and probe tools.
const (
	MuxerPath     = "muxer.path"
	MuxerLogLevel = "muxer.loglevel"
	MuxerTimeout  = "muxer.timeout"
	ProbePath     = "probe.path"
)

// Harvest Behaviour - these keys select which artifacts a crawl produces.
const (
	HarvestTranscripts        = "harvest.transcripts"
	HarvestVideos             = "harvest.videos"
	CatalogRefreshEnrollments = "catalog.refresh_enrollments"
)

// Output Validation - these keys control how produced videos are verified.
const (
	ValidateMetadataOnly = "validate.metadata_only"
	ValidateHWAccel      = "validate.hwaccel"
)

// History Tracking - these keys configure the harvest ledger.
const (
	HistorySave = "history.save"
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

// CLI Execution Environment - these flags and settings govern the terminal output.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	CliReleaseRepo  = "cli.release_repo"
)
