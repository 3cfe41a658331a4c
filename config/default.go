// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/echodl/echodl/color"
	"github.com/echodl/echodl/constant"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Echodl + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PathsData, "", "Root directory for cached metadata, transcripts and videos.\nDefaults to <home>/echodl when empty")
	register(key.PlatformBaseURL, "https://echo360.net.au", "Base URL of the lecture platform")
	register(key.PlatformUserAgent, constant.UserAgent, "User-Agent header sent with every request")
	register(key.PlatformQualityMarker, "q", "Prefix of the quality token in sub-manifest names (e.g. q1)")
	register(key.PlatformManifestExt, ".m3u8", "File extension of sub-manifests")
	register(key.PlatformSegmentExt, ".m4s", "File extension of terminal media segments")
	register(key.NetworkTimeout, 60, "Timeout in seconds for metadata and manifest requests")
	register(key.NetworkDownloadIdleTimeout, 30, "Abort a download after this many seconds without data.\n0 disables the limit")
	register(key.NetworkTLSFingerprint, false, "Present a browser-like TLS fingerprint to the platform")
	register(key.AuthCookieFile, "", "Path to a file holding the session cookie string.\nThe OS keyring is used when empty")
	register(key.MuxerPath, "ffmpeg", "Path to the ffmpeg executable")
	register(key.MuxerLogLevel, "warning", "ffmpeg -loglevel value")
	register(key.MuxerTimeout, 120, "Timeout in minutes for a single ffmpeg invocation")
	register(key.ProbePath, "ffprobe", "Path to the ffprobe executable")
	register(key.HarvestTranscripts, true, "Download transcripts and write .srt subtitles")
	register(key.HarvestVideos, true, "Download and remux lecture videos")
	register(key.CatalogRefreshEnrollments, false, "Refetch the enrollment list on every crawl")
	register(key.ValidateMetadataOnly, false, "Validate videos by probing metadata only instead of decoding them")
	register(key.ValidateHWAccel, false, "Use hardware acceleration when decoding videos for validation")
	register(key.HistorySave, true, "Record harvested lectures in the history ledger")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Check for a newer release after printing the version")
	register(key.CliReleaseRepo, "", "GitHub repository (owner/name) whose releases the version check reads.\nThe check is skipped when empty")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
