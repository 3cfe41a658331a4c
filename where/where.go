// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/echodl/echodl/constant"
	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "ECHODL_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the ECHODL_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Echodl))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Echodl))
}

// Logs resolves the absolute path to the directory used for application diagnostic and audit logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the path of the harvest ledger.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Temp resolves the scratch root under which every remux job gets its own workspace.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Echodl))
}

// Data resolves the root directory of the harvested catalog.
// It honours paths.data and falls back to <home>/echodl.
func Data() string {
	if custom := viper.GetString(key.PathsData); custom != "" {
		return ensureDir(custom)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return ensureDir(filepath.Join(home, constant.Echodl))
}

// Enrollments resolves the cached enrollment list.
func Enrollments() string {
	return filepath.Join(Data(), "enrollments"+constant.JSONExt)
}

// Syllabi resolves the directory of cached per-course syllabi.
func Syllabi() string {
	return filepath.Join(Data(), "unit_data")
}

// Syllabus resolves the cached syllabus of a single course.
func Syllabus(code, course string) string {
	return filepath.Join(Syllabi(), util.NormalizeName(code+" "+course)+constant.JSONExt)
}

// Lessons resolves the directory of cached per-course lesson lists.
func Lessons() string {
	return filepath.Join(Data(), "lesson_data")
}

// LessonList resolves the cached lesson list of a single course.
func LessonList(course string) string {
	return filepath.Join(Lessons(), util.NormalizeName(course)+constant.JSONExt)
}

// Transcripts resolves the directory of raw transcript documents.
func Transcripts() string {
	return filepath.Join(Data(), "transcript_data")
}

// RawTranscript resolves the raw transcript document of a lecture.
func RawTranscript(course, lesson string) string {
	return filepath.Join(Transcripts(), util.NormalizeName(course), util.NormalizeName(lesson)+constant.JSONExt)
}

// Videos resolves the directory holding every published artifact.
func Videos() string {
	return filepath.Join(Data(), "videos")
}

// Video resolves the published video of a lecture. Its existence marks the lecture as done.
func Video(course, lesson string) string {
	return filepath.Join(Videos(), util.NormalizeName(course), util.NormalizeName(lesson)+constant.VideoExt)
}

// Subtitle resolves the published subtitle file of a lecture.
func Subtitle(course, lesson string) string {
	return filepath.Join(Videos(), util.NormalizeName(course), util.NormalizeName(lesson)+constant.SubtitleExt)
}
