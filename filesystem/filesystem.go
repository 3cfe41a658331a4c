// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// It utilizes the afero library so caches, transcripts and published videos can be
// exercised against an in-memory backend in tests.
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs restores the filesystem backend to the native operating system implementation.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs initializes a volatile in-memory filesystem backend for unit testing.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}

// Exists reports whether path is present. Stat failures other than
// "not exist" are treated as present so that a lecture is never redone on
// an unreadable disk.
func Exists(path string) bool {
	_, err := backend.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// Publish moves a finished file to its final location, creating parent
// directories on demand.
func Publish(from, to string) error {
	if err := backend.MkdirAll(filepath.Dir(to), os.ModePerm); err != nil {
		return err
	}
	return backend.Rename(from, to)
}
