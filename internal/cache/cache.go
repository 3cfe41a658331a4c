// Package cache keeps platform documents on disk as pretty printed JSON.
//
// A document that exists is never fetched again: deleting the file is the
// only way to refresh it.
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/echodl/echodl/filesystem"
)

// indent matches the layout of the documents written by earlier versions.
const indent = "    "

// intArray matches a multi-line JSON array of integers.
var intArray = regexp.MustCompile(`\[\s*(?:\d+\s*,\s*)*\d+\s*\]`)

var whitespace = regexp.MustCompile(`\s+`)

// Has reports whether a document is cached at path.
func Has(path string) bool {
	return filesystem.Exists(path)
}

// Read decodes the document at path into target.
func Read(path string, target any) error {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

// Write encodes data at path using an atomic file swap, creating parent
// directories on demand.
func Write(path string, data any) error {
	encoded, err := Encode(data)
	if err != nil {
		return err
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := filesystem.API().WriteFile(tmpPath, encoded, 0644); err != nil {
		return err
	}

	return filesystem.API().Rename(tmpPath, path)
}

// Encode renders data with four space indentation and integer arrays
// collapsed to a single line.
func Encode(data any) ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	if err := encoder.Encode(data); err != nil {
		return nil, err
	}

	return Collapse(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Collapse rewrites every integer array onto one line, "[ 1, 2, 3 ]".
func Collapse(document []byte) []byte {
	return intArray.ReplaceAllFunc(document, func(match []byte) []byte {
		return whitespace.ReplaceAll(match, []byte(" "))
	})
}
