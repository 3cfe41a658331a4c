package manifest

import (
	"fmt"
	"net/url"
	"path"
)

// URL is an absolute manifest location. Relative references found inside a
// manifest are resolved against its Parent.
type URL struct {
	u *url.URL
}

// ParseURL parses an absolute http(s) URL.
func ParseURL(raw string) (URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("parse manifest url: %w", err)
	}

	if !u.IsAbs() || u.Host == "" {
		return URL{}, fmt.Errorf("manifest url %q is not absolute", raw)
	}

	return URL{u: u}, nil
}

// Parent is the directory holding the document, always ending in a slash.
// The query and fragment are dropped.
func (m URL) Parent() URL {
	parent := *m.u
	parent.RawQuery = ""
	parent.Fragment = ""
	parent.RawPath = ""

	dir := path.Dir(parent.Path)
	if dir == "." || dir == "/" {
		parent.Path = "/"
	} else {
		parent.Path = dir + "/"
	}

	return URL{u: &parent}
}

// Join resolves ref, typically a line of the manifest, against the parent directory.
// Absolute references are returned as they are.
func (m URL) Join(ref string) (URL, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return URL{}, fmt.Errorf("parse manifest reference %q: %w", ref, err)
	}

	return URL{u: m.Parent().u.ResolveReference(r)}, nil
}

func (m URL) String() string {
	if m.u == nil {
		return ""
	}
	return m.u.String()
}
