package media

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ManifestErrorKind enumerates the structural assumptions a manifest can violate.
type ManifestErrorKind int

const (
	IncompleteTracks ManifestErrorKind = iota + 1
	QualityNotFound
	NoSegmentsFound
	AmbiguousSegment
)

func (k ManifestErrorKind) String() string {
	switch k {
	case IncompleteTracks:
		return "incomplete tracks"
	case QualityNotFound:
		return "quality not found"
	case NoSegmentsFound:
		return "no segments found"
	case AmbiguousSegment:
		return "ambiguous segment"
	default:
		return "unknown manifest error"
	}
}

// ManifestError reports a manifest whose shape the resolver or locator cannot handle.
// Only NoSegmentsFound is recoverable: it switches the lecture to the combined source.
type ManifestError struct {
	Kind ManifestErrorKind
	// URL of the manifest being inspected, when known.
	URL string
	// Quality that was requested (QualityNotFound).
	Quality int
	// Segments found (AmbiguousSegment).
	Segments []string
	// Tracks that were found (IncompleteTracks).
	Found []TrackType
}

func (e *ManifestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())

	switch e.Kind {
	case IncompleteTracks:
		found := lo.Map(e.Found, func(t TrackType, _ int) string { return string(t) })
		fmt.Fprintf(&b, ": expected audio and video tracks, found [%s]", strings.Join(found, ", "))
	case QualityNotFound:
		fmt.Fprintf(&b, ": quality %d", e.Quality)
	case AmbiguousSegment:
		fmt.Fprintf(&b, ": expected 1 segment, got %d", len(e.Segments))
	}

	if e.URL != "" {
		fmt.Fprintf(&b, " (%s)", e.URL)
	}
	return b.String()
}

// Is matches any ManifestError of the same kind, so callers can test
// against the sentinels below with errors.Is.
func (e *ManifestError) Is(target error) bool {
	t, ok := target.(*ManifestError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrIncompleteTracks = &ManifestError{Kind: IncompleteTracks}
	ErrQualityNotFound  = &ManifestError{Kind: QualityNotFound}
	ErrNoSegmentsFound  = &ManifestError{Kind: NoSegmentsFound}
	ErrAmbiguousSegment = &ManifestError{Kind: AmbiguousSegment}
)
