// Package manifest walks the two levels of adaptive-streaming manifests that
// lead from a track descriptor to its single downloadable segment.
package manifest

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/echodl/echodl/log"
	"github.com/echodl/echodl/media"
	"github.com/samber/lo"
)

// Fetcher retrieves a text document.
type Fetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Locator resolves a track to the URL of its media segment.
type Locator struct {
	Fetcher Fetcher
	// Marker prefixes the quality number in a quality manifest name, "q" for "s1_q3.m3u8".
	Marker string
	// ManifestExt is the extension of quality manifests.
	ManifestExt string
	// SegmentExt is the extension of media segments.
	SegmentExt string
}

// Locate fetches the track's quality index, follows the entry for the chosen
// quality and returns the only segment it lists.
func (l *Locator) Locate(ctx context.Context, track media.ResolvedTrack) (media.SegmentReference, error) {
	base, err := ParseURL(track.Source.URI)
	if err != nil {
		return media.SegmentReference{}, err
	}

	index, err := l.Fetcher.FetchText(ctx, base.String())
	if err != nil {
		return media.SegmentReference{}, fmt.Errorf("fetch %s quality index: %w", track.Type, err)
	}

	entry, ok := l.qualityEntry(index, track.Quality)
	if !ok {
		return media.SegmentReference{}, &media.ManifestError{
			Kind:    media.QualityNotFound,
			URL:     base.String(),
			Quality: track.Quality,
		}
	}

	variant, err := base.Join(entry)
	if err != nil {
		return media.SegmentReference{}, err
	}

	log.Debugf("%s: following %s", track, variant)

	listing, err := l.Fetcher.FetchText(ctx, variant.String())
	if err != nil {
		return media.SegmentReference{}, fmt.Errorf("fetch %s segment index: %w", track.Type, err)
	}

	segments := l.segments(listing)
	switch len(segments) {
	case 0:
		return media.SegmentReference{}, &media.ManifestError{
			Kind: media.NoSegmentsFound,
			URL:  variant.String(),
		}
	case 1:
	default:
		return media.SegmentReference{}, &media.ManifestError{
			Kind:     media.AmbiguousSegment,
			URL:      variant.String(),
			Segments: segments,
		}
	}

	segment, err := base.Join(segments[0])
	if err != nil {
		return media.SegmentReference{}, err
	}

	return media.SegmentReference{Track: track.Type, URL: segment.String()}, nil
}

// qualityEntry returns the last manifest line naming the given quality.
// The marker must not be followed by another digit, so q1 never matches q10.
func (l *Locator) qualityEntry(index string, quality int) (string, bool) {
	pattern := regexp.MustCompile(regexp.QuoteMeta(l.Marker+strconv.Itoa(quality)) + `(\D|$)`)

	candidates := lo.Filter(lines(index), func(line string, _ int) bool {
		return strings.HasSuffix(line, l.ManifestExt) && pattern.MatchString(line)
	})

	if len(candidates) == 0 {
		return "", false
	}
	return candidates[len(candidates)-1], true
}

// segments returns the distinct segment lines in order of appearance.
func (l *Locator) segments(listing string) []string {
	return lo.Uniq(lo.Filter(lines(listing), func(line string, _ int) bool {
		return strings.HasSuffix(line, l.SegmentExt)
	}))
}

// lines returns the non-empty, non-comment lines of a manifest.
func lines(document string) []string {
	var result []string

	scanner := bufio.NewScanner(strings.NewReader(document))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}

	return result
}
