// Package media models the playable media of a lecture and decides which
// of its descriptors to download.
package media

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/echodl/echodl/util"
	"github.com/samber/lo"
)

// TrackType is the kind of elementary stream a descriptor carries.
type TrackType string

const (
	Audio TrackType = "audio"
	Video TrackType = "video"
)

// ParseTrackType maps the platform's track labels ("Audio", "VIDEO", …) to a TrackType.
func ParseTrackType(s string) (TrackType, bool) {
	switch TrackType(strings.ToLower(strings.TrimSpace(s))) {
	case Audio:
		return Audio, true
	case Video:
		return Video, true
	default:
		return "", false
	}
}

// PlayableMedia is one entry of a lecture's media list.
type PlayableMedia struct {
	URI        string      `json:"uri"`
	TrackTypes []TrackType `json:"trackType"`
	Qualities  []int       `json:"quality"`
}

// UnmarshalJSON accepts the platform's capitalized track labels, drops
// labels that are neither audio nor video and removes duplicates.
func (m *PlayableMedia) UnmarshalJSON(data []byte) error {
	var raw struct {
		URI        string   `json:"uri"`
		TrackTypes []string `json:"trackType"`
		Qualities  []int    `json:"quality"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.URI = raw.URI
	m.Qualities = raw.Qualities
	m.TrackTypes = lo.Uniq(lo.FilterMap(raw.TrackTypes, func(s string, _ int) (TrackType, bool) {
		return ParseTrackType(s)
	}))
	return nil
}

// IsCombined reports whether the descriptor claims to carry both tracks.
func (m PlayableMedia) IsCombined() bool {
	return len(m.TrackTypes) == 2
}

// IsSingleTrack reports whether the descriptor carries exactly one track.
func (m PlayableMedia) IsSingleTrack() bool {
	return len(m.TrackTypes) == 1
}

// BestQuality is the highest quality rung the descriptor advertises.
func (m PlayableMedia) BestQuality() int {
	return util.Max(m.Qualities...)
}

// ResolvedTrack is a single-track descriptor chosen for download at its best quality.
type ResolvedTrack struct {
	Source  PlayableMedia
	Type    TrackType
	Quality int
}

func (t ResolvedTrack) String() string {
	return fmt.Sprintf("%s@%d", t.Type, t.Quality)
}
