package media

// Shape is the classification of a lecture's media list. It is one of
// SplitPair, CombinedSingle or Malformed.
type Shape interface {
	shape()
}

// SplitPair holds one audio and one video track to be downloaded separately and remuxed.
type SplitPair struct {
	Audio ResolvedTrack
	Video ResolvedTrack
}

// CombinedSingle holds the manifest of a source claiming to carry both tracks.
type CombinedSingle struct {
	URI string
	// Candidates are the single-track descriptors that were seen but
	// overruled by the combined source.
	Candidates []ResolvedTrack
}

// Malformed reports a media list with neither a combined source nor a complete split pair.
type Malformed struct {
	Found []TrackType
}

func (SplitPair) shape()      {}
func (CombinedSingle) shape() {}
func (Malformed) shape()      {}

// Err converts the classification into the error surfaced for the lecture.
func (m Malformed) Err() error {
	return &ManifestError{Kind: IncompleteTracks, Found: m.Found}
}

// Classify inspects the media list in order. The first single-track entry of
// each type is kept (the platform lists its canonical entry first) and the
// first combined entry is remembered. Any combined entry takes precedence over
// a split pair, even a complete one.
func Classify(medias []PlayableMedia) Shape {
	var (
		candidates = make(map[TrackType]ResolvedTrack, 2)
		found      []TrackType
		combined   *PlayableMedia
	)

	for i := range medias {
		m := medias[i]
		switch {
		case m.IsSingleTrack():
			t := m.TrackTypes[0]
			if _, ok := candidates[t]; ok {
				continue
			}
			candidates[t] = ResolvedTrack{Source: m, Type: t, Quality: m.BestQuality()}
			found = append(found, t)
		case m.IsCombined():
			if combined == nil {
				combined = &medias[i]
			}
		}
	}

	if combined != nil {
		overruled := make([]ResolvedTrack, 0, len(found))
		for _, t := range found {
			overruled = append(overruled, candidates[t])
		}
		return CombinedSingle{URI: combined.URI, Candidates: overruled}
	}

	audio, hasAudio := candidates[Audio]
	video, hasVideo := candidates[Video]
	if !hasAudio || !hasVideo {
		return Malformed{Found: found}
	}

	return SplitPair{Audio: audio, Video: video}
}
