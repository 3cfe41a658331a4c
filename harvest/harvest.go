// Package harvest turns catalog lectures into published videos and subtitles.
package harvest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/echodl/echodl/catalog"
	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/history"
	"github.com/echodl/echodl/internal/cache"
	"github.com/echodl/echodl/log"
	"github.com/echodl/echodl/media"
	"github.com/echodl/echodl/remux"
	"github.com/echodl/echodl/subtitle"
	"github.com/echodl/echodl/where"
)

// Locator resolves a track to its media segment.
type Locator interface {
	Locate(ctx context.Context, track media.ResolvedTrack) (media.SegmentReference, error)
}

// Pipeline executes a download plan.
type Pipeline interface {
	Run(ctx context.Context, plan media.Plan, out string) (remux.Outcome, error)
}

// TranscriptAPI fetches the transcript of a lecture's media.
type TranscriptAPI interface {
	Transcript(ctx context.Context, lessonID, mediaID string) (json.RawMessage, error)
}

// Harvester produces the artifacts of one lecture at a time.
type Harvester struct {
	Locator     Locator
	Pipeline    Pipeline
	Transcripts TranscriptAPI

	// Videos and Subtitles select the artifacts to produce.
	Videos    bool
	Subtitles bool
	// Record saves published videos in the history ledger.
	Record bool
}

// Resolve decides how a lecture's video is obtained. A split pair whose
// segment index lists no segment has no combined source to fall back to,
// since any combined source would have been chosen in the first place.
func (h *Harvester) Resolve(ctx context.Context, medias []media.PlayableMedia) (media.Plan, error) {
	switch shape := media.Classify(medias).(type) {
	case media.CombinedSingle:
		if len(shape.Candidates) > 0 {
			log.Debugf("combined source overrules %d single-track entries", len(shape.Candidates))
		}
		return media.CombinedFallback{URI: shape.URI}, nil

	case media.Malformed:
		return nil, shape.Err()

	case media.SplitPair:
		video, err := h.Locator.Locate(ctx, shape.Video)
		if err != nil {
			return nil, noFallback(err)
		}

		audio, err := h.Locator.Locate(ctx, shape.Audio)
		if err != nil {
			return nil, noFallback(err)
		}

		return media.Split{Audio: audio, Video: video}, nil

	default:
		return nil, fmt.Errorf("unsupported media shape %T", shape)
	}
}

func noFallback(err error) error {
	if errors.Is(err, media.ErrNoSegmentsFound) {
		return fmt.Errorf("%w, and no combined source to fall back to", err)
	}
	return err
}

// Video publishes the lecture's video unless it already exists, in which
// case nothing is fetched.
func (h *Harvester) Video(ctx context.Context, lecture catalog.Lecture) (remux.Outcome, media.Plan, error) {
	out := where.Video(lecture.Course, lecture.Lesson.Name)
	if filesystem.Exists(out) {
		return remux.Skipped, nil, nil
	}

	plan, err := h.Resolve(ctx, lecture.Media)
	if err != nil {
		return 0, nil, err
	}

	outcome, err := h.Pipeline.Run(ctx, plan, out)
	if err != nil {
		return 0, plan, err
	}

	if outcome == remux.Published && h.Record {
		record := &history.Record{
			Course:   lecture.Course,
			Lesson:   lecture.Lesson.Name,
			LessonID: lecture.Lesson.ID,
			Path:     out,
			Plan:     plan.Kind(),
		}
		if err := history.Save(record); err != nil {
			log.Warnf("save history: %v", err)
		}
	}

	return outcome, plan, nil
}

// Subtitle saves the lecture's raw transcript and publishes it as SubRip
// unless the subtitle already exists.
func (h *Harvester) Subtitle(ctx context.Context, lecture catalog.Lecture) (remux.Outcome, error) {
	out := where.Subtitle(lecture.Course, lecture.Lesson.Name)
	if filesystem.Exists(out) {
		return remux.Skipped, nil
	}

	raw, err := h.Transcripts.Transcript(ctx, lecture.Lesson.ID, lecture.MediaID)
	if err != nil {
		return 0, fmt.Errorf("fetch transcript: %w", err)
	}

	if err := cache.Write(where.RawTranscript(lecture.Course, lecture.Lesson.Name), raw); err != nil {
		return 0, fmt.Errorf("save transcript: %w", err)
	}

	transcript, err := subtitle.Parse(raw)
	if err != nil {
		return 0, err
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(out), os.ModePerm); err != nil {
		return 0, err
	}

	part := out + ".part"
	if err := filesystem.API().WriteFile(part, []byte(subtitle.Format(transcript.Cues())), 0644); err != nil {
		return 0, err
	}

	if err := filesystem.Publish(part, out); err != nil {
		_ = filesystem.API().Remove(part)
		return 0, err
	}

	return remux.Published, nil
}
