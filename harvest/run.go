package harvest

import (
	"context"
	"errors"
	"iter"

	"github.com/echodl/echodl/catalog"
	"github.com/echodl/echodl/log"
	"github.com/echodl/echodl/media"
	"github.com/echodl/echodl/remux"
)

// Result is what happened to one lecture.
type Result struct {
	Lecture catalog.Lecture

	Subtitle    remux.Outcome
	SubtitleErr error

	Video    remux.Outcome
	Plan     media.Plan
	VideoErr error
}

// Err joins the failures of the lecture.
func (r Result) Err() error {
	return errors.Join(r.SubtitleErr, r.VideoErr)
}

// Published reports whether any artifact was produced.
func (r Result) Published() bool {
	return r.Subtitle == remux.Published || r.Video == remux.Published
}

// Failure is a lecture that could not be harvested.
type Failure struct {
	Lecture catalog.Lecture
	Err     error
}

// Report summarizes a run.
type Report struct {
	Harvested int
	Skipped   int
	Failed    int
	Failures  []Failure
}

// Harvest produces the selected artifacts of a lecture. The subtitle and the
// video fail independently.
func (h *Harvester) Harvest(ctx context.Context, lecture catalog.Lecture) Result {
	result := Result{Lecture: lecture}

	if h.Subtitles {
		result.Subtitle, result.SubtitleErr = h.Subtitle(ctx, lecture)
	}

	if h.Videos {
		result.Video, result.Plan, result.VideoErr = h.Video(ctx, lecture)
	}

	return result
}

// Run harvests lectures one after the other. A failing lecture is logged and
// counted and the run moves on to the next one; only cancelling ctx stops it.
// onResult, if not nil, is called after every lecture.
func (h *Harvester) Run(ctx context.Context, lectures iter.Seq2[catalog.Lecture, error], onResult func(Result)) Report {
	var report Report

	for lecture, err := range lectures {
		if ctx.Err() != nil {
			break
		}

		result := Result{Lecture: lecture, VideoErr: err}
		if err == nil {
			result = h.Harvest(ctx, lecture)
		}

		switch err := result.Err(); {
		case err != nil:
			report.Failed++
			report.Failures = append(report.Failures, Failure{Lecture: lecture, Err: err})
			log.ErrorWith(log.Fields{
				"course":    lecture.Course,
				"lesson":    lecture.Lesson.Name,
				"lesson_id": lecture.Lesson.ID,
			}, "lecture failed", err)
		case result.Published():
			report.Harvested++
		default:
			report.Skipped++
		}

		if onResult != nil {
			onResult(result)
		}
	}

	return report
}
