package catalog

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/echodl/echodl/echo360"
	"github.com/echodl/echodl/internal/cache"
	"github.com/echodl/echodl/media"
	"github.com/echodl/echodl/where"
)

// Lecture is a lesson with a recording, ready to be harvested.
type Lecture struct {
	Course     string
	CourseCode string
	Lesson     echo360.LessonRef
	Media      []media.PlayableMedia
	// MediaID together with the lesson ID locates the transcript.
	MediaID string
}

func (l Lecture) String() string {
	return fmt.Sprintf("%s / %s", l.Course, l.Lesson.Name)
}

// Lectures lazily yields the lectures of the given sections from the cached
// lesson lists. Lessons without a recording are reported and skipped. An
// unreadable lesson list yields an error and the next course is read.
func (c *Catalog) Lectures(sections []echo360.Section) iter.Seq2[Lecture, error] {
	return func(yield func(Lecture, error) bool) {
		for _, section := range sections {
			path := where.LessonList(section.CourseName)
			if !cache.Has(path) {
				c.notify(Event{Course: section.CourseName, Message: "no lesson list cached"})
				continue
			}

			var lessons []echo360.Lesson
			if err := cache.Read(path, &lessons); err != nil {
				if !yield(Lecture{Course: section.CourseName, CourseCode: section.CourseCode}, err) {
					return
				}
				continue
			}

			for _, lesson := range lessons {
				if lesson.Video == nil {
					c.notify(Event{Course: section.CourseName, Lesson: lesson.Lesson.Name, Message: "no recording"})
					continue
				}

				if !yield(newLecture(section, lesson), nil) {
					return
				}
			}
		}
	}
}

func newLecture(section echo360.Section, lesson echo360.Lesson) Lecture {
	course := lesson.SectionInfo.Course.CourseName
	if course == "" {
		course = section.CourseName
	}

	return Lecture{
		Course:     course,
		CourseCode: section.CourseCode,
		Lesson:     lesson.Lesson,
		Media:      lesson.Video.PlayableMedias,
		MediaID:    lesson.Video.MediaID,
	}
}

// MarshalJSON renders a lecture for `lectures --json`.
func (l Lecture) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Course     string                `json:"course"`
		CourseCode string                `json:"course_code"`
		LessonID   string                `json:"lesson_id"`
		Lesson     string                `json:"lesson"`
		MediaID    string                `json:"media_id"`
		Media      []media.PlayableMedia `json:"media"`
	}{
		Course:     l.Course,
		CourseCode: l.CourseCode,
		LessonID:   l.Lesson.ID,
		Lesson:     l.Lesson.Name,
		MediaID:    l.MediaID,
		Media:      l.Media,
	})
}
