// Package catalog walks the enrolled courses and their lessons, keeping
// every document it fetches on disk so that a rerun only fetches what is new.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/echodl/echodl/echo360"
	"github.com/echodl/echodl/internal/cache"
	"github.com/echodl/echodl/log"
	"github.com/echodl/echodl/where"
)

// API is the part of the platform the catalog reads.
type API interface {
	Enrollments(ctx context.Context) (json.RawMessage, error)
	Syllabus(ctx context.Context, sectionID string) (json.RawMessage, error)
	LessonInfo(ctx context.Context, lessonID string) (json.RawMessage, error)
}

// Event is a notice raised while crawling, for display.
type Event struct {
	Course string
	// Lesson is empty for notices about a whole course.
	Lesson  string
	Message string
}

// Catalog crawls the platform metadata in stages.
type Catalog struct {
	API API
	// RefreshEnrollments refetches the enrollment list even when it is cached.
	RefreshEnrollments bool
	// OnEvent, if set, receives skipped items and fetch notices.
	OnEvent func(Event)
}

func (c *Catalog) notify(e Event) {
	fields := log.Fields{"course": e.Course}
	if e.Lesson != "" {
		fields["lesson"] = e.Lesson
	}
	log.WarnWith(fields, e.Message)

	if c.OnEvent != nil {
		c.OnEvent(e)
	}
}

// FetchEnrollments caches the enrollment list.
func (c *Catalog) FetchEnrollments(ctx context.Context) error {
	path := where.Enrollments()
	if cache.Has(path) && !c.RefreshEnrollments {
		return nil
	}

	log.Info("fetching enrollments")
	doc, err := c.API.Enrollments(ctx)
	if err != nil {
		return fmt.Errorf("fetch enrollments: %w", err)
	}

	return cache.Write(path, doc)
}

// Sections lists the enrolled courses from the cached enrollment list.
func (c *Catalog) Sections() ([]echo360.Section, error) {
	var enrollments []echo360.Enrollment
	if err := cache.Read(where.Enrollments(), &enrollments); err != nil {
		return nil, fmt.Errorf("read enrollments: %w", err)
	}

	if len(enrollments) == 0 {
		return nil, nil
	}

	return enrollments[0].UserSections, nil
}

// FetchSyllabi caches the syllabus of every section that has none yet.
// A failing section does not stop the others.
func (c *Catalog) FetchSyllabi(ctx context.Context, sections []echo360.Section) error {
	var errs []error

	for _, section := range sections {
		path := where.Syllabus(section.CourseCode, section.CourseName)
		if cache.Has(path) {
			continue
		}

		log.Infof("fetching syllabus of %s", section.CourseName)
		doc, err := c.API.Syllabus(ctx, section.SectionID)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: fetch syllabus: %w", section.CourseName, err))
			continue
		}

		if err := cache.Write(path, doc); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", section.CourseName, err))
		}
	}

	return errors.Join(errs...)
}

// FetchLessons caches the player data of every lesson of every section that
// has no lesson list yet. A course's list is only written once all of its
// lessons were fetched.
func (c *Catalog) FetchLessons(ctx context.Context, sections []echo360.Section) error {
	var errs []error

	for _, section := range sections {
		if err := c.fetchLessons(ctx, section); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", section.CourseName, err))
		}
	}

	return errors.Join(errs...)
}

func (c *Catalog) fetchLessons(ctx context.Context, section echo360.Section) error {
	path := where.LessonList(section.CourseName)
	if cache.Has(path) {
		return nil
	}

	syllabusPath := where.Syllabus(section.CourseCode, section.CourseName)
	if !cache.Has(syllabusPath) {
		c.notify(Event{Course: section.CourseName, Message: "no syllabus cached"})
		return nil
	}

	var entries []echo360.SyllabusEntry
	if err := cache.Read(syllabusPath, &entries); err != nil {
		return err
	}

	lessons := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if entry.Grouped() {
			c.notify(Event{Course: section.CourseName, Message: "skipping grouped lessons " + entry.GroupInfo.Name})
			continue
		}

		if entry.Lesson == nil {
			continue
		}

		ref := entry.Lesson.Lesson
		log.Infof("fetching lesson %s", ref.Name)

		info, err := c.API.LessonInfo(ctx, ref.ID)
		if err != nil {
			return fmt.Errorf("lesson %s: %w", ref.Name, err)
		}

		lessons = append(lessons, info)
	}

	return cache.Write(path, lessons)
}

// Crawl runs the metadata stages in order. It stops only when the enrollment
// list is unavailable.
func (c *Catalog) Crawl(ctx context.Context, filter string) ([]echo360.Section, error) {
	if err := c.FetchEnrollments(ctx); err != nil {
		return nil, err
	}

	sections, err := c.Sections()
	if err != nil {
		return nil, err
	}

	sections = Filter(sections, filter)

	return sections, errors.Join(
		c.FetchSyllabi(ctx, sections),
		c.FetchLessons(ctx, sections),
	)
}
