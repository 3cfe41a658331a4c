package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/echodl/echodl/echo360"
	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/key"
	"github.com/echodl/echodl/media"
	"github.com/echodl/echodl/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeAPI struct {
	calls   []string
	failing map[string]bool
}

func (f *fakeAPI) Enrollments(context.Context) (json.RawMessage, error) {
	f.calls = append(f.calls, "enrollments")
	return json.RawMessage(`[{"userSections": [
		{"courseCode": "CITS1001", "courseName": "Software Eng", "sectionId": "s-1"},
		{"courseCode": "MATH1011", "courseName": "Multivariable Calculus", "sectionId": "s-2"}
	]}]`), nil
}

func (f *fakeAPI) Syllabus(_ context.Context, sectionID string) (json.RawMessage, error) {
	f.calls = append(f.calls, "syllabus "+sectionID)
	return json.RawMessage(fmt.Sprintf(`[
		{"lesson": {"lesson": {"id": "%[1]s-L1", "name": "Lecture 1"}}},
		{"groupInfo": {"name": "Week 2 workshops"}},
		{"lesson": {"lesson": {"id": "%[1]s-L2", "name": "Lecture 2"}}}
	]`, sectionID)), nil
}

func (f *fakeAPI) LessonInfo(_ context.Context, lessonID string) (json.RawMessage, error) {
	f.calls = append(f.calls, "lesson "+lessonID)
	if f.failing[lessonID] {
		return nil, errors.New("status 500")
	}

	if lessonID == "s-1-L2" {
		return json.RawMessage(`{"lesson": {"id": "s-1-L2", "name": "Lecture 2"}, "video": null}`), nil
	}

	course := map[string]string{"s-1": "Software Eng", "s-2": "Multivariable Calculus"}[lessonID[:3]]

	return json.RawMessage(fmt.Sprintf(`{
		"lesson": {"id": %q, "name": "Lecture 1"},
		"sectionInfo": {"course": {"courseName": %q}},
		"video": {"mediaId": "m-1", "playableMedias": [{"uri": "https://cdn.example/s0_a.m3u8", "trackType": ["Audio"], "quality": [0, 1]}]}
	}`, lessonID, course)), nil
}

func collect(c *Catalog, sections []echo360.Section) ([]Lecture, []error) {
	var (
		lectures []Lecture
		errs     []error
	)
	for lecture, err := range c.Lectures(sections) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lectures = append(lectures, lecture)
	}
	return lectures, errs
}

func TestCatalog(t *testing.T) {
	Convey("Given an empty data directory", t, func() {
		filesystem.SetMemMapFs()
		viper.Set(key.PathsData, "/data")
		defer viper.Set(key.PathsData, "")

		var (
			ctx    = context.Background()
			api    = &fakeAPI{}
			events []Event
		)

		catalog := &Catalog{API: api, OnEvent: func(e Event) { events = append(events, e) }}

		Convey("When crawling every course", func() {
			sections, err := catalog.Crawl(ctx, "")
			So(err, ShouldBeNil)
			So(sections, ShouldHaveLength, 2)

			Convey("Every document should be cached", func() {
				So(filesystem.Exists(where.Enrollments()), ShouldBeTrue)
				So(filesystem.Exists("/data/unit_data/CITS1001_Software_Eng.json"), ShouldBeTrue)
				So(filesystem.Exists("/data/lesson_data/Multivariable_Calculus.json"), ShouldBeTrue)
			})

			Convey("Grouped lessons should be reported and skipped", func() {
				So(api.calls, ShouldNotContain, "lesson Week 2 workshops")
				So(events[0].Message, ShouldEqual, "skipping grouped lessons Week 2 workshops")
			})

			Convey("A second crawl should fetch nothing", func() {
				api.calls = nil
				_, err := catalog.Crawl(ctx, "")
				So(err, ShouldBeNil)
				So(api.calls, ShouldBeEmpty)
			})

			Convey("Refreshing should refetch only the enrollment list", func() {
				api.calls = nil
				catalog.RefreshEnrollments = true
				_, err := catalog.Crawl(ctx, "")
				So(err, ShouldBeNil)
				So(api.calls, ShouldResemble, []string{"enrollments"})
			})

			Convey("Lectures should skip lessons without a recording", func() {
				events = nil
				lectures, errs := collect(catalog, sections)
				So(errs, ShouldBeEmpty)
				So(lectures, ShouldHaveLength, 3)

				first := lectures[0]
				So(first.Course, ShouldEqual, "Software Eng")
				So(first.CourseCode, ShouldEqual, "CITS1001")
				So(first.Lesson.ID, ShouldEqual, "s-1-L1")
				So(first.MediaID, ShouldEqual, "m-1")
				So(first.Media[0].TrackTypes, ShouldResemble, []media.TrackType{media.Audio})

				So(events, ShouldHaveLength, 1)
				So(events[0].Lesson, ShouldEqual, "Lecture 2")
				So(events[0].Message, ShouldEqual, "no recording")
			})

			Convey("Lectures should stop when the consumer does", func() {
				count := 0
				for range catalog.Lectures(sections) {
					count++
					break
				}
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When crawling a filtered course", func() {
			sections, err := catalog.Crawl(ctx, "calc")
			So(err, ShouldBeNil)

			Convey("Only that course should be fetched", func() {
				So(sections, ShouldHaveLength, 1)
				So(api.calls, ShouldContain, "syllabus s-2")
				So(api.calls, ShouldNotContain, "syllabus s-1")
			})
		})

		Convey("When a lesson of one course cannot be fetched", func() {
			api.failing = map[string]bool{"s-1-L1": true}
			_, err := catalog.Crawl(ctx, "")

			Convey("The other courses should still be cached", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "Software Eng: lesson Lecture 1")
				So(filesystem.Exists("/data/lesson_data/Software_Eng.json"), ShouldBeFalse)
				So(filesystem.Exists("/data/lesson_data/Multivariable_Calculus.json"), ShouldBeTrue)
			})
		})
	})
}

func TestFilter(t *testing.T) {
	Convey("Given enrolled sections", t, func() {
		sections := []echo360.Section{
			{CourseCode: "CITS1001", CourseName: "Software Engineering"},
			{CourseCode: "CITS2002", CourseName: "Systems Programming"},
			{CourseCode: "MATH1011", CourseName: "Multivariable Calculus"},
		}

		Convey("An empty query should keep everything", func() {
			So(Filter(sections, "  "), ShouldResemble, sections)
		})

		Convey("Codes should match case-insensitively", func() {
			So(Filter(sections, "cits1001"), ShouldResemble, sections[:1])
		})

		Convey("Names should match fuzzily, closest first", func() {
			matched := Filter(sections, "cits")
			So(matched, ShouldHaveLength, 2)

			matched = Filter(sections, "sysprog")
			So(matched, ShouldHaveLength, 1)
			So(matched[0].CourseCode, ShouldEqual, "CITS2002")
		})

		Convey("A query matching nothing should yield nothing", func() {
			So(Filter(sections, "biology"), ShouldBeEmpty)
		})
	})
}
