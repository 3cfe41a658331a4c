package echo360

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/echodl/echodl/network"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	Convey("Given a client against a fake platform", t, func() {
		var paths []string

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.EscapedPath())

			switch r.URL.Path {
			case "/user/enrollments":
				_, _ = w.Write([]byte(`{"status": "ok", "data": [{"userSections": [{"courseCode": "CITS1001", "courseName": "Software Eng", "sectionId": "s-1"}]}]}`))
			case "/section/s-1/syllabus":
				_, _ = w.Write([]byte(`{"data": [{"lesson": {"lesson": {"id": "G_1", "name": "Lecture 1"}}}, {"groupInfo": {"name": "Week 2"}}]}`))
			case "/lesson/G_1/classroom":
				_, _ = w.Write([]byte(classroomPage))
			case "/api/ui/echoplayer/lessons/G_1/medias/m-9/transcript":
				_, _ = w.Write([]byte(`{"data": {"contentJSON": {"cues": []}}}`))
			case "/section/empty/syllabus":
				_, _ = w.Write([]byte(`{"data": null}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		session := network.NewSession("echodl-test", "PLAY_SESSION=abc")
		session.Client = server.Client()

		ctx := context.Background()
		client := New(server.URL+"/", session)

		Convey("Enrollments should unwrap the data envelope", func() {
			raw, err := client.Enrollments(ctx)
			So(err, ShouldBeNil)

			var enrollments []Enrollment
			So(json.Unmarshal(raw, &enrollments), ShouldBeNil)
			So(enrollments[0].UserSections, ShouldResemble, []Section{
				{CourseCode: "CITS1001", CourseName: "Software Eng", SectionID: "s-1"},
			})
		})

		Convey("Syllabus should mark grouped rows", func() {
			raw, err := client.Syllabus(ctx, "s-1")
			So(err, ShouldBeNil)

			var entries []SyllabusEntry
			So(json.Unmarshal(raw, &entries), ShouldBeNil)
			So(entries, ShouldHaveLength, 2)
			So(entries[0].Grouped(), ShouldBeFalse)
			So(entries[0].Lesson.Lesson.Name, ShouldEqual, "Lecture 1")
			So(entries[1].Grouped(), ShouldBeTrue)
		})

		Convey("LessonInfo should extract the player data", func() {
			raw, err := client.LessonInfo(ctx, "G_1")
			So(err, ShouldBeNil)

			var lesson Lesson
			So(json.Unmarshal(raw, &lesson), ShouldBeNil)
			So(lesson.Lesson.ID, ShouldEqual, "G_1")
		})

		Convey("Transcript should hit the player API", func() {
			raw, err := client.Transcript(ctx, "G_1", "m-9")
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"contentJSON": {"cues": []}}`)
		})

		Convey("Identifiers should be path escaped", func() {
			_, err := client.Syllabus(ctx, "a/b")
			So(err, ShouldNotBeNil)
			So(paths[len(paths)-1], ShouldEqual, "/section/a%2Fb/syllabus")
		})

		Convey("A missing data field should be an error", func() {
			_, err := client.Syllabus(ctx, "empty")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "response has no data")
		})

		Convey("Unknown lessons should surface the fetch error", func() {
			_, err := client.LessonInfo(ctx, "missing")

			var fetchErr *network.FetchError
			So(errors.As(err, &fetchErr), ShouldBeTrue)
			So(fetchErr.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}
