package where

import (
	"path/filepath"
	"testing"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Temp()", func() {
			path := Temp()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}

func TestCatalogPaths(t *testing.T) {
	Convey("Given a custom data directory", t, func() {
		viper.Set(key.PathsData, "/data")
		defer viper.Set(key.PathsData, "")

		Convey("Lecture artifacts use normalized names", func() {
			So(Video("CITS1001 Software Eng.", "Lecture 1: Intro!!"), ShouldEqual,
				filepath.Join("/data", "videos", "CITS1001_Software_Eng", "Lecture_1_Intro.mp4"))
			So(Subtitle("Maths", "Week 2"), ShouldEqual, filepath.Join("/data", "videos", "Maths", "Week_2.srt"))
			So(RawTranscript("Maths", "Week 2"), ShouldEqual, filepath.Join("/data", "transcript_data", "Maths", "Week_2.json"))
		})

		Convey("Metadata caches live under the data directory", func() {
			So(Enrollments(), ShouldEqual, filepath.Join("/data", "enrollments.json"))
			So(Syllabus("MATH1011", "Calculus"), ShouldEqual, filepath.Join("/data", "unit_data", "MATH1011_Calculus.json"))
			So(LessonList("Calculus"), ShouldEqual, filepath.Join("/data", "lesson_data", "Calculus.json"))
		})
	})
}
