package util

import (
	"testing"

	"github.com/echodl/echodl/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeName(t *testing.T) {
	Convey("NormalizeName", t, func() {
		Convey("Should replace and collapse punctuation", func() {
			So(NormalizeName("Lecture 1: Intro!!"), ShouldEqual, "Lecture_1_Intro")
		})
		Convey("Should keep alphanumerics untouched", func() {
			So(NormalizeName("CITS1001"), ShouldEqual, "CITS1001")
		})
		Convey("Should replace non-ASCII letters", func() {
			So(NormalizeName("Café – Week 3"), ShouldEqual, "Caf_Week_3")
		})
		Convey("Should not leave edge underscores", func() {
			So(NormalizeName("  (Recap) "), ShouldEqual, "Recap")
		})
		Convey("Should never return an empty component", func() {
			So(NormalizeName("!!!"), ShouldEqual, "untitled")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "lecture", "lectures"), ShouldEqual, "1 lecture")
		So(Quantify(3, "lecture", "lectures"), ShouldEqual, "3 lectures")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("cache"), ShouldEqual, "Cache")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/tmp/job/audio.m4s", []byte("a"), 0644), ShouldBeNil)

		So(Delete("/tmp/job"), ShouldBeNil)
		So(filesystem.Exists("/tmp/job/audio.m4s"), ShouldBeFalse)
		So(Delete("/tmp/missing"), ShouldNotBeNil)
	})
}
