package cache

import (
	"encoding/json"
	"testing"

	"github.com/echodl/echodl/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCollapse(t *testing.T) {
	Convey("Given an indented document", t, func() {
		doc := []byte("{\n    \"quality\": [\n        0,\n        1\n    ],\n    \"trackType\": [\n        \"Audio\"\n    ]\n}")

		Convey("Integer arrays should fit on one line", func() {
			So(string(Collapse(doc)), ShouldEqual, "{\n    \"quality\": [ 0, 1 ],\n    \"trackType\": [\n        \"Audio\"\n    ]\n}")
		})
	})
}

func TestStore(t *testing.T) {
	Convey("Given a document", t, func() {
		filesystem.SetMemMapFs()

		path := "/data/lesson_data/Software_Eng.json"
		doc := json.RawMessage(`[{"lesson":{"id":"G_1","name":"A & B"},"video":{"playableMedias":[{"quality":[0,1,2]}]}}]`)

		So(Has(path), ShouldBeFalse)
		So(Write(path, doc), ShouldBeNil)

		Convey("It should be cached", func() {
			So(Has(path), ShouldBeTrue)
			So(filesystem.Exists(path+".tmp"), ShouldBeFalse)
		})

		Convey("It should be pretty printed with collapsed integer arrays", func() {
			content, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(content), ShouldEqual, `[
    {
        "lesson": {
            "id": "G_1",
            "name": "A & B"
        },
        "video": {
            "playableMedias": [
                {
                    "quality": [ 0, 1, 2 ]
                }
            ]
        }
    }
]`)
		})

		Convey("It should read back", func() {
			var lessons []struct {
				Lesson struct {
					ID string `json:"id"`
				} `json:"lesson"`
			}
			So(Read(path, &lessons), ShouldBeNil)
			So(lessons[0].Lesson.ID, ShouldEqual, "G_1")
		})
	})

	Convey("Reading a missing document should fail", t, func() {
		filesystem.SetMemMapFs()
		var v any
		So(Read("/nope.json", &v), ShouldNotBeNil)
	})
}
