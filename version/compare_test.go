package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Given two versions", t, func() {
		cases := []struct {
			a, b string
			want int
		}{
			{"0.3.2", "0.3.1", 1},
			{"v0.3.1", "0.3.1", 0},
			{"0.10.0", "0.9.9", 1},
			{"1.0.0", "2.0.0", -1},
		}

		for _, c := range cases {
			got, err := Compare(c.a, c.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, c.want)
		}

		Convey("Garbage should be rejected", func() {
			_, err := Compare("latest", "0.3.1")
			So(err, ShouldNotBeNil)
		})
	})
}
