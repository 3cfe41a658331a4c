package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/echodl/echodl/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLatest(t *testing.T) {
	Convey("Without a release repository", t, func() {
		_, err := Latest(context.Background(), "")
		So(err, ShouldEqual, ErrNoReleaseRepo)
	})

	Convey("Given a repository with a published release", t, func() {
		var hits int
		var path string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			path = r.URL.Path
			_, _ = w.Write([]byte(`{"tag_name": "v1.4.0"}`))
		}))
		defer server.Close()

		previous := githubAPI
		githubAPI = server.URL
		defer func() { githubAPI = previous }()

		version, err := Latest(context.Background(), "someone/echodl")
		So(err, ShouldBeNil)
		So(version, ShouldEqual, "1.4.0")
		So(path, ShouldEqual, "/repos/someone/echodl/releases/latest")

		Convey("A second lookup should be served from the cache", func() {
			version, err := Latest(context.Background(), "someone/echodl")
			So(err, ShouldBeNil)
			So(version, ShouldEqual, "1.4.0")
			So(hits, ShouldEqual, 1)
		})
	})
}
