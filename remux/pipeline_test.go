package remux

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/media"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type remoteCall struct {
	URL     string
	Headers http.Header
	Out     string
}

type fileCall struct {
	Video, Audio, Out string
	// present reports whether both inputs existed when the muxer ran.
	present bool
}

type fakeMuxer struct {
	remote []remoteCall
	files  []fileCall
	err    error
}

func (f *fakeMuxer) MuxFiles(_ context.Context, video, audio, out string) error {
	f.files = append(f.files, fileCall{
		Video:   video,
		Audio:   audio,
		Out:     out,
		present: filesystem.Exists(video) && filesystem.Exists(audio),
	})
	return f.write(out)
}

func (f *fakeMuxer) MuxRemote(_ context.Context, url string, headers http.Header, out string) error {
	f.remote = append(f.remote, remoteCall{URL: url, Headers: headers, Out: out})
	return f.write(out)
}

func (f *fakeMuxer) write(out string) error {
	if f.err != nil {
		// a failing muxer may still leave a truncated file behind
		_ = filesystem.API().WriteFile(out, []byte("trunc"), 0644)
		return f.err
	}
	return filesystem.API().WriteFile(out, []byte("mp4"), 0644)
}

type fakeDownloader struct {
	urls  []string
	paths []string
	fail  string
}

func (f *fakeDownloader) Download(_ context.Context, url, path string) error {
	f.urls = append(f.urls, url)
	f.paths = append(f.paths, path)
	if url == f.fail {
		return errors.New("status 403")
	}
	return filesystem.API().WriteFile(path, []byte(url), 0644)
}

func TestPipeline(t *testing.T) {
	Convey("Given a pipeline", t, func() {
		filesystem.SetMemMapFs()

		var (
			ctx        = context.Background()
			muxer      = &fakeMuxer{}
			downloader = &fakeDownloader{}
			headers    = http.Header{"Cookie": {"PLAY_SESSION=abc"}}
			scratch    = "/tmp/echodl"
			out        = "/data/videos/CITS1001/Lecture_1.mp4"
		)

		pipeline := &Pipeline{
			Muxer:      muxer,
			Downloader: downloader,
			Headers:    headers,
			Scratch:    scratch,
		}

		split := media.Split{
			Audio: media.SegmentReference{Track: media.Audio, URL: "https://cdn.example/s0_q1.m4s"},
			Video: media.SegmentReference{Track: media.Video, URL: "https://cdn.example/s1_q3.m4s"},
		}

		Convey("When the plan is a combined fallback", func() {
			outcome, err := pipeline.Run(ctx, media.CombinedFallback{URI: "https://cdn.example/s2_av.m3u8"}, out)

			Convey("The muxer should read the remote source once with the session headers", func() {
				So(err, ShouldBeNil)
				So(outcome, ShouldEqual, Published)
				So(muxer.remote, ShouldHaveLength, 1)
				So(muxer.remote[0].URL, ShouldEqual, "https://cdn.example/s2_av.m3u8")
				So(muxer.remote[0].Headers, ShouldResemble, headers)
				So(muxer.files, ShouldBeEmpty)
			})

			Convey("One file should be published and nothing downloaded locally", func() {
				So(filesystem.Exists(out), ShouldBeTrue)
				So(filesystem.Exists(out+partSuffix), ShouldBeFalse)
				So(downloader.urls, ShouldBeEmpty)
				So(filesystem.Exists(scratch), ShouldBeFalse)
			})
		})

		Convey("When the plan is a split pair", func() {
			outcome, err := pipeline.Run(ctx, split, out)
			So(err, ShouldBeNil)
			So(outcome, ShouldEqual, Published)

			Convey("Both segments should be downloaded sequentially into one workspace", func() {
				So(downloader.urls, ShouldResemble, []string{split.Video.URL, split.Audio.URL})
				So(filepath.Dir(downloader.paths[0]), ShouldEqual, filepath.Dir(downloader.paths[1]))
				So(filepath.Base(downloader.paths[0]), ShouldEqual, "video.m4s")
				So(filepath.Base(downloader.paths[1]), ShouldEqual, "audio.m4s")
			})

			Convey("They should be muxed into a part file which is then published", func() {
				So(muxer.files, ShouldHaveLength, 1)
				So(muxer.files[0].present, ShouldBeTrue)
				So(muxer.files[0].Out, ShouldEqual, out+partSuffix)
				So(filesystem.Exists(out), ShouldBeTrue)
				So(filesystem.Exists(out+partSuffix), ShouldBeFalse)
			})

			Convey("The workspace should be removed", func() {
				So(filesystem.Exists(filepath.Dir(downloader.paths[0])), ShouldBeFalse)
			})
		})

		Convey("When the muxer fails", func() {
			muxer.err = &MuxError{ExitCode: 1}
			_, err := pipeline.Run(ctx, split, out)

			Convey("The error should be reported and nothing left behind", func() {
				var muxErr *MuxError
				So(errors.As(err, &muxErr), ShouldBeTrue)
				So(filesystem.Exists(out), ShouldBeFalse)
				So(filesystem.Exists(out+partSuffix), ShouldBeFalse)
				So(filesystem.Exists(filepath.Dir(downloader.paths[0])), ShouldBeFalse)
			})
		})

		Convey("When a segment download fails", func() {
			downloader.fail = split.Audio.URL
			_, err := pipeline.Run(ctx, split, out)

			Convey("The muxer should not run and the workspace should be removed", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "download audio segment")
				So(muxer.files, ShouldBeEmpty)
				So(filesystem.Exists(filepath.Dir(downloader.paths[0])), ShouldBeFalse)
				So(filesystem.Exists(out), ShouldBeFalse)
			})
		})

		Convey("When the output already exists", func() {
			So(filesystem.API().MkdirAll(filepath.Dir(out), 0755), ShouldBeNil)
			So(filesystem.API().WriteFile(out, []byte("done"), 0644), ShouldBeNil)

			outcome, err := pipeline.Run(ctx, split, out)

			Convey("Nothing should be downloaded or muxed", func() {
				So(err, ShouldBeNil)
				So(outcome, ShouldEqual, Skipped)
				So(downloader.urls, ShouldBeEmpty)
				So(muxer.files, ShouldBeEmpty)
				So(muxer.remote, ShouldBeEmpty)

				content, _ := filesystem.API().ReadFile(out)
				So(string(content), ShouldEqual, "done")
			})
		})
	})
}
