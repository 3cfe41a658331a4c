package remux

import (
	"net/http"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestArgs(t *testing.T) {
	Convey("Given the split arguments", t, func() {
		args := SplitArgs("warning", "/tmp/w/video.m4s", "/tmp/w/audio.m4s", "/out/l.mp4.part")

		Convey("They should copy one stream of each input into an mp4", func() {
			So(args, ShouldResemble, []string{
				"-y",
				"-loglevel", "warning",
				"-i", "/tmp/w/video.m4s",
				"-i", "/tmp/w/audio.m4s",
				"-map", "0:v:0",
				"-map", "1:a:0",
				"-c", "copy",
				"-f", "mp4",
				"/out/l.mp4.part",
			})
		})
	})

	Convey("Given the remote arguments", t, func() {
		headers := http.Header{}
		headers.Set("User-Agent", "echodl")
		headers.Set("Cookie", "PLAY_SESSION=abc; CloudFront-Policy=xyz")

		args := RemoteArgs("error", "https://cdn.example/s1_av.m3u8", headers, "/out/l.mp4.part")

		Convey("They should inject the headers before the input", func() {
			So(args, ShouldResemble, []string{
				"-y",
				"-loglevel", "error",
				"-headers", "Cookie: PLAY_SESSION=abc; CloudFront-Policy=xyz\r\nUser-Agent: echodl\r\n",
				"-i", "https://cdn.example/s1_av.m3u8",
				"-c", "copy",
				"-f", "mp4",
				"/out/l.mp4.part",
			})
		})

		Convey("The header block should never reach the log", func() {
			So(strings.Join(redact(args), " "), ShouldNotContainSubstring, "PLAY_SESSION")
			So(args[4], ShouldContainSubstring, "PLAY_SESSION")
		})
	})

	Convey("Without headers the option should be omitted", t, func() {
		args := RemoteArgs("warning", "https://cdn.example/a.m3u8", nil, "out.mp4")
		So(args, ShouldNotContain, "-headers")
	})
}

func TestMuxError(t *testing.T) {
	Convey("A failed muxer run should carry its exit code and stderr", t, func() {
		err := &MuxError{ExitCode: 1, Stderr: "Invalid data found when processing input"}
		So(err.Error(), ShouldEqual, "muxer exited with code 1: Invalid data found when processing input")
	})

	Convey("Long diagnostics should keep their tail", t, func() {
		So(tail("abcdef", 3), ShouldEqual, "…def")
		So(tail("abc", 3), ShouldEqual, "abc")
	})
}
