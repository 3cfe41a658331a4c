package open

import (
	"testing"

	"github.com/echodl/echodl/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCommand(t *testing.T) {
	Convey("Given the login page", t, func() {
		const url = "https://echo360.net.au/login"

		Convey("Linux should hand it to xdg-open", func() {
			cmd, err := command(constant.Linux, url)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", url})
		})

		Convey("macOS should hand it to open", func() {
			cmd, err := command(constant.Darwin, url)
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"open", url})
		})

		Convey("Windows should go through the URL protocol handler", func() {
			cmd, err := command(constant.Windows, url)
			So(err, ShouldBeNil)
			So(cmd.Args[1:], ShouldResemble, []string{"url.dll,FileProtocolHandler", url})
		})

		Convey("Other systems should be rejected", func() {
			_, err := command("plan9", url)
			So(err, ShouldNotBeNil)
		})
	})
}
