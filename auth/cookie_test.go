package auth

import (
	"errors"
	"testing"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

func TestCookie(t *testing.T) {
	Convey("Given a cookie file with line breaks", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/cookie.txt", []byte("PLAY_SESSION=abc;\r\n CloudFront-Policy=xyz\n"), 0600), ShouldBeNil)

		Convey("Reading it should join the lines", func() {
			cookie, err := ReadCookieFile("/cookie.txt")
			So(err, ShouldBeNil)
			So(cookie, ShouldEqual, "PLAY_SESSION=abc; CloudFront-Policy=xyz")
		})

		Convey("When auth.cookie_file points at it", func() {
			viper.Set(key.AuthCookieFile, "/cookie.txt")
			defer viper.Set(key.AuthCookieFile, "")

			cookie, source, err := Cookie()

			Convey("It should take precedence over the keyring", func() {
				So(err, ShouldBeNil)
				So(source, ShouldEqual, FromFile)
				So(cookie, ShouldStartWith, "PLAY_SESSION=abc")
			})
		})

		Convey("Importing it should fill the keyring", func() {
			So(Import("/cookie.txt"), ShouldBeNil)
			defer DeleteCookie()

			cookie, source, err := Cookie()
			So(err, ShouldBeNil)
			So(source, ShouldEqual, FromKeyring)
			So(cookie, ShouldEqual, "PLAY_SESSION=abc; CloudFront-Policy=xyz")
		})
	})

	Convey("Given no cookie anywhere", t, func() {
		_ = DeleteCookie()

		_, _, err := Cookie()

		Convey("It should ask the user to set one", func() {
			So(errors.Is(err, ErrNoCookie), ShouldBeTrue)
		})
	})

	Convey("An empty cookie file should be rejected", t, func() {
		filesystem.SetMemMapFs()
		So(filesystem.API().WriteFile("/empty.txt", []byte("\r\n"), 0600), ShouldBeNil)

		_, err := ReadCookieFile("/empty.txt")
		So(err, ShouldNotBeNil)
	})
}
