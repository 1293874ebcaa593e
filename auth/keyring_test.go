package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func TestToken(t *testing.T) {
	keyring.MockInit()

	Convey("Given an empty keyring", t, func() {
		_ = DeleteToken()

		Convey("Then no token is returned and deleting is harmless", func() {
			token, err := GetToken()
			So(err, ShouldBeNil)
			So(token, ShouldBeEmpty)
			So(DeleteToken(), ShouldBeNil)
		})

		Convey("When a header value is saved", func() {
			So(SetToken("  OAuth 2-123456-abcdef  "), ShouldBeNil)

			Convey("Then the bare token is stored", func() {
				token, err := GetToken()
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "2-123456-abcdef")
			})
		})

		Convey("When a blank token is saved", func() {
			So(SetToken("   "), ShouldNotBeNil)
		})
	})
}
