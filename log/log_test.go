package log

import (
	"strings"
	"testing"
	"time"

	"github.com/poolsuite-cli/poolsuite/filesystem"
	"github.com/poolsuite-cli/poolsuite/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("Then no file is created", func() {
			Info("nothing")
			exists, err := filesystem.API().Exists(Path(time.Now()))
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		viper.Set(key.LogsJson, true)
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("Then entries at or above the level are appended", func() {
			Debugf("seek %d", 10)
			Tracef("hidden")

			content, err := filesystem.API().ReadFile(Path(time.Now()))
			So(err, ShouldBeNil)
			So(string(content), ShouldContainSubstring, `"msg":"seek 10"`)
			So(strings.Contains(string(content), "hidden"), ShouldBeFalse)
		})
	})
}
