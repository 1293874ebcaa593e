package where

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/poolsuite-cli/poolsuite/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Use in-memory filesystem for tests to avoid creating real directories
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Tracks() and ClientID() live in the cache directory", func() {
			So(filepath.Dir(Tracks()), ShouldEqual, Cache())
			So(filepath.Dir(ClientID()), ShouldEqual, Cache())
		})

		Convey("Config() honours the override variable", func() {
			t.Setenv(EnvConfigPath, filepath.Join(os.TempDir(), "poolsuite-test-config"))
			So(Config(), ShouldEqual, filepath.Join(os.TempDir(), "poolsuite-test-config"))
		})

		Convey("Logs()", func() {
			path := Logs()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})
	})
}
