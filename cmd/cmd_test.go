package cmd

import (
	"errors"
	"testing"

	"github.com/poolsuite-cli/poolsuite/config"
	"github.com/poolsuite-cli/poolsuite/constant"
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/poolsuite-cli/poolsuite/where"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInstallCommand(t *testing.T) {
	Convey("Given a platform", t, func() {
		missing := func(string) (string, error) { return "", errors.New("not found") }

		Convey("Then darwin and windows have a fixed installer", func() {
			So(installCommand(constant.Darwin, missing), ShouldEqual, "brew install mpv")
			So(installCommand(constant.Windows, missing), ShouldEqual, "scoop install mpv")
		})

		Convey("Then linux uses the first package manager found", func() {
			only := func(manager string) func(string) (string, error) {
				return func(name string) (string, error) {
					if name == manager {
						return "/usr/bin/" + name, nil
					}
					return "", errors.New("not found")
				}
			}

			So(installCommand(constant.Linux, only("pacman")), ShouldEqual, "sudo pacman -S mpv")
			So(installCommand(constant.Linux, only("dnf")), ShouldEqual, "sudo dnf install mpv")
			So(installCommand(constant.Linux, missing), ShouldEqual, "sudo apt install mpv")
		})

		Convey("Then unknown platforms have none", func() {
			So(installCommand("plan9", missing), ShouldBeEmpty)
		})
	})
}

func TestParseValue(t *testing.T) {
	Convey("Given config fields", t, func() {
		Convey("Then values are converted to the default type", func() {
			v, err := parseValue(config.Default[key.PlayerSeekSeconds], []string{"15"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 15)

			v, err = parseValue(config.Default[key.PlaylistShuffle], []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)

			v, err = parseValue(config.Default[key.PlaylistDefault], []string{"tokyo"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "tokyo")

			v, err = parseValue(config.Default[key.PlaylistExtra], []string{"a=b", "c=d"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"a=b", "c=d"})
		})

		Convey("Then malformed or missing values fail", func() {
			_, err := parseValue(config.Default[key.PlayerSeekSeconds], []string{"ten"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(config.Default[key.PlaylistShuffle], []string{"maybe"})
			So(err, ShouldNotBeNil)

			_, err = parseValue(config.Default[key.PlaylistDefault], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("Given a misspelt key", t, func() {
		err := errUnknownKey("player.seek_second")

		Convey("Then the closest key is suggested", func() {
			So(err.Error(), ShouldContainSubstring, key.PlayerSeekSeconds)
		})
	})
}

func TestEnvNames(t *testing.T) {
	Convey("Given the registered config keys", t, func() {
		names := envNames()

		Convey("Then every key has a prefixed variable", func() {
			So(names, ShouldContain, "POOLSUITE_PLAYER_SEEK_SECONDS")
			So(names, ShouldContain, where.EnvConfigPath)
			So(len(names), ShouldEqual, len(config.EnvExposed)+1)
		})
	})
}
