package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poolsuite-cli/poolsuite/session"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStop(t *testing.T) {
	Convey("Given playback that is still running", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		keys := make(chan string, 1)
		errs := make(chan error, 1)

		Convey("When it ignores keys until its context ends", func() {
			keys <- session.KeyNext

			go func() {
				<-ctx.Done()
				errs <- ctx.Err()
			}()

			done := make(chan error, 1)
			go func() { done <- stop(cancel, keys, errs) }()

			Convey("Then stopping cancels it and returns its error", func() {
				select {
				case err := <-done:
					So(errors.Is(err, context.Canceled), ShouldBeTrue)
				case <-time.After(time.Second):
					So("stop did not return", ShouldBeEmpty)
				}
			})
		})

		Convey("When it quits on the quit key", func() {
			go func() {
				if <-keys == session.KeyQuit {
					errs <- nil
				}
			}()

			Convey("Then stopping returns cleanly", func() {
				So(stop(cancel, keys, errs), ShouldBeNil)
			})
		})
	})
}
