package player

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func fakeOptions(dir string) *Options {
	return &Options{
		Executable:     os.Args[0],
		SocketDir:      dir,
		ConnectTimeout: 3 * time.Second,
		RequestTimeout: time.Second,
	}
}

func received(ch <-chan struct{}, d time.Duration) int {
	count := 0
	deadline := time.After(d)
	for {
		select {
		case <-ch:
			count++
		case <-deadline:
			return count
		}
	}
}

func closedWithin(ch <-chan struct{}, d time.Duration) bool {
	select {
	case <-ch:
		return true
	default:
	}

	if d <= 0 {
		return false
	}

	select {
	case <-ch:
		return true
	case <-time.After(d):
		return false
	}
}

func TestMPVWithoutProcess(t *testing.T) {
	Convey("Given a fresh controller", t, func() {
		mpv := NewMPV(&Options{Executable: "poolsuite-definitely-not-mpv"})
		ctx := context.Background()

		Convey("Then it is disconnected and nothing is playing", func() {
			So(mpv.State(), ShouldEqual, Disconnected)
			So(mpv.Socket(), ShouldBeEmpty)
			So(closedWithin(mpv.WaitForEnd(), 0), ShouldBeTrue)
			So(mpv.Position(ctx), ShouldEqual, 0)
			So(mpv.Duration(ctx), ShouldEqual, 0)
			So(mpv.IsPaused(ctx), ShouldBeFalse)
			So(errors.Is(mpv.Seek(ctx, 10), ErrClosed), ShouldBeTrue)
			So(errors.Is(mpv.TogglePause(ctx), ErrClosed), ShouldBeTrue)
		})

		Convey("When it quits repeatedly", func() {
			Convey("Then nothing fails", func() {
				So(mpv.Quit(), ShouldBeNil)
				So(mpv.Quit(), ShouldBeNil)
				So(mpv.State(), ShouldEqual, Disconnected)
			})
		})

		Convey("When the executable is missing", func() {
			err := mpv.Play(ctx, "https://example.com/a.mp3")

			Convey("Then a spawn error is returned and the playback has ended", func() {
				So(errors.Is(err, ErrSpawn), ShouldBeTrue)
				So(mpv.State(), ShouldEqual, Closed)
				So(closedWithin(mpv.WaitForEnd(), 0), ShouldBeTrue)
			})
		})

		Convey("When the target looks like a flag", func() {
			err := mpv.Play(ctx, "--script=evil.lua")

			Convey("Then it is refused", func() {
				So(errors.Is(err, ErrSpawn), ShouldBeTrue)
			})
		})
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		for _, bad := range []string{"", "  ", "-x", "ftp://host/a", "https://a\nb", "file://etc/passwd"} {
			_, err := sanitizeMediaTarget(bad)
			So(err, ShouldNotBeNil)
		}

		got, err := sanitizeMediaTarget(" https://cf-hls-media.sndcdn.com/playlist.m3u8 ")
		So(err, ShouldBeNil)
		So(got, ShouldEqual, "https://cf-hls-media.sndcdn.com/playlist.m3u8")

		got, err = sanitizeMediaTarget("music/../music/track.mp3")
		So(err, ShouldBeNil)
		So(got, ShouldEqual, "music/track.mp3")
	})
}

func TestMPVWithFakeProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix sockets only")
	}

	t.Setenv(fakeMPVEnv, "1")

	dir, err := os.MkdirTemp("", "ps")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	Convey("Given a controller driving a fake mpv", t, func() {
		mpv := NewMPV(fakeOptions(dir))
		ctx := context.Background()
		defer mpv.Quit()

		Convey("When a track plays", func() {
			So(mpv.Play(ctx, "https://example.com/long.mp3"), ShouldBeNil)
			socket := mpv.Socket()

			Convey("Then it is connected and answers queries", func() {
				So(mpv.State(), ShouldEqual, Connected)
				So(socket, ShouldStartWith, dir)
				So(mpv.Position(ctx), ShouldEqual, 12.5)
				So(mpv.Duration(ctx), ShouldEqual, 180)
				So(mpv.IsPaused(ctx), ShouldBeFalse)
				So(closedWithin(mpv.WaitForEnd(), 50*time.Millisecond), ShouldBeFalse)
			})

			Convey("Then pause toggles both ways", func() {
				So(mpv.TogglePause(ctx), ShouldBeNil)
				So(mpv.IsPaused(ctx), ShouldBeTrue)
				So(mpv.TogglePause(ctx), ShouldBeNil)
				So(mpv.IsPaused(ctx), ShouldBeFalse)
			})

			Convey("Then seeking reports the new position with the cached duration", func() {
				type tick struct{ position, duration float64 }
				ticks := make(chan tick, 16)
				mpv.OnTimeChange(func(position, duration float64) {
					select {
					case ticks <- tick{position, duration}:
					default:
					}
				})

				So(mpv.Seek(ctx, 10), ShouldBeNil)

				var got tick
				deadline := time.After(2 * time.Second)
			wait:
				for {
					select {
					case got = <-ticks:
						if got.position == 22.5 {
							break wait
						}
					case <-deadline:
						break wait
					}
				}

				So(got.position, ShouldEqual, 22.5)
				So(got.duration, ShouldEqual, 180)
			})

			Convey("Then quitting ends playback and removes the socket", func() {
				ended := make(chan struct{}, 2)
				mpv.OnEnd(func() { ended <- struct{}{} })

				So(mpv.Quit(), ShouldBeNil)
				So(mpv.State(), ShouldEqual, Closed)
				So(closedWithin(mpv.WaitForEnd(), time.Second), ShouldBeTrue)

				_, err := os.Stat(socket)
				So(os.IsNotExist(err), ShouldBeTrue)

				So(mpv.Quit(), ShouldBeNil)
				So(received(ended, 200*time.Millisecond), ShouldEqual, 1)
			})

			Convey("Then playing again replaces the process", func() {
				So(mpv.Play(ctx, "https://example.com/next.mp3"), ShouldBeNil)
				So(mpv.Socket(), ShouldNotEqual, socket)

				_, err := os.Stat(socket)
				So(os.IsNotExist(err), ShouldBeTrue)
				So(mpv.State(), ShouldEqual, Connected)
			})
		})

		Convey("When the track ends by itself", func() {
			So(mpv.Play(ctx, "https://example.com/short.mp3"), ShouldBeNil)

			ended := make(chan struct{}, 2)
			mpv.OnEnd(func() { ended <- struct{}{} })

			Convey("Then the end is observed exactly once", func() {
				So(closedWithin(mpv.WaitForEnd(), 3*time.Second), ShouldBeTrue)
				So(received(ended, 200*time.Millisecond), ShouldEqual, 1)
			})
		})

		Convey("When the socket never appears", func() {
			mpv := NewMPV(&Options{
				Executable:     os.Args[0],
				SocketDir:      dir,
				ConnectTimeout: 300 * time.Millisecond,
			})

			err := mpv.Play(ctx, "https://example.com/no-socket.mp3")

			Convey("Then a connect error is returned and the process is gone", func() {
				So(errors.Is(err, ErrConnect), ShouldBeTrue)
				So(mpv.State(), ShouldEqual, Closed)
				So(closedWithin(mpv.WaitForEnd(), 0), ShouldBeTrue)
			})
		})
	})
}

func TestClosedWithin(t *testing.T) {
	Convey("Given a closed and an open channel", t, func() {
		closed := make(chan struct{})
		close(closed)
		open := make(chan struct{})

		Convey("Then the check without a wait is exact", func() {
			for range 20 {
				So(closedWithin(closed, 0), ShouldBeTrue)
				So(closedWithin(open, 0), ShouldBeFalse)
			}
		})
	})
}
