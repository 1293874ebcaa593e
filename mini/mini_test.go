package mini

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/poolsuite-cli/poolsuite/session"
	"github.com/poolsuite-cli/poolsuite/source"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecode(t *testing.T) {
	Convey("decode", t, func() {
		So(decode([]byte("n")), ShouldResemble, []string{session.KeyNext})
		So(decode([]byte("\x1b[D\x1b[C")), ShouldResemble, []string{session.KeySeekBack, session.KeySeekForward})
		So(decode([]byte(" \t")), ShouldResemble, []string{session.KeyPause, session.KeySwitch})
		So(decode([]byte("\x1b")), ShouldResemble, []string{session.KeyQuitAlt})
		So(decode([]byte("\x03")), ShouldResemble, []string{session.KeyInterrupt})
		So(decode([]byte("<>,.")), ShouldResemble, []string{"<", ">", ",", "."})
		So(decode([]byte("\x1b[A")), ShouldBeEmpty)
		So(decode(nil), ShouldBeEmpty)
	})
}

func TestReadKeys(t *testing.T) {
	Convey("Given keys typed on the input", t, func() {
		keys := make(chan string, 8)
		go readKeys(context.Background(), strings.NewReader("np q"), keys)

		var got []string
		timeout := time.After(time.Second)
	loop:
		for {
			select {
			case k, ok := <-keys:
				if !ok {
					break loop
				}
				got = append(got, k)
			case <-timeout:
				break loop
			}
		}

		Convey("Then they are delivered in order and the channel closes at EOF", func() {
			So(got, ShouldResemble, []string{"n", "p", session.KeyPause, "q"})
		})
	})
}

func TestLine(t *testing.T) {
	Convey("Given snapshots", t, func() {
		playing := session.Snapshot{
			Track:       &source.Track{Title: "Pool Party", Artist: "Poolsuite"},
			Index:       2,
			Total:       9,
			Position:    61,
			Duration:    200,
			PlaylistKey: "official",
		}

		Convey("Then a playing line has track, counter and clock", func() {
			line := Line(playing, 0)
			So(line, ShouldContainSubstring, "Poolsuite - Pool Party")
			So(line, ShouldContainSubstring, "[2/9]")
			So(line, ShouldContainSubstring, "1:01 / 3:20")
			So(line, ShouldEndWith, "(official)")
		})

		Convey("Then a loading line shows the message", func() {
			line := Line(session.Snapshot{LoadingMessage: "Resolving stream..."}, 0)
			So(line, ShouldContainSubstring, "Resolving stream...")
		})

		Convey("Then long lines are truncated", func() {
			So(len([]rune(Line(playing, 20))), ShouldBeLessThanOrEqualTo, 20)
		})

		Convey("Then the renderer rewrites a single line", func() {
			var out bytes.Buffer
			r := NewRenderer(&out, 80)
			r.Render(playing)
			r.Render(playing)

			So(strings.Count(out.String(), "\r"), ShouldEqual, 2)
			So(out.String(), ShouldNotContainSubstring, "\n")
		})
	})
}
