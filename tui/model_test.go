package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/poolsuite-cli/poolsuite/session"
	"github.com/poolsuite-cli/poolsuite/source"
	. "github.com/smartystreets/goconvey/convey"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel(t *testing.T) {
	Convey("Given a model", t, func() {
		keys := make(chan string, 8)
		m := newModel(keys, &Options{SeekSeconds: 15})

		received := func() string {
			select {
			case k := <-keys:
				return k
			default:
				return ""
			}
		}

		Convey("When keys are pressed", func() {
			Convey("Then they reach the session under their canonical names", func() {
				for msg, want := range map[string]tea.KeyMsg{
					session.KeyNext:        runes("n"),
					session.KeyPrev:        runes("<"),
					session.KeySeekBack:    runes(","),
					session.KeySeekForward: {Type: tea.KeyRight},
					session.KeyPause:       {Type: tea.KeySpace, Runes: []rune{' '}},
					session.KeySwitch:      {Type: tea.KeyTab},
					session.KeyQuit:        {Type: tea.KeyEsc},
				} {
					m.Update(want)
					So(received(), ShouldEqual, msg)
				}
			})

			Convey("Then unbound keys are ignored", func() {
				m.Update(runes("z"))
				So(received(), ShouldBeEmpty)
			})

			Convey("Then interrupt asks the session to quit first", func() {
				_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
				So(received(), ShouldEqual, session.KeyQuit)
				So(cmd, ShouldNotBeNil)
				So(m.quitting, ShouldBeTrue)
			})
		})

		Convey("When a loading snapshot arrives", func() {
			m.Update(snapshotMsg(session.Snapshot{
				PlaylistKey:    "tokyo",
				AvailableKeys:  []string{"official", "tokyo"},
				LoadingMessage: "Fetching playlist...",
			}))

			Convey("Then the tabs and message are shown", func() {
				view := m.View()
				So(view, ShouldContainSubstring, "Fetching playlist...")
				So(view, ShouldContainSubstring, "official")
				So(view, ShouldContainSubstring, "tokyo")
			})
		})

		Convey("When a playing snapshot arrives", func() {
			m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
			m.Update(snapshotMsg(session.Snapshot{
				Track:         &source.Track{Title: "Pool Party", Artist: "Poolsuite", Duration: 3 * time.Minute},
				Index:         3,
				Total:         12,
				Position:      42,
				Duration:      180,
				PlaylistKey:   "official",
				AvailableKeys: []string{"official", "tokyo"},
			}))

			Convey("Then the track, counter and clock are shown", func() {
				view := m.View()
				So(view, ShouldContainSubstring, "Poolsuite - Pool Party")
				So(view, ShouldContainSubstring, "[ 3 / 12 ]")
				So(view, ShouldContainSubstring, "0:42 / 3:00")
			})
		})

		Convey("When playback is done", func() {
			_, cmd := m.Update(doneMsg{})

			Convey("Then the program quits and clears", func() {
				So(cmd, ShouldNotBeNil)
				So(m.View(), ShouldBeEmpty)
			})
		})
	})
}
