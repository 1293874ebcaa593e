// Package color names the colors used by the terminal output.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors follow the terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")

	HiRed    = New("9")
	HiYellow = New("11")
	HiPurple = New("13")
)

// Poolsuite accents. These ignore the terminal theme.
var (
	Pool   = New("#5ec8d8")
	Sunset = New("#ff8c69")
	Cream  = New("#f6e7c1")
	Palm   = New("#4caf7d")
	Shade  = New("#3b6e8f")
)
