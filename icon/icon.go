// Package icon renders status glyphs in the variant chosen by icons.variant.
package icon

import (
	"github.com/poolsuite-cli/poolsuite/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a UI symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Playing
	Paused
	Music
	Skip
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×﹏×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👨‍🍳",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・ω・)",
		squares: "🟦",
	},
	Playing: {
		emoji:   "▶️",
		nerd:    "",
		plain:   "▶",
		kaomoji: "(▶‿▶)",
		squares: "🟩",
	},
	Paused: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "││",
		kaomoji: "(－_－) zzZ",
		squares: "🟨",
	},
	Music: {
		emoji:   "🎶",
		nerd:    "",
		plain:   "♪",
		kaomoji: "♪(´ε` )",
		squares: "🟪",
	},
	Skip: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   ">>",
		kaomoji: "(ノ°▽°)ノ",
		squares: "🟧",
	},
}

func (d *iconDef) variant(name string) string {
	switch name {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Get renders i in the configured variant. Unknown variants render nothing.
func Get(i Icon) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.variant(viper.GetString(key.IconsVariant))
}
