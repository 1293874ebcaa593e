package style

import "github.com/poolsuite-cli/poolsuite/color"

// Semantic roles mapped onto the palette.
var (
	AccentColor    = color.Pool
	HighlightColor = color.Sunset
	TextColor      = color.Cream
	MutedColor     = color.Shade
	SuccessColor   = color.Palm
	WarningColor   = color.HiYellow
	ErrorColor     = color.HiRed
)
