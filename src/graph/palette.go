package graph

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/BuildTimings/src/timings"
)

var (
	colorBackground     = drawing.ColorFromHex("f7f7f7")
	colorAxes           = drawing.ColorFromHex("303030")
	colorGrid           = drawing.ColorFromHex("e6e6e6")
	colorText           = drawing.ColorFromHex("303030")
	colorCodegen        = drawing.ColorFromHex("aa95e8")
	colorCustomBuild    = drawing.ColorFromHex("f0b165")
	colorNotCustomBuild = drawing.ColorFromHex("95cce8")
	colorDepLine        = drawing.ColorFromHex("dddddd")
	colorDepHighlighted = drawing.ColorFromHex("000000")
	colorCPU            = drawing.Color{R: 250, G: 119, B: 0, A: 51}
	colorWaiting        = drawing.ColorFromHex("ff0000")
	colorInactive       = drawing.ColorFromHex("0000ff")
	colorActive         = drawing.ColorFromHex("008000")
	colorLegendBox      = drawing.ColorWhite
)

// Background returns the light neutral canvas tone, for callers that create content
// surfaces of their own.
func Background() drawing.Color { return colorBackground }

// ModeColor is the block fill for a unit. Build-script execution stands out from
// ordinary compiler invocations.
func ModeColor(m timings.Mode) drawing.Color {
	switch m {
	case timings.ModeRunCustomBuild:
		return colorCustomBuild
	case timings.ModeBuild, timings.ModeCheck, timings.ModeDoc, timings.ModeDoctest, timings.ModeTest:
		return colorNotCustomBuild
	}
	return colorNotCustomBuild
}
