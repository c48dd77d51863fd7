package visual

import (
	"image/color"

	"github.com/zucenko/pathviz/model"
)

func HexToColour(u uint32) color.RGBA {
	return color.RGBA{R: uint8(u >> 16), G: uint8(u >> 8), B: uint8(u), A: 0xff}
}

var (
	COLOR_DEFAULT = HexToColour(0x3b4550)
	COLOR_START   = HexToColour(0x0088cc)
	COLOR_END     = HexToColour(0xedaf1f)
	COLOR_WALL    = HexToColour(0x000000)
	COLOR_OPEN    = HexToColour(0x0abdde)
	COLOR_CLOSED  = HexToColour(0x00adb5)
	COLOR_PATH    = HexToColour(0xffffff)
	COLOR_GRID    = HexToColour(0x8ea6b4)
	COLOR_HUD     = HexToColour(0x1e242b)
)

var tagColours = map[model.Tag]color.RGBA{
	model.Default: COLOR_DEFAULT,
	model.Start:   COLOR_START,
	model.End:     COLOR_END,
	model.Wall:    COLOR_WALL,
	model.Open:    COLOR_OPEN,
	model.Closed:  COLOR_CLOSED,
	model.Path:    COLOR_PATH,
}

func TagColour(t model.Tag) color.RGBA {
	if c, ok := tagColours[t]; ok {
		return c
	}
	return COLOR_DEFAULT
}

// Blend mixes from towards to; alpha 0 is from, 1 is to.
func Blend(from, to color.RGBA, alpha float32) color.RGBA {
	if alpha <= 0 {
		return from
	}
	if alpha >= 1 {
		return to
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*alpha + 0.5)
	}
	return color.RGBA{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B), A: 0xff}
}
