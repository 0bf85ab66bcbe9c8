package chartfile

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fixed colours shared by the renderers.
var (
	colorBackground = mustHex("#ffffff")
	colorText       = mustHex("#333333")
	colorAxis       = mustHex("#666666")
	colorGrid       = mustHex("#e0e0e0")
	colorOthers     = mustHex("#9e9e9e")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette returns n colours with evenly spaced hues at constant chroma and
// lightness, so neighbouring series stay distinguishable.
func Palette(n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]colorful.Color, n)
	for i := range colors {
		h := 250 + float64(i)*360/float64(n)
		for h >= 360 {
			h -= 360
		}
		colors[i] = colorful.Hcl(h, 0.55, 0.6).Clamped()
	}
	return colors
}
