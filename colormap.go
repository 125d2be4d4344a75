package mandelview

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette tuning. The period and offset control the banding rhythm and the
// starting hue of the escape gradient; changing them changes the picture.
const (
	HuePeriod     = 50.0
	HueOffset     = 0.95
	HueSaturation = 0.8
	HueValue      = 1.0
)

// Colorize maps an escape result to a display color: solid black inside the
// set, a fully saturated hue cycling with period HuePeriod outside it.
// Alpha is always opaque.
func Colorize(r EscapeResult) color.RGBA {
	if !r.Escaped {
		return color.RGBA{A: 255}
	}

	h := float64(r.Iter)/HuePeriod + HueOffset
	h -= math.Floor(h)

	cr, cg, cb := colorful.Hsv(h*360, HueSaturation, HueValue).RGB255()
	return color.RGBA{R: cr, G: cg, B: cb, A: 255}
}
