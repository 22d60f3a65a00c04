// pkg/render/color.go
package render

import "image/color"

// Palette holds all the color definitions needed to draw the playfield.
type Palette struct {
	Background  color.RGBA
	Path        color.RGBA
	NoBuild     color.RGBA
	Text        color.RGBA
	Range       color.RGBA
	Frozen      color.RGBA
	Slowed      color.RGBA
	Stroke      color.RGBA
	StrokeWidth float32
	PathWidth   float32
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor moves a color halfway to white.
func LightenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: c.R + (255-c.R)/2,
		G: c.G + (255-c.G)/2,
		B: c.B + (255-c.B)/2,
		A: c.A,
	}
}

// Fade scales the alpha channel by k in [0, 1]. Color channels are
// premultiplied, so they are scaled too.
func Fade(c color.RGBA, k float64) color.RGBA {
	if k < 0 {
		k = 0
	}
	if k > 1 {
		k = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: uint8(float64(c.A) * k),
	}
}
