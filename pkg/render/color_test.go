package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHelpers(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 0, A: 255}

	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 0, A: 255}, DarkenColor(c))
	assert.Equal(t, color.RGBA{R: 227, G: 177, B: 127, A: 255}, LightenColor(c))
	assert.Equal(t, color.RGBA{}, Fade(c, -1))
	assert.Equal(t, c, Fade(c, 2))
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 0, A: 127}, Fade(c, 0.5))
}
