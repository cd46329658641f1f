package imgproc

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDilateGrowsForeground(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 7, 7))
	g.Pix[3*g.Stride+3] = 255

	out := Dilate(g, 3)

	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			assert.Equal(t, uint8(255), out.Pix[y*out.Stride+x], "pixel (%d,%d)", x, y)
		}
	}
	assert.Equal(t, uint8(0), out.Pix[1*out.Stride+1])
}

func TestErodeRemovesThinForeground(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 7, 7))
	for x := 0; x < 7; x++ {
		g.Pix[3*g.Stride+x] = 255
	}

	out := Erode(g, 3)
	for _, v := range out.Pix {
		assert.Equal(t, uint8(0), v)
	}
}

func TestCloseBridgesSmallGaps(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 9, 5))
	for x := 0; x < 9; x++ {
		if x == 4 {
			continue // one-pixel gap in the stroke
		}
		g.Pix[2*g.Stride+x] = 255
	}

	out := Close(g, 3)
	assert.Equal(t, uint8(255), out.Pix[2*out.Stride+4])
}
