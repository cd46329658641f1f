package imgproc

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scannedLine builds a light page with a dark horizontal stroke.
func scannedLine(w, h int) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, w, h))
	for i := range g.Pix {
		g.Pix[i] = 230
	}
	for x := 2; x < w-2; x++ {
		g.Pix[(h/2)*g.Stride+x] = 20
	}
	return g
}

func TestAdaptiveThresholdGaussianInverted(t *testing.T) {
	g := scannedLine(40, 20)

	mask := AdaptiveThresholdGaussian(g, 35, 5, true)
	require.Equal(t, g.Bounds(), mask.Bounds())

	// Ink turns into foreground, paper into background.
	assert.Equal(t, uint8(255), mask.Pix[10*mask.Stride+20])
	assert.Equal(t, uint8(0), mask.Pix[2*mask.Stride+20])
}

func TestAdaptiveThresholdGaussianUniformPageIsBackground(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 30, 30))
	for i := range g.Pix {
		g.Pix[i] = 240
	}

	mask := AdaptiveThresholdGaussian(g, 35, 5, true)
	for _, v := range mask.Pix {
		assert.Equal(t, uint8(0), v)
	}
}

func TestOtsuThresholdBimodal(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 5 {
				g.Pix[y*g.Stride+x] = 40
			} else {
				g.Pix[y*g.Stride+x] = 210
			}
		}
	}

	out := OtsuThreshold(g)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := uint8(0)
			if x >= 5 {
				want = 255
			}
			assert.Equal(t, want, out.Pix[y*out.Stride+x], "pixel (%d,%d)", x, y)
		}
	}
}
