package ocr

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclayer/formlens/internal/testutil"
)

func TestPrepareRegionUpscalesAndBinarizes(t *testing.T) {
	page := testutil.NewPageBuilder(80, 40).
		FilledBox(image.Rect(10, 10, 30, 25)).
		Image()

	out := prepareRegion(page, image.Rect(5, 5, 45, 35))

	require.Equal(t, image.Rect(0, 0, 80, 60), out.Bounds())
	for _, v := range out.Pix {
		assert.True(t, v == 0 || v == 255, "binarized output went gray: %d", v)
	}
}

func TestPrepareRegionKeepsInkDark(t *testing.T) {
	page := testutil.NewPageBuilder(40, 40).
		FilledBox(image.Rect(10, 10, 30, 30)).
		Image()

	out := prepareRegion(page, image.Rect(0, 0, 40, 40))

	// The box center at the doubled scale stays on the dark side of the
	// Otsu split; the page margin stays light.
	assert.Equal(t, uint8(0), out.Pix[40*out.Stride+40])
	assert.Equal(t, uint8(255), out.Pix[2*out.Stride+2])
}
