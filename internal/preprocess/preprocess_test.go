package preprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclayer/formlens/internal/testutil"
)

func TestBuildMaskInvertsInk(t *testing.T) {
	page := testutil.NewPageBuilder(120, 80).
		FilledBox(image.Rect(20, 20, 60, 50)).
		Image()

	mask := BuildMask(page)
	require.Equal(t, image.Rect(0, 0, 120, 80), mask.Bounds())

	// The inked interior edge is foreground; the adaptive threshold keeps
	// only local contrast, so sample near the box border.
	assert.Equal(t, uint8(255), mask.Pix[21*mask.Stride+21])
	assert.Equal(t, uint8(255), mask.Pix[48*mask.Stride+58])

	// Paper far away from any ink stays background.
	assert.Equal(t, uint8(0), mask.Pix[70*mask.Stride+100])
}

func TestBuildMaskBlankPage(t *testing.T) {
	page := testutil.NewPageBuilder(60, 60).Image()

	mask := BuildMask(page)
	for _, v := range mask.Pix {
		assert.Equal(t, uint8(0), v)
	}
}

func TestBuildMaskOutlineKeepsInteriorOpen(t *testing.T) {
	page := testutil.NewPageBuilder(100, 100).
		Box(image.Rect(10, 10, 90, 90), 2).
		Image()

	mask := BuildMask(page)

	// Border strokes become foreground, the box interior stays open.
	assert.Equal(t, uint8(255), mask.Pix[10*mask.Stride+50])
	assert.Equal(t, uint8(0), mask.Pix[50*mask.Stride+50])
}
