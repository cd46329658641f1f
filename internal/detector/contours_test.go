package detector

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclayer/formlens/internal/testutil"
)

func TestContourBoxesDiagonalPixelsConnect(t *testing.T) {
	mask := testutil.BinaryMask(t,
		"#....",
		".#...",
		"..#..",
		".....",
	)

	boxes := contourBoxes(mask)
	require.Len(t, boxes, 1)
	assert.Equal(t, image.Rect(0, 0, 3, 3), boxes[0])
}

func TestContourBoxesSeparateComponents(t *testing.T) {
	mask := testutil.BinaryMask(t,
		"##...##",
		"##...##",
		".......",
	)

	boxes := contourBoxes(mask)
	require.Len(t, boxes, 2)
	assert.Equal(t, image.Rect(0, 0, 2, 2), boxes[0])
	assert.Equal(t, image.Rect(5, 0, 7, 2), boxes[1])
}

func TestContourBoxesEnclosedHole(t *testing.T) {
	mask := testutil.BinaryMask(t,
		"#####",
		"#...#",
		"#...#",
		"#####",
	)

	boxes := contourBoxes(mask)
	require.Len(t, boxes, 2)
	// The outer component first, then the hole inflated by one pixel.
	assert.Equal(t, image.Rect(0, 0, 5, 4), boxes[0])
	assert.Equal(t, image.Rect(0, 0, 5, 4), boxes[1])
}

func TestContourBoxesBorderBackgroundIsNotAHole(t *testing.T) {
	mask := testutil.BinaryMask(t,
		".....",
		".###.",
		".....",
	)

	boxes := contourBoxes(mask)
	require.Len(t, boxes, 1)
	assert.Equal(t, image.Rect(1, 1, 4, 2), boxes[0])
}

func TestContourBoxesEmptyMask(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 0, 0))
	assert.Empty(t, contourBoxes(mask))
}
