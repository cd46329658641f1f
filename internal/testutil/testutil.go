package testutil

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WritePNG writes an image into the test's temp directory and returns its
// path.
func WritePNG(t *testing.T, name string, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.NoError(t, png.Encode(f, img))
	return path
}

// BinaryMask builds a gray mask from rows of '#' (foreground, 255) and '.'
// (background, 0). All rows must have equal length.
func BinaryMask(t *testing.T, rows ...string) *image.Gray {
	t.Helper()

	require.NotEmpty(t, rows)
	w, h := len(rows[0]), len(rows)
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for y, row := range rows {
		require.Len(t, row, w, "ragged mask row %d", y)
		for x, c := range row {
			if c == '#' {
				mask.Pix[y*mask.Stride+x] = 255
			}
		}
	}
	return mask
}
