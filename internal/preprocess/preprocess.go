// Package preprocess turns a raster page image into the binary mask the
// region detector consumes.
package preprocess

import (
	"image"

	"github.com/doclayer/formlens/internal/imgproc"
)

const (
	blurKernelSize     = 5
	thresholdBlockSize = 35
	thresholdConstant  = 5
	closeKernelSize    = 3
)

// BuildMask converts a page image into a binary mask suitable for contour
// extraction. The stages run in a fixed order regardless of image content:
// grayscale, 5x5 Gaussian blur, inverted Gaussian adaptive threshold
// (block 35, offset 5), and a 3x3 rectangular morphological close. The
// result has the same pixel dimensions as the input and every pixel is
// either 0 or 255.
func BuildMask(img image.Image) *image.Gray {
	gray := imgproc.Grayscale(img)
	blurred := imgproc.GaussianBlur(gray, blurKernelSize, 0)
	binary := imgproc.AdaptiveThresholdGaussian(blurred, thresholdBlockSize, thresholdConstant, true)
	return imgproc.Close(binary, closeKernelSize)
}
