// Package imgproc provides single-channel image operations used by the
// layout pipeline: grayscale conversion, blurring, thresholding, binary
// morphology and region statistics. Masks are *image.Gray planes holding
// 0 or 255 per pixel.
package imgproc

import (
	"image"
	"image/color"
)

// Grayscale converts an image to an 8-bit gray plane using ITU-R BT.601
// luma weights (0.299, 0.587, 0.114).
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			v := (299*(r>>8) + 587*(g>>8) + 114*(bl>>8) + 500) / 1000
			out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: uint8(v)}) //nolint:gosec // v <= 255
		}
	}
	return out
}

// ClipRect clamps a rectangle to a width x height plane, keeping at least a
// single pixel of extent when the origin lies inside the plane.
func ClipRect(r image.Rectangle, width, height int) image.Rectangle {
	x := max(0, r.Min.X)
	y := max(0, r.Min.Y)
	w := min(r.Dx(), max(1, width-x))
	h := min(r.Dy(), max(1, height-y))
	return image.Rect(x, y, x+w, y+h)
}

// MeanValue returns the mean pixel value (0..255) of the plane within the
// rectangle, which is clipped to the plane bounds first. An empty clipped
// region yields 0.
func MeanValue(g *image.Gray, r image.Rectangle) float64 {
	b := g.Bounds()
	c := ClipRect(r, b.Dx(), b.Dy())
	if c.Dx() <= 0 || c.Dy() <= 0 {
		return 0
	}
	var sum uint64
	for y := c.Min.Y; y < c.Max.Y; y++ {
		row := g.Pix[(y-b.Min.Y)*g.Stride+(c.Min.X-b.Min.X):]
		for x := 0; x < c.Dx(); x++ {
			sum += uint64(row[x])
		}
	}
	return float64(sum) / float64(c.Dx()*c.Dy())
}

// SubGray returns a copy of the rectangular region of the plane.
func SubGray(g *image.Gray, r image.Rectangle) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		src := g.Pix[(r.Min.Y+y-g.Rect.Min.Y)*g.Stride+(r.Min.X-g.Rect.Min.X):]
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()], src[:r.Dx()])
	}
	return out
}
