// Package testutil generates synthetic form pages for tests.
package testutil

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PageBuilder draws a synthetic scanned form page: white background with
// black boxes and text, the shapes the detection pipeline looks for.
type PageBuilder struct {
	img *image.RGBA
}

// NewPageBuilder creates a blank white page of the given size.
func NewPageBuilder(width, height int) *PageBuilder {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return &PageBuilder{img: img}
}

// Box draws a rectangle outline with the given border thickness.
func (p *PageBuilder) Box(r image.Rectangle, thickness int) *PageBuilder {
	black := image.NewUniform(color.Black)
	top := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness)
	bottom := image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y)
	left := image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y)
	right := image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y)
	for _, side := range []image.Rectangle{top, bottom, left, right} {
		draw.Draw(p.img, side, black, image.Point{}, draw.Src)
	}
	return p
}

// FilledBox draws a solid black rectangle.
func (p *PageBuilder) FilledBox(r image.Rectangle) *PageBuilder {
	draw.Draw(p.img, r, image.NewUniform(color.Black), image.Point{}, draw.Src)
	return p
}

// Text draws a single line of text with the fixed 7x13 test font, anchored
// at the baseline origin.
func (p *PageBuilder) Text(x, y int, text string) *PageBuilder {
	drawer := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
	return p
}

// Image returns the drawn page.
func (p *PageBuilder) Image() image.Image {
	return p.img
}
