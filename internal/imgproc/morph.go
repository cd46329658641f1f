package imgproc

import "image"

// Dilate applies a rectangular max filter of the given odd kernel size to a
// binary plane.
func Dilate(g *image.Gray, ksize int) *image.Gray {
	return rankFilter(g, ksize, true)
}

// Erode applies a rectangular min filter of the given odd kernel size to a
// binary plane.
func Erode(g *image.Gray, ksize int) *image.Gray {
	return rankFilter(g, ksize, false)
}

// Close performs a morphological close (dilate then erode) with a
// rectangular kernel of the given odd size.
func Close(g *image.Gray, ksize int) *image.Gray {
	return Erode(Dilate(g, ksize), ksize)
}

func rankFilter(g *image.Gray, ksize int, takeMax bool) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	radius := ksize / 2
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var best uint8
			if !takeMax {
				best = 255
			}
			for dy := -radius; dy <= radius; dy++ {
				sy := clampIndex(y+dy, h)
				for dx := -radius; dx <= radius; dx++ {
					sx := clampIndex(x+dx, w)
					v := g.Pix[sy*g.Stride+sx]
					if takeMax {
						if v > best {
							best = v
						}
					} else if v < best {
						best = v
					}
				}
			}
			out.Pix[y*out.Stride+x] = best
		}
	}
	return out
}
