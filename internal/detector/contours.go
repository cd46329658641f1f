package detector

import (
	"image"

	"github.com/doclayer/formlens/internal/mempool"
)

// contourBoxes returns the bounding rectangles of the full contour tree of a
// binary mask: one box per 8-connected foreground component at every nesting
// level, plus one box per enclosed background hole. Hole boxes are inflated
// by one pixel to cover the surrounding border, mirroring how a traced hole
// border lies on the adjacent foreground pixels. The returned order is
// deterministic (scan order, foreground components before holes).
func contourBoxes(mask *image.Gray) []image.Rectangle {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	boxes := componentBoxes(mask, w, h, true)
	for _, hole := range holeBoxes(mask, w, h) {
		inflated := image.Rect(hole.Min.X-1, hole.Min.Y-1, hole.Max.X+1, hole.Max.Y+1)
		boxes = append(boxes, inflated.Intersect(image.Rect(0, 0, w, h)))
	}
	return boxes
}

// componentBoxes labels connected components of the foreground (eightConn)
// or background (!eightConn, 4-connected) and returns one bounding box per
// component, in scan order of each component's first pixel.
func componentBoxes(mask *image.Gray, w, h int, eightConn bool) []image.Rectangle {
	visited := mempool.GetBool(w * h)
	defer mempool.PutBool(visited)
	var boxes []image.Rectangle
	var stack []int

	on := func(x, y int) bool {
		v := mask.Pix[y*mask.Stride+x] != 0
		if eightConn {
			return v
		}
		return !v
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || !on(x, y) {
				continue
			}
			minX, minY, maxX, maxY := x, y, x, y
			visited[idx] = true
			stack = append(stack[:0], idx)
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := cur%w, cur/w
				if cx < minX {
					minX = cx
				}
				if cx > maxX {
					maxX = cx
				}
				if cy < minY {
					minY = cy
				}
				if cy > maxY {
					maxY = cy
				}
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						if !eightConn && dx != 0 && dy != 0 {
							continue
						}
						nx, ny := cx+dx, cy+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						nidx := ny*w + nx
						if !visited[nidx] && on(nx, ny) {
							visited[nidx] = true
							stack = append(stack, nidx)
						}
					}
				}
			}
			boxes = append(boxes, image.Rect(minX, minY, maxX+1, maxY+1))
		}
	}
	return boxes
}

// holeBoxes returns bounding boxes of 4-connected background components that
// do not touch the image border, i.e. regions fully enclosed by foreground.
func holeBoxes(mask *image.Gray, w, h int) []image.Rectangle {
	var holes []image.Rectangle
	for _, box := range componentBoxes(mask, w, h, false) {
		if box.Min.X == 0 || box.Min.Y == 0 || box.Max.X == w || box.Max.Y == h {
			continue
		}
		holes = append(holes, box)
	}
	return holes
}
