package imgproc

import (
	"image"

	"github.com/doclayer/formlens/internal/mempool"
)

// AdaptiveThresholdGaussian binarizes a gray plane against a per-pixel
// threshold computed as the Gaussian-weighted mean of the blockSize
// neighborhood minus c. With inverted=true, pixels above the threshold
// become 0 and the rest 255 (OpenCV THRESH_BINARY_INV).
func AdaptiveThresholdGaussian(g *image.Gray, blockSize int, c float64, inverted bool) *image.Gray {
	src, w, h := grayToFloat(g)
	mean := convolveSeparable(src, w, h, gaussianKernel(blockSize, 0))
	defer mempool.PutFloat64(src)
	defer mempool.PutFloat64(mean)

	lo, hi := uint8(0), uint8(255)
	if inverted {
		lo, hi = 255, 0
	}
	out := image.NewGray(image.Rect(0, 0, w, h))
	for i, v := range src {
		if v > mean[i]-c {
			out.Pix[i/w*out.Stride+i%w] = hi
		} else {
			out.Pix[i/w*out.Stride+i%w] = lo
		}
	}
	return out
}

// OtsuThreshold binarizes a gray plane using Otsu's method: the global
// threshold maximizing between-class variance. Pixels above the threshold
// become 255.
func OtsuThreshold(g *image.Gray) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()

	var hist [256]int
	for y := 0; y < h; y++ {
		for _, v := range g.Pix[y*g.Stride : y*g.Stride+w] {
			hist[v]++
		}
	}

	total := w * h
	var sumAll float64
	for v, n := range hist {
		sumAll += float64(v) * float64(n)
	}

	var sumBg float64
	var weightBg int
	var bestVar float64
	threshold := 0
	for t := 0; t < 256; t++ {
		weightBg += hist[t]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}
		sumBg += float64(t) * float64(hist[t])
		meanBg := sumBg / float64(weightBg)
		meanFg := (sumAll - sumBg) / float64(weightFg)
		diff := meanBg - meanFg
		between := float64(weightBg) * float64(weightFg) * diff * diff
		if between > bestVar {
			bestVar = between
			threshold = t
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if int(g.Pix[y*g.Stride+x]) > threshold {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
