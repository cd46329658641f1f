package imgproc

import (
	"image"
	"math"

	"github.com/doclayer/formlens/internal/mempool"
)

// autoSigma reproduces the OpenCV rule for deriving a Gaussian sigma from a
// kernel size when sigma is given as zero.
func autoSigma(ksize int) float64 {
	return 0.3*(float64(ksize-1)*0.5-1) + 0.8
}

// gaussianKernel returns a normalized 1D Gaussian kernel of the given odd
// size. sigma <= 0 selects the size-derived default.
func gaussianKernel(ksize int, sigma float64) []float64 {
	if sigma <= 0 {
		sigma = autoSigma(ksize)
	}
	k := make([]float64, ksize)
	mid := ksize / 2
	var sum float64
	for i := range k {
		d := float64(i - mid)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// clampIndex replicates the border pixel, matching the default OpenCV border
// behavior for blurs.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// convolveSeparable applies a 1D kernel horizontally then vertically over a
// float plane of w x h values.
func convolveSeparable(src []float64, w, h int, kernel []float64) []float64 {
	mid := len(kernel) / 2
	tmp := mempool.GetFloat64(len(src))
	defer mempool.PutFloat64(tmp)
	for y := 0; y < h; y++ {
		row := src[y*w:]
		for x := 0; x < w; x++ {
			var acc float64
			for i, kv := range kernel {
				acc += kv * row[clampIndex(x+i-mid, w)]
			}
			tmp[y*w+x] = acc
		}
	}
	out := mempool.GetFloat64(len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float64
			for i, kv := range kernel {
				acc += kv * tmp[clampIndex(y+i-mid, h)*w+x]
			}
			out[y*w+x] = acc
		}
	}
	return out
}

// grayToFloat copies a gray plane into a pooled float buffer. The caller
// releases it via mempool.PutFloat64.
func grayToFloat(g *image.Gray) ([]float64, int, int) {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	out := mempool.GetFloat64(w * h)
	for y := 0; y < h; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+w]
		for x, v := range row {
			out[y*w+x] = float64(v)
		}
	}
	return out, w, h
}

func floatToGray(src []float64, w, h int) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := math.Round(src[y*w+x])
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			out.Pix[y*out.Stride+x] = uint8(v)
		}
	}
	return out
}

// GaussianBlur blurs a gray plane with a ksize x ksize Gaussian kernel.
// sigma <= 0 derives the sigma from the kernel size as OpenCV does.
func GaussianBlur(g *image.Gray, ksize int, sigma float64) *image.Gray {
	src, w, h := grayToFloat(g)
	blurred := convolveSeparable(src, w, h, gaussianKernel(ksize, sigma))
	mempool.PutFloat64(src)
	out := floatToGray(blurred, w, h)
	mempool.PutFloat64(blurred)
	return out
}

// BilateralFilter applies an edge-preserving bilateral filter with the given
// neighborhood diameter and color/space sigmas.
func BilateralFilter(g *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	radius := diameter / 2

	// Precompute spatial weights for the neighborhood.
	space := make([]float64, diameter*diameter)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			space[(dy+radius)*diameter+(dx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}
	colorDenom := 2 * sigmaColor * sigmaColor

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := float64(g.Pix[y*g.Stride+x])
			var num, den float64
			for dy := -radius; dy <= radius; dy++ {
				sy := clampIndex(y+dy, h)
				for dx := -radius; dx <= radius; dx++ {
					sx := clampIndex(x+dx, w)
					v := float64(g.Pix[sy*g.Stride+sx])
					diff := v - center
					wgt := space[(dy+radius)*diameter+(dx+radius)] * math.Exp(-diff*diff/colorDenom)
					num += wgt * v
					den += wgt
				}
			}
			out.Pix[y*out.Stride+x] = uint8(math.Round(num / den)) //nolint:gosec // bounded by input range
		}
	}
	return out
}
