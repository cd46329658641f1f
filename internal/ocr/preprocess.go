package ocr

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/doclayer/formlens/internal/imgproc"
)

const (
	upscaleFactor      = 2
	bilateralDiameter  = 7
	bilateralSigma     = 60
	binarizeKernelSize = 3
)

// prepareRegion readies a page region for recognition. The stages always run
// in the same order: grayscale, 2x linear upscale for small-glyph
// legibility, edge-preserving bilateral denoise, Otsu binarization, and a
// 3x3 morphological close.
func prepareRegion(img image.Image, region image.Rectangle) *image.Gray {
	gray := imgproc.SubGray(imgproc.Grayscale(img), region)
	scaled := imaging.Resize(gray, region.Dx()*upscaleFactor, region.Dy()*upscaleFactor, imaging.Linear)
	denoised := imgproc.BilateralFilter(imgproc.Grayscale(scaled), bilateralDiameter, bilateralSigma, bilateralSigma)
	binary := imgproc.OtsuThreshold(denoised)
	return imgproc.Close(binary, binarizeKernelSize)
}
