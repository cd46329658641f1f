package pdfdoc

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pageImages extracts the embedded page images once and caches them, keyed
// by one-based page number. Pages embedding several images keep the largest
// one, which for scanned forms is the page scan itself.
func (d *Document) pageImages() (map[int]image.Image, error) {
	d.imagesOnce.Do(func() {
		d.images, d.imagesErr = extractPageImages(d.path)
	})
	return d.images, d.imagesErr
}

func extractPageImages(path string) (map[int]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "formlens-extract-*")
	if err != nil {
		return nil, fmt.Errorf("create extraction dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	if err := api.ExtractImagesFile(path, tempDir, nil, nil); err != nil {
		return nil, fmt.Errorf("extract pdf images: %w", err)
	}

	result := make(map[int]image.Image)
	err = filepath.Walk(tempDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		pageNum, err := parsePageFromFilename(info.Name())
		if err != nil {
			return nil // not a page image
		}
		img, err := loadImageFile(p)
		if err != nil {
			return nil // skip unreadable images
		}
		if existing, ok := result[pageNum]; !ok || imageArea(img) > imageArea(existing) {
			result[pageNum] = img
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func imageArea(img image.Image) int {
	b := img.Bounds()
	return b.Dx() * b.Dy()
}

func loadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // G304: reading our own extraction output
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	return img, err
}

// parsePageFromFilename extracts the page number from a pdfcpu extraction
// filename of the form page_<num>_image_<idx>.<ext>.
func parsePageFromFilename(filename string) (int, error) {
	if !strings.HasPrefix(filename, "page_") {
		return 0, errors.New("not a page file")
	}
	parts := strings.Split(filename, "_")
	if len(parts) < 2 {
		return 0, errors.New("invalid filename format")
	}
	pageNum, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.New("invalid page number")
	}
	return pageNum, nil
}
