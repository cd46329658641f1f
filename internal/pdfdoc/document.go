// Package pdfdoc adapts an uploaded PDF into the page-oriented interface the
// extraction pipeline consumes: page count and sizes, a best-effort raster
// per page, and positional embedded-text lookup per region.
package pdfdoc

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Points per inch in PDF user space.
const pointsPerInch = 72.0

// Standard letter size in points, used when a page carries no usable
// MediaBox.
const (
	defaultPageWidthPts  = 612.0
	defaultPageHeightPts = 792.0
)

// Region is a rectangle in page coordinate space (points, origin top-left).
type Region struct {
	X, Y, W, H float64
}

// Document is an uploaded PDF staged to a temporary file. Close removes the
// staging file.
type Document struct {
	path   string
	reader *pdf.Reader

	imagesOnce sync.Once
	images     map[int]image.Image
	imagesErr  error
}

// Open stages the uploaded bytes, validates them as a PDF and prepares the
// document for page access. A failure here means the input cannot be parsed
// as a valid PDF.
func Open(data []byte) (*Document, error) {
	f, err := os.CreateTemp("", "formlens-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("stage pdf upload: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("stage pdf upload: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("stage pdf upload: %w", err)
	}

	if err := api.ValidateFile(path, nil); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("invalid pdf: %w", err)
	}

	reader, err := pdf.Open(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	return &Document{path: path, reader: reader}, nil
}

// Close removes the staging file.
func (d *Document) Close() error {
	return os.Remove(d.path)
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// PageSize returns the page's MediaBox extent in points for a zero-based
// page index, falling back to letter size when the box is absent.
func (d *Document) PageSize(pageIndex int) (width, height float64) {
	page := d.reader.Page(pageIndex + 1)
	box := findMediaBox(page.V)
	if box.IsNull() || box.Len() < 4 {
		return defaultPageWidthPts, defaultPageHeightPts
	}
	width = box.Index(2).Float64() - box.Index(0).Float64()
	height = box.Index(3).Float64() - box.Index(1).Float64()
	if width <= 0 || height <= 0 {
		return defaultPageWidthPts, defaultPageHeightPts
	}
	return width, height
}

// findMediaBox walks the page tree for a MediaBox, which may be inherited
// from an ancestor node.
func findMediaBox(v pdf.Value) pdf.Value {
	for !v.IsNull() {
		if box := v.Key("MediaBox"); !box.IsNull() {
			return box
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// RenderPage produces a raster for the zero-based page index at the given
// DPI. Scanned forms embed the scan as a full-page image, which is rescaled
// to the DPI-derived pixel size; pages without an embedded image yield a
// blank white raster of the same size. True vector rasterization is outside
// this boundary.
func (d *Document) RenderPage(pageIndex int, dpi float64) (image.Image, error) {
	widthPts, heightPts := d.PageSize(pageIndex)
	pxW := max(1, int(widthPts/pointsPerInch*dpi+0.5))
	pxH := max(1, int(heightPts/pointsPerInch*dpi+0.5))

	images, err := d.pageImages()
	if err != nil {
		return nil, err
	}
	if img, ok := images[pageIndex+1]; ok {
		return imaging.Resize(img, pxW, pxH, imaging.Lanczos), nil
	}
	return blankPage(pxW, pxH), nil
}

func blankPage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, white)
		}
	}
	return img
}

// RegionText extracts embedded text for each region, keyed like the input
// map. Regions are in page points with a top-left origin; glyph fragments
// are gathered row by row, keeping fragments whose origin falls inside the
// region. Extraction is best effort: regions without embedded text are
// absent from the result.
func (d *Document) RegionText(pageIndex int, regions map[string]Region) map[string]string {
	page := d.reader.Page(pageIndex + 1)
	_, pageH := d.PageSize(pageIndex)

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil
	}

	builders := make(map[string]*strings.Builder)
	for _, row := range rows {
		// PDF text coordinates have a bottom-left origin.
		topY := pageH - float64(row.Position)
		for key, r := range regions {
			if topY < r.Y || topY > r.Y+r.H {
				continue
			}
			var line strings.Builder
			for _, t := range row.Content {
				if t.X >= r.X && t.X <= r.X+r.W {
					line.WriteString(t.S)
				}
			}
			if line.Len() == 0 {
				continue
			}
			b, ok := builders[key]
			if !ok {
				b = &strings.Builder{}
				builders[key] = b
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(line.String())
		}
	}

	out := make(map[string]string, len(builders))
	for key, b := range builders {
		out[key] = b.String()
	}
	return out
}
