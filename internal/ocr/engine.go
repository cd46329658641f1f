// Package ocr drives the Tesseract recognition backend for rectangular page
// regions. Engine instances are safe for concurrent use: native clients are
// pooled and never shared between concurrent callers, and the trained-model
// directory is resolved once per process.
package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/doclayer/formlens/internal/imgproc"
)

// ErrNotConfigured reports an unusable recognition setup, e.g. an
// unresolvable trained-model directory. It is fatal for the request.
var ErrNotConfigured = errors.New("ocr engine not configured")

// Config holds run-wide recognition settings.
type Config struct {
	Enabled     bool
	Language    string
	TessdataDir string
	PoolSize    int
}

// DefaultConfig returns the default recognition settings.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		Language:    "eng",
		TessdataDir: "",
		PoolSize:    runtime.NumCPU(),
	}
}

// Engine performs optical recognition on image regions using a pool of
// native Tesseract clients.
type Engine struct {
	cfg Config

	resolveOnce sync.Once
	tessdata    string
	resolveErr  error

	mu      sync.Mutex
	created int
	idle    chan *gosseract.Client
}

// NewEngine creates a recognition engine. No native resources are acquired
// until the first recognition call.
func NewEngine(cfg Config) *Engine {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1
	}
	return &Engine{cfg: cfg, idle: make(chan *gosseract.Client, cfg.PoolSize)}
}

// Enabled reports whether optical recognition is switched on.
func (e *Engine) Enabled() bool { return e.cfg.Enabled }

// resolveTessdata locates the trained-model directory exactly once. The
// configured directory wins; otherwise TESSDATA_PREFIX is consulted. The
// directory must exist and contain at least one .traineddata file.
func (e *Engine) resolveTessdata() (string, error) {
	e.resolveOnce.Do(func() {
		dir := e.cfg.TessdataDir
		if dir == "" {
			dir = os.Getenv("TESSDATA_PREFIX")
		}
		if dir == "" {
			e.resolveErr = fmt.Errorf("%w: tessdata directory is not set", ErrNotConfigured)
			return
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			e.resolveErr = fmt.Errorf("%w: tessdata directory does not exist: %s", ErrNotConfigured, dir)
			return
		}
		matches, err := filepath.Glob(filepath.Join(dir, "*.traineddata"))
		if err != nil || len(matches) == 0 {
			e.resolveErr = fmt.Errorf("%w: no .traineddata files under %s", ErrNotConfigured, dir)
			return
		}
		e.tessdata = dir
		slog.Info("resolved tessdata directory", "dir", dir, "models", len(matches))
	})
	return e.tessdata, e.resolveErr
}

// acquire checks a configured client out of the pool, constructing one
// lazily while the pool is below capacity.
func (e *Engine) acquire() (*gosseract.Client, error) {
	tessdata, err := e.resolveTessdata()
	if err != nil {
		return nil, err
	}

	select {
	case c := <-e.idle:
		return c, nil
	default:
	}

	e.mu.Lock()
	if e.created < e.cfg.PoolSize {
		e.created++
		e.mu.Unlock()
		c, err := e.newClient(tessdata)
		if err != nil {
			e.mu.Lock()
			e.created--
			e.mu.Unlock()
			return nil, err
		}
		return c, nil
	}
	e.mu.Unlock()

	return <-e.idle, nil
}

func (e *Engine) release(c *gosseract.Client) {
	e.idle <- c
}

// newClient constructs a Tesseract client configured for form-region
// recognition: uniform text block segmentation with interword spacing
// preserved.
func (e *Engine) newClient(tessdata string) (*gosseract.Client, error) {
	c := gosseract.NewClient()
	if err := c.SetTessdataPrefix(tessdata); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: set tessdata prefix: %v", ErrNotConfigured, err)
	}
	if err := c.SetLanguage(e.cfg.Language); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: set language %q: %v", ErrNotConfigured, e.cfg.Language, err)
	}
	if err := c.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: set page segmentation mode: %v", ErrNotConfigured, err)
	}
	if err := c.SetVariable(gosseract.SettableVariable("preserve_interword_spaces"), "1"); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: set tesseract variable: %v", ErrNotConfigured, err)
	}
	return c, nil
}

// Recognize runs optical recognition on the given region of the page image
// and returns the normalized text, or an empty string when recognition
// fails or yields nothing. The only error condition is an unusable engine
// configuration; per-region recognition failures degrade to missing text.
func (e *Engine) Recognize(img image.Image, region image.Rectangle) (string, error) {
	if !e.cfg.Enabled {
		return "", nil
	}

	b := img.Bounds()
	clipped := imgproc.ClipRect(region, b.Dx(), b.Dy())
	if clipped.Dx() <= 0 || clipped.Dy() <= 0 {
		return "", nil
	}

	client, err := e.acquire()
	if err != nil {
		return "", err
	}
	defer e.release(client)

	prepared := prepareRegion(img, clipped)
	var buf bytes.Buffer
	if err := png.Encode(&buf, prepared); err != nil {
		slog.Warn("ocr region encode failed", "error", err)
		return "", nil
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		slog.Warn("ocr set image failed", "error", err)
		return "", nil
	}
	raw, err := client.Text()
	if err != nil {
		slog.Warn("ocr failed", "error", err)
		return "", nil
	}
	return Normalize(raw), nil
}

// Close releases all idle pooled clients. In-flight clients are released by
// their holders.
func (e *Engine) Close() error {
	var firstErr error
	for {
		select {
		case c := <-e.idle:
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		default:
			return firstErr
		}
	}
}
