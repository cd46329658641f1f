// Package extract owns the top-level extraction control flow: processing
// modes, the strategy registry, and the two extraction strategies.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/doclayer/formlens/internal/form"
)

// ProcessingMode selects an extraction strategy.
type ProcessingMode string

const (
	// ModeReferenceImages analyzes a statically configured list of page
	// images, ignoring any upload.
	ModeReferenceImages ProcessingMode = "REFERENCE_IMAGES"

	// ModePDFUpload renders every page of an uploaded PDF, preferring
	// embedded text over optical recognition.
	ModePDFUpload ProcessingMode = "PDF_UPLOAD"
)

// ParseMode maps a caller-supplied mode string to a processing mode.
func ParseMode(s string) (ProcessingMode, error) {
	switch ProcessingMode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeReferenceImages:
		return ModeReferenceImages, nil
	case ModePDFUpload:
		return ModePDFUpload, nil
	default:
		return "", fmt.Errorf("%w: unknown processing mode %q", ErrInput, s)
	}
}

// Context carries the per-request extraction input.
type Context struct {
	// Upload is the uploaded document, empty when none was supplied.
	Upload []byte

	// Filename is the original name of the upload, if any.
	Filename string

	// Mode is the resolved processing mode.
	Mode ProcessingMode

	// PageProgress, when set, is invoked after each page finishes
	// detection with the page index and its component count.
	PageProgress func(pageIndex, componentCount int)
}

// Strategy is one extraction pipeline, registered under the single mode it
// serves.
type Strategy interface {
	SupportedMode() ProcessingMode
	Extract(ctx Context) (form.Document, error)
}

// Registry is a fixed mapping from mode to strategy, resolved once at
// startup.
type Registry map[ProcessingMode]Strategy

// NewRegistry builds a registry from the given strategies.
func NewRegistry(strategies ...Strategy) Registry {
	r := make(Registry, len(strategies))
	for _, s := range strategies {
		r[s.SupportedMode()] = s
	}
	return r
}

// Result wraps the extracted document with caller-level metadata.
type Result struct {
	FileName       string         `json:"fileName"`
	FileSize       int64          `json:"fileSize"`
	ProcessingMode ProcessingMode `json:"processingMode"`
	Status         string         `json:"status"`
	Document       form.Document  `json:"document"`
}

// StatusProcessed is the fixed status literal of a successful run.
const StatusProcessed = "PROCESSED"

// Service dispatches extraction requests to the registered strategies.
type Service struct {
	registry        Registry
	defaultMode     ProcessingMode
	referenceImages []string
}

// NewService builds a service with a fixed strategy registry.
func NewService(registry Registry, defaultMode ProcessingMode, referenceImages []string) *Service {
	return &Service{registry: registry, defaultMode: defaultMode, referenceImages: referenceImages}
}

// Process resolves the effective mode, runs the matching strategy and wraps
// the document into a result.
func (s *Service) Process(ctx Context) (Result, error) {
	mode := ctx.Mode
	if mode == "" {
		mode = s.defaultMode
	}
	strategy, ok := s.registry[mode]
	if !ok {
		return Result{}, fmt.Errorf("%w: no strategy registered for mode %s", ErrInput, mode)
	}

	slog.Info("processing request", "mode", string(mode))
	ctx.Mode = mode
	doc, err := strategy.Extract(ctx)
	if err != nil {
		return Result{}, err
	}

	fileName := ctx.Filename
	if len(ctx.Upload) == 0 || fileName == "" {
		fileName = strings.Join(s.referenceImages, ",")
	}

	return Result{
		FileName:       fileName,
		FileSize:       int64(len(ctx.Upload)),
		ProcessingMode: mode,
		Status:         StatusProcessed,
		Document:       doc,
	}, nil
}
