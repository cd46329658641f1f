package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doclayer/formlens/internal/config"
	"github.com/doclayer/formlens/internal/extract"
	"github.com/doclayer/formlens/internal/ocr"
)

// buildEngine constructs the OCR engine from the application configuration.
func buildEngine(cfg *config.Config) *ocr.Engine {
	engineCfg := ocr.Config{
		Enabled:     cfg.OCR.Enabled,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PoolSize:    cfg.OCR.PoolSize,
	}
	return ocr.NewEngine(engineCfg)
}

// buildService wires the extraction strategies into a service.
func buildService(cfg *config.Config, engine *ocr.Engine) *extract.Service {
	registry := extract.NewRegistry(
		extract.NewReferenceImageStrategy(cfg.Processing.ReferenceImages, engine, cfg.Processing.BaseUnit),
		extract.NewPDFUploadStrategy(engine, cfg.Processing.BaseUnit, cfg.Processing.RenderDPI),
	)
	return extract.NewService(registry, extract.ProcessingMode(cfg.Processing.DefaultMode), cfg.Processing.ReferenceImages)
}

// writeResult renders an extraction result in the requested format.
func writeResult(w io.Writer, result extract.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		// Round-trip through JSON so the YAML keys match the JSON wire names.
		data, err := json.Marshal(result)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(generic)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// openOutput returns the output destination for a command, stdout when no
// file was requested.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
