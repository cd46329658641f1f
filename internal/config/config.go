// Package config holds the formlens application configuration and its
// loading from files, environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"runtime"
)

// Mode names accepted by the processing configuration. They mirror the
// extraction strategy registry.
const (
	ModeReferenceImages = "REFERENCE_IMAGES"
	ModePDFUpload       = "PDF_UPLOAD"
)

// Config is the complete application configuration.
type Config struct {
	LogLevel   string           `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose    bool             `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	Processing ProcessingConfig `mapstructure:"processing" yaml:"processing" json:"processing"`
	OCR        OCRConfig        `mapstructure:"ocr" yaml:"ocr" json:"ocr"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server" json:"server"`
}

// ProcessingConfig controls the extraction pipeline.
type ProcessingConfig struct {
	DefaultMode     string   `mapstructure:"default_mode" yaml:"default_mode" json:"default_mode"`
	ReferenceImages []string `mapstructure:"reference_images" yaml:"reference_images" json:"reference_images"`
	BaseUnit        string   `mapstructure:"base_unit" yaml:"base_unit" json:"base_unit"`
	RenderDPI       float64  `mapstructure:"render_dpi" yaml:"render_dpi" json:"render_dpi"`
}

// OCRConfig controls the optical recognition backend.
type OCRConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Language    string `mapstructure:"language" yaml:"language" json:"language"`
	TessdataDir string `mapstructure:"tessdata_dir" yaml:"tessdata_dir" json:"tessdata_dir"`
	PoolSize    int    `mapstructure:"pool_size" yaml:"pool_size" json:"pool_size"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	MaxUploadMB     int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Processing: ProcessingConfig{
			DefaultMode:     ModeReferenceImages,
			ReferenceImages: nil,
			BaseUnit:        "px",
			RenderDPI:       200,
		},
		OCR: OCRConfig{
			Enabled:  true,
			Language: "eng",
			PoolSize: runtime.NumCPU(),
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			MaxUploadMB:     50,
			TimeoutSec:      120,
			ShutdownTimeout: 10,
		},
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	switch c.Processing.DefaultMode {
	case ModeReferenceImages, ModePDFUpload:
	default:
		return fmt.Errorf("invalid default mode: %s", c.Processing.DefaultMode)
	}

	if c.Processing.RenderDPI <= 0 {
		return errors.New("render dpi must be > 0")
	}
	if c.OCR.Enabled && c.OCR.Language == "" {
		return errors.New("ocr language must be set when ocr is enabled")
	}
	if c.OCR.PoolSize < 0 {
		return errors.New("ocr pool size must be >= 0")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("max upload size must be > 0")
	}
	return nil
}
