package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doclayer/formlens/internal/extract"
)

// analyzeCmd runs the reference image pipeline on page images.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [images...]",
	Short: "Extract the layout of scanned form page images",
	Long: `Analyze one or more scanned form page images and print the assembled
layout document.

Images given as arguments override the configured reference image list.

Examples:
  formlens analyze page1.png
  formlens analyze page1.png page2.png --format yaml
  formlens analyze --output layout.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if len(args) > 0 {
			cfg.Processing.ReferenceImages = args
		}
		if cmd.Flags().Changed("ocr") {
			cfg.OCR.Enabled, _ = cmd.Flags().GetBool("ocr")
		}
		if len(cfg.Processing.ReferenceImages) == 0 {
			return fmt.Errorf("no page images given and none configured")
		}

		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		engine := buildEngine(cfg)
		defer func() { _ = engine.Close() }()
		service := buildService(cfg, engine)

		result, err := service.Process(extract.Context{Mode: extract.ModeReferenceImages})
		if err != nil {
			return fmt.Errorf("extraction failed: %w", err)
		}

		out, err := openOutput(outputPath)
		if err != nil {
			return fmt.Errorf("failed to open output: %w", err)
		}
		if outputPath != "" && outputPath != "-" {
			defer func() { _ = out.Close() }()
		}
		return writeResult(out, result, format)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", "json", "output format (json, yaml)")
	analyzeCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	analyzeCmd.Flags().Bool("ocr", true, "run optical text recognition on detected regions")
}
