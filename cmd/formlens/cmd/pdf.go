package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/doclayer/formlens/internal/extract"
)

// pdfCmd runs the PDF upload pipeline on a local file.
var pdfCmd = &cobra.Command{
	Use:   "pdf <file>",
	Short: "Extract the layout of a scanned form PDF",
	Long: `Render every page of a PDF, detect its layout components and print the
assembled layout document. Embedded text is preferred over optical
recognition when the PDF carries a text layer.

Examples:
  formlens pdf application.pdf
  formlens pdf application.pdf --format yaml --output layout.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read PDF: %w", err)
		}

		engine := buildEngine(cfg)
		defer func() { _ = engine.Close() }()
		service := buildService(cfg, engine)

		result, err := service.Process(extract.Context{
			Upload:   data,
			Filename: filepath.Base(args[0]),
			Mode:     extract.ModePDFUpload,
		})
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
	rootCmd.AddCommand(pdfCmd)
	pdfCmd.Flags().StringP("format", "f", "json", "output format (json, yaml)")
	pdfCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
}
