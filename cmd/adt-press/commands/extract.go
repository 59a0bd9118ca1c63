package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Eliezir/adt-press/cmd/adt-press/ui"
	"github.com/Eliezir/adt-press/internal/config"
	"github.com/Eliezir/adt-press/internal/observability"
	"github.com/Eliezir/adt-press/pkg/extractor"
)

var (
	extractPDFPath   string
	extractOutputDir string
	extractStartPage int
	extractEndPage   int
	extractSpread    bool
	extractQuiet     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract pages, text and images from a PDF",
	Long: `Extract a page range from a PDF into rendered page images, concatenated
text, embedded raster images and vector drawing regions.

In spread mode, pages are grouped by global page parity to support books read
as facing pages: page 1 is always solo (the cover), and even pages pair with
the following odd page (2-3, 4-5, 6-7, ...) when both fall inside the range.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractPDFPath, "pdf_path", "", "path to the PDF file to extract (required)")
	extractCmd.Flags().StringVar(&extractOutputDir, "output_dir", "", "directory to save extracted content (required)")
	extractCmd.Flags().IntVar(&extractStartPage, "start_page", 1, "starting page number (1-based)")
	extractCmd.Flags().IntVar(&extractEndPage, "end_page", 0, "ending page number (1-based, 0 means end of document)")
	extractCmd.Flags().BoolVar(&extractSpread, "spread_mode", false, "extract pages as spreads (first page solo, then pairs)")
	extractCmd.Flags().BoolVar(&extractQuiet, "quiet", false, "suppress progress output")
	extractCmd.MarkFlagRequired("pdf_path")
	extractCmd.MarkFlagRequired("output_dir")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ui.InitUI(noColor, extractQuiet)

	logLevel := cfg.Log.Level
	switch {
	case extractQuiet:
		logLevel = "error"
	case verbose:
		logLevel = "debug"
	}
	log := observability.NewLogger(observability.LogConfig{
		Level:  logLevel,
		Format: cfg.Log.Format,
	})

	if !extractQuiet {
		ui.Section("PDF Extraction")
		ui.Info("PDF file: %s", extractPDFPath)
		ui.Info("Output directory: %s", extractOutputDir)
		if extractEndPage == 0 {
			ui.Info("Page range: %d to end", extractStartPage)
		} else {
			ui.Info("Page range: %d to %d", extractStartPage, extractEndPage)
		}
		ui.Info("Spread mode: %v", extractSpread)
		ui.Newline()
	}

	client := extractor.NewClient(cfg, log)

	spinner := ui.NewSpinner("Opening document...")
	spinner.Start()

	var bar *ui.ProgressBar
	req := extractor.Request{
		PDFPath:   extractPDFPath,
		OutputDir: extractOutputDir,
		StartPage: extractStartPage,
		EndPage:   extractEndPage,
		Spread:    extractSpread,
		OnUnit: func(unitID string, done, total int) {
			if extractQuiet {
				return
			}
			if bar == nil {
				spinner.Stop()
				bar = ui.NewProgressBar(int64(total), "Extracting units")
			}
			bar.Set(int64(done))
		},
	}

	startTime := time.Now()
	result, err := client.Extract(context.Background(), req)
	spinner.Stop()
	if bar != nil {
		bar.Finish()
	}

	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if !extractQuiet {
		imageCount := 0
		for _, page := range result.Pages {
			imageCount += len(page.Images)
		}

		ui.Newline()
		ui.Success("Extraction completed successfully!")
		ui.Newline()
		ui.Table([]string{"Metric", "Value"}, [][]string{
			{"Units", fmt.Sprintf("%d", len(result.Pages))},
			{"Physical pages", fmt.Sprintf("%d", len(result.Metadata.ExtractedPages))},
			{"Images", fmt.Sprintf("%d", imageCount)},
			{"Duration", ui.FormatDuration(time.Since(startTime))},
			{"Result", extractOutputDir + "/pdf_extract.json"},
		})
	}

	return nil
}
