// Package extractor is the public entry point for the page/spread extraction
// engine. External Go callers and the CLI both go through Client; downstream
// document-assembly stages consume only the written pdf_extract.json and the
// PNG files it references.
package extractor

import (
	"context"
	"os"

	"github.com/Eliezir/adt-press/internal/config"
	"github.com/Eliezir/adt-press/internal/domain"
	"github.com/Eliezir/adt-press/internal/extract"
	"github.com/Eliezir/adt-press/internal/observability"
	"github.com/Eliezir/adt-press/internal/pdf"
)

// Re-export record types for the public API
type (
	PDFExtract = domain.PDFExtract
	Page       = domain.Page
	Image      = domain.Image
	Metadata   = domain.Metadata
	Request    = extract.Request
)

// Client runs extractions with a fixed configuration.
type Client struct {
	cfg      *config.Config
	log      *observability.Logger
	detector domain.RegionDetector
	chart    domain.ChartRenderer
}

// NewClient creates a client with the built-in region detector and chart
// renderer. cfg and log may be nil for defaults.
func NewClient(cfg *config.Config, log *observability.Logger) *Client {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = observability.DefaultLogger()
	}
	return &Client{
		cfg:      cfg,
		log:      log,
		detector: extract.NewOverlapMergeDetector(),
		chart:    extract.NewFrameChartRenderer(),
	}
}

// WithRegionDetector substitutes the vector region detection backend.
func (c *Client) WithRegionDetector(detector domain.RegionDetector) *Client {
	c.detector = detector
	return c
}

// WithChartRenderer substitutes the chart rendering backend.
func (c *Client) WithChartRenderer(chart domain.ChartRenderer) *Client {
	c.chart = chart
	return c
}

// Extract runs the full pipeline for one PDF and persists all artifacts under
// req.OutputDir. The document handle lives only for the duration of the call.
func (c *Client) Extract(ctx context.Context, req Request) (*PDFExtract, error) {
	validator := pdf.NewValidator()
	if err := validator.ValidatePDFPath(req.PDFPath); err != nil {
		return nil, err
	}
	if err := validator.ValidateOutputDir(req.OutputDir); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(req.PDFPath)
	if err != nil {
		return nil, domain.IOError("failed to read "+req.PDFPath, err)
	}

	doc, err := pdf.Open(data, c.cfg.Render.Zoom)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	service := extract.NewService(doc, c.detector, c.chart, c.cfg, c.log)
	return service.Run(ctx, req)
}
