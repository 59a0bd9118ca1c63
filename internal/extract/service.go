package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Eliezir/adt-press/internal/config"
	"github.com/Eliezir/adt-press/internal/domain"
	"github.com/Eliezir/adt-press/internal/observability"
)

// Output layout inside the extraction directory.
const (
	pagesDirName   = "pages"
	imagesDirName  = "images"
	resultFileName = "pdf_extract.json"
)

// Request describes one extraction run.
type Request struct {
	PDFPath   string // source path, recorded in metadata
	OutputDir string
	StartPage int // 1-based; 0 resolves to 1
	EndPage   int // 1-based inclusive; 0 resolves to the last page
	Spread    bool

	// OnUnit, when set, is called after each unit completes. Used by the CLI
	// progress bar.
	OnUnit func(unitID string, done, total int)
}

// Service orchestrates the per-unit extraction pipeline.
type Service struct {
	doc      domain.Document
	renderer *Renderer
	raster   *RasterExtractor
	vector   *VectorExtractor
	log      *observability.Logger
}

// NewService wires the pipeline over an open document.
func NewService(
	doc domain.Document,
	detector domain.RegionDetector,
	chart domain.ChartRenderer,
	cfg *config.Config,
	log *observability.Logger,
) *Service {
	return &Service{
		doc:      doc,
		renderer: NewRenderer(doc),
		raster:   NewRasterExtractor(doc, chart, log),
		vector: NewVectorExtractor(
			doc, detector, chart,
			cfg.Render.Zoom,
			cfg.Vector.MarginAllowance,
			cfg.Vector.OverlapThreshold,
			log,
		),
		log: log,
	}
}

// Run validates the request, drives every unit in ascending order, persists
// the PNG artifacts and writes pdf_extract.json last.
func (s *Service) Run(ctx context.Context, req Request) (*domain.PDFExtract, error) {
	startPage, endPage, err := resolveRange(req.StartPage, req.EndPage, s.doc.PageCount())
	if err != nil {
		return nil, err
	}

	if err := makeOutputDirs(req.OutputDir); err != nil {
		return nil, err
	}

	groups := PlanGroups(startPage, endPage, req.Spread)
	s.log.Info().
		Int("start_page", startPage).
		Int("end_page", endPage).
		Bool("spread_mode", req.Spread).
		Int("units", len(groups)).
		Msg("starting extraction")

	pages := make([]domain.Page, 0, len(groups))
	var extractedPages []int

	for i, group := range groups {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page, err := s.processUnit(group, req.OutputDir)
		if err != nil {
			return nil, err
		}

		pages = append(pages, *page)
		extractedPages = append(extractedPages, group.Pages()...)

		if req.OnUnit != nil {
			req.OnUnit(group.ID(), i+1, len(groups))
		}
	}

	result := &domain.PDFExtract{
		Metadata: domain.Metadata{
			Filename:            filepath.Base(req.PDFPath),
			TotalPages:          s.doc.PageCount(),
			ExtractedPages:      extractedPages,
			ExtractionTimestamp: time.Now().Format(time.RFC3339),
			StartPage:           startPage,
			EndPage:             endPage,
			SpreadMode:          req.Spread,
		},
		Pages: pages,
	}

	if err := writeResult(req.OutputDir, result); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("pages", len(result.Pages)).
		Int("images", countImages(result)).
		Msg("extraction complete")

	return result, nil
}

// processUnit runs render -> text -> raster -> vector for one unit. Later
// steps depend on the counters of earlier ones, so the order is fixed.
func (s *Service) processUnit(group PageGroup, outputDir string) (*domain.Page, error) {
	unitID := group.ID()
	log := s.log.WithUnit(unitID)
	log.Debug().Msg("processing unit")

	pageImage, err := s.renderer.RenderUnit(group)
	if err != nil {
		return nil, err
	}

	pageImageRel := filepath.Join(pagesDirName, "page_"+group.Label()+".png")
	if err := writeFile(filepath.Join(outputDir, pageImageRel), pageImage); err != nil {
		return nil, err
	}

	text, err := aggregateText(s.doc, group)
	if err != nil {
		return nil, err
	}

	rasterImages, next, err := s.raster.Extract(group, 0)
	if err != nil {
		return nil, err
	}
	vectorImages, _, err := s.vector.Extract(group, next)
	if err != nil {
		return nil, err
	}

	images := make([]domain.Image, 0, len(rasterImages)+len(vectorImages))
	for _, img := range append(rasterImages, vectorImages...) {
		if err := writeFile(filepath.Join(outputDir, img.Record.ImagePath), img.Data); err != nil {
			return nil, err
		}
		if err := writeFile(filepath.Join(outputDir, img.Record.ChartPath), img.Chart); err != nil {
			return nil, err
		}
		images = append(images, img.Record)
	}

	log.Debug().Int("images", len(images)).Msg("unit complete")

	return &domain.Page{
		PageID:        unitID,
		PageNumber:    group.First,
		PageImagePath: pageImageRel,
		Text:          text,
		Images:        images,
	}, nil
}

// resolveRange applies the 0 sentinels and validates against the page count.
func resolveRange(startPage, endPage, totalPages int) (int, int, error) {
	if startPage == 0 {
		startPage = 1
	}
	if endPage == 0 || endPage > totalPages {
		endPage = totalPages
	}

	if startPage < 1 || startPage > totalPages {
		return 0, 0, domain.ValidationError(
			fmt.Sprintf("start page %d is out of range (1-%d)", startPage, totalPages), nil)
	}
	if endPage < startPage {
		return 0, 0, domain.ValidationError(
			fmt.Sprintf("end page %d cannot be less than start page %d", endPage, startPage), nil)
	}

	return startPage, endPage, nil
}

func makeOutputDirs(outputDir string) error {
	for _, dir := range []string{
		outputDir,
		filepath.Join(outputDir, pagesDirName),
		filepath.Join(outputDir, imagesDirName),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.IOError("failed to create output directory "+dir, err)
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.IOError("failed to write "+path, err)
	}
	return nil
}

func writeResult(outputDir string, result *domain.PDFExtract) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return domain.IOError("failed to serialize extraction result", err)
	}
	return writeFile(filepath.Join(outputDir, resultFileName), data)
}

func countImages(result *domain.PDFExtract) int {
	total := 0
	for _, page := range result.Pages {
		total += len(page.Images)
	}
	return total
}
