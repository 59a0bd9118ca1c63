package extract

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/Eliezir/adt-press/internal/domain"
	"github.com/Eliezir/adt-press/internal/observability"
)

// VectorExtractor rasterizes clusters of vector drawing commands found on a
// unit's pages. Region detection is delegated to an external detector; each
// detected region is cropped out of the oversampled page rendering.
type VectorExtractor struct {
	doc      domain.Document
	detector domain.RegionDetector
	chart    domain.ChartRenderer
	zoom     float64
	margin   float64
	overlap  float64
	log      *observability.Logger
}

// NewVectorExtractor creates a vector image extractor.
func NewVectorExtractor(
	doc domain.Document,
	detector domain.RegionDetector,
	chart domain.ChartRenderer,
	zoom, margin, overlap float64,
	log *observability.Logger,
) *VectorExtractor {
	return &VectorExtractor{
		doc:      doc,
		detector: detector,
		chart:    chart,
		zoom:     zoom,
		margin:   margin,
		overlap:  overlap,
		log:      log,
	}
}

// Extract continues the unit's shared image counter from startIndex. A
// detector failure on one page degrades to zero vector images for that page;
// the remaining pages and units still extract.
func (e *VectorExtractor) Extract(group PageGroup, startIndex int) ([]ExtractedImage, int, error) {
	unitID := group.ID()
	index := startIndex
	var images []ExtractedImage

	for _, pageIdx := range pageIndices(group) {
		log := e.log.WithUnit(unitID).WithPage(pageIdx + 1)

		regions, err := e.detectPageRegions(pageIdx)
		if err != nil {
			log.Warn().Err(err).Msg("vector region detection failed, continuing without vector images")
			continue
		}
		if len(regions) == 0 {
			continue
		}
		log.Debug().Int("regions", len(regions)).Msg("detected vector regions")

		rendered, err := e.doc.RenderPage(pageIdx)
		if err != nil {
			log.Warn().Err(err).Msg("page render for vector crop failed, continuing without vector images")
			continue
		}

		for _, region := range regions {
			cropped, ok := cropRegion(rendered, region, e.zoom)
			if !ok {
				continue
			}

			pngBytes, err := encodePNG(cropped)
			if err != nil {
				return nil, index, err
			}

			imageID := fmt.Sprintf("img_%s_v%d", unitID, index)
			chartBytes, err := e.chart.Render(pngBytes)
			if err != nil {
				return nil, index, domain.RenderError("chart rendering failed for "+imageID, err)
			}

			bounds := cropped.Bounds()
			images = append(images, ExtractedImage{
				Record: domain.Image{
					ImageID:   imageID,
					PageID:    unitID,
					Index:     index,
					ImagePath: imageRelPath(imageID, false),
					ChartPath: imageRelPath(imageID, true),
					Width:     bounds.Dx(),
					Height:    bounds.Dy(),
					ImageType: domain.ImageTypeVector,
				},
				Data:  pngBytes,
				Chart: chartBytes,
			})
			index++
		}
	}

	return images, index, nil
}

// detectPageRegions gathers the page's drawings and runs the region detector.
func (e *VectorExtractor) detectPageRegions(pageIdx int) ([]domain.Rect, error) {
	drawings, err := e.doc.Drawings(pageIdx)
	if err != nil {
		return nil, err
	}
	if len(drawings) == 0 {
		return nil, nil
	}

	width, height, err := e.doc.PageSize(pageIdx)
	if err != nil {
		return nil, err
	}

	return e.detector.DetectRegions(drawings, width, height, e.margin, e.overlap)
}

// cropRegion cuts a page-coordinate region out of the oversampled rendering.
// Returns ok=false when the region falls outside the rendered area.
func cropRegion(rendered image.Image, region domain.Rect, zoom float64) (*image.RGBA, bool) {
	pixelRect := image.Rect(
		int(region.X0*zoom),
		int(region.Y0*zoom),
		int(region.X1*zoom+0.5),
		int(region.Y1*zoom+0.5),
	).Intersect(rendered.Bounds())

	if pixelRect.Empty() {
		return nil, false
	}

	out := image.NewRGBA(image.Rect(0, 0, pixelRect.Dx(), pixelRect.Dy()))
	draw.Draw(out, out.Bounds(), rendered, pixelRect.Min, draw.Src)
	return out, true
}
