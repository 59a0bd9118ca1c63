package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	// Embedded streams come back encoded as PNG, JPEG or TIFF.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"github.com/Eliezir/adt-press/internal/domain"
	"github.com/Eliezir/adt-press/internal/observability"
)

// ExtractedImage pairs an Image record with the pixel payloads the
// orchestrator persists alongside it.
type ExtractedImage struct {
	Record domain.Image
	Data   []byte
	Chart  []byte
}

// RasterExtractor pulls embedded bitmap images out of a unit's pages.
type RasterExtractor struct {
	doc   domain.Document
	chart domain.ChartRenderer
	log   *observability.Logger
}

// NewRasterExtractor creates a raster image extractor.
func NewRasterExtractor(doc domain.Document, chart domain.ChartRenderer, log *observability.Logger) *RasterExtractor {
	return &RasterExtractor{doc: doc, chart: chart, log: log}
}

// Extract converts every embedded bitmap in the unit to an RGB PNG, in
// document discovery order, numbering them from startIndex. It returns the
// images and the next free index for the unit's shared counter.
func (e *RasterExtractor) Extract(group PageGroup, startIndex int) ([]ExtractedImage, int, error) {
	unitID := group.ID()
	index := startIndex
	var images []ExtractedImage

	for _, pageIdx := range pageIndices(group) {
		embedded, err := e.doc.EmbeddedImages(pageIdx)
		if err != nil {
			return nil, index, err
		}

		for _, stream := range embedded {
			pngBytes, width, height, err := toRGBPNG(stream.Data)
			if err != nil {
				// Undecodable streams (exotic filters, broken data) are
				// skipped rather than aborting the run.
				e.log.WithPage(pageIdx+1).Warn().
					Str("resource", stream.Name).
					Err(err).
					Msg("skipping undecodable embedded image")
				continue
			}

			imageID := fmt.Sprintf("img_%s_r%d", unitID, index)
			chartBytes, err := e.chart.Render(pngBytes)
			if err != nil {
				return nil, index, domain.RenderError("chart rendering failed for "+imageID, err)
			}

			images = append(images, ExtractedImage{
				Record: domain.Image{
					ImageID:   imageID,
					PageID:    unitID,
					Index:     index,
					ImagePath: imageRelPath(imageID, false),
					ChartPath: imageRelPath(imageID, true),
					Width:     width,
					Height:    height,
					ImageType: domain.ImageTypeRaster,
				},
				Data:  pngBytes,
				Chart: chartBytes,
			})
			index++
		}
	}

	return images, index, nil
}

// imageRelPath builds the output-dir-relative path for an extracted image.
func imageRelPath(imageID string, chart bool) string {
	if chart {
		return "images/" + imageID + "_chart.png"
	}
	return "images/" + imageID + ".png"
}

// toRGBPNG decodes an embedded image stream and re-encodes it as an RGB PNG.
func toRGBPNG(data []byte) ([]byte, int, int, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := src.Bounds()
	rgb := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgb, rgb.Bounds(), src, bounds.Min, draw.Src)

	encoded, err := encodePNG(rgb)
	if err != nil {
		return nil, 0, 0, err
	}
	return encoded, bounds.Dx(), bounds.Dy(), nil
}
