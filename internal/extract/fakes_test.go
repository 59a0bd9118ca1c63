package extract

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/Eliezir/adt-press/internal/domain"
)

// fakeDocument is an in-memory domain.Document for pipeline tests.
type fakeDocument struct {
	pageSizes  []image.Point // rendered pixel dimensions per page
	pageColors []color.RGBA  // solid fill per page, defaults to light gray
	embedded   map[int][]domain.EmbeddedImage
	drawings   map[int][]domain.Drawing

	drawingsErr map[int]error // per-page Drawings failures
	renderErr   map[int]error
}

func newFakeDocument(pageCount int) *fakeDocument {
	sizes := make([]image.Point, pageCount)
	for i := range sizes {
		sizes[i] = image.Point{X: 100, Y: 140}
	}
	return &fakeDocument{
		pageSizes:   sizes,
		embedded:    map[int][]domain.EmbeddedImage{},
		drawings:    map[int][]domain.Drawing{},
		drawingsErr: map[int]error{},
		renderErr:   map[int]error{},
	}
}

func (d *fakeDocument) PageCount() int { return len(d.pageSizes) }

func (d *fakeDocument) RenderPage(index int) (image.Image, error) {
	if err := d.renderErr[index]; err != nil {
		return nil, err
	}
	if index < 0 || index >= len(d.pageSizes) {
		return nil, errors.New("page index out of range")
	}
	size := d.pageSizes[index]
	fill := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	if index < len(d.pageColors) {
		fill = d.pageColors[index]
	}
	img := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	return img, nil
}

func (d *fakeDocument) PageText(index int) (string, error) {
	return "text of page " + string(rune('0'+index+1)), nil
}

func (d *fakeDocument) PageSize(index int) (float64, float64, error) {
	// Fakes render at zoom 2: page points are half the pixel dimensions.
	size := d.pageSizes[index]
	return float64(size.X) / 2, float64(size.Y) / 2, nil
}

func (d *fakeDocument) EmbeddedImages(index int) ([]domain.EmbeddedImage, error) {
	return d.embedded[index], nil
}

func (d *fakeDocument) Drawings(index int) ([]domain.Drawing, error) {
	if err := d.drawingsErr[index]; err != nil {
		return nil, err
	}
	return d.drawings[index], nil
}

func (d *fakeDocument) Close() error { return nil }

// fakeDetector returns one region per drawing, or fails outright.
type fakeDetector struct {
	err error
}

func (f *fakeDetector) DetectRegions(
	drawings []domain.Drawing,
	pageWidth, pageHeight, margin, overlapThreshold float64,
) ([]domain.Rect, error) {
	if f.err != nil {
		return nil, f.err
	}
	regions := make([]domain.Rect, 0, len(drawings))
	for _, dr := range drawings {
		regions = append(regions, dr.BBox)
	}
	return regions, nil
}

// passthroughChart returns its input unchanged.
type passthroughChart struct{}

func (passthroughChart) Render(pngBytes []byte) ([]byte, error) {
	return pngBytes, nil
}

// solidPNG encodes a solid-colored PNG of the given dimensions.
func solidPNG(width, height int, fill color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// decodePNG decodes PNG bytes, panicking on malformed test data.
func decodePNG(data []byte) image.Image {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	return img
}
