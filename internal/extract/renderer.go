package extract

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/Eliezir/adt-press/internal/domain"
)

// Renderer produces the PNG page image for one processing unit.
type Renderer struct {
	doc domain.Document
}

// NewRenderer creates a renderer over an open document.
func NewRenderer(doc domain.Document) *Renderer {
	return &Renderer{doc: doc}
}

// RenderUnit rasterizes the unit's pages and returns encoded PNG bytes. A
// singleton unit is the page rendering unchanged; a spread is composited
// left-to-right onto a white canvas sized (sum of widths, max height), each
// member vertically centered.
func (r *Renderer) RenderUnit(group PageGroup) ([]byte, error) {
	indices := pageIndices(group)

	if len(indices) == 1 {
		img, err := r.doc.RenderPage(indices[0])
		if err != nil {
			return nil, err
		}
		return encodePNG(img)
	}

	members := make([]image.Image, 0, len(indices))
	for _, idx := range indices {
		img, err := r.doc.RenderPage(idx)
		if err != nil {
			return nil, err
		}
		members = append(members, img)
	}

	totalWidth := 0
	maxHeight := 0
	for _, img := range members {
		bounds := img.Bounds()
		totalWidth += bounds.Dx()
		if bounds.Dy() > maxHeight {
			maxHeight = bounds.Dy()
		}
	}

	stitched := image.NewRGBA(image.Rect(0, 0, totalWidth, maxHeight))
	draw.Draw(stitched, stitched.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	xOffset := 0
	for i, img := range members {
		bounds := img.Bounds()
		yOffset := (maxHeight - bounds.Dy()) / 2
		target := image.Rect(xOffset, yOffset, xOffset+bounds.Dx(), yOffset+bounds.Dy())
		draw.Draw(stitched, target, img, bounds.Min, draw.Src)
		xOffset += bounds.Dx()
		members[i] = nil // release member pixels as we go
	}

	return encodePNG(stitched)
}

// pageIndices converts the unit's 1-based page numbers to 0-based indices.
func pageIndices(group PageGroup) []int {
	pages := group.Pages()
	indices := make([]int, len(pages))
	for i, p := range pages {
		indices[i] = p - 1
	}
	return indices
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, domain.RenderError("failed to encode PNG", err)
	}
	return buf.Bytes(), nil
}
