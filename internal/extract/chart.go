package extract

import (
	"bytes"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Eliezir/adt-press/internal/domain"
)

// Layout of the framed chart rendition, in pixels.
const (
	chartPadding     = 24
	chartFrameWeight = 2
)

// FrameChartRenderer is the built-in ChartRenderer. It re-plots an extracted
// bitmap onto a padded white canvas with a dark axis-style frame, giving
// downstream non-visual presentation a consistent chart rendition.
type FrameChartRenderer struct{}

// NewFrameChartRenderer creates the default chart renderer.
func NewFrameChartRenderer() *FrameChartRenderer {
	return &FrameChartRenderer{}
}

// Render implements domain.ChartRenderer.
func (r *FrameChartRenderer) Render(pngBytes []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, domain.RenderError("failed to decode image for chart rendering", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx() + 2*chartPadding
	height := bounds.Dy() + 2*chartPadding

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	frame := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	inset := chartPadding - 2*chartFrameWeight
	drawFrame(canvas, image.Rect(inset, inset, width-inset, height-inset), frame)

	target := image.Rect(chartPadding, chartPadding, chartPadding+bounds.Dx(), chartPadding+bounds.Dy())
	draw.Draw(canvas, target, src, bounds.Min, draw.Src)

	return encodePNG(canvas)
}

// drawFrame paints an unfilled rectangle of chartFrameWeight thickness.
func drawFrame(canvas *image.RGBA, rect image.Rectangle, c color.Color) {
	fill := image.NewUniform(c)
	w := chartFrameWeight
	// top, bottom, left, right bands
	draw.Draw(canvas, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+w), fill, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(rect.Min.X, rect.Max.Y-w, rect.Max.X, rect.Max.Y), fill, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+w, rect.Max.Y), fill, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(rect.Max.X-w, rect.Min.Y, rect.Max.X, rect.Max.Y), fill, image.Point{}, draw.Src)
}
