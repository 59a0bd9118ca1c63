package domain

import "image"

// Document defines page-indexed, random access to an open PDF.
// Implementations own the underlying handles; Close releases them.
type Document interface {
	// PageCount returns the number of physical pages.
	PageCount() int

	// RenderPage rasterizes the 0-based page at the configured oversampling
	// multiplier.
	RenderPage(index int) (image.Image, error)

	// PageText returns the native text layer of the 0-based page.
	PageText(index int) (string, error)

	// PageSize returns the page dimensions in points.
	PageSize(index int) (width, height float64, err error)

	// EmbeddedImages returns the page's embedded raster streams in document
	// discovery order.
	EmbeddedImages(index int) ([]EmbeddedImage, error)

	// Drawings returns the page's painted vector path commands.
	Drawings(index int) ([]Drawing, error)

	// Close releases document resources.
	Close() error
}

// RegionDetector clusters vector drawing commands into renderable regions.
// Boxes whose mutual overlap meets overlapThreshold are merged into one
// region; margin expands each detected region before clamping to the page.
type RegionDetector interface {
	DetectRegions(drawings []Drawing, pageWidth, pageHeight, margin, overlapThreshold float64) ([]Rect, error)
}

// ChartRenderer produces the alternate chart-style rendition of an extracted
// image for non-visual presentation.
type ChartRenderer interface {
	Render(pngBytes []byte) ([]byte, error)
}
