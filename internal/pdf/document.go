// Package pdf provides random access to the pages of a PDF document: rendered
// pixels and text through MuPDF (go-fitz), embedded image streams and content
// streams through pdfcpu.
package pdf

import (
	"bytes"
	"image"
	"io"
	"strconv"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Eliezir/adt-press/internal/domain"
)

// Base resolution of PDF user space; render DPI is baseDPI * zoom.
const baseDPI = 72

// Document is the production implementation of domain.Document.
type Document struct {
	fz   *fitz.Document
	data []byte
	conf *model.Configuration
	zoom float64
}

// Open opens raw PDF bytes for page-indexed access. The zoom multiplier is
// fixed for the lifetime of the document.
func Open(data []byte, zoom float64) (*Document, error) {
	fz, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, domain.DocumentError("failed to open PDF", err)
	}
	if fz.NumPage() == 0 {
		fz.Close()
		return nil, domain.DocumentError("PDF has no pages", nil)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Document{
		fz:   fz,
		data: data,
		conf: conf,
		zoom: zoom,
	}, nil
}

// PageCount returns the number of physical pages.
func (d *Document) PageCount() int {
	return d.fz.NumPage()
}

// RenderPage rasterizes the 0-based page at the oversampled resolution.
func (d *Document) RenderPage(index int) (image.Image, error) {
	img, err := d.fz.ImageDPI(index, baseDPI*d.zoom)
	if err != nil {
		return nil, domain.RenderError("failed to render page "+strconv.Itoa(index+1), err)
	}
	return img, nil
}

// PageText returns the native text layer of the 0-based page.
func (d *Document) PageText(index int) (string, error) {
	text, err := d.fz.Text(index)
	if err != nil {
		return "", domain.DocumentError("failed to extract text from page "+strconv.Itoa(index+1), err)
	}
	return text, nil
}

// PageSize returns the page dimensions in points.
func (d *Document) PageSize(index int) (float64, float64, error) {
	bound, err := d.fz.Bound(index)
	if err != nil {
		return 0, 0, domain.DocumentError("failed to read bounds of page "+strconv.Itoa(index+1), err)
	}
	return float64(bound.Dx()), float64(bound.Dy()), nil
}

// EmbeddedImages returns the encoded raster streams embedded in the 0-based
// page, in document discovery order.
func (d *Document) EmbeddedImages(index int) ([]domain.EmbeddedImage, error) {
	var images []domain.EmbeddedImage

	digest := func(img model.Image, singleImgPerPage bool, maxPageDigits int) error {
		data, err := io.ReadAll(img)
		if err != nil {
			return err
		}
		images = append(images, domain.EmbeddedImage{
			Name: img.Name,
			Data: data,
		})
		return nil
	}

	pageNr := strconv.Itoa(index + 1)
	if err := api.ExtractImages(bytes.NewReader(d.data), []string{pageNr}, digest, d.conf); err != nil {
		return nil, domain.DocumentError("failed to extract images from page "+pageNr, err)
	}

	return images, nil
}

// Drawings scans the page's content streams for painted vector paths. Bounding
// boxes are returned in top-left page coordinates, matching rendered pixels.
func (d *Document) Drawings(index int) ([]domain.Drawing, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(d.data), d.conf)
	if err != nil {
		return nil, domain.DocumentError("failed to read content of page "+strconv.Itoa(index+1), err)
	}
	r, err := pdfcpu.ExtractPageContent(ctx, index+1)
	if err != nil {
		return nil, domain.DocumentError("failed to read content of page "+strconv.Itoa(index+1), err)
	}
	var content []byte
	if r != nil {
		content, err = io.ReadAll(r)
		if err != nil {
			return nil, domain.DocumentError("failed to read content of page "+strconv.Itoa(index+1), err)
		}
	}

	drawings := ScanDrawings(content)

	// Content streams use a bottom-left origin; flip to the top-left origin
	// the renderer and detector work in.
	_, pageHeight, err := d.PageSize(index)
	if err != nil {
		return nil, err
	}
	for i, dr := range drawings {
		drawings[i].BBox = domain.Rect{
			X0: dr.BBox.X0,
			Y0: pageHeight - dr.BBox.Y1,
			X1: dr.BBox.X1,
			Y1: pageHeight - dr.BBox.Y0,
		}
	}

	return drawings, nil
}

// Zoom returns the fixed oversampling multiplier.
func (d *Document) Zoom() float64 {
	return d.zoom
}

// Close releases the underlying MuPDF handle.
func (d *Document) Close() error {
	return d.fz.Close()
}
