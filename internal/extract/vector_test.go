package extract

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliezir/adt-press/internal/domain"
	"github.com/Eliezir/adt-press/internal/observability"
)

func TestVectorExtractContinuesSharedCounter(t *testing.T) {
	doc := newFakeDocument(1)
	doc.drawings[0] = []domain.Drawing{
		{Kind: domain.DrawingFill, BBox: domain.Rect{X0: 10, Y0: 10, X1: 30, Y1: 30}},
		{Kind: domain.DrawingStroke, BBox: domain.Rect{X0: 10, Y0: 40, X1: 40, Y1: 60}},
	}

	e := NewVectorExtractor(doc, &fakeDetector{}, passthroughChart{}, 2, 0, 0.75, observability.Nop())
	images, next, err := e.Extract(Singleton(1), 2)
	require.NoError(t, err)

	require.Len(t, images, 2)
	assert.Equal(t, 4, next)
	assert.Equal(t, "img_p1_v2", images[0].Record.ImageID)
	assert.Equal(t, "img_p1_v3", images[1].Record.ImageID)
	assert.Equal(t, domain.ImageTypeVector, images[0].Record.ImageType)
}

func TestVectorExtractCropScalesByZoom(t *testing.T) {
	doc := newFakeDocument(1)
	// Page points are 50x70 (pixels 100x140 at zoom 2); the 20x20pt region
	// comes back as a 40x40px crop.
	doc.drawings[0] = []domain.Drawing{
		{Kind: domain.DrawingFill, BBox: domain.Rect{X0: 10, Y0: 10, X1: 30, Y1: 30}},
	}

	e := NewVectorExtractor(doc, &fakeDetector{}, passthroughChart{}, 2, 0, 0.75, observability.Nop())
	images, _, err := e.Extract(Singleton(1), 0)
	require.NoError(t, err)

	require.Len(t, images, 1)
	assert.Equal(t, 40, images[0].Record.Width)
	assert.Equal(t, 40, images[0].Record.Height)
}

func TestVectorExtractDetectorFailureYieldsNoImages(t *testing.T) {
	doc := newFakeDocument(1)
	doc.drawings[0] = []domain.Drawing{
		{Kind: domain.DrawingFill, BBox: domain.Rect{X0: 10, Y0: 10, X1: 30, Y1: 30}},
	}

	detector := &fakeDetector{err: errors.New("detector exploded")}
	e := NewVectorExtractor(doc, detector, passthroughChart{}, 2, 0, 0.75, observability.Nop())
	images, next, err := e.Extract(Singleton(1), 5)

	require.NoError(t, err, "detector failures degrade, they do not abort")
	assert.Empty(t, images)
	assert.Equal(t, 5, next)
}

func TestCropRegionClampsToPageBounds(t *testing.T) {
	rendered := image.NewRGBA(image.Rect(0, 0, 100, 140))

	cropped, ok := cropRegion(rendered, domain.Rect{X0: 40, Y0: 60, X1: 80, Y1: 100}, 2)
	require.True(t, ok)
	// 40..80pt -> 80..160px, clamped at the 100px right edge.
	assert.Equal(t, 20, cropped.Bounds().Dx())
	assert.Equal(t, 20, cropped.Bounds().Dy())

	_, ok = cropRegion(rendered, domain.Rect{X0: 200, Y0: 200, X1: 300, Y1: 300}, 2)
	assert.False(t, ok, "regions entirely off the page are dropped")
}
