package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliezir/adt-press/internal/domain"
)

func fill(box domain.Rect) domain.Drawing {
	return domain.Drawing{Kind: domain.DrawingFill, BBox: box}
}

func TestDetectRegionsMergesHighOverlap(t *testing.T) {
	d := NewOverlapMergeDetector()

	// Second box overlaps 80% of its own area with the first.
	drawings := []domain.Drawing{
		fill(domain.Rect{X0: 10, Y0: 10, X1: 110, Y1: 110}),
		fill(domain.Rect{X0: 30, Y0: 10, X1: 130, Y1: 110}),
	}

	regions, err := d.DetectRegions(drawings, 600, 800, 0, 0.75)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, domain.Rect{X0: 10, Y0: 10, X1: 130, Y1: 110}, regions[0])
}

func TestDetectRegionsKeepsDisjointBoxes(t *testing.T) {
	d := NewOverlapMergeDetector()

	drawings := []domain.Drawing{
		fill(domain.Rect{X0: 10, Y0: 10, X1: 60, Y1: 60}),
		fill(domain.Rect{X0: 200, Y0: 300, X1: 260, Y1: 380}),
	}

	regions, err := d.DetectRegions(drawings, 600, 800, 0, 0.75)
	require.NoError(t, err)
	assert.Len(t, regions, 2)
}

func TestDetectRegionsBelowThresholdNotMerged(t *testing.T) {
	d := NewOverlapMergeDetector()

	// Overlap is 50% of the smaller box, under the 0.75 threshold.
	drawings := []domain.Drawing{
		fill(domain.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}),
		fill(domain.Rect{X0: 50, Y0: 0, X1: 150, Y1: 100}),
	}

	regions, err := d.DetectRegions(drawings, 600, 800, 0, 0.75)
	require.NoError(t, err)
	assert.Len(t, regions, 2)
}

func TestDetectRegionsChainedMerge(t *testing.T) {
	d := NewOverlapMergeDetector()

	// A contains B, B contains C; everything collapses into A.
	drawings := []domain.Drawing{
		fill(domain.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}),
		fill(domain.Rect{X0: 10, Y0: 10, X1: 60, Y1: 60}),
		fill(domain.Rect{X0: 20, Y0: 20, X1: 40, Y1: 40}),
	}

	regions, err := d.DetectRegions(drawings, 600, 800, 0, 0.75)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, domain.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}, regions[0])
}

func TestDetectRegionsFiltersNoise(t *testing.T) {
	d := NewOverlapMergeDetector()

	drawings := []domain.Drawing{
		fill(domain.Rect{X0: 5, Y0: 5, X1: 6, Y1: 6}),     // tiny in both axes
		fill(domain.Rect{X0: 0, Y0: 0, X1: 600, Y1: 800}), // page background
		fill(domain.Rect{X0: 50, Y0: 50, X1: 150, Y1: 150}),
	}

	regions, err := d.DetectRegions(drawings, 600, 800, 0, 0.75)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, domain.Rect{X0: 50, Y0: 50, X1: 150, Y1: 150}, regions[0])
}

func TestDetectRegionsMarginAndClamp(t *testing.T) {
	d := NewOverlapMergeDetector()

	drawings := []domain.Drawing{
		fill(domain.Rect{X0: 2, Y0: 2, X1: 60, Y1: 60}),
	}

	regions, err := d.DetectRegions(drawings, 600, 800, 10, 0.75)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	// Margin expands, clamped at the page origin.
	assert.Equal(t, domain.Rect{X0: 0, Y0: 0, X1: 70, Y1: 70}, regions[0])
}

func TestDetectRegionsSortedTopLeft(t *testing.T) {
	d := NewOverlapMergeDetector()

	drawings := []domain.Drawing{
		fill(domain.Rect{X0: 300, Y0: 500, X1: 380, Y1: 560}),
		fill(domain.Rect{X0: 50, Y0: 50, X1: 120, Y1: 120}),
		fill(domain.Rect{X0: 200, Y0: 50, X1: 280, Y1: 120}),
	}

	regions, err := d.DetectRegions(drawings, 600, 800, 0, 0.75)
	require.NoError(t, err)
	require.Len(t, regions, 3)
	assert.Equal(t, 50.0, regions[0].X0)
	assert.Equal(t, 200.0, regions[1].X0)
	assert.Equal(t, 300.0, regions[2].X0)
}

func TestDetectRegionsEmptyInput(t *testing.T) {
	d := NewOverlapMergeDetector()
	regions, err := d.DetectRegions(nil, 600, 800, 0, 0.75)
	require.NoError(t, err)
	assert.Empty(t, regions)
}
