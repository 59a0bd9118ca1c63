package extract

import (
	"sort"

	"github.com/Eliezir/adt-press/internal/domain"
)

// Default filters for the overlap-merge detector, in page points.
const (
	minRegionExtent = 4.0  // boxes thinner than this in both axes are noise
	maxPageCoverage = 0.95 // boxes covering this share of the page are background
)

// OverlapMergeDetector is the built-in RegionDetector. It keeps painted
// drawing boxes that are neither degenerate nor page background, then merges
// boxes whose overlap ratio (intersection over the smaller box) meets the
// threshold until no pair qualifies.
type OverlapMergeDetector struct{}

// NewOverlapMergeDetector creates the default region detector.
func NewOverlapMergeDetector() *OverlapMergeDetector {
	return &OverlapMergeDetector{}
}

// DetectRegions implements domain.RegionDetector.
func (d *OverlapMergeDetector) DetectRegions(
	drawings []domain.Drawing,
	pageWidth, pageHeight, margin, overlapThreshold float64,
) ([]domain.Rect, error) {
	pageArea := pageWidth * pageHeight

	var boxes []domain.Rect
	for _, dr := range drawings {
		box := dr.BBox
		if box.Area() == 0 {
			continue
		}
		if box.Width() < minRegionExtent && box.Height() < minRegionExtent {
			continue
		}
		if pageArea > 0 && box.Area() >= maxPageCoverage*pageArea {
			continue
		}
		boxes = append(boxes, box)
	}

	boxes = mergeOverlapping(boxes, overlapThreshold)

	regions := make([]domain.Rect, 0, len(boxes))
	for _, box := range boxes {
		region := domain.Rect{
			X0: max(box.X0-margin, 0),
			Y0: max(box.Y0-margin, 0),
			X1: min(box.X1+margin, pageWidth),
			Y1: min(box.Y1+margin, pageHeight),
		}
		if region.Area() == 0 {
			continue
		}
		regions = append(regions, region)
	}

	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Y0 != regions[j].Y0 {
			return regions[i].Y0 < regions[j].Y0
		}
		return regions[i].X0 < regions[j].X0
	})

	return regions, nil
}

// mergeOverlapping repeatedly unions box pairs whose intersection covers at
// least threshold of the smaller box, until the set is stable.
func mergeOverlapping(boxes []domain.Rect, threshold float64) []domain.Rect {
	merged := true
	for merged {
		merged = false
		for i := 0; i < len(boxes) && !merged; i++ {
			for j := i + 1; j < len(boxes); j++ {
				if overlapRatio(boxes[i], boxes[j]) >= threshold {
					boxes[i] = boxes[i].Union(boxes[j])
					boxes = append(boxes[:j], boxes[j+1:]...)
					merged = true
					break
				}
			}
		}
	}
	return boxes
}

// overlapRatio returns intersection area over the smaller box's area.
func overlapRatio(a, b domain.Rect) float64 {
	smaller := min(a.Area(), b.Area())
	if smaller == 0 {
		return 0
	}
	return a.Intersect(b).Area() / smaller
}
