package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExtractJSONFieldNames(t *testing.T) {
	extract := PDFExtract{
		Metadata: Metadata{
			Filename:            "book.pdf",
			TotalPages:          12,
			ExtractedPages:      []int{1, 2, 3},
			ExtractionTimestamp: "2025-06-01T10:00:00Z",
			StartPage:           1,
			EndPage:             3,
			SpreadMode:          true,
		},
		Pages: []Page{
			{
				PageID:        "p2_3",
				PageNumber:    2,
				PageImagePath: "pages/page_2_3.png",
				Text:          "left\n\nright",
				Images: []Image{
					{
						ImageID:   "img_p2_3_r0",
						PageID:    "p2_3",
						Index:     0,
						ImagePath: "images/img_p2_3_r0.png",
						ChartPath: "images/img_p2_3_r0_chart.png",
						Width:     640,
						Height:    480,
						ImageType: ImageTypeRaster,
					},
				},
			},
		},
	}

	data, err := json.Marshal(extract)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "metadata")
	assert.Contains(t, decoded, "pages")

	meta := decoded["metadata"].(map[string]any)
	for _, key := range []string{
		"filename", "total_pages", "extracted_pages",
		"extraction_timestamp", "start_page", "end_page", "spread_mode",
	} {
		assert.Contains(t, meta, key)
	}

	page := decoded["pages"].([]any)[0].(map[string]any)
	for _, key := range []string{"page_id", "page_number", "page_image_path", "text", "images"} {
		assert.Contains(t, page, key)
	}

	img := page["images"].([]any)[0].(map[string]any)
	for _, key := range []string{
		"image_id", "page_id", "index", "image_path",
		"chart_path", "width", "height", "image_type",
	} {
		assert.Contains(t, img, key)
	}
	assert.Equal(t, "raster", img["image_type"])
}

func TestRectGeometry(t *testing.T) {
	a := Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := Rect{X0: 5, Y0: 5, X1: 15, Y1: 15}

	assert.Equal(t, 100.0, a.Area())
	assert.Equal(t, 25.0, a.Intersect(b).Area())
	assert.Equal(t, Rect{X0: 0, Y0: 0, X1: 15, Y1: 15}, a.Union(b))

	disjoint := Rect{X0: 20, Y0: 20, X1: 30, Y1: 30}
	assert.Equal(t, 0.0, a.Intersect(disjoint).Area())

	degenerate := Rect{X0: 5, Y0: 5, X1: 5, Y1: 9}
	assert.Equal(t, 0.0, degenerate.Area())
}

func TestIsType(t *testing.T) {
	err := ValidationError("start page out of range", nil)
	assert.True(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(err, ErrorTypeIO))
	assert.False(t, IsType(nil, ErrorTypeValidation))
}
