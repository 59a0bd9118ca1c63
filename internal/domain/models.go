package domain

// ImageType distinguishes the two image discovery mechanisms.
type ImageType string

const (
	ImageTypeRaster ImageType = "raster"
	ImageTypeVector ImageType = "vector"
)

// Image represents a single image extracted from a page unit.
// Paths are relative to the extraction output directory.
type Image struct {
	ImageID   string    `json:"image_id"`
	PageID    string    `json:"page_id"`
	Index     int       `json:"index"`
	ImagePath string    `json:"image_path"`
	ChartPath string    `json:"chart_path"` // alternate chart-style rendering
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	ImageType ImageType `json:"image_type"`
}

// Page represents one processed unit: a single physical page or a spread.
//
// For spreads the page image is the horizontally stitched rendering, the text
// is the concatenation of both pages, and images carry ids like img_p2_3_r0.
type Page struct {
	PageID        string  `json:"page_id"` // p3 for singletons, p4_5 for spreads
	PageNumber    int     `json:"page_number"`
	PageImagePath string  `json:"page_image_path"`
	Text          string  `json:"text"`
	Images        []Image `json:"images"`
}

// Metadata describes the extraction run that produced a PDFExtract.
type Metadata struct {
	Filename            string `json:"filename"`
	TotalPages          int    `json:"total_pages"`
	ExtractedPages      []int  `json:"extracted_pages"`
	ExtractionTimestamp string `json:"extraction_timestamp"`
	StartPage           int    `json:"start_page"`
	EndPage             int    `json:"end_page"`
	SpreadMode          bool   `json:"spread_mode"`
}

// PDFExtract is the complete extraction record serialized to pdf_extract.json.
type PDFExtract struct {
	Metadata Metadata `json:"metadata"`
	Pages    []Page   `json:"pages"`
}

// Rect is an axis-aligned bounding box in page coordinates (points).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area returns the rect area, zero for degenerate rects.
func (r Rect) Area() float64 {
	if r.X1 <= r.X0 || r.Y1 <= r.Y0 {
		return 0
	}
	return r.Width() * r.Height()
}

// Intersect returns the overlapping region of two rects.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		X0: max(r.X0, o.X0),
		Y0: max(r.Y0, o.Y0),
		X1: min(r.X1, o.X1),
		Y1: min(r.Y1, o.Y1),
	}
	if out.X1 < out.X0 {
		out.X1 = out.X0
	}
	if out.Y1 < out.Y0 {
		out.Y1 = out.Y0
	}
	return out
}

// Union returns the smallest rect covering both rects.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// DrawingKind classifies a vector drawing command group.
type DrawingKind string

const (
	DrawingStroke     DrawingKind = "stroke"
	DrawingFill       DrawingKind = "fill"
	DrawingFillStroke DrawingKind = "fill-stroke"
)

// Drawing is one painted vector path on a page, reduced to its kind and
// device-space bounding box. Clip and group constructs are never emitted.
type Drawing struct {
	Kind DrawingKind
	BBox Rect
}

// EmbeddedImage is a raster image stream pulled out of a page's resources,
// in document discovery order.
type EmbeddedImage struct {
	Name string // resource name within the page
	Data []byte // encoded bytes as stored (png/jpeg/tiff)
}
