package pdf

import (
	"github.com/Eliezir/adt-press/internal/domain"
)

// matrix is a PDF transformation matrix [a b c d e f].
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// mul returns o concatenated onto m (o applied first).
func (m matrix) mul(o matrix) matrix {
	return matrix{
		o[0]*m[0] + o[1]*m[2],
		o[0]*m[1] + o[1]*m[3],
		o[2]*m[0] + o[3]*m[2],
		o[2]*m[1] + o[3]*m[3],
		o[4]*m[0] + o[5]*m[2] + m[4],
		o[4]*m[1] + o[5]*m[3] + m[5],
	}
}

// pathState accumulates the device-space bounding box of the current path.
type pathState struct {
	bbox  domain.Rect
	empty bool
}

func newPathState() pathState {
	return pathState{empty: true}
}

func (p *pathState) add(x, y float64) {
	if p.empty {
		p.bbox = domain.Rect{X0: x, Y0: y, X1: x, Y1: y}
		p.empty = false
		return
	}
	if x < p.bbox.X0 {
		p.bbox.X0 = x
	}
	if y < p.bbox.Y0 {
		p.bbox.Y0 = y
	}
	if x > p.bbox.X1 {
		p.bbox.X1 = x
	}
	if y > p.bbox.Y1 {
		p.bbox.Y1 = y
	}
}

// ScanDrawings walks a page content stream and returns one Drawing per painted
// path, with bounding boxes in device space (bottom-left origin). Paths that
// are discarded without painting, such as the `W n` clipping idiom, produce no
// drawing. Text and image operators are ignored.
func ScanDrawings(content []byte) []domain.Drawing {
	var (
		drawings []domain.Drawing
		operands []float64
		ctm      = identity
		ctmStack []matrix
		path     = newPathState()
	)

	emit := func(kind domain.DrawingKind) {
		if !path.empty && path.bbox.Area() > 0 {
			drawings = append(drawings, domain.Drawing{Kind: kind, BBox: path.bbox})
		}
		path = newPathState()
	}

	addPoint := func(x, y float64) {
		tx, ty := ctm.apply(x, y)
		path.add(tx, ty)
	}

	tok := newTokenizer(content)
	for {
		t, ok := tok.next()
		if !ok {
			break
		}
		if t.isNumber {
			operands = append(operands, t.number)
			continue
		}

		switch t.text {
		case "m", "l":
			if len(operands) >= 2 {
				addPoint(operands[len(operands)-2], operands[len(operands)-1])
			}
		case "c":
			if len(operands) >= 6 {
				base := len(operands) - 6
				addPoint(operands[base], operands[base+1])
				addPoint(operands[base+2], operands[base+3])
				addPoint(operands[base+4], operands[base+5])
			}
		case "v", "y":
			if len(operands) >= 4 {
				base := len(operands) - 4
				addPoint(operands[base], operands[base+1])
				addPoint(operands[base+2], operands[base+3])
			}
		case "re":
			if len(operands) >= 4 {
				base := len(operands) - 4
				x, y, w, h := operands[base], operands[base+1], operands[base+2], operands[base+3]
				addPoint(x, y)
				addPoint(x+w, y)
				addPoint(x, y+h)
				addPoint(x+w, y+h)
			}
		case "cm":
			if len(operands) >= 6 {
				base := len(operands) - 6
				ctm = ctm.mul(matrix{
					operands[base], operands[base+1],
					operands[base+2], operands[base+3],
					operands[base+4], operands[base+5],
				})
			}
		case "q":
			ctmStack = append(ctmStack, ctm)
		case "Q":
			if n := len(ctmStack); n > 0 {
				ctm = ctmStack[n-1]
				ctmStack = ctmStack[:n-1]
			}
		case "S", "s":
			emit(domain.DrawingStroke)
		case "f", "F", "f*":
			emit(domain.DrawingFill)
		case "B", "B*", "b", "b*":
			emit(domain.DrawingFillStroke)
		case "n":
			// Path discarded without painting.
			path = newPathState()
		case "BI":
			tok.skipInlineImage()
		}

		operands = operands[:0]
	}

	return drawings
}
