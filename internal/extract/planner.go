package extract

import (
	"fmt"
	"strconv"
)

// PageGroup is one processing unit: either a single physical page or a spread
// of two facing pages. Second is zero for singletons.
type PageGroup struct {
	First  int
	Second int
}

// Singleton returns a one-page unit.
func Singleton(page int) PageGroup {
	return PageGroup{First: page}
}

// Spread returns a two-page unit.
func Spread(left, right int) PageGroup {
	return PageGroup{First: left, Second: right}
}

// IsSpread reports whether the unit covers two pages.
func (g PageGroup) IsSpread() bool {
	return g.Second != 0
}

// Pages returns the 1-based page numbers of the unit in ascending order.
func (g PageGroup) Pages() []int {
	if g.IsSpread() {
		return []int{g.First, g.Second}
	}
	return []int{g.First}
}

// Label returns the page-number part of the unit's identifiers: "3" for a
// singleton, "4_5" for a spread.
func (g PageGroup) Label() string {
	if g.IsSpread() {
		return fmt.Sprintf("%d_%d", g.First, g.Second)
	}
	return strconv.Itoa(g.First)
}

// ID returns the unit identifier: p3 for singletons, p4_5 for spreads.
func (g PageGroup) ID() string {
	return "p" + g.Label()
}

// PlanGroups computes the ordered processing units for an inclusive 1-based
// page range.
//
// In spread mode pairing follows global page parity, independent of where the
// range starts: page 1 is always solo (the cover), and an even page pairs with
// the following odd page (2-3, 4-5, 6-7, ...) only when both fall inside the
// range. Requesting pages 3-4 therefore yields two singletons, while 2-3
// yields one spread.
func PlanGroups(startPage, endPage int, spreadMode bool) []PageGroup {
	if !spreadMode {
		groups := make([]PageGroup, 0, endPage-startPage+1)
		for page := startPage; page <= endPage; page++ {
			groups = append(groups, Singleton(page))
		}
		return groups
	}

	var groups []PageGroup
	current := startPage

	for current <= endPage {
		switch {
		case current == 1:
			groups = append(groups, Singleton(1))
			current++
		case current%2 == 0 && current+1 <= endPage:
			groups = append(groups, Spread(current, current+1))
			current += 2
		default:
			groups = append(groups, Singleton(current))
			current++
		}
	}

	return groups
}
