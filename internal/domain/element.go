package domain

import "strings"

// Element is one of the five phases (Wuxing).
type Element string

const (
	ElementWood    Element = "木"
	ElementFire    Element = "火"
	ElementEarth   Element = "土"
	ElementMetal   Element = "金"
	ElementWater   Element = "水"
	ElementUnknown Element = "未知"
)

// Elements lists the five canonical elements in report order.
var Elements = [5]Element{ElementWood, ElementFire, ElementEarth, ElementMetal, ElementWater}

var stemElements = [10]Element{
	ElementWood, ElementWood,
	ElementFire, ElementFire,
	ElementEarth, ElementEarth,
	ElementMetal, ElementMetal,
	ElementWater, ElementWater,
}

// Main qi of each branch.
var branchElements = [12]Element{
	ElementWater, ElementEarth, ElementWood, ElementWood,
	ElementEarth, ElementFire, ElementFire, ElementEarth,
	ElementMetal, ElementMetal, ElementEarth, ElementWater,
}

// StemElement returns the fixed element of a stem, or ElementUnknown for an invalid index.
func StemElement(s Stem) Element {
	if !s.Valid() {
		return ElementUnknown
	}
	return stemElements[s]
}

// BranchElement returns the fixed element of a branch, or ElementUnknown for an invalid index.
func BranchElement(b Branch) Element {
	if !b.Valid() {
		return ElementUnknown
	}
	return branchElements[b]
}

// ElementFromStrokes maps a stroke sum to an element by its last decimal digit:
// 1-2 wood, 3-4 fire, 5-6 earth, 7-8 metal, 9/0 water. Negative sums are unknown.
func ElementFromStrokes(n int) Element {
	if n < 0 {
		return ElementUnknown
	}
	switch n % 10 {
	case 1, 2:
		return ElementWood
	case 3, 4:
		return ElementFire
	case 5, 6:
		return ElementEarth
	case 7, 8:
		return ElementMetal
	default:
		return ElementWater
	}
}

// ElementCounts tallies how often each element occurs in a chart.
type ElementCounts map[Element]int

// Total sums all counts.
func (c ElementCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// JoinElements joins elements with the ideographic comma used in reports.
func JoinElements(in []Element) string {
	parts := make([]string, 0, len(in))
	for _, e := range in {
		parts = append(parts, string(e))
	}
	return strings.Join(parts, "、")
}
