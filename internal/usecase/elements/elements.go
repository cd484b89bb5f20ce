// Package elements tallies the five elements across a Four Pillars chart.
package elements

import "github.com/mingpan/mingpan/internal/domain"

// Count adds the stem and branch element of every pillar. Each canonical element
// is present in the result, possibly with zero.
func Count(fp domain.FourPillars) domain.ElementCounts {
	counts := make(domain.ElementCounts, len(domain.Elements))
	for _, e := range domain.Elements {
		counts[e] = 0
	}
	for _, p := range fp.Pairs() {
		counts[domain.StemElement(p.Stem())]++
		counts[domain.BranchElement(p.Branch())]++
	}
	return counts
}

// Summarize counts elements and lists every element tied at the maximum and at the
// minimum, in canonical order.
func Summarize(fp domain.FourPillars) domain.ElementSummary {
	counts := Count(fp)

	hi, lo := counts[domain.Elements[0]], counts[domain.Elements[0]]
	for _, e := range domain.Elements[1:] {
		hi = max(hi, counts[e])
		lo = min(lo, counts[e])
	}

	var strongest, weakest []domain.Element
	for _, e := range domain.Elements {
		if counts[e] == hi {
			strongest = append(strongest, e)
		}
		if counts[e] == lo {
			weakest = append(weakest, e)
		}
	}
	return domain.ElementSummary{Counts: counts, Strongest: strongest, Weakest: weakest}
}
