package domain

import "time"

// ElementSummary is the elemental balance of a chart. Ties are kept, not broken.
type ElementSummary struct {
	Counts    ElementCounts `json:"counts"`
	Strongest []Element     `json:"strongest"`
	Weakest   []Element     `json:"weakest"`
}

// Reading is one complete analysis: the name chart, the birth chart and the two
// text reports handed to downstream prompt builders.
type Reading struct {
	Name       string         `json:"name"`
	Birth      BirthInput     `json:"birth"`
	Location   Location       `json:"location"`
	Pillars    FourPillars    `json:"pillars"`
	Summary    ElementSummary `json:"summary"`
	FiveGrid   FiveGridResult `json:"five_grid"`
	BaziReport string         `json:"bazi_report"`
	NameReport string         `json:"name_report"`
	CreatedAt  time.Time      `json:"created_at"`
}
