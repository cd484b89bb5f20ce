package domain

import (
	"encoding/json"
	"unicode/utf8"
)

// Grid names one of the five numerology grids of a name.
type Grid string

const (
	GridHeaven Grid = "天格"
	GridPerson Grid = "人格"
	GridEarth  Grid = "地格"
	GridOuter  Grid = "外格"
	GridTotal  Grid = "總格"
)

// Grids lists the grids in report order.
var Grids = [5]Grid{GridHeaven, GridPerson, GridEarth, GridOuter, GridTotal}

// FiveGridResult is the numerology chart of a name.
// Values may be computed from unknown (-1) stroke counts; see LowConfidence.
type FiveGridResult struct {
	Name     string
	Strokes  []CharStroke
	Values   map[Grid]int
	Elements map[Grid]Element
}

// UnknownChars lists the characters whose stroke count was unknown, in name order.
func (r FiveGridResult) UnknownChars() []rune {
	var out []rune
	for _, cs := range r.Strokes {
		if !cs.Strokes.Known {
			out = append(out, cs.Char)
		}
	}
	return out
}

// LowConfidence reports whether any grid was computed from an unknown stroke count.
func (r FiveGridResult) LowConfidence() bool {
	return len(r.UnknownChars()) > 0
}

type fiveGridJSON struct {
	Name          string           `json:"name"`
	Strokes       map[string]int   `json:"strokes"`
	Values        map[Grid]int     `json:"grids"`
	Elements      map[Grid]Element `json:"elements"`
	LowConfidence bool             `json:"low_confidence,omitempty"`
}

func (r FiveGridResult) MarshalJSON() ([]byte, error) {
	strokes := make(map[string]int, len(r.Strokes))
	for _, cs := range r.Strokes {
		strokes[string(cs.Char)] = cs.Strokes.Value()
	}
	return json.Marshal(fiveGridJSON{
		Name:          r.Name,
		Strokes:       strokes,
		Values:        r.Values,
		Elements:      r.Elements,
		LowConfidence: r.LowConfidence(),
	})
}

func (r *FiveGridResult) UnmarshalJSON(b []byte) error {
	var v fiveGridJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	out := FiveGridResult{Name: v.Name, Values: v.Values, Elements: v.Elements}
	// Strokes follow name order; duplicates share one map entry.
	for _, ch := range v.Name {
		if ch == utf8.RuneError {
			continue
		}
		n, ok := v.Strokes[string(ch)]
		sc := Unknown()
		if ok && n >= 0 {
			sc = Strokes(n)
		}
		out.Strokes = append(out.Strokes, CharStroke{Char: ch, Strokes: sc})
	}
	*r = out
	return nil
}
