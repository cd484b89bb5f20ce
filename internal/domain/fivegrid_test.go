package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFiveGridUnknownChars(t *testing.T) {
	r := FiveGridResult{
		Name: "王小明",
		Strokes: []CharStroke{
			{Char: '王', Strokes: Strokes(4)},
			{Char: '小', Strokes: Unknown()},
			{Char: '明', Strokes: Strokes(8)},
		},
	}
	if !r.LowConfidence() {
		t.Fatalf("expected low confidence")
	}
	if got := string(r.UnknownChars()); got != "小" {
		t.Fatalf("expected 小 unknown, got %q", got)
	}
}

func TestFiveGridJSONKeepsUnknownSentinel(t *testing.T) {
	r := FiveGridResult{
		Name:     "李四",
		Strokes:  []CharStroke{{Char: '李', Strokes: Strokes(7)}, {Char: '四', Strokes: Unknown()}},
		Values:   map[Grid]int{GridHeaven: 8},
		Elements: map[Grid]Element{GridHeaven: ElementMetal},
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"四":-1`) || !strings.Contains(string(b), `"low_confidence":true`) {
		t.Fatalf("expected sentinel and flag in %s", b)
	}

	var back FiveGridResult
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Strokes) != 2 || back.Strokes[1].Strokes.Known {
		t.Fatalf("expected unknown stroke preserved, got %+v", back.Strokes)
	}
	if back.Values[GridHeaven] != 8 {
		t.Fatalf("expected grid value preserved")
	}
}

func TestStrokeTableLookup(t *testing.T) {
	tbl := StrokeTable{'王': 4, '囗': UnknownStrokes}
	if got := tbl.Lookup('王'); !got.Known || got.N != 4 {
		t.Fatalf("expected 4, got %+v", got)
	}
	if got := tbl.Lookup('囗'); got.Known || got.Value() != -1 {
		t.Fatalf("expected sentinel unknown, got %+v", got)
	}
	if got := tbl.Lookup('x'); got.Known {
		t.Fatalf("expected absent char unknown")
	}
}
