package domain

import "testing"

func TestElementFromStrokes(t *testing.T) {
	cases := []struct {
		n    int
		want Element
	}{
		{11, ElementWood},
		{21, ElementWood},
		{2, ElementWood},
		{13, ElementFire},
		{4, ElementFire},
		{15, ElementEarth},
		{26, ElementEarth},
		{17, ElementMetal},
		{8, ElementMetal},
		{19, ElementWater},
		{20, ElementWater},
		{0, ElementWater},
		{-1, ElementUnknown},
	}
	for _, c := range cases {
		if got := ElementFromStrokes(c.n); got != c.want {
			t.Errorf("ElementFromStrokes(%d) = %s, want %s", c.n, got, c.want)
		}
	}
}

func TestStemAndBranchElements(t *testing.T) {
	if StemElement(0) != ElementWood || StemElement(9) != ElementWater {
		t.Fatalf("unexpected stem elements")
	}
	if BranchElement(0) != ElementWater || BranchElement(5) != ElementFire || BranchElement(10) != ElementEarth {
		t.Fatalf("unexpected branch elements")
	}
	if StemElement(10) != ElementUnknown || BranchElement(-1) != ElementUnknown {
		t.Fatalf("expected unknown for out-of-range indices")
	}
}

func TestJoinElements(t *testing.T) {
	if got := JoinElements([]Element{ElementWood, ElementMetal}); got != "木、金" {
		t.Fatalf("unexpected join: %q", got)
	}
	if got := JoinElements(nil); got != "" {
		t.Fatalf("expected empty join, got %q", got)
	}
}
