package domain

import (
	"encoding/json"
	"testing"
)

func TestPairFromCycleParity(t *testing.T) {
	for c := -120; c < 180; c++ {
		p := PairFromCycle(c)
		if int(p.Stem())%2 != int(p.Branch())%2 {
			t.Fatalf("cycle %d: %s breaks stem/branch parity", c, p)
		}
		if got := p.Cycle(); got != mod(c, 60) {
			t.Fatalf("cycle %d: Cycle() = %d", c, got)
		}
	}
}

func TestPairFromCycleKnownValues(t *testing.T) {
	cases := map[int]string{0: "甲子", 1: "乙丑", 5: "己巳", 10: "甲戌", 59: "癸亥", 60: "甲子", -1: "癸亥"}
	for c, want := range cases {
		if got := PairFromCycle(c).String(); got != want {
			t.Errorf("PairFromCycle(%d) = %s, want %s", c, got, want)
		}
	}
}

func TestNewPairRejectsMixedParity(t *testing.T) {
	if _, err := NewPair(0, 1); err == nil {
		t.Fatalf("expected 甲丑 to be rejected")
	}
	p, err := NewPair(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "甲子" {
		t.Fatalf("expected 甲子, got %s", p)
	}
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair(" 庚午 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Stem() != 6 || p.Branch() != 6 {
		t.Fatalf("expected 庚午 indices 6/6, got %d/%d", p.Stem(), p.Branch())
	}
	mixed, err := ParsePair("甲丑")
	if err != nil {
		t.Fatalf("unexpected error for mixed-parity pair: %v", err)
	}
	if mixed.Sexagenary() || mixed.Cycle() != -1 {
		t.Fatalf("expected 甲丑 outside the cycle")
	}
	for _, bad := range []string{"", "甲", "XY", "甲子丑"} {
		if _, err := ParsePair(bad); err == nil {
			t.Errorf("ParsePair(%q): expected error", bad)
		}
	}
}

func TestPairFromIndices(t *testing.T) {
	p, err := PairFromIndices(2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "丙寅" || !p.Sexagenary() || p.Cycle() != 2 {
		t.Fatalf("expected 丙寅 at cycle 2, got %s / %d", p, p.Cycle())
	}
	if _, err := PairFromIndices(10, 0); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestFourPillarsJSON(t *testing.T) {
	fp := FourPillars{Year: PairFromCycle(5), Month: PairFromCycle(12), Day: PairFromCycle(20), Hour: PairFromCycle(0)}
	if fp.String() != "己巳 丙子 甲申 甲子" {
		t.Fatalf("unexpected String(): %s", fp.String())
	}

	b, err := json.Marshal(fp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back FourPillars
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, b)
	}
	if back != fp {
		t.Fatalf("expected %s, got %s", fp, back)
	}
}
