package domain

import (
	"fmt"
	"strings"
)

// Stem is an index into the ten Heavenly Stems (甲..癸).
type Stem int

// Branch is an index into the twelve Earthly Branches (子..亥).
type Branch int

var stemSymbols = [10]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var branchSymbols = [12]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemSymbols[s]
}

func (s Stem) Valid() bool { return s >= 0 && s < 10 }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchSymbols[b]
}

func (b Branch) Valid() bool { return b >= 0 && b < 12 }

// StemBranchPair is one stem/branch unit such as 甲子.
// The zero value is 甲子 (cycle 0). Pairs built by PairFromCycle are always members of
// the sixty-term cycle; PairFromIndices may also carry the mixed-parity hour pairs the
// legacy hour formula produces (see Sexagenary).
type StemBranchPair struct {
	stem   Stem
	branch Branch
}

// PairFromCycle derives both halves from a single sexagenary counter.
// Any integer is accepted and normalised into 0..59.
func PairFromCycle(counter int) StemBranchPair {
	c := mod(counter, 60)
	return StemBranchPair{stem: Stem(c % 10), branch: Branch(c % 12)}
}

// NewPair builds a pair from explicit indices. Stem and branch must share parity,
// otherwise the combination never occurs in the sixty-term cycle.
func NewPair(stem Stem, branch Branch) (StemBranchPair, error) {
	if !stem.Valid() || !branch.Valid() {
		return StemBranchPair{}, InvalidInput("domain.new_pair", "stem %d / branch %d out of range", int(stem), int(branch))
	}
	if int(stem)%2 != int(branch)%2 {
		return StemBranchPair{}, InvalidInput("domain.new_pair", "%s%s is not a sexagenary pair", stem, branch)
	}
	return StemBranchPair{stem: stem, branch: branch}, nil
}

// PairFromIndices builds a pair from explicit indices. Same-parity input is a cycle
// member; mixed parity is kept as given and reports Sexagenary() == false.
func PairFromIndices(stem, branch int) (StemBranchPair, error) {
	s, b := Stem(stem), Branch(branch)
	if !s.Valid() || !b.Valid() {
		return StemBranchPair{}, InvalidInput("domain.pair_from_indices", "stem %d / branch %d out of range", stem, branch)
	}
	return StemBranchPair{stem: s, branch: b}, nil
}

// ParsePair parses a two-symbol pair such as "甲子".
func ParsePair(s string) (StemBranchPair, error) {
	r := []rune(strings.TrimSpace(s))
	if len(r) != 2 {
		return StemBranchPair{}, InvalidInput("domain.parse_pair", "expected two symbols, got %q", s)
	}
	st, br := Stem(-1), Branch(-1)
	for i, sym := range stemSymbols {
		if sym == string(r[0]) {
			st = Stem(i)
		}
	}
	for i, sym := range branchSymbols {
		if sym == string(r[1]) {
			br = Branch(i)
		}
	}
	return PairFromIndices(int(st), int(br))
}

func (p StemBranchPair) Stem() Stem     { return p.stem }
func (p StemBranchPair) Branch() Branch { return p.branch }

// Sexagenary reports whether the pair belongs to the sixty-term cycle.
func (p StemBranchPair) Sexagenary() bool {
	return int(p.stem)%2 == int(p.branch)%2
}

// Cycle returns the position of the pair in the sixty-term cycle (甲子 = 0), or -1.
func (p StemBranchPair) Cycle() int {
	for c := int(p.stem); c < 60; c += 10 {
		if c%12 == int(p.branch) {
			return c
		}
	}
	return -1
}

func (p StemBranchPair) String() string {
	return p.stem.String() + p.branch.String()
}

func (p StemBranchPair) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *StemBranchPair) UnmarshalText(b []byte) error {
	parsed, err := ParsePair(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// FourPillars holds the year, month, day and hour pairs of a birth chart.
type FourPillars struct {
	Year  StemBranchPair `json:"year"`
	Month StemBranchPair `json:"month"`
	Day   StemBranchPair `json:"day"`
	Hour  StemBranchPair `json:"hour"`
}

// Pairs returns the pillars in year, month, day, hour order.
func (fp FourPillars) Pairs() [4]StemBranchPair {
	return [4]StemBranchPair{fp.Year, fp.Month, fp.Day, fp.Hour}
}

// String renders the pillars space-joined, e.g. "己巳 丙子 甲申 甲子".
func (fp FourPillars) String() string {
	pairs := fp.Pairs()
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
