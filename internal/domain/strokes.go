package domain

// UnknownStrokes is the sentinel stored in stroke tables for characters whose
// reference code has no stroke count.
const UnknownStrokes = -1

// StrokeTable maps a single character to its stroke count or UnknownStrokes.
// It is the shape of the persisted cache artifact.
type StrokeTable map[rune]int

// StrokeCount is a stroke count that may be unknown.
type StrokeCount struct {
	N     int
	Known bool
}

// Strokes wraps a known count.
func Strokes(n int) StrokeCount { return StrokeCount{N: n, Known: true} }

// Unknown is the unknown stroke count.
func Unknown() StrokeCount { return StrokeCount{} }

// Value returns the count used in grid arithmetic: N when known, UnknownStrokes otherwise.
func (s StrokeCount) Value() int {
	if !s.Known {
		return UnknownStrokes
	}
	return s.N
}

// Lookup returns the count for r, treating absent entries and the sentinel alike.
func (t StrokeTable) Lookup(r rune) StrokeCount {
	n, ok := t[r]
	if !ok || n < 0 {
		return Unknown()
	}
	return Strokes(n)
}

// CharStroke pairs a character with its looked-up stroke count.
type CharStroke struct {
	Char    rune        `json:"-"`
	Strokes StrokeCount `json:"-"`
}
