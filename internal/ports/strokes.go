package ports

import "github.com/mingpan/mingpan/internal/domain"

// StrokeLookup answers stroke counts for single characters.
// Implementations are read-only after initialization and safe for concurrent use.
type StrokeLookup interface {
	Strokes(ch rune) domain.StrokeCount
}
