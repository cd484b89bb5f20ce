// Package numerology computes the five-grid (五格) chart of a Chinese name from stroke counts.
package numerology

import (
	"io"
	"log/slog"
	"maps"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

const defaultCacheSize = 100

// CJK Unified Ideographs block.
const (
	cjkFirst = 0x4E00
	cjkLast  = 0x9FFF
)

// Calculator analyzes names against a stroke lookup and memoizes results by name.
type Calculator struct {
	strokes ports.StrokeLookup
	cache   *lru.Cache[string, domain.FiveGridResult]
	log     *slog.Logger
	size    int
}

type Option func(*Calculator)

func WithCacheSize(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.size = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.log = l
		}
	}
}

func NewCalculator(strokes ports.StrokeLookup, opts ...Option) *Calculator {
	c := &Calculator{
		strokes: strokes,
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
		size:    defaultCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache, _ = lru.New[string, domain.FiveGridResult](c.size)
	return c
}

// Normalize trims surrounding space and applies NFC so composed and decomposed input
// share one cache entry.
func Normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ValidateName accepts names of at least two characters, all CJK Unified Ideographs.
// The name is expected to be normalized already.
func ValidateName(name string) error {
	if utf8.RuneCountInString(name) < 2 {
		return &domain.OpError{Op: "numerology.validate", Kind: domain.KindInvalidInput, Err: domain.ErrInvalidName}
	}
	for _, r := range name {
		if r < cjkFirst || r > cjkLast {
			return &domain.OpError{Op: "numerology.validate", Kind: domain.KindInvalidInput, Err: domain.ErrInvalidName}
		}
	}
	return nil
}

// AnalyzeName computes the five grids of name. Unknown stroke counts enter the
// arithmetic as -1; the result then reports LowConfidence.
func (c *Calculator) AnalyzeName(name string) (domain.FiveGridResult, error) {
	name = Normalize(name)
	if err := ValidateName(name); err != nil {
		return domain.FiveGridResult{}, err
	}

	if res, ok := c.cache.Get(name); ok {
		return clone(res), nil
	}

	chars := c.lookupAll(name)
	res := compute(name, chars)

	if unknown := res.UnknownChars(); len(unknown) > 0 {
		c.log.Warn("numerology.unknown_strokes", "name", name, "chars", string(unknown))
	}
	c.cache.Add(name, res)
	c.log.Debug("numerology.computed", "name", name, "total", res.Values[domain.GridTotal])

	return clone(res), nil
}

// NameStrokes returns the per-character stroke counts of a valid name.
func (c *Calculator) NameStrokes(name string) ([]domain.CharStroke, error) {
	name = Normalize(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return c.lookupAll(name), nil
}

// Len reports how many names are memoized.
func (c *Calculator) Len() int { return c.cache.Len() }

func (c *Calculator) lookupAll(name string) []domain.CharStroke {
	out := make([]domain.CharStroke, 0, utf8.RuneCountInString(name))
	for _, r := range name {
		out = append(out, domain.CharStroke{Char: r, Strokes: c.strokes.Strokes(r)})
	}
	return out
}

// compute applies the grid arithmetic to at least two looked-up characters.
func compute(name string, chars []domain.CharStroke) domain.FiveGridResult {
	surname := chars[0].Strokes.Value()
	given := 0
	for _, cs := range chars[1:] {
		given += cs.Strokes.Value()
	}

	heaven := surname + 1
	person := chars[0].Strokes.Value() + chars[1].Strokes.Value()
	earth := given
	if len(chars)-1 == 1 {
		earth = given + 1
	}
	total := surname + given
	outer := max(total-person, 1)

	values := map[domain.Grid]int{
		domain.GridHeaven: heaven,
		domain.GridPerson: person,
		domain.GridEarth:  earth,
		domain.GridOuter:  outer,
		domain.GridTotal:  total,
	}
	elements := make(map[domain.Grid]domain.Element, len(values))
	for g, v := range values {
		elements[g] = domain.ElementFromStrokes(v)
	}

	return domain.FiveGridResult{Name: name, Strokes: chars, Values: values, Elements: elements}
}

func clone(r domain.FiveGridResult) domain.FiveGridResult {
	r.Strokes = append([]domain.CharStroke(nil), r.Strokes...)
	r.Values = maps.Clone(r.Values)
	r.Elements = maps.Clone(r.Elements)
	return r
}
