// Package places is a YAML catalog of named birth places with their longitude and zone.
package places

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

// Catalog reads places.yaml lazily and answers lookups case-insensitively by name or alias.
type Catalog struct {
	path string

	once   sync.Once
	places []domain.Location
	index  map[string]domain.Location
	err    error
}

var (
	_ ports.Geocoder     = (*Catalog)(nil)
	_ ports.PlaceCatalog = (*Catalog)(nil)
)

func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

type yamlPlaces struct {
	Places map[string]yamlPlace `yaml:"places"`
}

type yamlPlace struct {
	Longitude *float64 `yaml:"longitude"`
	TimeZone  string   `yaml:"timezone"`
	Aliases   []string `yaml:"aliases"`
}

func (c *Catalog) load() {
	b, err := os.ReadFile(c.path)
	if err != nil {
		c.err = &domain.OpError{Op: "places.load", Kind: domain.KindNotFound, Path: c.path, Err: err}
		return
	}

	var y yamlPlaces
	if err := yaml.Unmarshal(b, &y); err != nil {
		c.err = &domain.OpError{Op: "places.load", Kind: domain.KindInvalidConfig, Path: c.path, Err: err}
		return
	}

	c.index = make(map[string]domain.Location, len(y.Places))
	for name, p := range y.Places {
		if p.Longitude == nil || strings.TrimSpace(p.TimeZone) == "" {
			c.err = invalidPlace(c.path, name, "longitude and timezone are required")
			return
		}
		if err := domain.ValidateLongitude(*p.Longitude); err != nil {
			c.err = invalidPlace(c.path, name, err.Error())
			return
		}

		loc := domain.Location{
			Name:      name,
			Longitude: *p.Longitude,
			TimeZone:  strings.TrimSpace(p.TimeZone),
			Source:    "catalog",
		}
		c.places = append(c.places, loc)
		for _, key := range append([]string{name}, p.Aliases...) {
			c.index[normalize(key)] = loc
		}
	}
	sort.Slice(c.places, func(i, j int) bool { return c.places[i].Name < c.places[j].Name })
}

// ListPlaces returns the catalog sorted by name.
func (c *Catalog) ListPlaces() ([]domain.Location, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	return append([]domain.Location(nil), c.places...), nil
}

// Locate finds place by name or alias. Unknown places are not_found.
func (c *Catalog) Locate(_ context.Context, place string) (domain.Location, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return domain.Location{}, c.err
	}
	loc, ok := c.index[normalize(place)]
	if !ok {
		return domain.Location{}, &domain.OpError{
			Op:   "places.locate",
			Kind: domain.KindNotFound,
			Path: c.path,
			Err:  fmt.Errorf("place %q: %w", place, domain.ErrNotFound),
		}
	}
	return loc, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func invalidPlace(path, name, msg string) error {
	return &domain.OpError{
		Op:   "places.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("place %s: %s", name, msg),
	}
}
