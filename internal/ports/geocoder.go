package ports

import (
	"context"

	"github.com/mingpan/mingpan/internal/domain"
)

// Geocoder resolves a free-form place to the (longitude, time zone) pair the engine consumes.
type Geocoder interface {
	Locate(ctx context.Context, place string) (domain.Location, error)
}

// PlaceCatalog lists the places known without a network lookup.
type PlaceCatalog interface {
	ListPlaces() ([]domain.Location, error)
}
