package geocode

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

// Chain tries each geocoder in order and falls back to a default location.
// It never fails; a fallback is logged.
type Chain struct {
	steps    []ports.Geocoder
	fallback domain.Location
	log      *slog.Logger
}

var _ ports.Geocoder = (*Chain)(nil)

func NewChain(fallback domain.Location, log *slog.Logger, steps ...ports.Geocoder) *Chain {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	var kept []ports.Geocoder
	for _, s := range steps {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Chain{steps: kept, fallback: fallback, log: log}
}

func (c *Chain) Locate(ctx context.Context, place string) (domain.Location, error) {
	if strings.TrimSpace(place) == "" {
		c.log.Warn("geocode.fallback", "place", place, "reason", "empty place", "using", c.fallback.Name)
		return c.fallback, nil
	}

	var lastErr error
	for _, s := range c.steps {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		loc, err := s.Locate(ctx, place)
		if err == nil {
			c.log.Debug("geocode.located", "place", place, "source", loc.Source, "longitude", loc.Longitude, "timezone", loc.TimeZone)
			return loc, nil
		}
		lastErr = err
		if !domain.IsKind(err, domain.KindNotFound) {
			c.log.Warn("geocode.step_failed", "place", place, "err", err)
		}
	}

	c.log.Warn("geocode.fallback", "place", place, "using", c.fallback.Name, "err", lastErr)
	return c.fallback, nil
}
