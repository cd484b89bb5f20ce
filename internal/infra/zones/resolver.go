// Package zones resolves IANA time zone names with a configured fallback.
package zones

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

type Resolver struct {
	fallback string
	log      *slog.Logger

	mu     sync.RWMutex
	loaded map[string]*time.Location
}

var _ ports.ZoneResolver = (*Resolver)(nil)

type Option func(*Resolver)

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// NewResolver falls back to the fallback zone for names the tz database does not know.
func NewResolver(fallback string, opts ...Option) *Resolver {
	r := &Resolver{
		fallback: fallback,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		loaded:   map[string]*time.Location{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve loads name, or the fallback zone with fellBack set. An unresolvable
// fallback is a computation error.
func (r *Resolver) Resolve(name string) (*time.Location, bool, error) {
	name = strings.TrimSpace(name)
	if loc, err := r.load(name); err == nil && name != "" {
		return loc, false, nil
	} else if name != "" {
		r.log.Warn("zones.unknown", "name", name, "fallback", r.fallback, "err", err)
	}

	loc, err := r.load(r.fallback)
	if err != nil || strings.TrimSpace(r.fallback) == "" {
		return nil, false, &domain.OpError{
			Op:   "zones.resolve",
			Kind: domain.KindComputation,
			Err:  fmt.Errorf("zone %q and fallback %q unavailable: %w", name, r.fallback, domain.ErrComputation),
		}
	}
	return loc, true, nil
}

func (r *Resolver) load(name string) (*time.Location, error) {
	r.mu.RLock()
	loc, ok := r.loaded[name]
	r.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.loaded[name] = loc
	r.mu.Unlock()
	return loc, nil
}
