// Package geocode turns free-form birth places into (longitude, time zone) pairs.
package geocode

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/infra/httpclient"
	"github.com/mingpan/mingpan/internal/ports"
	"github.com/mingpan/mingpan/internal/usecase/extract"
)

var (
	geocodeRules = extract.Rules{
		"status": "$.status",
		"lat":    "$.results[0].geometry.location.lat",
		"lng":    "$.results[0].geometry.location.lng",
		"name":   "$.results[0].formatted_address",
	}
	timezoneRules = extract.Rules{
		"status": "$.status",
		"zone":   "$.timeZoneId",
	}
)

// Google resolves places with the Geocoding and Time Zone web services.
type Google struct {
	exec    *httpclient.Executor
	baseURL string
	apiKey  string
	now     func() time.Time
}

var _ ports.Geocoder = (*Google)(nil)

type GoogleOption func(*Google)

// WithNow fixes the timestamp sent to the Time Zone API; useful for tests.
func WithNow(now func() time.Time) GoogleOption {
	return func(g *Google) { g.now = now }
}

func NewGoogle(exec *httpclient.Executor, baseURL, apiKey string, opts ...GoogleOption) *Google {
	g := &Google{exec: exec, baseURL: baseURL, apiKey: apiKey, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Google) Locate(ctx context.Context, place string) (domain.Location, error) {
	const op = "geocode.google"
	if strings.TrimSpace(g.apiKey) == "" {
		return domain.Location{}, &domain.OpError{Op: op, Kind: domain.KindResourceUnavailable, Err: fmt.Errorf("api key not set: %w", domain.ErrResourceUnavailable)}
	}

	geo, err := g.fetch(ctx, "geocode/json", url.Values{"address": {place}, "key": {g.apiKey}}, geocodeRules, "lat", "lng")
	if err != nil {
		return domain.Location{}, err
	}
	lat, err := extract.Float(geo, "lat")
	if err != nil {
		return domain.Location{}, &domain.OpError{Op: op, Kind: domain.KindResourceUnavailable, Err: err}
	}
	lng, err := extract.Float(geo, "lng")
	if err != nil {
		return domain.Location{}, &domain.OpError{Op: op, Kind: domain.KindResourceUnavailable, Err: err}
	}

	tz, err := g.fetch(ctx, "timezone/json", url.Values{
		"location":  {strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)},
		"timestamp": {strconv.FormatInt(g.now().Unix(), 10)},
		"key":       {g.apiKey},
	}, timezoneRules, "zone")
	if err != nil {
		return domain.Location{}, err
	}

	name := geo["name"]
	if name == "" {
		name = place
	}
	loc := domain.Location{Name: name, Longitude: lng, TimeZone: tz["zone"], Source: "google"}
	if err := domain.ValidateLongitude(loc.Longitude); err != nil {
		return domain.Location{}, &domain.OpError{Op: op, Kind: domain.KindResourceUnavailable, Err: err}
	}
	return loc, nil
}

// fetch runs one API call, requires status OK and the named fields.
func (g *Google) fetch(ctx context.Context, path string, q url.Values, rules extract.Rules, required ...string) (map[string]string, error) {
	op := "geocode.google." + strings.SplitN(path, "/", 2)[0]

	req, err := httpclient.BuildGet(ctx, g.baseURL, path, q)
	if err != nil {
		return nil, err
	}
	body, err := g.exec.FetchJSON(ctx, req)
	if err != nil {
		return nil, err
	}

	values, results := extract.Apply(body, rules)
	if status := values["status"]; status != "OK" {
		kind := domain.KindResourceUnavailable
		if status == "ZERO_RESULTS" {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: op, Kind: kind, Err: fmt.Errorf("api status %q", status)}
	}
	for _, name := range required {
		if _, ok := values[name]; !ok {
			return nil, &domain.OpError{Op: op, Kind: domain.KindResourceUnavailable, Err: fmt.Errorf("incomplete response: %s", extract.Failed(results))}
		}
	}
	return values, nil
}
