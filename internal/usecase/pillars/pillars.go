// Package pillars computes the Four Pillars (year, month, day, hour sexagenary pairs)
// of a birth moment after true solar time correction.
//
// Boundaries are approximations: the year turns at a fixed Start-of-Spring date and each
// month at a fixed day of the calendar month. The month and day formulas are simplified
// and must stay exactly as written so existing reports remain reproducible.
package pillars

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
	"github.com/mingpan/mingpan/internal/usecase/solartime"
)

// Reference year and date for the sexagenary counters (1984 is a 甲子 year).
const referenceYear = 1984

var referenceDay = time.Date(1984, time.January, 1, 0, 0, 0, 0, time.UTC)

// monthTermDay is the day of each calendar month before which the effective month
// steps back by one. The values are the legacy approximation, indexed by calendar
// month, and are not astronomical term dates. Index 0 is unused.
var monthTermDay = [13]int{0, 4, 5, 5, 5, 6, 7, 7, 7, 8, 7, 7, 7}

const defaultCacheSize = 50

type cacheKey struct {
	year, month, day, hour int
	zone                   string
	longitude              float64
}

// Calculator computes Four Pillars and memoizes results per input tuple.
type Calculator struct {
	zones ports.ZoneResolver
	cache *lru.Cache[cacheKey, domain.FourPillars]
	log   *slog.Logger
	size  int
}

type Option func(*Calculator)

// WithCacheSize bounds the memo (least recently used entries are evicted).
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

func NewCalculator(zones ports.ZoneResolver, opts ...Option) *Calculator {
	c := &Calculator{
		zones: zones,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		size:  defaultCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	// lru.New only fails for a non-positive size, which WithCacheSize rules out.
	c.cache, _ = lru.New[cacheKey, domain.FourPillars](c.size)
	return c
}

// FourPillars validates the civil birth moment, converts it to true solar time and
// derives the four sexagenary pairs.
func (c *Calculator) FourPillars(year, month, day, hour int, tzName string, longitude float64) (domain.FourPillars, error) {
	const op = "pillars.compute"

	in := domain.BirthInput{Year: year, Month: month, Day: day, Hour: hour, TimeZone: tzName, Longitude: longitude}
	if err := in.Validate(); err != nil {
		return domain.FourPillars{}, err
	}

	key := cacheKey{year, month, day, hour, tzName, longitude}
	if fp, ok := c.cache.Get(key); ok {
		return fp, nil
	}

	loc, fellBack, err := c.zones.Resolve(tzName)
	if err != nil {
		c.log.Error("pillars.timezone.failed", "timezone", tzName, "err", err)
		return domain.FourPillars{}, &domain.OpError{Op: op, Kind: domain.KindComputation, Err: err}
	}
	if fellBack {
		c.log.Warn("pillars.timezone.fallback", "requested", tzName, "using", loc.String())
	}

	civil := time.Date(year, time.Month(month), day, hour, 0, 0, 0, loc)
	solar, err := solartime.TrueSolarTime(civil, longitude)
	if err != nil {
		c.log.Error("pillars.solar_time.failed", "civil", civil.Format(time.RFC3339), "longitude", longitude, "err", err)
		if domain.IsKind(err, domain.KindInvalidInput) {
			return domain.FourPillars{}, err
		}
		return domain.FourPillars{}, &domain.OpError{
			Op:   op,
			Kind: domain.KindComputation,
			Err:  fmt.Errorf("true solar time: %w", err),
		}
	}

	fp := FromSolarTime(solar)
	c.cache.Add(key, fp)

	c.log.Debug("pillars.computed",
		"civil", civil.Format(time.RFC3339),
		"solar", solar.Format(time.RFC3339),
		"pillars", fp.String(),
	)
	return fp, nil
}

// Len reports how many results are memoized.
func (c *Calculator) Len() int { return c.cache.Len() }

// Effective holds the calendar values after the boundary rules were applied.
type Effective struct {
	Year    int
	Month   int
	DayDate time.Time
	Hour    int
}

// Boundaries applies the Start-of-Spring, month-threshold and zi-hour rules to a true solar time.
func Boundaries(solar time.Time) Effective {
	y, m, d := solar.Year(), int(solar.Month()), solar.Day()
	hh := solar.Hour()

	// Start of Spring: Feb 4, or Feb 3 when the year is divisible by 4.
	springDay := 4
	if y%4 == 0 {
		springDay = 3
	}
	yearShifted := false
	if m < 2 || (m == 2 && d < springDay) {
		y--
		yearShifted = true
	}

	em := m
	if d < monthTermDay[m] {
		em--
		if em == 0 {
			em = 12
			// January already precedes Start of Spring, so the year moves back only once.
			if !yearShifted {
				y--
			}
		}
	}

	// The day counter runs on the effective year and month with the calendar day.
	// Hour 23 uses the previous calendar date instead.
	dayDate := time.Date(y, time.Month(em), d, 0, 0, 0, 0, time.UTC)
	if hh == 23 {
		dayDate = time.Date(solar.Year(), solar.Month(), solar.Day()-1, 0, 0, 0, 0, time.UTC)
	}

	return Effective{Year: y, Month: em, DayDate: dayDate, Hour: hh}
}

// FromSolarTime derives the pillars from an already corrected true solar time.
func FromSolarTime(solar time.Time) domain.FourPillars {
	e := Boundaries(solar)

	yearPair := domain.PairFromCycle(e.Year - referenceYear)

	days := int(e.DayDate.Sub(referenceDay).Hours() / 24)
	dayPair := domain.PairFromCycle(days)

	hourBranch := (e.Hour / 2) % 12
	odd := 0
	if e.Hour%2 == 1 {
		odd = 1
	}
	hourStem := (int(dayPair.Stem())*2 + hourBranch + odd) % 10

	monthBranch := (e.Month + 2) % 12
	monthStem := (int(yearPair.Stem())*2 + monthBranch) % 10

	// Indices are reduced mod 10/12 above, so the range check cannot fail.
	monthPair, _ := domain.PairFromIndices(monthStem, monthBranch)
	// Odd hours yield a mixed-parity pair; that output is kept as is.
	hourPair, _ := domain.PairFromIndices(hourStem, hourBranch)

	return domain.FourPillars{
		Year:  yearPair,
		Month: monthPair,
		Day:   dayPair,
		Hour:  hourPair,
	}
}
