package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
	"github.com/mingpan/mingpan/internal/usecase/elements"
	"github.com/mingpan/mingpan/internal/usecase/numerology"
)

// ReadingRequest is one person's name, civil birth moment and birth place.
// Location, when set, skips geocoding.
type ReadingRequest struct {
	Name     string
	Year     int
	Month    int
	Day      int
	Hour     int
	Place    string
	Location *domain.Location
	Save     bool
}

// ReadingResult is a generated reading plus its store id when persisted.
type ReadingResult struct {
	Reading domain.Reading
	ID      string
}

type GenerateReading struct {
	names    ports.NameAnalyzer
	pillars  ports.PillarCalculator
	geocoder ports.Geocoder
	store    ports.ReadingStore
	log      *slog.Logger
	now      func() time.Time
}

type GenerateOption func(*GenerateReading)

// WithStore enables persistence for requests that ask for it.
func WithStore(s ports.ReadingStore) GenerateOption {
	return func(uc *GenerateReading) { uc.store = s }
}

func WithLogger(l *slog.Logger) GenerateOption {
	return func(uc *GenerateReading) {
		if l != nil {
			uc.log = l
		}
	}
}

func WithClock(now func() time.Time) GenerateOption {
	return func(uc *GenerateReading) { uc.now = now }
}

func NewGenerateReading(names ports.NameAnalyzer, pillars ports.PillarCalculator, geocoder ports.Geocoder, opts ...GenerateOption) *GenerateReading {
	uc := &GenerateReading{
		names:    names,
		pillars:  pillars,
		geocoder: geocoder,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute validates the request, resolves the place and computes both charts.
// Invalid input fails before any lookup or computation.
func (uc *GenerateReading) Execute(ctx context.Context, req ReadingRequest) (ReadingResult, error) {
	if err := validateRequest(req); err != nil {
		return ReadingResult{}, err
	}

	loc, err := uc.locate(ctx, req)
	if err != nil {
		return ReadingResult{}, err
	}

	birth := domain.BirthInput{
		Year: req.Year, Month: req.Month, Day: req.Day, Hour: req.Hour,
		TimeZone: loc.TimeZone, Longitude: loc.Longitude,
	}
	fp, err := uc.pillars.FourPillars(birth.Year, birth.Month, birth.Day, birth.Hour, birth.TimeZone, birth.Longitude)
	if err != nil {
		return ReadingResult{}, err
	}
	summary := elements.Summarize(fp)

	grid, err := uc.names.AnalyzeName(req.Name)
	if err != nil {
		return ReadingResult{}, err
	}

	r := domain.Reading{
		Name:       grid.Name,
		Birth:      birth,
		Location:   loc,
		Pillars:    fp,
		Summary:    summary,
		FiveGrid:   grid,
		BaziReport: report.FormatBazi(fp, summary),
		NameReport: report.FormatFiveGrid(grid),
		CreatedAt:  uc.now(),
	}
	uc.log.Info("reading.generated",
		"pillars", fp.String(),
		"place", loc.Name,
		"location_source", loc.Source,
		"low_confidence", grid.LowConfidence(),
	)

	res := ReadingResult{Reading: r}
	if req.Save && uc.store != nil {
		id, err := uc.store.SaveReading(r)
		if err != nil {
			return res, err
		}
		res.ID = id
		uc.log.Info("reading.saved", "id", id)
	}
	return res, nil
}

func (uc *GenerateReading) locate(ctx context.Context, req ReadingRequest) (domain.Location, error) {
	if req.Location != nil {
		if err := domain.ValidateLongitude(req.Location.Longitude); err != nil {
			return domain.Location{}, err
		}
		return *req.Location, nil
	}
	return uc.geocoder.Locate(ctx, req.Place)
}

// validateRequest checks the name and the calendar date. Longitude is checked
// once the place is resolved.
func validateRequest(req ReadingRequest) error {
	if err := numerology.ValidateName(numerology.Normalize(req.Name)); err != nil {
		return err
	}
	birth := domain.BirthInput{Year: req.Year, Month: req.Month, Day: req.Day, Hour: req.Hour}
	return birth.Validate()
}

// ValidateReading checks a request without computing anything.
type ValidateReading struct{}

func NewValidateReading() *ValidateReading { return &ValidateReading{} }

func (uc *ValidateReading) Execute(_ context.Context, req ReadingRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	if req.Location != nil {
		return domain.ValidateLongitude(req.Location.Longitude)
	}
	return nil
}
