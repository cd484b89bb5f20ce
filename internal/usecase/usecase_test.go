package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/usecase/numerology"
	"github.com/mingpan/mingpan/internal/usecase/pillars"
)

// --- fakes shared by the usecase tests ---

type fakeStrokes map[rune]int

func (f fakeStrokes) Strokes(ch rune) domain.StrokeCount {
	if n, ok := f[ch]; ok {
		return domain.Strokes(n)
	}
	return domain.Unknown()
}

type fakeZones struct{}

func (fakeZones) Resolve(string) (*time.Location, bool, error) {
	return time.FixedZone("UTC+8", 8*3600), false, nil
}

type fakeGeocoder struct {
	loc   domain.Location
	err   error
	calls int
	last  string
}

func (g *fakeGeocoder) Locate(_ context.Context, place string) (domain.Location, error) {
	g.calls++
	g.last = place
	return g.loc, g.err
}

type fakeStore struct {
	saved bool
	last  domain.Reading
	err   error
}

func (s *fakeStore) SaveReading(r domain.Reading) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = true
	s.last = r
	return "reading-123", nil
}

type fakeCaseBooks struct {
	books map[string]domain.CaseBook
	refs  []domain.CaseBookRef
	err   error
}

func (f fakeCaseBooks) LoadCaseBook(path string) (domain.CaseBook, error) {
	if f.err != nil {
		return domain.CaseBook{}, f.err
	}
	b, ok := f.books[path]
	if !ok {
		return domain.CaseBook{}, &domain.OpError{Op: "fake.load", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return b, nil
}

func (f fakeCaseBooks) ListCaseBooks(string) ([]domain.CaseBookRef, error) {
	return f.refs, f.err
}

type fakeBuilder struct {
	table domain.StrokeTable
	err   error
}

func (b fakeBuilder) Rebuild() (domain.StrokeTable, error) { return b.table, b.err }

func newEngines() (*numerology.Calculator, *pillars.Calculator) {
	return numerology.NewCalculator(fakeStrokes{'王': 4, '小': 3, '明': 8}), pillars.NewCalculator(fakeZones{})
}

func taipei() domain.Location {
	return domain.Location{Name: "台北", Longitude: 121.5654, TimeZone: "Asia/Taipei", Source: "catalog"}
}

// --- GenerateReading ---

func TestGenerateReading_FullReading(t *testing.T) {
	names, calc := newEngines()
	geo := &fakeGeocoder{loc: taipei()}
	store := &fakeStore{}
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	uc := NewGenerateReading(names, calc, geo, WithStore(store), WithClock(func() time.Time { return fixed }))

	res, err := uc.Execute(context.Background(), ReadingRequest{
		Name: "王小明", Year: 1990, Month: 1, Day: 1, Hour: 0, Place: "台北", Save: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := res.Reading
	if got := r.Pillars.String(); got != "己巳 丙寅 乙丑 丙子" {
		t.Fatalf("pillars=%q", got)
	}
	if geo.calls != 1 || geo.last != "台北" {
		t.Fatalf("geocoder calls=%d last=%q", geo.calls, geo.last)
	}
	if r.Birth.TimeZone != "Asia/Taipei" || r.Birth.Longitude != 121.5654 {
		t.Fatalf("birth location not carried: %+v", r.Birth)
	}
	if r.FiveGrid.Values[domain.GridTotal] != 15 {
		t.Fatalf("total grid=%d", r.FiveGrid.Values[domain.GridTotal])
	}
	if !strings.Contains(r.BaziReport, "己巳 丙寅 乙丑 丙子") {
		t.Fatalf("bazi report=%q", r.BaziReport)
	}
	if r.NameReport != report.FormatFiveGrid(r.FiveGrid) {
		t.Fatalf("name report mismatch")
	}
	if !r.CreatedAt.Equal(fixed) {
		t.Fatalf("created_at=%v", r.CreatedAt)
	}
	if !store.saved || res.ID != "reading-123" {
		t.Fatalf("expected save, got saved=%v id=%q", store.saved, res.ID)
	}
}

func TestGenerateReading_ExplicitLocationSkipsGeocoder(t *testing.T) {
	names, calc := newEngines()
	geo := &fakeGeocoder{err: errors.New("should not be called")}
	loc := taipei()
	uc := NewGenerateReading(names, calc, geo)

	res, err := uc.Execute(context.Background(), ReadingRequest{
		Name: "王小明", Year: 1990, Month: 1, Day: 1, Hour: 0, Location: &loc,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geo.calls != 0 {
		t.Fatalf("geocoder called %d times", geo.calls)
	}
	if res.ID != "" {
		t.Fatalf("no store configured, got id %q", res.ID)
	}
}

func TestGenerateReading_InvalidInputFailsBeforeLookup(t *testing.T) {
	cases := []struct {
		name string
		req  ReadingRequest
	}{
		{"latin name", ReadingRequest{Name: "John", Year: 1990, Month: 1, Day: 1}},
		{"single char", ReadingRequest{Name: "王", Year: 1990, Month: 1, Day: 1}},
		{"feb 30", ReadingRequest{Name: "王小明", Year: 1990, Month: 2, Day: 30}},
		{"hour 24", ReadingRequest{Name: "王小明", Year: 1990, Month: 1, Day: 1, Hour: 24}},
		{"year 1800", ReadingRequest{Name: "王小明", Year: 1800, Month: 1, Day: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			names, calc := newEngines()
			geo := &fakeGeocoder{loc: taipei()}
			uc := NewGenerateReading(names, calc, geo)

			_, err := uc.Execute(context.Background(), tc.req)
			if !domain.IsKind(err, domain.KindInvalidInput) {
				t.Fatalf("expected invalid_input, got %v", err)
			}
			if geo.calls != 0 {
				t.Fatalf("geocoder called %d times", geo.calls)
			}
		})
	}
}

func TestGenerateReading_BadExplicitLongitude(t *testing.T) {
	names, calc := newEngines()
	loc := domain.Location{Name: "x", Longitude: 200, TimeZone: "UTC"}
	uc := NewGenerateReading(names, calc, &fakeGeocoder{})

	_, err := uc.Execute(context.Background(), ReadingRequest{
		Name: "王小明", Year: 1990, Month: 1, Day: 1, Location: &loc,
	})
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestGenerateReading_StoreErrorKeepsReading(t *testing.T) {
	names, calc := newEngines()
	store := &fakeStore{err: errors.New("disk full")}
	uc := NewGenerateReading(names, calc, &fakeGeocoder{loc: taipei()}, WithStore(store))

	res, err := uc.Execute(context.Background(), ReadingRequest{
		Name: "王小明", Year: 1990, Month: 1, Day: 1, Save: true,
	})
	if err == nil {
		t.Fatalf("expected store error")
	}
	if res.Reading.Pillars.String() == "" {
		t.Fatalf("expected reading to be returned with the error")
	}
}

func TestValidateReading(t *testing.T) {
	uc := NewValidateReading()
	ok := ReadingRequest{Name: "王小明", Year: 2000, Month: 2, Day: 29, Hour: 23}
	if err := uc.Execute(context.Background(), ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := ReadingRequest{Name: "王小明", Year: 2001, Month: 2, Day: 29}
	if err := uc.Execute(context.Background(), bad); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

// --- DescribeName ---

func TestDescribeName(t *testing.T) {
	names, _ := newEngines()
	uc := NewDescribeName(names)

	out, err := uc.Execute("王小明")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Report, "總格：15（土）") {
		t.Fatalf("report=%q", out.Report)
	}
	if !strings.Contains(out.StrokesReport, "字：明 → 筆畫數：8") {
		t.Fatalf("strokes report=%q", out.StrokesReport)
	}
}

func TestDescribeName_InvalidNameReturnsNotice(t *testing.T) {
	names, _ := newEngines()
	uc := NewDescribeName(names)

	out, err := uc.Execute("abc")
	if !errors.Is(err, domain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if out.Report != report.InvalidNameNotice {
		t.Fatalf("report=%q", out.Report)
	}
}

// --- VerifyCases ---

func TestVerifyCases_PassAndFail(t *testing.T) {
	names, calc := newEngines()
	book := domain.CaseBook{
		Name: "regression",
		Cases: []domain.Case{
			{
				Name:   "scenario",
				Person: "王小明",
				Birth:  domain.BirthInput{Year: 1990, Month: 1, Day: 1, Hour: 0, TimeZone: "Asia/Taipei", Longitude: 121.5654},
				Expect: domain.Expectation{
					Pillars: "己巳 丙寅 乙丑 丙子",
					Grids:   map[domain.Grid]int{domain.GridTotal: 15},
				},
			},
			{
				Name:   "drifted",
				Birth:  domain.BirthInput{Year: 1990, Month: 1, Day: 1, Hour: 0, TimeZone: "Asia/Taipei", Longitude: 121.5654},
				Expect: domain.Expectation{Pillars: "甲子 甲子 甲子 甲子"},
			},
			{
				Name:   "bad date",
				Birth:  domain.BirthInput{Year: 1990, Month: 2, Day: 30, TimeZone: "Asia/Taipei", Longitude: 121.5654},
				Expect: domain.Expectation{Pillars: "甲子 甲子 甲子 甲子"},
			},
		},
	}
	uc := NewVerifyCases(fakeCaseBooks{books: map[string]domain.CaseBook{"cases/a.yaml": book}}, names, calc)

	res, err := uc.Execute(context.Background(), "cases/a.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CaseBook != "regression" || len(res.Results) != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Results[0].Failed() {
		t.Fatalf("scenario case should pass: %+v", res.Results[0])
	}
	if !res.Results[1].Failed() || res.Results[1].Error != "" {
		t.Fatalf("drifted case should fail on assertions: %+v", res.Results[1])
	}
	if res.Results[2].Error == "" {
		t.Fatalf("bad date should record an error: %+v", res.Results[2])
	}
	if res.Failures() != 2 {
		t.Fatalf("failures=%d", res.Failures())
	}
}

func TestVerifyCases_LoadErrorPropagates(t *testing.T) {
	names, calc := newEngines()
	uc := NewVerifyCases(fakeCaseBooks{err: errors.New("boom")}, names, calc)
	if _, err := uc.Execute(context.Background(), "x.yaml"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVerifyCases_ExecuteAll(t *testing.T) {
	names, calc := newEngines()
	cb := fakeCaseBooks{
		books: map[string]domain.CaseBook{
			"a.yaml": {Name: "a", Cases: []domain.Case{{Name: "n", Person: "王明"}}},
			"b.yaml": {Name: "b"},
		},
		refs: []domain.CaseBookRef{{Name: "a", Path: "a.yaml"}, {Name: "b", Path: "b.yaml"}},
	}
	uc := NewVerifyCases(cb, names, calc)

	out, err := uc.ExecuteAll(context.Background(), ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].CaseBook != "a" || out[1].CaseBook != "b" {
		t.Fatalf("unexpected results: %+v", out)
	}
}

func TestVerifyCases_CanceledContext(t *testing.T) {
	names, calc := newEngines()
	cb := fakeCaseBooks{books: map[string]domain.CaseBook{"a.yaml": {Name: "a", Cases: []domain.Case{{Name: "n", Person: "王明"}}}}}
	uc := NewVerifyCases(cb, names, calc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := uc.Execute(ctx, "a.yaml"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// --- BuildStrokeCache ---

func TestBuildStrokeCache(t *testing.T) {
	uc := NewBuildStrokeCache(fakeBuilder{table: domain.StrokeTable{'王': 4, '明': 8}})
	n, err := uc.Execute()
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}

	want := &domain.OpError{Op: "strokes.rebuild", Kind: domain.KindResourceUnavailable, Err: domain.ErrResourceUnavailable}
	uc = NewBuildStrokeCache(fakeBuilder{err: want})
	if _, err := uc.Execute(); !domain.IsKind(err, domain.KindResourceUnavailable) {
		t.Fatalf("expected resource_unavailable, got %v", err)
	}
}

// --- InitWorkspace ---

type fakeInitializer struct {
	spec  domain.WorkspaceSpec
	force bool
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	f.spec, f.force = spec, force
	return nil
}

func TestInitWorkspace(t *testing.T) {
	fi := &fakeInitializer{}
	if err := NewInitWorkspace(fi).Execute("/tmp/ws", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fi.spec.Root != "/tmp/ws" || !fi.force {
		t.Fatalf("unexpected init call: %+v force=%v", fi.spec, fi.force)
	}
}
