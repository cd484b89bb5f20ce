package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/infra/fsworkspace"
	"github.com/mingpan/mingpan/internal/usecase"
)

func newWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := fsworkspace.NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	writeFile(t, filepath.Join(root, "data", "CNS2UNICODE_Unicode_BMP.txt"), "1-4B61\t738B\n1-4463\t5C0F\n1-4F7A\t660E\n")
	writeFile(t, filepath.Join(root, "data", "CNS_stroke.txt"), "1-4B61\t4\n1-4463\t3\n1-4F7A\t8\n")
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestOpen_GenerateReadingEndToEnd(t *testing.T) {
	root := newWorkspace(t)
	ws, err := Open(root, nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	res, err := ws.GenerateReading().Execute(context.Background(), usecase.ReadingRequest{
		Name: "王小明", Year: 1990, Month: 1, Day: 1, Hour: 0, Place: "Taipei", Save: true,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if got := res.Reading.Pillars.String(); got != "己巳 丙寅 乙丑 丙子" {
		t.Fatalf("pillars=%q", got)
	}
	if res.Reading.FiveGrid.Values[domain.GridTotal] != 15 {
		t.Fatalf("five grid=%v", res.Reading.FiveGrid.Values)
	}
	if res.Reading.Location.Source != "catalog" {
		t.Fatalf("expected catalog location, got %+v", res.Reading.Location)
	}
	if res.ID == "" {
		t.Fatalf("expected saved reading id")
	}
	if !FileExists(filepath.Join(root, "data", "char_stroke_cache.json")) {
		t.Fatalf("expected stroke cache to be persisted")
	}
}

func TestOpen_UnknownPlaceFallsBackToDefault(t *testing.T) {
	ws, err := Open(newWorkspace(t), nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	loc, err := ws.Geocoder.Locate(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("Locate error: %v", err)
	}
	if loc.Source != "default" || loc.TimeZone != "Asia/Taipei" {
		t.Fatalf("expected default location, got %+v", loc)
	}
}

func TestOpen_SampleCaseBookVerifies(t *testing.T) {
	ws, err := Open(newWorkspace(t), nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	path, err := ws.CaseBookPath("sample")
	if err != nil {
		t.Fatalf("CaseBookPath error: %v", err)
	}
	res, err := ws.VerifyCases().Execute(context.Background(), path)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if res.Failures() != 0 {
		t.Fatalf("expected sample casebook to pass, got %+v", res.Results)
	}
}

func TestOpen_BuildStrokeCache(t *testing.T) {
	ws, err := Open(newWorkspace(t), nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	n, err := ws.BuildStrokeCache().Execute()
	if err != nil || n != 3 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestOpen_MissingConfig(t *testing.T) {
	_, err := Open(t.TempDir(), nil)
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCaseBookPath(t *testing.T) {
	root := newWorkspace(t)
	ws, err := Open(root, nil)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	cases := []struct {
		in   string
		want string
	}{
		{"sample", filepath.Join(root, "cases", "sample.yaml")},
		{"sample.yaml", filepath.Join(root, "cases", "sample.yaml")},
		{"cases/sample.yaml", filepath.Join(root, "cases", "sample.yaml")},
	}
	for _, tc := range cases {
		got, err := ws.CaseBookPath(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("CaseBookPath(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}

	if _, err := ws.CaseBookPath("missing"); !domain.IsKind(err, domain.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
	if _, err := ws.CaseBookPath("  "); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Errorf("expected invalid_input, got %v", err)
	}
}

func TestLooksLikePath(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"sample", false},
		{"sample.yaml", false},
		{"./sample.yaml", true},
		{"cases/sample.yaml", true},
		{"/abs/path/sample.yaml", true},
	}
	for _, c := range cases {
		if got := LooksLikePath(c.input); got != c.want {
			t.Errorf("LooksLikePath(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestHasYAMLExt(t *testing.T) {
	for in, want := range map[string]bool{"a.yaml": true, "a.YML": true, "a.json": false, "": false} {
		if got := HasYAMLExt(in); got != want {
			t.Errorf("HasYAMLExt(%q) = %v, want %v", in, got, want)
		}
	}
}
