package yamlcases

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mingpan/mingpan/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadCaseBook_Valid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "regression.yaml")
	writeFile(t, p, `
name: 回歸案例
cases:
  - name: new year midnight
    person: 王小明
    birth:
      date: "1990-01-01"
      hour: 0
      timezone: Asia/Taipei
      longitude: 121.5654
    expect:
      pillars: "己巳  丙寅 丙申 戊子"
      strongest: [火]
      weakest: [wood, 金]
      grids:
        天格: 5
        total: 15
      grid_elements:
        earth: 木
      bazi_contains: ["強旺五行："]
      name_contains: ["天格：5（土）"]
      low_confidence: false
  - name: name only
    person: 李大
`)

	book, err := NewLoader().LoadCaseBook(p)
	if err != nil {
		t.Fatalf("LoadCaseBook error: %v", err)
	}
	if book.Name != "回歸案例" || len(book.Cases) != 2 {
		t.Fatalf("unexpected casebook %+v", book)
	}

	c := book.Cases[0]
	if c.Birth.Year != 1990 || c.Birth.Month != 1 || c.Birth.Day != 1 || c.Birth.TimeZone != "Asia/Taipei" {
		t.Fatalf("unexpected birth %+v", c.Birth)
	}
	if c.Expect.Pillars != "己巳 丙寅 丙申 戊子" {
		t.Fatalf("pillars should be whitespace-normalized, got %q", c.Expect.Pillars)
	}
	if len(c.Expect.Weakest) != 2 || c.Expect.Weakest[0] != domain.ElementWood {
		t.Fatalf("unexpected weakest %v", c.Expect.Weakest)
	}
	if c.Expect.Grids[domain.GridTotal] != 15 || c.Expect.Grids[domain.GridHeaven] != 5 {
		t.Fatalf("unexpected grids %v", c.Expect.Grids)
	}
	if c.Expect.GridElements[domain.GridEarth] != domain.ElementWood {
		t.Fatalf("unexpected grid elements %v", c.Expect.GridElements)
	}
	if c.Expect.LowConfidence == nil || *c.Expect.LowConfidence {
		t.Fatalf("expected low_confidence=false")
	}

	if book.Cases[1].Birth != (domain.BirthInput{}) {
		t.Fatalf("name-only case should have no birth, got %+v", book.Cases[1].Birth)
	}
}

func TestLoadCaseBook_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing name":    "cases:\n  - name: a\n    person: 王明\n",
		"no cases":        "name: x\n",
		"empty case":      "name: x\ncases:\n  - name: a\n",
		"bad element":     "name: x\ncases:\n  - name: a\n    person: 王明\n    expect:\n      strongest: [plasma]\n",
		"bad grid":        "name: x\ncases:\n  - name: a\n    person: 王明\n    expect:\n      grids: {inner: 3}\n",
		"incomplete":      "name: x\ncases:\n  - name: a\n    birth:\n      date: \"1990-01-01\"\n",
		"impossible date": "name: x\ncases:\n  - name: a\n    birth: {date: \"1990-02-30\", hour: 1, timezone: Asia/Taipei, longitude: 121}\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "bad.yaml")
			writeFile(t, p, content)
			_, err := NewLoader().LoadCaseBook(p)
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected invalid config, got %v", err)
			}
		})
	}
}

func TestLoadCaseBook_Missing(t *testing.T) {
	_, err := NewLoader().LoadCaseBook(filepath.Join(t.TempDir(), "none.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListCaseBooks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "suites", "b.yaml"), "name: Beta\ncases: []\n")
	writeFile(t, filepath.Join(root, "suites", "a.yml"), "cases: []\n")
	writeFile(t, filepath.Join(root, "suites", "notes.txt"), "ignored")

	refs, err := NewLoader(WithCaseBooksDir("suites")).ListCaseBooks(root)
	if err != nil {
		t.Fatalf("ListCaseBooks error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %v", refs)
	}
	if refs[0].Name != "Beta" || refs[1].Name != "a" {
		t.Fatalf("expected sorted names with file fallback, got %v", refs)
	}
}
