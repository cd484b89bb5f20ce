// Package yamlcases loads reference casebooks: birth moments and names whose
// reports are pinned for regression checks.
package yamlcases

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mingpan/mingpan/internal/app/birthdate"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

type Loader struct {
	casesDir string
}

type Option func(*Loader)

func WithCaseBooksDir(dir string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(dir) != "" {
			l.casesDir = dir
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{casesDir: "cases"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.CaseBookLoader = (*Loader)(nil)

func (l *Loader) LoadCaseBook(path string) (domain.CaseBook, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.CaseBook{}, &domain.OpError{Op: "yamlcases.load", Kind: domain.KindNotFound, Path: path, Err: err}
	}

	var yc yamlCaseBook
	if err := yaml.Unmarshal(b, &yc); err != nil {
		return domain.CaseBook{}, &domain.OpError{Op: "yamlcases.load", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}
	return mapAndValidate(path, yc)
}

func (l *Loader) ListCaseBooks(root string) ([]domain.CaseBookRef, error) {
	dir := filepath.Join(root, l.casesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{Op: "yamlcases.list", Kind: domain.KindNotFound, Path: dir, Err: err}
	}

	var refs []domain.CaseBookRef
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		p := filepath.Join(dir, name)
		n := readName(p)
		if n == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}
		refs = append(refs, domain.CaseBookRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func readName(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var v struct {
		Name string `yaml:"name"`
	}
	if yaml.Unmarshal(b, &v) != nil {
		return ""
	}
	return strings.TrimSpace(v.Name)
}

type yamlCaseBook struct {
	Name  string     `yaml:"name"`
	Cases []yamlCase `yaml:"cases"`
}

type yamlCase struct {
	Name   string     `yaml:"name"`
	Person string     `yaml:"person"`
	Birth  *yamlBirth `yaml:"birth"`
	Expect yamlExpect `yaml:"expect"`
}

type yamlBirth struct {
	Date      string   `yaml:"date"`
	Hour      *int     `yaml:"hour"`
	TimeZone  string   `yaml:"timezone"`
	Longitude *float64 `yaml:"longitude"`
}

type yamlExpect struct {
	Pillars       string            `yaml:"pillars"`
	Strongest     []string          `yaml:"strongest"`
	Weakest       []string          `yaml:"weakest"`
	Grids         map[string]int    `yaml:"grids"`
	GridElements  map[string]string `yaml:"grid_elements"`
	BaziContains  []string          `yaml:"bazi_contains"`
	NameContains  []string          `yaml:"name_contains"`
	LowConfidence *bool             `yaml:"low_confidence"`
	Fields        map[string]string `yaml:"fields"`
}

func mapAndValidate(path string, yc yamlCaseBook) (domain.CaseBook, error) {
	if strings.TrimSpace(yc.Name) == "" {
		return domain.CaseBook{}, invalidField(path, "name", "casebook name is required")
	}
	if len(yc.Cases) == 0 {
		return domain.CaseBook{}, invalidField(path, "cases", "at least one case is required")
	}

	book := domain.CaseBook{Name: yc.Name, Cases: make([]domain.Case, 0, len(yc.Cases))}
	for i, c := range yc.Cases {
		prefix := fmt.Sprintf("cases[%d]", i)
		if strings.TrimSpace(c.Name) == "" {
			return domain.CaseBook{}, invalidField(path, prefix+".name", "case name is required")
		}
		if c.Birth == nil && strings.TrimSpace(c.Person) == "" {
			return domain.CaseBook{}, invalidField(path, prefix, "case needs a birth block or a person")
		}

		out := domain.Case{Name: c.Name, Person: strings.TrimSpace(c.Person)}
		if c.Birth != nil {
			birth, err := mapBirth(*c.Birth)
			if err != nil {
				return domain.CaseBook{}, invalidField(path, prefix+".birth", err.Error())
			}
			out.Birth = birth
		}

		exp, err := mapExpect(c.Expect)
		if err != nil {
			return domain.CaseBook{}, invalidField(path, prefix+".expect", err.Error())
		}
		out.Expect = exp
		book.Cases = append(book.Cases, out)
	}
	return book, nil
}

func mapBirth(b yamlBirth) (domain.BirthInput, error) {
	if b.Hour == nil || b.Longitude == nil || strings.TrimSpace(b.TimeZone) == "" {
		return domain.BirthInput{}, fmt.Errorf("date, hour, timezone and longitude are required")
	}
	y, m, d, err := birthdate.Parse(b.Date)
	if err != nil {
		return domain.BirthInput{}, err
	}
	in := domain.BirthInput{
		Year: y, Month: m, Day: d, Hour: *b.Hour,
		TimeZone:  strings.TrimSpace(b.TimeZone),
		Longitude: *b.Longitude,
	}
	return in, in.Validate()
}

func mapExpect(e yamlExpect) (domain.Expectation, error) {
	out := domain.Expectation{
		Pillars:       strings.Join(strings.Fields(e.Pillars), " "),
		BaziContains:  e.BaziContains,
		NameContains:  e.NameContains,
		LowConfidence: e.LowConfidence,
		Fields:        e.Fields,
	}

	var err error
	if out.Strongest, err = mapElements(e.Strongest); err != nil {
		return out, err
	}
	if out.Weakest, err = mapElements(e.Weakest); err != nil {
		return out, err
	}

	if len(e.Grids) > 0 {
		out.Grids = make(map[domain.Grid]int, len(e.Grids))
		for k, v := range e.Grids {
			g, err := parseGrid(k)
			if err != nil {
				return out, err
			}
			out.Grids[g] = v
		}
	}
	if len(e.GridElements) > 0 {
		out.GridElements = make(map[domain.Grid]domain.Element, len(e.GridElements))
		for k, v := range e.GridElements {
			g, err := parseGrid(k)
			if err != nil {
				return out, err
			}
			el, err := parseElement(v)
			if err != nil {
				return out, err
			}
			out.GridElements[g] = el
		}
	}
	return out, nil
}

func mapElements(in []string) ([]domain.Element, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]domain.Element, 0, len(in))
	for _, s := range in {
		e, err := parseElement(s)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Grids and elements may be written in Chinese or by their English names.
var (
	gridAliases = map[string]domain.Grid{
		"heaven": domain.GridHeaven, "person": domain.GridPerson, "earth": domain.GridEarth,
		"outer": domain.GridOuter, "total": domain.GridTotal,
	}
	elementAliases = map[string]domain.Element{
		"wood": domain.ElementWood, "fire": domain.ElementFire, "earth": domain.ElementEarth,
		"metal": domain.ElementMetal, "water": domain.ElementWater,
	}
)

func parseGrid(s string) (domain.Grid, error) {
	s = strings.TrimSpace(s)
	for _, g := range domain.Grids {
		if string(g) == s {
			return g, nil
		}
	}
	if g, ok := gridAliases[strings.ToLower(s)]; ok {
		return g, nil
	}
	return "", fmt.Errorf("unknown grid %q", s)
}

func parseElement(s string) (domain.Element, error) {
	s = strings.TrimSpace(s)
	for _, e := range domain.Elements {
		if string(e) == s {
			return e, nil
		}
	}
	if e, ok := elementAliases[strings.ToLower(s)]; ok {
		return e, nil
	}
	return "", fmt.Errorf("unknown element %q", s)
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlcases.validate",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s", field, msg),
	}
}
