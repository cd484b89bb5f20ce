// Package assert checks computed readings against pinned expectations.
package assert

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/mingpan/mingpan/internal/domain"
)

// Observed is what a case produced. Pillars and name results are only present
// when the case had a birth block or a person respectively.
type Observed struct {
	Reading    domain.Reading
	HasPillars bool
	HasName    bool
}

func pass(name, format string, args ...any) domain.AssertionResult {
	return domain.AssertionResult{Name: name, Passed: true, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) domain.AssertionResult {
	return domain.AssertionResult{Name: name, Passed: false, Message: fmt.Sprintf(format, args...)}
}

func Pillars(expected, got string) domain.AssertionResult {
	if expected == got {
		return pass("pillars", "pillars %s", got)
	}
	return fail("pillars", "expected pillars %s, got %s", expected, got)
}

// Elements compares element lists in order; order is canonical so it is significant.
func Elements(name string, expected, got []domain.Element) domain.AssertionResult {
	if slices.Equal(expected, got) {
		return pass(name, "%s %s", name, domain.JoinElements(got))
	}
	return fail(name, "expected %s [%s], got [%s]", name, domain.JoinElements(expected), domain.JoinElements(got))
}

func Grid(g domain.Grid, expected, got int) domain.AssertionResult {
	name := "grid." + string(g)
	if expected == got {
		return pass(name, "%s %d", g, got)
	}
	return fail(name, "expected %s %d, got %d", g, expected, got)
}

func GridElement(g domain.Grid, expected, got domain.Element) domain.AssertionResult {
	name := "grid_element." + string(g)
	if expected == got {
		return pass(name, "%s %s", g, got)
	}
	return fail(name, "expected %s element %s, got %s", g, expected, got)
}

func Contains(name, text, sub string) domain.AssertionResult {
	if strings.Contains(text, sub) {
		return pass(name, "contains %q", sub)
	}
	return fail(name, "%q not found in report", sub)
}

func LowConfidence(expected, got bool) domain.AssertionResult {
	if expected == got {
		return pass("low_confidence", "low confidence %t", got)
	}
	return fail("low_confidence", "expected low confidence %t, got %t", expected, got)
}

// Evaluate applies every expectation that is set. Expectations about a part the
// case did not compute fail rather than pass silently.
func Evaluate(exp domain.Expectation, obs Observed) []domain.AssertionResult {
	var out []domain.AssertionResult
	r := obs.Reading

	needPillars := exp.Pillars != "" || exp.Strongest != nil || exp.Weakest != nil || len(exp.BaziContains) > 0
	needName := len(exp.Grids) > 0 || len(exp.GridElements) > 0 || len(exp.NameContains) > 0 || exp.LowConfidence != nil

	if needPillars && !obs.HasPillars {
		out = append(out, fail("pillars", "case has no birth data"))
	}
	if needName && !obs.HasName {
		out = append(out, fail("name", "case has no person"))
	}

	if obs.HasPillars {
		if exp.Pillars != "" {
			out = append(out, Pillars(exp.Pillars, r.Pillars.String()))
		}
		if exp.Strongest != nil {
			out = append(out, Elements("strongest", exp.Strongest, r.Summary.Strongest))
		}
		if exp.Weakest != nil {
			out = append(out, Elements("weakest", exp.Weakest, r.Summary.Weakest))
		}
		for _, sub := range exp.BaziContains {
			out = append(out, Contains("bazi_contains", r.BaziReport, sub))
		}
	}

	if obs.HasName {
		for _, g := range domain.Grids {
			if v, ok := exp.Grids[g]; ok {
				out = append(out, Grid(g, v, r.FiveGrid.Values[g]))
			}
			if e, ok := exp.GridElements[g]; ok {
				out = append(out, GridElement(g, e, r.FiveGrid.Elements[g]))
			}
		}
		for _, sub := range exp.NameContains {
			out = append(out, Contains("name_contains", r.NameReport, sub))
		}
		if exp.LowConfidence != nil {
			out = append(out, LowConfidence(*exp.LowConfidence, r.FiveGrid.LowConfidence()))
		}
	}

	if len(exp.Fields) > 0 {
		out = append(out, fields(exp.Fields, r)...)
	}
	return out
}

// fields evaluates JSONPath expectations against the reading's JSON form.
func fields(exp map[string]string, r domain.Reading) []domain.AssertionResult {
	exprs := make([]string, 0, len(exp))
	for k := range exp {
		exprs = append(exprs, k)
	}
	sort.Strings(exprs)

	var doc any
	b, err := json.Marshal(r)
	if err == nil {
		err = json.Unmarshal(b, &doc)
	}

	out := make([]domain.AssertionResult, 0, len(exprs))
	for _, expr := range exprs {
		want := exp[expr]
		name := "field " + expr
		if err != nil {
			out = append(out, fail(name, "reading is not encodable: %v", err))
			continue
		}
		val, getErr := jsonpath.Get(expr, doc)
		if getErr != nil {
			out = append(out, fail(name, "jsonpath %q: %v", expr, getErr))
			continue
		}
		got, convErr := toString(val)
		if convErr != nil {
			out = append(out, fail(name, "jsonpath %q: %v", expr, convErr))
			continue
		}
		if got == want {
			out = append(out, pass(name, "%s = %q", expr, got))
		} else {
			out = append(out, fail(name, "%s: expected %q, got %q", expr, want, got))
		}
	}
	return out
}

func toString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		b, err := json.Marshal(v)
		return string(b), err
	}
}
