// Package extract pulls scalar fields out of JSON documents with JSONPath rules.
package extract

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Result reports how one rule fared.
type Result struct {
	Name    string
	Expr    string
	Success bool
	Message string
}

// Rules maps a field name to a JSONPath expression.
type Rules map[string]string

// Apply evaluates every rule against body. A failing rule is reported and the
// others still run; a body that is not JSON fails them all.
func Apply(body []byte, rules Rules) (map[string]string, []Result) {
	values := map[string]string{}
	if len(rules) == 0 {
		return values, nil
	}

	names := make([]string, 0, len(rules))
	for k := range rules {
		names = append(names, k)
	}
	sort.Strings(names)

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		out := make([]Result, 0, len(names))
		for _, name := range names {
			out = append(out, Result{Name: name, Expr: rules[name], Message: "response body is not valid JSON"})
		}
		return values, out
	}

	results := make([]Result, 0, len(names))
	for _, name := range names {
		expr := strings.TrimSpace(rules[name])
		r := Result{Name: name, Expr: expr}

		switch val, err := jsonpath.Get(expr, doc); {
		case expr == "":
			r.Message = "empty jsonpath expression"
		case err != nil:
			r.Message = fmt.Sprintf("jsonpath error: %v", err)
		case isEmpty(val):
			r.Message = "no value found"
		default:
			s, convErr := toString(val)
			if convErr != nil {
				r.Message = fmt.Sprintf("cannot convert value: %v", convErr)
				break
			}
			values[name] = s
			r.Success = true
		}
		results = append(results, r)
	}
	return values, results
}

// Float parses an extracted field as a number.
func Float(values map[string]string, name string) (float64, error) {
	s, ok := values[name]
	if !ok {
		return 0, fmt.Errorf("field %q missing", name)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", name, err)
	}
	return f, nil
}

// Failed joins the messages of unsuccessful results, or returns "".
func Failed(results []Result) string {
	var parts []string
	for _, r := range results {
		if !r.Success {
			parts = append(parts, fmt.Sprintf("%s (%s): %s", r.Name, r.Expr, r.Message))
		}
	}
	return strings.Join(parts, "; ")
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// Wildcard and filter expressions return a slice; a single match is unwrapped.
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		return string(b), err
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		return string(b), err
	default:
		return fmt.Sprint(t), nil
	}
}
