package report

import (
	"fmt"
	"strings"

	"github.com/mingpan/mingpan/internal/domain"
)

// RenderString replaces {{key}} placeholders with vars values.
// It returns an error if a variable is missing or a placeholder is malformed.
func RenderString(input string, vars map[string]string) (string, error) {
	const op = "report.render"
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("unclosed template expression")}
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("empty template expression")}
		}

		value, ok := vars[key]
		if !ok {
			return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("missing variable %q", key)}
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// mustRender is for the package's own templates, whose placeholders are fixed.
func mustRender(tpl string, vars map[string]string) string {
	s, err := RenderString(tpl, vars)
	if err != nil {
		panic(err)
	}
	return s
}
