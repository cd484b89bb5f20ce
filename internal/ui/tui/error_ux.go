package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrInvalidName) {
		return report.InvalidNameNotice
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindInvalidInput:
			return "Invalid input: " + innermost(err)

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "yamlcases") {
				return "Casebook not found"
			}
			if strings.Contains(oe.Op, "places") {
				return "Place not found"
			}
			if strings.Contains(oe.Op, "workspacefinder") {
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config in " + base
		}
	}

	switch domain.Classify(err) {
	case domain.SeverityInput:
		return "Invalid input: " + innermost(err)
	case domain.SeverityDegraded:
		return "Data temporarily degraded (see logs)"
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

// innermost returns the message of the deepest OpError without its op and kind.
func innermost(err error) string {
	var oe *domain.OpError
	for errors.As(err, &oe) && oe.Err != nil {
		err = oe.Err
		oe = nil
	}
	return strings.TrimSuffix(err.Error(), ": "+domain.ErrInvalidInput.Error())
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
