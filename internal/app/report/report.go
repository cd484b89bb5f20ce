// Package report renders charts into the fixed text blocks handed to prompt builders.
// The wording is reproduced byte for byte; downstream consumers match on it.
package report

import (
	"strconv"
	"strings"

	"github.com/mingpan/mingpan/internal/domain"
)

// InvalidNameNotice replaces the name report when the name fails validation.
const InvalidNameNotice = "姓名輸入無效，請使用繁體中文（至少兩字）"

const (
	baziTemplate = "四柱（以立春為年界、節氣為月界，真太陽時修正）：{{pillars}}\n" +
		"五行分佈：{{counts}}\n" +
		"強旺五行：{{strongest}}\n" +
		"衰弱五行：{{weakest}}"

	fiveGridHeader = "姓名五格＆五行分析："
	gridLine       = "{{grid}}：{{value}}（{{element}}）"

	strokesHeader = "姓名筆畫分析："
	strokeLine    = "字：{{char}} → 筆畫數：{{strokes}}"

	unknownStrokes = "未知"
	none           = "無"
)

// FormatBazi renders the pillars and their element summary.
func FormatBazi(fp domain.FourPillars, sum domain.ElementSummary) string {
	counts := make([]string, 0, len(domain.Elements))
	for _, e := range domain.Elements {
		counts = append(counts, string(e)+":"+strconv.Itoa(sum.Counts[e]))
	}
	return mustRender(baziTemplate, map[string]string{
		"pillars":   fp.String(),
		"counts":    strings.Join(counts, "、"),
		"strongest": listOrNone(sum.Strongest),
		"weakest":   listOrNone(sum.Weakest),
	})
}

// FormatFiveGrid renders the five grids in Heaven, Person, Earth, Outer, Total order.
func FormatFiveGrid(res domain.FiveGridResult) string {
	lines := []string{fiveGridHeader}
	for _, g := range domain.Grids {
		lines = append(lines, mustRender(gridLine, map[string]string{
			"grid":    string(g),
			"value":   strconv.Itoa(res.Values[g]),
			"element": string(res.Elements[g]),
		}))
	}
	return strings.Join(lines, "\n")
}

// FormatNameStrokes lists every character with its stroke count.
func FormatNameStrokes(chars []domain.CharStroke) string {
	lines := []string{strokesHeader}
	for _, cs := range chars {
		n := unknownStrokes
		if cs.Strokes.Known {
			n = strconv.Itoa(cs.Strokes.N)
		}
		lines = append(lines, mustRender(strokeLine, map[string]string{
			"char":    string(cs.Char),
			"strokes": n,
		}))
	}
	return strings.Join(lines, "\n")
}

// Background joins the non-empty reports with a blank line, name report first.
func Background(reports ...string) string {
	parts := make([]string, 0, len(reports))
	for _, r := range reports {
		if strings.TrimSpace(r) != "" {
			parts = append(parts, r)
		}
	}
	return strings.Join(parts, "\n\n")
}

func listOrNone(in []domain.Element) string {
	if len(in) == 0 {
		return none
	}
	return domain.JoinElements(in)
}
