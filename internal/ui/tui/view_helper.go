package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mingpan/mingpan/internal/app/birthdate"
	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/usecase"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func renderReading(res usecase.ReadingResult) string {
	r := res.Reading
	var b strings.Builder

	b.WriteString(fmt.Sprintf("姓名: %s\n", r.Name))
	b.WriteString(fmt.Sprintf("出生: %s\n", birthdate.Describe(r.Birth)))
	b.WriteString(fmt.Sprintf("地點: %s (%.4f, %s)\n", r.Location.Name, r.Location.Longitude, r.Location.TimeZone))
	if r.Location.Source == "default" {
		b.WriteString("注意: 找不到出生地點，已使用預設地點\n")
	}
	if unknown := r.FiveGrid.UnknownChars(); len(unknown) > 0 {
		b.WriteString("注意: 筆畫未知 " + string(unknown) + "\n")
	}
	if res.ID != "" {
		b.WriteString("Reading ID: " + res.ID + "\n")
	}
	b.WriteString("\n")
	b.WriteString(report.Background(r.NameReport, r.BaziReport))
	b.WriteString("\n")
	return b.String()
}

func renderPlaces(places []domain.Location) string {
	if len(places) == 0 {
		return "(no places found)\n"
	}
	var b strings.Builder
	for _, p := range places {
		b.WriteString(fmt.Sprintf("  - %s  (%.4f, %s)\n", p.Name, p.Longitude, p.TimeZone))
	}
	return b.String()
}

func renderVerify(results []domain.VerifyResult) string {
	if len(results) == 0 {
		return "(no casebooks found)\n"
	}
	var b strings.Builder
	for _, v := range results {
		b.WriteString(fmt.Sprintf("Casebook: %s  (%d failed / %d)\n", v.CaseBook, v.Failures(), len(v.Results)))
		for _, r := range v.Results {
			status := "PASS"
			if r.Failed() {
				status = "FAIL"
			}
			b.WriteString("  - ")
			b.WriteString(clampString(r.Name, 48))
			b.WriteString(" [")
			b.WriteString(status)
			b.WriteString("]\n")
			if r.Error != "" {
				b.WriteString("      error: " + clampString(r.Error, 72) + "\n")
			}
			for _, a := range r.Assertions {
				if !a.Passed {
					b.WriteString("      ✗ " + a.Name + ": " + clampString(a.Message, 72) + "\n")
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
