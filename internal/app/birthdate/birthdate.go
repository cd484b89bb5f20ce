// Package birthdate parses free-form birth dates and renders the localized birth line.
package birthdate

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"

	"github.com/mingpan/mingpan/internal/domain"
)

var cjkDate = strings.NewReplacer("年", "/", "月", "/", "日", "", "号", "", "號", "")

// Parse accepts ISO dates, slash dates and 1990年1月1日. Day-first is assumed for
// ambiguous numeric forms such as 02/01/1990. Only the calendar date is kept.
func Parse(s string) (year, month, day int, err error) {
	const op = "birthdate.parse"
	in := strings.TrimSpace(cjkDate.Replace(strings.TrimSpace(s)))
	if in == "" {
		return 0, 0, 0, domain.InvalidInput(op, "empty date")
	}

	t, perr := dateparse.ParseIn(in, time.UTC, dateparse.PreferMonthFirst(false))
	if perr != nil {
		return 0, 0, 0, domain.InvalidInput(op, "cannot read date %q: %v", s, perr)
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

// Describe renders the civil birth moment in Traditional Chinese, e.g.
// "1990年1月1日 星期一 0時".
func Describe(b domain.BirthInput) string {
	t := time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, 0, 0, 0, time.UTC)
	return monday.Format(t, "2006年1月2日 Monday 15時", monday.LocaleZhTW)
}
