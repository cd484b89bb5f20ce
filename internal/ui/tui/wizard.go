package tui

import (
	"strconv"
	"strings"

	"github.com/mingpan/mingpan/internal/app/birthdate"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/usecase"
	"github.com/mingpan/mingpan/internal/usecase/numerology"
)

type wizardStep int

const (
	stepName wizardStep = iota
	stepDate
	stepHour
	stepPlace
	stepCount
)

var stepPrompts = [stepCount]string{
	stepName:  "姓名（繁體中文，至少兩字）",
	stepDate:  "出生日期（例如 1990-01-01 或 1990年1月1日）",
	stepHour:  "出生時辰（0-23 時）",
	stepPlace: "出生地點（留空使用預設地點）",
}

var stepPlaceholders = [stepCount]string{
	stepName:  "王小明",
	stepDate:  "1990-01-01",
	stepHour:  "8",
	stepPlace: "台北",
}

// wizardForm collects one reading request a step at a time.
type wizardForm struct {
	name  string
	year  int
	month int
	day   int
	hour  int
	place string
}

// set validates and stores the answer for a step.
func (f *wizardForm) set(step wizardStep, value string) error {
	const op = "tui.wizard"
	v := strings.TrimSpace(value)

	switch step {
	case stepName:
		name := numerology.Normalize(v)
		if err := numerology.ValidateName(name); err != nil {
			return err
		}
		f.name = name

	case stepDate:
		y, m, d, err := birthdate.Parse(v)
		if err != nil {
			return err
		}
		if err := (domain.BirthInput{Year: y, Month: m, Day: d}).Validate(); err != nil {
			return err
		}
		f.year, f.month, f.day = y, m, d

	case stepHour:
		h, err := strconv.Atoi(strings.TrimSuffix(v, "時"))
		if err != nil || h < 0 || h > 23 {
			return domain.InvalidInput(op, "hour %q outside 0-23", v)
		}
		f.hour = h

	case stepPlace:
		f.place = v
	}
	return nil
}

func (f wizardForm) request() usecase.ReadingRequest {
	return usecase.ReadingRequest{
		Name:  f.name,
		Year:  f.year,
		Month: f.month,
		Day:   f.day,
		Hour:  f.hour,
		Place: f.place,
		Save:  true,
	}
}
