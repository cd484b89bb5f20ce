package usecase

import (
	"errors"

	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

// NameReading is the name-only output: the chart and its report texts.
type NameReading struct {
	Result        domain.FiveGridResult
	Report        string
	StrokesReport string
}

// DescribeName renders the five-grid and stroke reports for a name.
type DescribeName struct {
	names ports.NameAnalyzer
}

func NewDescribeName(names ports.NameAnalyzer) *DescribeName {
	return &DescribeName{names: names}
}

// Execute returns the reports. For an invalid name the report is the fixed
// notice and the error is returned alongside it.
func (uc *DescribeName) Execute(name string) (NameReading, error) {
	res, err := uc.names.AnalyzeName(name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidName) {
			return NameReading{Report: report.InvalidNameNotice}, err
		}
		return NameReading{}, err
	}

	chars, err := uc.names.NameStrokes(name)
	if err != nil {
		return NameReading{}, err
	}
	return NameReading{
		Result:        res,
		Report:        report.FormatFiveGrid(res),
		StrokesReport: report.FormatNameStrokes(chars),
	}, nil
}
