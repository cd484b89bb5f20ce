package usecase

import (
	"context"

	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
	ucassert "github.com/mingpan/mingpan/internal/usecase/assert"
	"github.com/mingpan/mingpan/internal/usecase/elements"
)

// VerifyCases recomputes every case of a casebook and checks it against its
// pinned expectations.
type VerifyCases struct {
	casebooks ports.CaseBookLoader
	names     ports.NameAnalyzer
	pillars   ports.PillarCalculator
}

func NewVerifyCases(cb ports.CaseBookLoader, names ports.NameAnalyzer, pillars ports.PillarCalculator) *VerifyCases {
	return &VerifyCases{casebooks: cb, names: names, pillars: pillars}
}

// Execute fails only when the casebook cannot be loaded or ctx ends; a case that
// errors is recorded in its result.
func (uc *VerifyCases) Execute(ctx context.Context, path string) (domain.VerifyResult, error) {
	book, err := uc.casebooks.LoadCaseBook(path)
	if err != nil {
		return domain.VerifyResult{}, err
	}

	out := domain.VerifyResult{
		CaseBook: book.Name,
		Path:     path,
		Results:  make([]domain.CaseResult, 0, len(book.Cases)),
	}
	for _, c := range book.Cases {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		out.Results = append(out.Results, uc.runCase(c))
	}
	return out, nil
}

// ExecuteAll verifies every casebook under the workspace root.
func (uc *VerifyCases) ExecuteAll(ctx context.Context, root string) ([]domain.VerifyResult, error) {
	refs, err := uc.casebooks.ListCaseBooks(root)
	if err != nil {
		return nil, err
	}
	out := make([]domain.VerifyResult, 0, len(refs))
	for _, ref := range refs {
		res, err := uc.Execute(ctx, ref.Path)
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (uc *VerifyCases) runCase(c domain.Case) domain.CaseResult {
	res := domain.CaseResult{Name: c.Name, Assertions: []domain.AssertionResult{}}
	obs := ucassert.Observed{}

	if c.Birth != (domain.BirthInput{}) {
		b := c.Birth
		fp, err := uc.pillars.FourPillars(b.Year, b.Month, b.Day, b.Hour, b.TimeZone, b.Longitude)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		summary := elements.Summarize(fp)
		obs.HasPillars = true
		obs.Reading.Birth = b
		obs.Reading.Pillars = fp
		obs.Reading.Summary = summary
		obs.Reading.BaziReport = report.FormatBazi(fp, summary)
		res.Pillars = fp.String()
	}

	if c.Person != "" {
		grid, err := uc.names.AnalyzeName(c.Person)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		obs.HasName = true
		obs.Reading.Name = grid.Name
		obs.Reading.FiveGrid = grid
		obs.Reading.NameReport = report.FormatFiveGrid(grid)
	}

	res.Assertions = ucassert.Evaluate(c.Expect, obs)
	return res
}
