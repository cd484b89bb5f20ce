package ports

import "github.com/mingpan/mingpan/internal/domain"

// NameAnalyzer computes five-grid charts.
type NameAnalyzer interface {
	AnalyzeName(name string) (domain.FiveGridResult, error)
	NameStrokes(name string) ([]domain.CharStroke, error)
}

// PillarCalculator computes Four Pillars from a civil birth moment.
type PillarCalculator interface {
	FourPillars(year, month, day, hour int, tzName string, longitude float64) (domain.FourPillars, error)
}

// StrokeCacheBuilder rebuilds the persisted stroke table from the reference files.
type StrokeCacheBuilder interface {
	Rebuild() (domain.StrokeTable, error)
}
