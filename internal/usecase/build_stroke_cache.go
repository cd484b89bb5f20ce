package usecase

import "github.com/mingpan/mingpan/internal/ports"

// BuildStrokeCache rebuilds the stroke table cache from the reference files.
type BuildStrokeCache struct {
	builder ports.StrokeCacheBuilder
}

func NewBuildStrokeCache(b ports.StrokeCacheBuilder) *BuildStrokeCache {
	return &BuildStrokeCache{builder: b}
}

// Execute returns the number of characters in the rebuilt table.
func (uc *BuildStrokeCache) Execute() (int, error) {
	t, err := uc.builder.Rebuild()
	return len(t), err
}
