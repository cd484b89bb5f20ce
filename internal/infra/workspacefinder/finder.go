package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/ports"
)

// ConfigFile marks a workspace root.
const ConfigFile = "mingpan.yaml"

// Finder locates a workspace root by searching for mingpan.yaml upward.
type Finder struct {
	ConfigFile string
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFile}
}

func (f *Finder) FindRoot(startDir string) (string, error) {
	const op = "workspacefinder.findroot"
	if startDir == "" {
		return "", &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: errors.New("start directory is empty")}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{Op: op, Kind: domain.KindExecution, Err: err}
	}

	// A file path starts the search at its directory.
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	for cur := filepath.Clean(abs); ; {
		if _, err := os.Stat(filepath.Join(cur, f.ConfigFile)); err == nil {
			return cur, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{Op: op, Kind: domain.KindNotFound, Path: abs, Err: domain.ErrNotFound}
		}
		cur = parent
	}
}
