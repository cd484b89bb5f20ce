package tui

import (
	"log/slog"

	"github.com/mingpan/mingpan/internal/ports"
)

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	// Workspace overrides discovery when set.
	Workspace string

	Logger *slog.Logger
	Debug  bool
}
