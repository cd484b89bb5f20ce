package tui

import (
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/usecase"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type placesLoadedMsg struct {
	places []domain.Location
	err    error
}

type readingDoneMsg struct {
	res usecase.ReadingResult
	err error
}

type verifyDoneMsg struct {
	results []domain.VerifyResult
	err     error
}
