package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mingpan/mingpan/internal/app/workspace"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if w := strings.TrimSpace(deps.Workspace); w != "" {
			abs, err := filepath.Abs(w)
			if err != nil {
				return workspaceRefreshedMsg{cwd: w, found: false, err: err}
			}
			return workspaceRefreshedMsg{cwd: abs, found: workspace.FileExists(filepath.Join(abs, "mingpan.yaml")), root: abs}
		}

		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadPlaces(root string, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ws, err := workspace.Open(root, log)
		if err != nil {
			return placesLoadedMsg{err: err}
		}
		list, err := ws.Places.ListPlaces()
		return placesLoadedMsg{places: list, err: err}
	}
}

func cmdVerifyAll(root string, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ws, err := workspace.Open(root, log)
		if err != nil {
			return verifyDoneMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		results, err := ws.VerifyCases().ExecuteAll(ctx, root)
		return verifyDoneMsg{results: results, err: err}
	}
}

func listenReading(ch <-chan readingDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return readingDoneMsg{err: errors.New("reading channel closed")}
		}
		return msg
	}
}

// startReadingAsync generates a reading off the UI loop; geocoding may hit the network.
func startReadingAsync(root string, req usecase.ReadingRequest, log *slog.Logger, debug bool) (chan readingDoneMsg, tea.Cmd) {
	ch := make(chan readingDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("reading.start", "workspace", root, "place", req.Place, "debug", debug)

		ws, err := workspace.Open(root, log)
		if err != nil {
			log.Error("reading.load_workspace.failed", "err", err)
			ch <- readingDoneMsg{err: err}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		res, execErr := ws.GenerateReading().Execute(ctx, req)
		if execErr != nil {
			log.Error("reading.failed", "err", execErr, "saved_id", res.ID)
		} else if debug {
			log.Debug("reading.ok", "saved_id", res.ID, "pillars", res.Reading.Pillars.String())
		}

		ch <- readingDoneMsg{res: res, err: execErr}
	}()

	return ch, listenReading(ch)
}
