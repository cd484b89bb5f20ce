package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/infra/fsworkspace"
	"github.com/mingpan/mingpan/internal/infra/logger"
	"github.com/mingpan/mingpan/internal/infra/workspacefinder"
	"github.com/mingpan/mingpan/internal/ui/tui"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	debug     bool
	workspace string
	cleanup   func() error
}

func (g *globalFlags) close() {
	if g.cleanup != nil {
		_ = g.cleanup()
		g.cleanup = nil
	}
}

func Execute() {
	g := &globalFlags{}
	cmd := newRootCmd(g)
	err := cmd.Execute()
	g.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

func newRootCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mingpan",
		Short:         "mingpan: Four Pillars and five-grid name readings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			g.close()
			root, err := resolveWorkspaceRoot(g.workspace)
			if err != nil {
				// No workspace: keep the discard logger.
				return nil
			}
			if cleanup, err := logger.Setup(logger.Config{Root: root, Debug: g.debug}); err == nil {
				g.cleanup = cleanup
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			deps := tui.Deps{
				WorkspaceLocator:     workspacefinder.NewFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Workspace:            g.workspace,
				Logger:               logger.Component("tui"),
				Debug:                g.debug,
			}
			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable verbose logging to .mingpan/logs/mingpan.log")
	cmd.PersistentFlags().StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		initCmd(g),
		baziCmd(g),
		nameCmd(g),
		readingCmd(g),
		validateCmd(),
		strokesCmd(g),
		placesCmd(g),
		verifyCmd(g),
		versionCmd(),
	)
	return cmd
}

// errorMessage turns an error into the line shown on exit.
func errorMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidName) {
		return report.InvalidNameNotice
	}
	switch domain.Classify(err) {
	case domain.SeverityInput:
		return "invalid input: " + err.Error()
	case domain.SeverityDegraded:
		return "data temporarily degraded: " + err.Error()
	default:
		msg := "internal error, try again: " + err.Error()
		if p := logger.Path(); p != "" {
			msg += " (see " + p + ")"
		}
		return msg
	}
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
