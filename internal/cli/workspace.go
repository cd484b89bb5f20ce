package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mingpan/mingpan/internal/app/birthdate"
	"github.com/mingpan/mingpan/internal/app/workspace"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/infra/logger"
	"github.com/mingpan/mingpan/internal/infra/workspacefinder"
)

func loadWorkspace(workspaceFlag string) (*workspace.Workspace, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}
	return workspace.Open(root, logger.Component("engine"))
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `mingpan init`): %w", wd, err)
	}
	return root, nil
}

// birthFlags are the date/hour/location flags shared by bazi, reading and validate.
type birthFlags struct {
	date  string
	hour  int
	place string
	lon   float64
	tz    string
}

func (b *birthFlags) register(c *cobra.Command, withLocation bool) {
	c.Flags().StringVarP(&b.date, "date", "d", "", "Birth date: 1990-01-01, 1990/1/1 or 1990年1月1日 (required)")
	c.Flags().IntVar(&b.hour, "hour", 0, "Birth hour 0-23 (required)")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("hour")
	if !withLocation {
		return
	}
	c.Flags().StringVarP(&b.place, "place", "p", "", "Birth place, looked up in places.yaml or the geocoder")
	c.Flags().Float64Var(&b.lon, "lon", 0, "Birth longitude in degrees east; skips the place lookup")
	c.Flags().StringVar(&b.tz, "tz", "", "IANA time zone used with --lon (default: workspace default)")
}

func (b *birthFlags) parseDate() (year, month, day int, err error) {
	return birthdate.Parse(b.date)
}

// location returns the explicit --lon/--tz location, or nil to use the geocoder.
func (b *birthFlags) location(c *cobra.Command, cfg domain.Config) *domain.Location {
	if !c.Flags().Changed("lon") {
		return nil
	}
	tz := strings.TrimSpace(b.tz)
	if tz == "" {
		tz = cfg.Defaults.TimeZone
	}
	name := strings.TrimSpace(b.place)
	if name == "" {
		name = fmt.Sprintf("%.4f°", b.lon)
	}
	return &domain.Location{Name: name, Longitude: b.lon, TimeZone: tz, Source: "flag"}
}
