package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/mingpan/mingpan/internal/app/birthdate"
	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
	"github.com/mingpan/mingpan/internal/usecase/elements"
)

type baziOutput struct {
	Birth    domain.BirthInput     `json:"birth"`
	Location domain.Location       `json:"location"`
	Pillars  domain.FourPillars    `json:"pillars"`
	Summary  domain.ElementSummary `json:"summary"`
	Report   string                `json:"report"`
}

func baziCmd(g *globalFlags) *cobra.Command {
	var bf birthFlags
	var format string

	c := &cobra.Command{
		Use:   "bazi",
		Short: "Compute the Four Pillars and element balance for a birth moment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}
			y, m, d, err := bf.parseDate()
			if err != nil {
				return err
			}
			if err := (domain.BirthInput{Year: y, Month: m, Day: d, Hour: bf.hour}).Validate(); err != nil {
				return err
			}

			loc := bf.location(cmd, ws.Config)
			if loc == nil {
				found, err := ws.Geocoder.Locate(cmd.Context(), bf.place)
				if err != nil {
					return err
				}
				loc = &found
			}

			birth := domain.BirthInput{Year: y, Month: m, Day: d, Hour: bf.hour, TimeZone: loc.TimeZone, Longitude: loc.Longitude}
			fp, err := ws.Pillars.FourPillars(birth.Year, birth.Month, birth.Day, birth.Hour, birth.TimeZone, birth.Longitude)
			if err != nil {
				return err
			}
			sum := elements.Summarize(fp)
			out := baziOutput{Birth: birth, Location: *loc, Pillars: fp, Summary: sum, Report: report.FormatBazi(fp, sum)}
			return printBazi(cmd.OutOrStdout(), out, format)
		},
	}

	bf.register(c, true)
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printBazi(w io.Writer, out baziOutput, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "pretty", "":
		printf(w, "出生: %s\n", birthdate.Describe(out.Birth))
		printf(w, "地點: %s (%.4f, %s)\n\n", out.Location.Name, out.Location.Longitude, out.Location.TimeZone)
		printf(w, "%s\n", out.Report)
		return nil
	default:
		return unsupportedFormat(format)
	}
}
