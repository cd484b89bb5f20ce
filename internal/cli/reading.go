package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mingpan/mingpan/internal/app/birthdate"
	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/usecase"
)

func readingCmd(g *globalFlags) *cobra.Command {
	var bf birthFlags
	var name string
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "reading",
		Short: "Generate a full reading (name chart plus Four Pillars) and save it under readings/",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}
			y, m, d, err := bf.parseDate()
			if err != nil {
				return err
			}

			req := usecase.ReadingRequest{
				Name: name, Year: y, Month: m, Day: d, Hour: bf.hour,
				Place:    bf.place,
				Location: bf.location(cmd, ws.Config),
				Save:     !noSave,
			}
			res, err := ws.GenerateReading().Execute(cmd.Context(), req)
			if err != nil {
				// A failed save still returns the reading.
				if res.Reading.BaziReport != "" {
					_ = printReading(cmd.OutOrStdout(), res, format)
				}
				return err
			}
			return printReading(cmd.OutOrStdout(), res, format)
		},
	}

	c.Flags().StringVarP(&name, "name", "n", "", "Full name in Traditional Chinese (required)")
	_ = c.MarkFlagRequired("name")
	bf.register(c, true)
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the reading under readings/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printReading(w io.Writer, res usecase.ReadingResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"reading_id": res.ID,
			"reading":    res.Reading,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReading(w, res)
		return nil
	default:
		return unsupportedFormat(format)
	}
}

func printPrettyReading(w io.Writer, res usecase.ReadingResult) {
	r := res.Reading
	printf(w, "姓名: %s\n", r.Name)
	printf(w, "出生: %s\n", birthdate.Describe(r.Birth))
	printf(w, "地點: %s (%.4f, %s, %s)\n", r.Location.Name, r.Location.Longitude, r.Location.TimeZone, r.Location.Source)
	if res.ID != "" {
		printf(w, "Reading ID: %s\n", res.ID)
	}
	if unknown := r.FiveGrid.UnknownChars(); len(unknown) > 0 {
		printf(w, "注意: 筆畫未知 %s\n", string(unknown))
	}
	printf(w, "\n%s\n", report.Background(r.NameReport, r.BaziReport))
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
}
