package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func nameCmd(g *globalFlags) *cobra.Command {
	var showStrokes bool
	var format string

	c := &cobra.Command{
		Use:   "name <name>",
		Short: "Five-grid numerology for a Traditional Chinese name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			out, err := ws.DescribeName().Execute(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out.Result)
			case "pretty", "":
			default:
				return unsupportedFormat(format)
			}

			printf(w, "%s\n", out.Report)
			if showStrokes {
				printf(w, "\n%s\n", out.StrokesReport)
			}
			if unknown := out.Result.UnknownChars(); len(unknown) > 0 {
				printf(w, "\n注意: 筆畫未知 %s\n", string(unknown))
			}
			return nil
		},
	}

	c.Flags().BoolVar(&showStrokes, "strokes", false, "Also list the stroke count of every character")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
