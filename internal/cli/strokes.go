package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mingpan/mingpan/internal/app/report"
	"github.com/mingpan/mingpan/internal/domain"
)

func strokesCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "strokes",
		Short: "Manage the character stroke table",
	}

	c.AddCommand(strokesBuildCmd(g), strokesLookupCmd(g))
	return c
}

func strokesBuildCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Rebuild data/char_stroke_cache.json from the CNS reference tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}
			n, err := ws.BuildStrokeCache().Execute()
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Stroke cache rebuilt: %d characters\n", n)
			return nil
		},
	}
}

func strokesLookupCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <chars>",
		Short: "Print the stroke count of each character",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			var chars []domain.CharStroke
			for _, r := range strings.Join(args, "") {
				if r == ' ' {
					continue
				}
				chars = append(chars, domain.CharStroke{Char: r, Strokes: ws.Strokes.Strokes(r)})
			}
			printf(cmd.OutOrStdout(), "%s\n", report.FormatNameStrokes(chars))
			return nil
		},
	}
}
