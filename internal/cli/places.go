package cli

import (
	"github.com/spf13/cobra"
)

func placesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "places",
		Short: "List the places known without a network lookup",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			list, err := ws.Places.ListPlaces()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(list) == 0 {
				printf(w, "(no places found)\n")
				return nil
			}
			printf(w, "Workspace: %s\n\n", ws.Root)
			for _, p := range list {
				printf(w, "- %s  (%.4f, %s)\n", p.Name, p.Longitude, p.TimeZone)
			}
			return nil
		},
	}
}
