package cli

import (
	"github.com/spf13/cobra"

	"github.com/mingpan/mingpan/internal/usecase"
)

func validateCmd() *cobra.Command {
	var bf birthFlags
	var name string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a name and birth moment (no lookups, no computation)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			y, m, d, err := bf.parseDate()
			if err != nil {
				return err
			}
			req := usecase.ReadingRequest{Name: name, Year: y, Month: m, Day: d, Hour: bf.hour}
			if err := usecase.NewValidateReading().Execute(cmd.Context(), req); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "OK\n")
			return nil
		},
	}

	c.Flags().StringVarP(&name, "name", "n", "", "Full name in Traditional Chinese (required)")
	_ = c.MarkFlagRequired("name")
	bf.register(c, false)
	return c
}
