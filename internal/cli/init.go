package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mingpan/mingpan/internal/buildinfo"
	"github.com/mingpan/mingpan/internal/infra/fsworkspace"
	"github.com/mingpan/mingpan/internal/infra/logger"
	"github.com/mingpan/mingpan/internal/usecase"
)

func initCmd(g *globalFlags) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a mingpan workspace (mingpan.yaml, places.yaml, cases/, data/)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := strings.TrimSpace(g.workspace)
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				root = wd
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid workspace path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer(fsworkspace.WithLogger(logger.Component("workspace"))))
			if err := uc.Execute(root, force); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Workspace initialized at %s\n", root)
			printf(cmd.OutOrStdout(), "Next: copy the CNS stroke tables into data/ and run `mingpan strokes build`.\n")
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printf(cmd.OutOrStdout(), "%s\n", buildinfo.String())
			return nil
		},
	}
}
