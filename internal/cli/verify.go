package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mingpan/mingpan/internal/domain"
)

func verifyCmd(g *globalFlags) *cobra.Command {
	var casebook string
	var format string

	c := &cobra.Command{
		Use:   "verify",
		Short: "Recompute the casebooks under cases/ and check their pinned results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g.workspace)
			if err != nil {
				return err
			}

			uc := ws.VerifyCases()
			var results []domain.VerifyResult
			if casebook == "" {
				results, err = uc.ExecuteAll(cmd.Context(), ws.Root)
				if err != nil {
					return err
				}
			} else {
				path, err := ws.CaseBookPath(casebook)
				if err != nil {
					return err
				}
				res, err := uc.Execute(cmd.Context(), path)
				if err != nil {
					return err
				}
				results = append(results, res)
			}

			if err := printVerify(cmd.OutOrStdout(), ws.Root, results, format); err != nil {
				return err
			}
			if fails := countFailures(results); fails > 0 {
				return fmt.Errorf("verify failed (%d failed case(s))", fails)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&casebook, "casebook", "c", "", "Casebook name or path (default: every casebook)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printVerify(w io.Writer, root string, results []domain.VerifyResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "pretty", "":
		for _, v := range results {
			printPrettyVerify(w, root, v)
		}
		return nil
	default:
		return unsupportedFormat(format)
	}
}

func printPrettyVerify(w io.Writer, root string, v domain.VerifyResult) {
	path := v.Path
	if rel, err := filepath.Rel(root, v.Path); err == nil {
		path = rel
	}
	printf(w, "Casebook: %s (%s)\n\n", v.CaseBook, path)

	for _, r := range v.Results {
		status := "OK"
		if r.Failed() {
			status = "FAIL"
		}
		printf(w, "- [%s] %s\n", status, r.Name)
		if r.Pillars != "" {
			printf(w, "  pillars: %s\n", r.Pillars)
		}
		if r.Error != "" {
			printf(w, "  error: %s\n", r.Error)
		}
		if len(r.Assertions) > 0 {
			pass, fail := countAssertionPassFail(r.Assertions)
			printf(w, "  assertions: %d pass / %d fail\n", pass, fail)
			for _, a := range r.Assertions {
				mark := "✓"
				if !a.Passed {
					mark = "✗"
				}
				printf(w, "    %s %s: %s\n", mark, a.Name, a.Message)
			}
		}
		printf(w, "\n")
	}
}

func countFailures(results []domain.VerifyResult) int {
	n := 0
	for _, v := range results {
		n += v.Failures()
	}
	return n
}

func countAssertionPassFail(in []domain.AssertionResult) (pass int, fail int) {
	for _, a := range in {
		if a.Passed {
			pass++
		} else {
			fail++
		}
	}
	return pass, fail
}
