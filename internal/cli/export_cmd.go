package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:       "export rank|budget",
		Short:     "Export the ranked case table or the budget report as CSV or PDF",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"rank", "budget"},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			var table export.Table
			switch args[0] {
			case "rank":
				views, err := a.Cases.Rank(cmd.Context(), app.CaseListRequest{})
				if err != nil {
					return err
				}
				table = export.RankTable(views)
			case "budget":
				resp, err := a.Reports.Budget(cmd.Context())
				if err != nil {
					return err
				}
				table = export.BudgetTable(resp)
			}

			// Render before creating the file.
			var buf bytes.Buffer
			if err := export.Write(&buf, f, table, a.PDF); err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			outf(cmd, "Wrote %d rows to %s\n", len(table.Rows), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
