package cli

import (
	"github.com/alexanderramin/caseload/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import PATH",
		Short: "Import cases from a .csv, .json or .yaml file, or a directory of them",
		Long: `Import cases. Headers may be the canonical keys (name, case_type,
entity_count, ...) or the original spreadsheet headers. Rows are validated
together and stored in one transaction: either every row is imported or none.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportCases(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			outBlock(cmd, formatter.FormatImportSummary(len(result.Imported), result.Warnings, result.Blanks, result.Ignored))
			return nil
		},
	}
}
