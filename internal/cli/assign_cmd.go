package cli

import (
	"strings"

	"github.com/alexanderramin/caseload/internal/cli/formatter"
	"github.com/alexanderramin/caseload/internal/repository"
	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	var pms, staff []string
	cmd := &cobra.Command{
		Use:   "assign CASE",
		Short: "Assign PMs and Staff to a case",
		Long: `Replace the PMs and Staff assigned to a case. Names must be on the
roster. Shares of staff who are no longer assigned are dropped.`,
		Example: `  caseload assign "Acme Corp" --pm Alice --staff Bob,Carol`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Allocation.Assign(cmd.Context(), args[0],
				repository.SplitNames(strings.Join(pms, ",")),
				repository.SplitNames(strings.Join(staff, ",")))
			if err != nil {
				return err
			}
			outf(cmd, "Assigned %s\n", a.CaseName)
			outln(cmd, formatter.KeyValues([][2]string{
				{"PM", formatter.NameList(a.PMs)},
				{"Staff", formatter.NameList(a.Staff)},
			}))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&pms, "pm", nil, "PM names (comma separated or repeated)")
	cmd.Flags().StringSliceVar(&staff, "staff", nil, "Staff names (comma separated or repeated)")
	return cmd
}
