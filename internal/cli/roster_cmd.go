package cli

import (
	"github.com/alexanderramin/caseload/internal/cli/formatter"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/spf13/cobra"
)

func newRosterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the PM and Staff roster",
	}
	cmd.AddCommand(
		newRosterAddCmd(app),
		newRosterRemoveCmd(app),
		newRosterListCmd(app),
	)
	return cmd
}

func newRosterAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add ROLE NAME",
		Short: "Add a PM or Staff member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.Roster.Add(cmd.Context(), domain.Role(args[0]), args[1])
			if err != nil {
				return err
			}
			outf(cmd, "Added %s %s\n", m.Role, m.Name)
			return nil
		},
	}
}

func newRosterRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ROLE NAME",
		Short: "Remove a PM or Staff member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Roster.Remove(cmd.Context(), domain.Role(args[0]), args[1]); err != nil {
				return err
			}
			outf(cmd, "Removed %s %s\n", args[0], args[1])
			return nil
		},
	}
}

func newRosterListCmd(app *App) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List roster members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Roster.List(cmd.Context(), domain.Role(role))
			if err != nil {
				return err
			}
			if len(members) == 0 {
				outln(cmd, "Roster is empty.")
				return nil
			}
			outBlock(cmd, formatter.FormatRoster(members))
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Only list this role (PM or Staff)")
	return cmd
}
