package cli

import (
	"fmt"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCaseCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "List, rank and manage cases",
	}
	cmd.AddCommand(
		newCaseListCmd(a),
		newCaseRankCmd(a),
		newCaseShowCmd(a),
		newCaseRemoveCmd(a),
		newCaseResetCmd(a),
	)
	return cmd
}

func addListFlags(cmd *cobra.Command, req *app.CaseListRequest) {
	cmd.Flags().StringVar(&req.CaseType, "type", "", "Only cases of this type")
	cmd.Flags().StringVar(&req.NamePrefix, "prefix", "", "Only cases whose name starts with this")
	cmd.Flags().IntVar(&req.Limit, "limit", 0, "Show at most this many cases")
}

func newCaseListCmd(a *App) *cobra.Command {
	var req app.CaseListRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cases in import order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := a.Cases.List(cmd.Context(), req)
			if err != nil {
				return err
			}
			if len(cases) == 0 {
				outln(cmd, "No cases found.")
				return nil
			}
			outBlock(cmd, formatter.FormatCaseList(cases))
			return nil
		},
	}
	addListFlags(cmd, &req)
	return cmd
}

func newCaseRankCmd(a *App) *cobra.Command {
	var req app.CaseListRequest
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank cases by complexity score, highest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			views, err := a.Cases.Rank(cmd.Context(), req)
			if err != nil {
				return err
			}
			if len(views) == 0 {
				outln(cmd, "No cases found.")
				return nil
			}
			outBlock(cmd, formatter.FormatRankTable(views))
			return nil
		},
	}
	addListFlags(cmd, &req)
	return cmd
}

func newCaseShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a case's score breakdown and allocation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := a.Cases.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			outBlock(cmd, formatter.FormatCaseDetail(detail))
			return nil
		},
	}
}

func newCaseRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a case with its assignment, shares and quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Cases.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			outf(cmd, "Removed case %s\n", args[0])
			return nil
		},
	}
}

func newCaseResetCmd(a *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every case and all allocation data (the roster is kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !a.interactive() {
					return fmt.Errorf("refusing to reset without confirmation; pass --yes")
				}
				ok, err := a.confirm("Delete all cases, assignments, shares and quotes?")
				if err != nil {
					return err
				}
				if !ok {
					outln(cmd, "Reset cancelled.")
					return nil
				}
			}
			n, err := a.Cases.Reset(cmd.Context())
			if err != nil {
				return err
			}
			outf(cmd, "Removed %d cases.\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
