package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/caseload/internal/cli/formatter"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/spf13/cobra"
)

func newShareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Manage staff workload shares on a case",
	}
	cmd.AddCommand(
		newShareSetCmd(app),
		newShareInitCmd(app),
		newShareShowCmd(app),
	)
	return cmd
}

// parseShareArgs turns NAME=PCT arguments into shares. A trailing % is
// allowed.
func parseShareArgs(caseName string, args []string) ([]domain.WorkloadShare, error) {
	shares := make([]domain.WorkloadShare, 0, len(args))
	for _, arg := range args {
		name, pct, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid share %q (expected NAME=PERCENT)", arg)
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(pct), "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid percentage in %q: %w", arg, err)
		}
		shares = append(shares, domain.WorkloadShare{
			CaseName:   caseName,
			StaffName:  strings.TrimSpace(name),
			Percentage: v,
		})
	}
	return shares, nil
}

func newShareSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "set CASE NAME=PCT...",
		Short:   "Set staff shares for a case; they must add up to 100",
		Example: `  caseload share set "Acme Corp" Bob=60 Carol=40`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := parseShareArgs(args[0], args[1:])
			if err != nil {
				return err
			}
			if err := app.Allocation.SetShares(cmd.Context(), args[0], shares); err != nil {
				return err
			}
			outBlock(cmd, formatter.FormatShares(args[0], shares))
			return nil
		},
	}
}

func newShareInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init CASE",
		Short: "Split a case evenly across its assigned staff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := app.Allocation.InitShares(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			outBlock(cmd, formatter.FormatShares(args[0], shares))
			return nil
		},
	}
}

func newShareShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CASE",
		Short: "Show the staff shares of a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shares, err := app.Allocation.Shares(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(shares) == 0 {
				outf(cmd, "No shares recorded for %s.\n", args[0])
				return nil
			}
			outBlock(cmd, formatter.FormatShares(args[0], shares))
			return nil
		},
	}
}
