package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/caseload/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Portfolio, workload, ROI and budget reports",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.AddCommand(
		newReportOverviewCmd(app, &asJSON),
		newReportLoadCmd(app, &asJSON),
		newReportROICmd(app, &asJSON),
		newReportBudgetCmd(app, &asJSON),
	)
	return cmd
}

// render prints v as indented JSON when asJSON is set, otherwise the
// formatted text.
func render(cmd *cobra.Command, asJSON bool, v any, text func() string) error {
	if !asJSON {
		outBlock(cmd, text())
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func newReportOverviewCmd(app *App, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Case counts, risk bands and the most complex cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.Reports.Overview(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, *asJSON, o, func() string { return formatter.FormatOverview(o) })
		},
	}
}

func newReportLoadCmd(app *App, asJSON *bool) *cobra.Command {
	var pm, staff string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Workload per PM and Staff, or the cases of one person",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			switch {
			case pm != "" && staff != "":
				return fmt.Errorf("--pm and --staff cannot be combined")
			case pm != "":
				d, err := app.Reports.PMDetail(ctx, pm)
				if err != nil {
					return err
				}
				return render(cmd, *asJSON, d, func() string { return formatter.FormatPMDetail(d) })
			case staff != "":
				d, err := app.Reports.StaffDetail(ctx, staff)
				if err != nil {
					return err
				}
				return render(cmd, *asJSON, d, func() string { return formatter.FormatStaffDetail(d) })
			}
			l, err := app.Reports.Load(ctx)
			if err != nil {
				return err
			}
			return render(cmd, *asJSON, l, func() string { return formatter.FormatLoad(l) })
		},
	}
	cmd.Flags().StringVar(&pm, "pm", "", "Show the cases of this PM")
	cmd.Flags().StringVar(&staff, "staff", "", "Show the cases and shares of this staff member")
	return cmd
}

func newReportROICmd(app *App, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "roi",
		Short: "Price per complexity point for quoted cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Reports.ROI(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, *asJSON, r, func() string { return formatter.FormatROI(r) })
		},
	}
}

func newReportBudgetCmd(app *App, asJSON *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "budget",
		Short: "Required headcount against the current roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Reports.Budget(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, *asJSON, r, func() string { return formatter.FormatBudget(r) })
		},
	}
}
