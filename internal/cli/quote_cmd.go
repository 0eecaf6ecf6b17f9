package cli

import (
	"github.com/alexanderramin/caseload/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newQuoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Record quoted prices and estimated hours",
	}
	cmd.AddCommand(newQuoteSetCmd(app), newQuoteListCmd(app))
	return cmd
}

func newQuoteSetCmd(app *App) *cobra.Command {
	var price, hours float64
	cmd := &cobra.Command{
		Use:   "set CASE",
		Short: "Set the price quote for a case (price 0 clears the quote)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := app.Quotes.Set(cmd.Context(), args[0], price, hours)
			if err != nil {
				return err
			}
			outf(cmd, "Quote for %s: price %s, hours %s\n",
				q.CaseName, formatter.Num(q.Price), formatter.Num(q.EstimatedHours))
			return nil
		},
	}
	cmd.Flags().Float64Var(&price, "price", 0, "Quoted price")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours")
	return cmd
}

func newQuoteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded quotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			quotes, err := app.Quotes.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(quotes) == 0 {
				outln(cmd, "No quotes recorded.")
				return nil
			}
			outBlock(cmd, formatter.FormatQuotes(quotes))
			return nil
		},
	}
}
