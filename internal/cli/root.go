package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/caseload/internal/export"
	"github.com/alexanderramin/caseload/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Import     service.ImportService
	Cases      service.CaseService
	Roster     service.RosterService
	Allocation service.AllocationService
	Quotes     service.QuoteService
	Reports    service.ReportService

	// Serve runs the read-only HTTP API until ctx is cancelled.
	Serve      func(ctx context.Context, addr string) error
	ServerAddr string
	PDF        export.PDFOptions

	// IsInteractive reports whether stdin is a terminal. Confirmation
	// prompts are skipped when it is nil or returns false.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh form.
	Confirm func(title string) (bool, error)
}

// ConfigFlag is the persistent flag naming the config file. It is read
// before the command tree is built; see PreParseConfigFlag.
const ConfigFlag = "config"

// NewRootCmd creates the top-level "caseload" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "caseload",
		Short:         "Case complexity scoring and resource allocation analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String(ConfigFlag, "", "Config file (default $CASELOAD_CONFIG or ~/.caseload/config.toml)")

	root.AddCommand(
		newImportCmd(app),
		newCaseCmd(app),
		newRosterCmd(app),
		newAssignCmd(app),
		newShareCmd(app),
		newQuoteCmd(app),
		newReportCmd(app),
		newExportCmd(app),
		newServeCmd(app),
	)
	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	return confirmForm(title)
}

func outf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func outln(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

// outBlock prints rendered output followed by exactly one newline.
func outBlock(cmd *cobra.Command, s string) {
	outln(cmd, strings.TrimRight(s, "\n"))
}

// PreParseConfigFlag extracts --config from args without failing on the
// flags that belong to subcommands.
func PreParseConfigFlag(args []string) string {
	fs := pflag.NewFlagSet("caseload", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	path := fs.String(ConfigFlag, "", "")
	_ = fs.Parse(args)
	return *path
}
