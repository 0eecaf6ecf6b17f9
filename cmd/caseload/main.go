package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/caseload/internal/cli"
	"github.com/alexanderramin/caseload/internal/config"
	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/export"
	"github.com/alexanderramin/caseload/internal/httpapi"
	"github.com/alexanderramin/caseload/internal/repository"
	"github.com/alexanderramin/caseload/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The config file decides the DB path, so it is read before cobra runs.
	cfgPath, required := config.ResolvePath(cli.PreParseConfigFlag(os.Args[1:]))
	cfg, err := config.Load(cfgPath, required)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	caseRepo := repository.NewSQLiteCaseRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	shareRepo := repository.NewSQLiteShareRepo(database)
	quoteRepo := repository.NewSQLiteQuoteRepo(database)
	rosterRepo := repository.NewSQLiteRosterRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewSlogUseCaseObserver(logger)

	caseSvc := service.NewCaseService(caseRepo, assignmentRepo, shareRepo, quoteRepo, uow, observer)
	reportSvc := service.NewReportService(caseRepo, assignmentRepo, shareRepo, quoteRepo, rosterRepo,
		service.ReportSettings{
			Capacity:      cfg.Capacity,
			FallbackPM:    cfg.Headcount.FallbackPM,
			FallbackStaff: cfg.Headcount.FallbackStaff,
		}, observer)
	server := httpapi.New(caseSvc, reportSvc, logger)

	app := &cli.App{
		Import:     service.NewImportService(uow, observer),
		Cases:      caseSvc,
		Roster:     service.NewRosterService(rosterRepo, uow, observer),
		Allocation: service.NewAllocationService(caseRepo, shareRepo, uow, observer),
		Quotes:     service.NewQuoteService(quoteRepo, uow, observer),
		Reports:    reportSvc,

		Serve:      server.ListenAndServe,
		ServerAddr: cfg.Server.Addr,
		PDF:        export.PDFOptions{FontPath: cfg.Export.PDFFont},
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
