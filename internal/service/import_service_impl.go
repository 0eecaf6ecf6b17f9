package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/importer"
	"github.com/alexanderramin/caseload/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *importService) ImportCases(ctx context.Context, path string) (*ImportResult, error) {
	table, err := importer.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportTable(ctx, table)
}

// ImportTable stores every row of table or none of them.
func (s *importService) ImportTable(ctx context.Context, table *importer.Table) (result *ImportResult, err error) {
	fields := map[string]any{"rows": len(table.Rows)}
	defer observe(ctx, s.observer, "import-cases", fields, &err)()

	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("import contains no case rows")
	}

	result = &ImportResult{
		Warnings: importer.Warnings(table.Rows),
		Blanks:   importer.BlankCounts(table),
		Ignored:  table.Ignored,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCases := repository.NewSQLiteCaseRepo(tx)

		names, err := txCases.ListNames(ctx)
		if err != nil {
			return fmt.Errorf("loading existing case names: %w", err)
		}
		existing := make(map[string]bool, len(names))
		for _, n := range names {
			existing[n] = true
		}

		if errs := importer.ValidateRows(table.Rows, existing); len(errs) > 0 {
			return formatValidationErrors(errs)
		}

		for _, c := range importer.Convert(table.Rows, s.now()) {
			if err := txCases.Create(ctx, c); err != nil {
				return fmt.Errorf("creating case %q: %w", c.Name, err)
			}
			result.Imported = append(result.Imported, c.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["imported"] = len(result.Imported)
	fields["warnings"] = len(result.Warnings)
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
