package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/caseload/internal/db"
)

// FailingUoW runs callbacks in a real transaction but makes the Nth write
// (counted from 1) fail with Err. Reads are not counted. Used to prove that
// multi-row writes such as an import roll back as a whole.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if fnErr := fn(ctx, &failingTx{DBTX: tx, failOn: u.FailOn, err: u.Err}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.writes++
	if f.writes == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
