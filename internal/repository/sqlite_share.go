package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
)

type SQLiteShareRepo struct {
	db db.DBTX
}

func NewSQLiteShareRepo(conn db.DBTX) *SQLiteShareRepo {
	return &SQLiteShareRepo{db: conn}
}

// ReplaceForCase deletes the case's shares and inserts the given ones.
// Run it inside a UnitOfWork to make the swap atomic.
func (r *SQLiteShareRepo) ReplaceForCase(ctx context.Context, caseName string, shares []domain.WorkloadShare) error {
	if err := r.DeleteForCase(ctx, caseName); err != nil {
		return err
	}
	if len(shares) == 0 {
		return nil
	}
	b := sqlb.Insert("workload_shares").Columns("case_name", "staff_name", "percentage")
	for _, s := range shares {
		b = b.Values(caseName, s.StaffName, s.Percentage)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("building share insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting shares for %q: %w", caseName, err)
	}
	return nil
}

func (r *SQLiteShareRepo) ListByCase(ctx context.Context, caseName string) ([]domain.WorkloadShare, error) {
	return r.query(ctx, `SELECT case_name, staff_name, percentage FROM workload_shares
		WHERE case_name = ? ORDER BY rowid`, caseName)
}

// List returns every share, including ones whose case no longer exists.
func (r *SQLiteShareRepo) List(ctx context.Context) ([]domain.WorkloadShare, error) {
	return r.query(ctx, `SELECT case_name, staff_name, percentage FROM workload_shares ORDER BY case_name, rowid`)
}

func (r *SQLiteShareRepo) DeleteForCase(ctx context.Context, caseName string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workload_shares WHERE case_name = ?`, caseName); err != nil {
		return fmt.Errorf("deleting shares for %q: %w", caseName, err)
	}
	return nil
}

func (r *SQLiteShareRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workload_shares`); err != nil {
		return fmt.Errorf("deleting shares: %w", err)
	}
	return nil
}

func (r *SQLiteShareRepo) query(ctx context.Context, query string, args ...any) ([]domain.WorkloadShare, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shares: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkloadShare
	for rows.Next() {
		var s domain.WorkloadShare
		if err := rows.Scan(&s.CaseName, &s.StaffName, &s.Percentage); err != nil {
			return nil, fmt.Errorf("scanning share: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shares: %w", err)
	}
	return out, nil
}
