package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
)

type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

// Upsert replaces both owner lists of a case.
func (r *SQLiteAssignmentRepo) Upsert(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (case_name, pms, staff, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(case_name) DO UPDATE SET pms = excluded.pms, staff = excluded.staff, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, a.CaseName, JoinNames(a.PMs), JoinNames(a.Staff), formatTime(a.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting assignment for %q: %w", a.CaseName, err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Get(ctx context.Context, caseName string) (*domain.Assignment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT case_name, pms, staff, updated_at FROM assignments WHERE case_name = ?`, caseName)
	a, err := scanAssignment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assignment for %q: %w", caseName, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}
	return &a, nil
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context) ([]domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT case_name, pms, staff, updated_at FROM assignments ORDER BY case_name`)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, caseName string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE case_name = ?`, caseName); err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments`); err != nil {
		return fmt.Errorf("deleting assignments: %w", err)
	}
	return nil
}

func scanAssignment(s rowScanner) (domain.Assignment, error) {
	var a domain.Assignment
	var pms, staff, updatedAt string
	if err := s.Scan(&a.CaseName, &pms, &staff, &updatedAt); err != nil {
		return a, err
	}
	a.PMs = SplitNames(pms)
	a.Staff = SplitNames(staff)
	a.UpdatedAt = parseTime(updatedAt)
	return a, nil
}
