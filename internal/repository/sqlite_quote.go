package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
)

type SQLiteQuoteRepo struct {
	db db.DBTX
}

func NewSQLiteQuoteRepo(conn db.DBTX) *SQLiteQuoteRepo {
	return &SQLiteQuoteRepo{db: conn}
}

func (r *SQLiteQuoteRepo) Upsert(ctx context.Context, q *domain.PriceQuote) error {
	query := `INSERT INTO price_quotes (case_name, price, estimated_hours, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(case_name) DO UPDATE SET price = excluded.price,
			estimated_hours = excluded.estimated_hours, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, q.CaseName, q.Price, q.EstimatedHours, formatTime(q.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting quote for %q: %w", q.CaseName, err)
	}
	return nil
}

func (r *SQLiteQuoteRepo) Get(ctx context.Context, caseName string) (*domain.PriceQuote, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT case_name, price, estimated_hours, updated_at FROM price_quotes WHERE case_name = ?`, caseName)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quote for %q: %w", caseName, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning quote: %w", err)
	}
	return &q, nil
}

func (r *SQLiteQuoteRepo) List(ctx context.Context) ([]domain.PriceQuote, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT case_name, price, estimated_hours, updated_at FROM price_quotes ORDER BY case_name`)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	var out []domain.PriceQuote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}
	return out, nil
}

func (r *SQLiteQuoteRepo) Delete(ctx context.Context, caseName string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM price_quotes WHERE case_name = ?`, caseName); err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}
	return nil
}

func (r *SQLiteQuoteRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM price_quotes`); err != nil {
		return fmt.Errorf("deleting quotes: %w", err)
	}
	return nil
}

func scanQuote(s rowScanner) (domain.PriceQuote, error) {
	var q domain.PriceQuote
	var updatedAt string
	if err := s.Scan(&q.CaseName, &q.Price, &q.EstimatedHours, &updatedAt); err != nil {
		return q, err
	}
	q.UpdatedAt = parseTime(updatedAt)
	return q, nil
}
