package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
)

type SQLiteCaseRepo struct {
	db db.DBTX
}

func NewSQLiteCaseRepo(conn db.DBTX) *SQLiteCaseRepo {
	return &SQLiteCaseRepo{db: conn}
}

var caseColumns = []string{
	"id", "seq", "name", "case_type", "source_file",
	"entity_count", "system_count", "actual_shared_system_count",
	"systems_shared_across_entities", "system_customized", "flagged_for_review",
	"is_pcaob_case", "prior_pm_changed", "ipo_filing_type",
	"ipo_complex_security", "ipo_first_review", "itac_question_count",
	"itac_first_review", "gc_first_review", "caats_first_review",
	"created_at", "updated_at",
}

// Create inserts a case. A zero Seq is assigned the next free number.
func (r *SQLiteCaseRepo) Create(ctx context.Context, c *domain.Case) error {
	if c.Seq == 0 {
		if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM cases`).Scan(&c.Seq); err != nil {
			return fmt.Errorf("allocating case seq: %w", err)
		}
	}
	a := c.Attributes
	query, args, err := sqlb.Insert("cases").Columns(caseColumns...).Values(
		c.ID, c.Seq, c.Name, c.CaseType, c.SourceFile,
		a.EntityCount, a.SystemCount, a.ActualSharedSystemCount,
		a.SystemsSharedAcrossEntities.String(), a.SystemCustomized.String(), a.FlaggedForReview.String(),
		a.IsPCAOBCase.String(), a.PriorPMChanged.String(), a.IPOFilingType,
		a.IPOComplexSecurity.String(), a.IPOFirstReview.String(), a.ITACQuestionCount,
		a.ITACFirstReview.String(), a.GCFirstReview.String(), a.CAATsFirstReview.String(),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	).ToSql()
	if err != nil {
		return fmt.Errorf("building case insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting case %q: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteCaseRepo) GetByName(ctx context.Context, name string) (*domain.Case, error) {
	query, args, err := sqlb.Select(caseColumns...).From("cases").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building case query: %w", err)
	}
	c, err := scanCase(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("case %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning case: %w", err)
	}
	return c, nil
}

// List returns matching cases in import order.
func (r *SQLiteCaseRepo) List(ctx context.Context, f CaseFilter) ([]*domain.Case, error) {
	b := sqlb.Select(caseColumns...).From("cases").OrderBy("seq", "name")
	if f.CaseType != "" {
		b = b.Where(sq.Eq{"case_type": f.CaseType})
	}
	if f.NamePrefix != "" {
		b = b.Where(sq.Like{"name": f.NamePrefix + "%"})
	}
	if len(f.Names) > 0 {
		b = b.Where(sq.Eq{"name": f.Names})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building case list: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}
	defer rows.Close()

	var cases []*domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning case: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cases: %w", err)
	}
	return cases, nil
}

func (r *SQLiteCaseRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM cases ORDER BY seq, name`)
	if err != nil {
		return nil, fmt.Errorf("listing case names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning case name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *SQLiteCaseRepo) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT case_type, COUNT(*) FROM cases GROUP BY case_type`)
	if err != nil {
		return nil, fmt.Errorf("counting case types: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scanning case type count: %w", err)
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

func (r *SQLiteCaseRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cases WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting case: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("case %q: %w", name, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCaseRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cases`)
	if err != nil {
		return 0, fmt.Errorf("deleting all cases: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(s rowScanner) (*domain.Case, error) {
	var c domain.Case
	var sharedAcross, customized, flagged, pcaob, pmChanged string
	var ipoSecurity, ipoFirst, itacFirst, gcFirst, caatsFirst string
	var createdAt, updatedAt string

	err := s.Scan(
		&c.ID, &c.Seq, &c.Name, &c.CaseType, &c.SourceFile,
		&c.Attributes.EntityCount, &c.Attributes.SystemCount, &c.Attributes.ActualSharedSystemCount,
		&sharedAcross, &customized, &flagged,
		&pcaob, &pmChanged, &c.Attributes.IPOFilingType,
		&ipoSecurity, &ipoFirst, &c.Attributes.ITACQuestionCount,
		&itacFirst, &gcFirst, &caatsFirst,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Attributes.SystemsSharedAcrossEntities = domain.ParseFlag(sharedAcross)
	c.Attributes.SystemCustomized = domain.ParseFlag(customized)
	c.Attributes.FlaggedForReview = domain.ParseFlag(flagged)
	c.Attributes.IsPCAOBCase = domain.ParseFlag(pcaob)
	c.Attributes.PriorPMChanged = domain.ParseFlag(pmChanged)
	c.Attributes.IPOComplexSecurity = domain.ParseFlag(ipoSecurity)
	c.Attributes.IPOFirstReview = domain.ParseFlag(ipoFirst)
	c.Attributes.ITACFirstReview = domain.ParseFlag(itacFirst)
	c.Attributes.GCFirstReview = domain.ParseFlag(gcFirst)
	c.Attributes.CAATsFirstReview = domain.ParseFlag(caatsFirst)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}
