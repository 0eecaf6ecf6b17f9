package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
)

type SQLiteRosterRepo struct {
	db db.DBTX
}

func NewSQLiteRosterRepo(conn db.DBTX) *SQLiteRosterRepo {
	return &SQLiteRosterRepo{db: conn}
}

func (r *SQLiteRosterRepo) Add(ctx context.Context, m *domain.RosterMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roster (id, role, name, created_at) VALUES (?, ?, ?, ?)`,
		m.ID, string(m.Role), m.Name, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("adding %s %q to roster: %w", m.Role, m.Name, err)
	}
	return nil
}

func (r *SQLiteRosterRepo) Remove(ctx context.Context, role domain.Role, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roster WHERE role = ? AND name = ?`, string(role), name)
	if err != nil {
		return fmt.Errorf("removing roster member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %q: %w", role, name, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRosterRepo) List(ctx context.Context, role domain.Role) ([]domain.RosterMember, error) {
	b := sqlb.Select("id", "role", "name", "created_at").From("roster").OrderBy("role", "name")
	if role != "" {
		b = b.Where(sq.Eq{"role": string(role)})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building roster query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing roster: %w", err)
	}
	defer rows.Close()

	var out []domain.RosterMember
	for rows.Next() {
		var m domain.RosterMember
		var roleStr, createdAt string
		if err := rows.Scan(&m.ID, &roleStr, &m.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning roster member: %w", err)
		}
		m.Role = domain.Role(roleStr)
		m.CreatedAt = parseTime(createdAt)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roster: %w", err)
	}
	return out, nil
}

func (r *SQLiteRosterRepo) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM roster GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("counting roster: %w", err)
	}
	defer rows.Close()

	counts := map[domain.Role]int{domain.RolePM: 0, domain.RoleStaff: 0}
	for rows.Next() {
		var role string
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scanning roster count: %w", err)
		}
		counts[domain.Role(role)] = n
	}
	return counts, rows.Err()
}
