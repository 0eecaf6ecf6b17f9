package repository

import (
	"context"

	"github.com/alexanderramin/caseload/internal/domain"
)

// CaseFilter narrows List. Zero values match everything.
type CaseFilter struct {
	CaseType   string
	NamePrefix string
	Names      []string
}

type CaseRepo interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByName(ctx context.Context, name string) (*domain.Case, error)
	List(ctx context.Context, f CaseFilter) ([]*domain.Case, error)
	ListNames(ctx context.Context) ([]string, error)
	CountByType(ctx context.Context) (map[string]int, error)
	Delete(ctx context.Context, name string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type AssignmentRepo interface {
	Upsert(ctx context.Context, a *domain.Assignment) error
	Get(ctx context.Context, caseName string) (*domain.Assignment, error)
	List(ctx context.Context) ([]domain.Assignment, error)
	Delete(ctx context.Context, caseName string) error
	DeleteAll(ctx context.Context) error
}

type ShareRepo interface {
	ReplaceForCase(ctx context.Context, caseName string, shares []domain.WorkloadShare) error
	ListByCase(ctx context.Context, caseName string) ([]domain.WorkloadShare, error)
	List(ctx context.Context) ([]domain.WorkloadShare, error)
	DeleteForCase(ctx context.Context, caseName string) error
	DeleteAll(ctx context.Context) error
}

type QuoteRepo interface {
	Upsert(ctx context.Context, q *domain.PriceQuote) error
	Get(ctx context.Context, caseName string) (*domain.PriceQuote, error)
	List(ctx context.Context) ([]domain.PriceQuote, error)
	Delete(ctx context.Context, caseName string) error
	DeleteAll(ctx context.Context) error
}

type RosterRepo interface {
	Add(ctx context.Context, m *domain.RosterMember) error
	Remove(ctx context.Context, role domain.Role, name string) error
	// List returns members ordered by role then name; an empty role lists all.
	List(ctx context.Context, role domain.Role) ([]domain.RosterMember, error)
	CountByRole(ctx context.Context) (map[domain.Role]int, error)
}
