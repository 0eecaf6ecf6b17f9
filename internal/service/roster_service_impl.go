package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/repository"
	"github.com/google/uuid"
)

type rosterService struct {
	roster   repository.RosterRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewRosterService(roster repository.RosterRepo, uow db.UnitOfWork, observers ...UseCaseObserver) RosterService {
	return &rosterService{roster: roster, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *rosterService) Add(ctx context.Context, role domain.Role, name string) (m *domain.RosterMember, err error) {
	name = strings.TrimSpace(name)
	defer observe(ctx, s.observer, "roster-add", map[string]any{"role": string(role), "name": name}, &err)()

	if !domain.ValidRoles[role] {
		return nil, fmt.Errorf("invalid role %q (expected %s or %s)", role, domain.RolePM, domain.RoleStaff)
	}
	if name == "" {
		return nil, fmt.Errorf("roster name is required")
	}
	if strings.ContainsAny(name, ",，") {
		return nil, fmt.Errorf("roster name %q must not contain commas", name)
	}

	m = &domain.RosterMember{
		ID:        uuid.New().String(),
		Role:      role,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRoster := repository.NewSQLiteRosterRepo(tx)
		members, err := txRoster.List(ctx, role)
		if err != nil {
			return err
		}
		for _, existing := range members {
			if existing.Name == name {
				return fmt.Errorf("%s %q is already on the roster", role, name)
			}
		}
		return txRoster.Add(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Remove takes a person off the roster. Existing assignments that name
// them are left as they are.
func (s *rosterService) Remove(ctx context.Context, role domain.Role, name string) (err error) {
	name = strings.TrimSpace(name)
	defer observe(ctx, s.observer, "roster-remove", map[string]any{"role": string(role), "name": name}, &err)()

	if !domain.ValidRoles[role] {
		return fmt.Errorf("invalid role %q (expected %s or %s)", role, domain.RolePM, domain.RoleStaff)
	}
	return s.roster.Remove(ctx, role, name)
}

func (s *rosterService) List(ctx context.Context, role domain.Role) ([]domain.RosterMember, error) {
	if role != "" && !domain.ValidRoles[role] {
		return nil, fmt.Errorf("invalid role %q (expected %s or %s)", role, domain.RolePM, domain.RoleStaff)
	}
	return s.roster.List(ctx, role)
}
