package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/alexanderramin/caseload/internal/repository"
)

// shareSumTolerance bounds how far an explicit distribution may drift from
// 100 when it is saved.
const shareSumTolerance = 0.01

type allocationService struct {
	cases    repository.CaseRepo
	shares   repository.ShareRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewAllocationService(
	cases repository.CaseRepo,
	shares repository.ShareRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AllocationService {
	return &allocationService{cases: cases, shares: shares, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Assign replaces the PM and Staff owners of a case. Every name must be on
// the roster under the matching role. Shares held by staff who are no
// longer assigned are dropped.
func (s *allocationService) Assign(ctx context.Context, caseName string, pms, staff []string) (a *domain.Assignment, err error) {
	pms = repository.SplitNames(strings.Join(pms, ","))
	staff = repository.SplitNames(strings.Join(staff, ","))
	fields := map[string]any{"case": caseName, "pms": len(pms), "staff": len(staff)}
	defer observe(ctx, s.observer, "assign-case", fields, &err)()

	if len(pms) == 0 && len(staff) == 0 {
		return nil, fmt.Errorf("assign %q: at least one PM or Staff name is required", caseName)
	}

	a = &domain.Assignment{CaseName: caseName, PMs: pms, Staff: staff, UpdatedAt: time.Now().UTC()}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteCaseRepo(tx).GetByName(ctx, caseName); err != nil {
			return err
		}
		roster, err := repository.NewSQLiteRosterRepo(tx).List(ctx, "")
		if err != nil {
			return err
		}
		if err := checkRoster(roster, domain.RolePM, pms); err != nil {
			return err
		}
		if err := checkRoster(roster, domain.RoleStaff, staff); err != nil {
			return err
		}

		if err := repository.NewSQLiteAssignmentRepo(tx).Upsert(ctx, a); err != nil {
			return err
		}

		txShares := repository.NewSQLiteShareRepo(tx)
		current, err := txShares.ListByCase(ctx, caseName)
		if err != nil {
			return err
		}
		kept := keepAssigned(current, staff)
		if len(kept) == len(current) {
			return nil
		}
		fields["dropped_shares"] = len(current) - len(kept)
		return txShares.ReplaceForCase(ctx, caseName, kept)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// SetShares records an explicit percentage split of a case across its
// assigned staff. The percentages must add up to 100.
func (s *allocationService) SetShares(ctx context.Context, caseName string, shares []domain.WorkloadShare) (err error) {
	defer observe(ctx, s.observer, "set-shares", map[string]any{"case": caseName, "staff": len(shares)}, &err)()

	if len(shares) == 0 {
		return fmt.Errorf("shares for %q: at least one staff share is required", caseName)
	}
	seen := map[string]bool{}
	var total float64
	for i := range shares {
		sh := &shares[i]
		sh.CaseName = caseName
		sh.StaffName = strings.TrimSpace(sh.StaffName)
		if sh.StaffName == "" {
			return fmt.Errorf("shares for %q: staff name is required", caseName)
		}
		if seen[sh.StaffName] {
			return fmt.Errorf("shares for %q: %q listed more than once", caseName, sh.StaffName)
		}
		seen[sh.StaffName] = true
		if sh.Percentage < 0 || sh.Percentage > 100 || math.IsNaN(sh.Percentage) {
			return fmt.Errorf("shares for %q: %s percentage %.2f must be between 0 and 100", caseName, sh.StaffName, sh.Percentage)
		}
		total += sh.Percentage
	}
	if math.Abs(total-100) > shareSumTolerance {
		return fmt.Errorf("shares for %q add up to %.2f%%, expected 100%%", caseName, total)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		a, err := assignmentFor(ctx, tx, caseName)
		if err != nil {
			return err
		}
		assigned := map[string]bool{}
		for _, name := range a.Staff {
			assigned[name] = true
		}
		for _, sh := range shares {
			if !assigned[sh.StaffName] {
				return fmt.Errorf("shares for %q: %s is not assigned to the case", caseName, sh.StaffName)
			}
		}
		return repository.NewSQLiteShareRepo(tx).ReplaceForCase(ctx, caseName, shares)
	})
}

// InitShares splits a case evenly across its assigned staff, replacing any
// existing distribution.
func (s *allocationService) InitShares(ctx context.Context, caseName string) (shares []domain.WorkloadShare, err error) {
	defer observe(ctx, s.observer, "init-shares", map[string]any{"case": caseName}, &err)()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		a, err := assignmentFor(ctx, tx, caseName)
		if err != nil {
			return err
		}
		if len(a.Staff) == 0 {
			return fmt.Errorf("case %q has no staff assigned", caseName)
		}
		shares = engine.EvenShares(caseName, a.Staff)
		return repository.NewSQLiteShareRepo(tx).ReplaceForCase(ctx, caseName, shares)
	})
	if err != nil {
		return nil, err
	}
	return shares, nil
}

func (s *allocationService) Shares(ctx context.Context, caseName string) ([]domain.WorkloadShare, error) {
	if _, err := s.cases.GetByName(ctx, caseName); err != nil {
		return nil, err
	}
	return s.shares.ListByCase(ctx, caseName)
}

func assignmentFor(ctx context.Context, tx db.DBTX, caseName string) (*domain.Assignment, error) {
	if _, err := repository.NewSQLiteCaseRepo(tx).GetByName(ctx, caseName); err != nil {
		return nil, err
	}
	a, err := repository.NewSQLiteAssignmentRepo(tx).Get(ctx, caseName)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("case %q has no assignment yet", caseName)
	}
	return a, err
}

func checkRoster(roster []domain.RosterMember, role domain.Role, names []string) error {
	on := map[string]bool{}
	for _, m := range roster {
		if m.Role == role {
			on[m.Name] = true
		}
	}
	var missing []string
	for _, n := range names {
		if !on[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("not on the %s roster: %s", role, strings.Join(missing, ", "))
	}
	return nil
}

func keepAssigned(shares []domain.WorkloadShare, staff []string) []domain.WorkloadShare {
	assigned := map[string]bool{}
	for _, name := range staff {
		assigned[name] = true
	}
	var kept []domain.WorkloadShare
	for _, sh := range shares {
		if assigned[sh.StaffName] {
			kept = append(kept, sh)
		}
	}
	return kept
}
