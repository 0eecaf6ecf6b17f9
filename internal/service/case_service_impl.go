package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/caseload/internal/app"
	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/alexanderramin/caseload/internal/repository"
)

type caseService struct {
	cases       repository.CaseRepo
	assignments repository.AssignmentRepo
	shares      repository.ShareRepo
	quotes      repository.QuoteRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewCaseService(
	cases repository.CaseRepo,
	assignments repository.AssignmentRepo,
	shares repository.ShareRepo,
	quotes repository.QuoteRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CaseService {
	return &caseService{
		cases:       cases,
		assignments: assignments,
		shares:      shares,
		quotes:      quotes,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *caseService) List(ctx context.Context, req app.CaseListRequest) ([]*domain.Case, error) {
	cases, err := s.cases.List(ctx, repository.CaseFilter{CaseType: req.CaseType, NamePrefix: req.NamePrefix})
	if err != nil {
		return nil, err
	}
	if req.Limit > 0 && len(cases) > req.Limit {
		cases = cases[:req.Limit]
	}
	return cases, nil
}

// Rank scores the filtered cases and returns them highest first. Ranks are
// positions within the filtered set.
func (s *caseService) Rank(ctx context.Context, req app.CaseListRequest) (views []app.CaseScoreView, err error) {
	fields := map[string]any{"read_only": true, "case_type": req.CaseType}
	defer observe(ctx, s.observer, "rank-cases", fields, &err)()

	scored, err := scoreStored(ctx, s.cases, repository.CaseFilter{CaseType: req.CaseType, NamePrefix: req.NamePrefix})
	if err != nil {
		return nil, err
	}
	if req.Limit > 0 && len(scored) > req.Limit {
		scored = scored[:req.Limit]
	}
	fields["count"] = len(scored)
	return rankedViews(scored), nil
}

// Show returns one case with its score breakdown, portfolio rank and any
// allocation data recorded against it.
func (s *caseService) Show(ctx context.Context, name string) (*app.CaseDetail, error) {
	c, err := s.cases.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	scored, err := scoreStored(ctx, s.cases, repository.CaseFilter{})
	if err != nil {
		return nil, err
	}

	sc := engine.ScoreCase(*c)
	detail := &app.CaseDetail{
		Case:  *c,
		Score: round2(sc.Total()),
		Band:  sc.Band,
		Terms: termViews(sc.Score),
	}
	for i, other := range scored {
		if other.Case.Name == name {
			detail.Rank = i + 1
			break
		}
	}

	a, err := s.assignments.Get(ctx, name)
	switch {
	case err == nil:
		detail.Assignment = a
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	if detail.Shares, err = s.shares.ListByCase(ctx, name); err != nil {
		return nil, err
	}
	q, err := s.quotes.Get(ctx, name)
	switch {
	case err == nil:
		detail.Quote = q
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return detail, nil
}

// Remove deletes a case together with its assignment, shares and quote.
func (s *caseService) Remove(ctx context.Context, name string) (err error) {
	defer observe(ctx, s.observer, "remove-case", map[string]any{"case": name}, &err)()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteCaseRepo(tx).Delete(ctx, name); err != nil {
			return err
		}
		if err := repository.NewSQLiteAssignmentRepo(tx).Delete(ctx, name); err != nil {
			return err
		}
		if err := repository.NewSQLiteShareRepo(tx).DeleteForCase(ctx, name); err != nil {
			return err
		}
		return repository.NewSQLiteQuoteRepo(tx).Delete(ctx, name)
	})
}

// Reset clears every case and all allocation data. The roster is kept.
func (s *caseService) Reset(ctx context.Context) (removed int64, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "reset-cases", fields, &err)()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteCaseRepo(tx).DeleteAll(ctx)
		if err != nil {
			return err
		}
		if err := repository.NewSQLiteAssignmentRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewSQLiteShareRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		if err := repository.NewSQLiteQuoteRepo(tx).DeleteAll(ctx); err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("resetting cases: %w", err)
	}
	fields["removed"] = removed
	return removed, nil
}
