package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/caseload/internal/db"
	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/repository"
)

type quoteService struct {
	quotes   repository.QuoteRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewQuoteService(quotes repository.QuoteRepo, uow db.UnitOfWork, observers ...UseCaseObserver) QuoteService {
	return &quoteService{quotes: quotes, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Set records the quoted price and estimated hours for a case. A price of 0
// marks the case as not quoted.
func (s *quoteService) Set(ctx context.Context, caseName string, price, hours float64) (q *domain.PriceQuote, err error) {
	defer observe(ctx, s.observer, "set-quote", map[string]any{"case": caseName, "price": price}, &err)()

	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("price for %q must be a non-negative number", caseName)
	}
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return nil, fmt.Errorf("estimated hours for %q must be a non-negative number", caseName)
	}

	q = &domain.PriceQuote{CaseName: caseName, Price: price, EstimatedHours: hours, UpdatedAt: time.Now().UTC()}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteCaseRepo(tx).GetByName(ctx, caseName); err != nil {
			return err
		}
		return repository.NewSQLiteQuoteRepo(tx).Upsert(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

func (s *quoteService) List(ctx context.Context) ([]domain.PriceQuote, error) {
	return s.quotes.List(ctx)
}
