package testutil

import (
	"time"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/google/uuid"
)

type CaseOption func(*domain.Case)

func WithCaseType(t string) CaseOption {
	return func(c *domain.Case) {
		c.CaseType = t
	}
}

func WithEntities(n float64) CaseOption {
	return func(c *domain.Case) {
		c.Attributes.EntityCount = n
	}
}

func WithSystems(n float64) CaseOption {
	return func(c *domain.Case) {
		c.Attributes.SystemCount = n
	}
}

func WithSharedSystems(n float64) CaseOption {
	return func(c *domain.Case) {
		c.Attributes.ActualSharedSystemCount = n
	}
}

func WithITACItems(n float64) CaseOption {
	return func(c *domain.Case) {
		c.Attributes.ITACQuestionCount = n
	}
}

func WithIPOFilingType(s string) CaseOption {
	return func(c *domain.Case) {
		c.Attributes.IPOFilingType = s
	}
}

// WithPCAOB marks the case as a PCAOB engagement (+10).
func WithPCAOB() CaseOption {
	return func(c *domain.Case) {
		c.Attributes.IsPCAOBCase = domain.FlagAffirmative
	}
}

// WithFlaggedForReview adds the review flag (+8).
func WithFlaggedForReview() CaseOption {
	return func(c *domain.Case) {
		c.Attributes.FlaggedForReview = domain.FlagAffirmative
	}
}

func WithSeq(seq int) CaseOption {
	return func(c *domain.Case) {
		c.Seq = seq
	}
}

// NewTestCase builds an unsaved case with type "Audit" and no attributes, so
// it scores 0 unless options add to it.
func NewTestCase(name string, opts ...CaseOption) *domain.Case {
	now := time.Now().UTC()
	c := &domain.Case{
		ID:        uuid.New().String(),
		Name:      name,
		CaseType:  "Audit",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestRosterMember(role domain.Role, name string) *domain.RosterMember {
	return &domain.RosterMember{
		ID:        uuid.New().String(),
		Role:      role,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
