package importer

import (
	"time"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/engine"
	"github.com/google/uuid"
)

// Convert turns validated rows into cases ready to store, in input order.
// Call ValidateRows first.
func Convert(rows []Row, now time.Time) []*domain.Case {
	out := make([]*domain.Case, 0, len(rows))
	for _, row := range rows {
		c := engine.CaseFromRecord(row.Record)
		if c.CaseType == "" {
			c.CaseType = domain.UnclassifiedCaseType
		}
		c.ID = uuid.New().String()
		c.SourceFile = row.Source
		c.CreatedAt = now
		c.UpdatedAt = now
		out = append(out, &c)
	}
	return out
}
