package domain

import "time"

// Assignment links a case to its PM and Staff owners.
type Assignment struct {
	CaseName  string
	PMs       []string
	Staff     []string
	UpdatedAt time.Time
}

// WorkloadShare is one staff member's percentage of a case.
type WorkloadShare struct {
	CaseName   string
	StaffName  string
	Percentage float64
}

// PriceQuote is the quoted price for a case. A price <= 0 means not quoted.
type PriceQuote struct {
	CaseName       string
	Price          float64
	EstimatedHours float64
	UpdatedAt      time.Time
}

func (q PriceQuote) IsQuoted() bool { return q.Price > 0 }

// RosterMember is a PM or Staff person available for assignment.
type RosterMember struct {
	ID        string
	Role      Role
	Name      string
	CreatedAt time.Time
}
