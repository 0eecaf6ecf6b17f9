package domain

type RiskBand string

const (
	RiskLow    RiskBand = "LOW"
	RiskMedium RiskBand = "MEDIUM"
	RiskHigh   RiskBand = "HIGH"
)

type Role string

const (
	RolePM    Role = "PM"
	RoleStaff Role = "Staff"
)

// ValidRoles is the canonical set of accepted roster roles.
var ValidRoles = map[Role]bool{RolePM: true, RoleStaff: true}

type Evaluation string

const (
	EvalAboveAverage Evaluation = "above_average"
	EvalBelowAverage Evaluation = "below_average"
	EvalUnpriced     Evaluation = "unpriced"
)
