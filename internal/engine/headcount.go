package engine

import "github.com/alexanderramin/caseload/internal/domain"

// Capacity is the complexity points one person of each role can carry.
type Capacity struct {
	PMPoints    float64 `toml:"pm_points" validate:"gt=0"`
	StaffPoints float64 `toml:"staff_points" validate:"gt=0"`
}

func DefaultCapacity() Capacity {
	return Capacity{PMPoints: 40, StaffPoints: 50}
}

// RolePlan is the headcount verdict for one role. Required and Shortfall
// are rounded to one decimal.
type RolePlan struct {
	Role      domain.Role
	Capacity  float64
	Current   int
	Required  float64
	Shortfall float64
}

func (p RolePlan) NeedsHiring() bool { return p.Shortfall > 0 }

// HeadcountPlan covers both roles for one portfolio total.
type HeadcountPlan struct {
	TotalComplexity float64
	PM              RolePlan
	Staff           RolePlan
}

// PlanHeadcount converts total complexity into required headcount.
func PlanHeadcount(total float64, currentPM, currentStaff int, c Capacity) HeadcountPlan {
	return HeadcountPlan{
		TotalComplexity: total,
		PM:              planRole(domain.RolePM, total, c.PMPoints, currentPM),
		Staff:           planRole(domain.RoleStaff, total, c.StaffPoints, currentStaff),
	}
}

func planRole(role domain.Role, total, capacity float64, current int) RolePlan {
	p := RolePlan{Role: role, Capacity: capacity, Current: current}
	if capacity <= 0 {
		return p
	}
	p.Required = Round(total/capacity, 1)
	if gap := p.Required - float64(current); gap > 0 {
		p.Shortfall = Round(gap, 1)
	}
	return p
}
