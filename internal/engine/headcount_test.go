package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanHeadcount_RequiredFromCapacity(t *testing.T) {
	p := PlanHeadcount(400, 5, 2, DefaultCapacity())
	assert.Equal(t, 10.0, p.PM.Required)
	assert.Equal(t, 8.0, p.Staff.Required)
	assert.Equal(t, 5.0, p.PM.Shortfall)
	assert.Equal(t, 6.0, p.Staff.Shortfall)
	assert.True(t, p.PM.NeedsHiring())
}

func TestPlanHeadcount_Sufficient(t *testing.T) {
	p := PlanHeadcount(100, 5, 3, DefaultCapacity())
	assert.Equal(t, 2.5, p.PM.Required)
	assert.Equal(t, 0.0, p.PM.Shortfall)
	assert.False(t, p.PM.NeedsHiring())
	assert.Equal(t, 2.0, p.Staff.Required)
	assert.False(t, p.Staff.NeedsHiring())
}

func TestPlanHeadcount_RoundsToOneDecimal(t *testing.T) {
	p := PlanHeadcount(123, 1, 1, DefaultCapacity())
	assert.Equal(t, 3.1, p.PM.Required)
	assert.Equal(t, 2.5, p.Staff.Required)
	assert.Equal(t, 2.1, p.PM.Shortfall)
}

func TestPlanHeadcount_ZeroCapacityIsNeutral(t *testing.T) {
	p := PlanHeadcount(400, 1, 1, Capacity{})
	assert.Equal(t, 0.0, p.PM.Required)
	assert.False(t, p.Staff.NeedsHiring())
}
