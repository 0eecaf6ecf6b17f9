package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterService_AddAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewRosterService(f.roster, f.uow)

	m, err := svc.Add(ctx, domain.RoleStaff, "  Sam ")
	require.NoError(t, err)
	assert.Equal(t, "Sam", m.Name)
	assert.NotEmpty(t, m.ID)
	_, err = svc.Add(ctx, domain.RolePM, "Pat")
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.RolePM, all[0].Role)

	staff, err := svc.List(ctx, domain.RoleStaff)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "Sam", staff[0].Name)
}

func TestRosterService_SameNameDifferentRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewRosterService(f.roster, f.uow)

	_, err := svc.Add(ctx, domain.RolePM, "Lee")
	require.NoError(t, err)
	_, err = svc.Add(ctx, domain.RoleStaff, "Lee")
	require.NoError(t, err)

	_, err = svc.Add(ctx, domain.RolePM, "Lee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already on the roster")
}

func TestRosterService_RejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewRosterService(f.roster, f.uow)

	_, err := svc.Add(ctx, domain.Role("Partner"), "Kim")
	assert.ErrorContains(t, err, "invalid role")
	_, err = svc.Add(ctx, domain.RolePM, "   ")
	assert.ErrorContains(t, err, "required")
	_, err = svc.Add(ctx, domain.RolePM, "A, B")
	assert.ErrorContains(t, err, "commas")
	_, err = svc.List(ctx, domain.Role("pm"))
	assert.ErrorContains(t, err, "invalid role")
}

func TestRosterService_RemoveUnknown(t *testing.T) {
	f := newFixture(t)
	svc := NewRosterService(f.roster, f.uow)

	err := svc.Remove(context.Background(), domain.RoleStaff, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
