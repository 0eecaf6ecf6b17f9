package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterRepo_AddListCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRosterRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, testutil.NewTestRosterMember(domain.RolePM, "Bob")))
	require.NoError(t, repo.Add(ctx, testutil.NewTestRosterMember(domain.RolePM, "Amy")))
	require.NoError(t, repo.Add(ctx, testutil.NewTestRosterMember(domain.RoleStaff, "Amy")))

	pms, err := repo.List(ctx, domain.RolePM)
	require.NoError(t, err)
	require.Len(t, pms, 2)
	assert.Equal(t, "Amy", pms[0].Name)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	counts, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[domain.RolePM])
	assert.Equal(t, 1, counts[domain.RoleStaff])
}

func TestRosterRepo_DuplicateWithinRoleRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRosterRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, testutil.NewTestRosterMember(domain.RolePM, "Amy")))
	assert.Error(t, repo.Add(ctx, testutil.NewTestRosterMember(domain.RolePM, "Amy")))
}

func TestRosterRepo_Remove(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteRosterRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, testutil.NewTestRosterMember(domain.RoleStaff, "Xu")))
	require.NoError(t, repo.Remove(ctx, domain.RoleStaff, "Xu"))
	require.ErrorIs(t, repo.Remove(ctx, domain.RoleStaff, "Xu"), ErrNotFound)

	counts, err := repo.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts[domain.RoleStaff])
}
