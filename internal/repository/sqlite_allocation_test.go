package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepo_UpsertReplacesLists(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAssignmentRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Assignment{CaseName: "c1", PMs: []string{"Amy", " Bob"}, Staff: []string{"X"}}))
	require.NoError(t, repo.Upsert(ctx, &domain.Assignment{CaseName: "c1", PMs: []string{"Cal"}, Staff: []string{"X", "Y", "X"}}))

	a, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cal"}, a.PMs)
	assert.Equal(t, []string{"X", "Y"}, a.Staff)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err = repo.Get(ctx, "c1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAssignmentRepo_EmptyListsRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAssignmentRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Assignment{CaseName: "c1", PMs: []string{"Amy"}}))
	a, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, a.Staff)
}

func TestShareRepo_ReplaceForCase(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteShareRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceForCase(ctx, "c1", []domain.WorkloadShare{
		{StaffName: "X", Percentage: 60},
		{StaffName: "Y", Percentage: 40},
	}))
	require.NoError(t, repo.ReplaceForCase(ctx, "c2", []domain.WorkloadShare{{StaffName: "X", Percentage: 100}}))
	require.NoError(t, repo.ReplaceForCase(ctx, "c1", []domain.WorkloadShare{{StaffName: "Z", Percentage: 100}}))

	c1, err := repo.ListByCase(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, c1, 1)
	assert.Equal(t, "Z", c1[0].StaffName)
	assert.Equal(t, "c1", c1[0].CaseName)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.ReplaceForCase(ctx, "c2", nil))
	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestShareRepo_SurvivesCaseDeletion(t *testing.T) {
	db := testutil.NewTestDB(t)
	cases := NewSQLiteCaseRepo(db)
	shares := NewSQLiteShareRepo(db)
	ctx := context.Background()

	require.NoError(t, cases.Create(ctx, testutil.NewTestCase("c1")))
	require.NoError(t, shares.ReplaceForCase(ctx, "c1", []domain.WorkloadShare{{StaffName: "X", Percentage: 100}}))
	require.NoError(t, cases.Delete(ctx, "c1"))

	all, err := shares.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestQuoteRepo_UpsertAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteQuoteRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.PriceQuote{CaseName: "c1", Price: 100, EstimatedHours: 20}))
	require.NoError(t, repo.Upsert(ctx, &domain.PriceQuote{CaseName: "c1", Price: 150, EstimatedHours: 25}))
	require.NoError(t, repo.Upsert(ctx, &domain.PriceQuote{CaseName: "c0", Price: 0}))

	q, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 150.0, q.Price)
	assert.Equal(t, 25.0, q.EstimatedHours)
	assert.True(t, q.IsQuoted())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c0", all[0].CaseName)
	assert.False(t, all[0].IsQuoted())

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
