package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/caseload/internal/domain"
	"github.com/alexanderramin/caseload/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseRepo_CreateAndGetByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCaseRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCase("Acme Holdings",
		testutil.WithCaseType("IPO"),
		testutil.WithEntities(5),
		testutil.WithSystems(2),
		testutil.WithIPOFilingType("上市"),
		testutil.WithFlaggedForReview(),
	)
	c.Attributes.SystemsSharedAcrossEntities = domain.FlagNegative
	c.SourceFile = "batch1.csv"
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, 1, c.Seq)

	fetched, err := repo.GetByName(ctx, "Acme Holdings")
	require.NoError(t, err)
	assert.Equal(t, c.ID, fetched.ID)
	assert.Equal(t, "IPO", fetched.CaseType)
	assert.Equal(t, "batch1.csv", fetched.SourceFile)
	assert.Equal(t, 5.0, fetched.Attributes.EntityCount)
	assert.Equal(t, "上市", fetched.Attributes.IPOFilingType)
	assert.Equal(t, domain.FlagAffirmative, fetched.Attributes.FlaggedForReview)
	assert.Equal(t, domain.FlagNegative, fetched.Attributes.SystemsSharedAcrossEntities)
	assert.Equal(t, domain.FlagUnset, fetched.Attributes.IsPCAOBCase)
}

func TestCaseRepo_GetByName_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCaseRepo(db)

	_, err := repo.GetByName(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCaseRepo_DuplicateNameRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCaseRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCase("Dup")))
	assert.Error(t, repo.Create(ctx, testutil.NewTestCase("Dup")))
}

func TestCaseRepo_ListKeepsImportOrderAndFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCaseRepo(db)
	ctx := context.Background()

	for _, c := range []*domain.Case{
		testutil.NewTestCase("Zeta Corp", testutil.WithCaseType("Audit")),
		testutil.NewTestCase("Alpha Ltd", testutil.WithCaseType("IPO")),
		testutil.NewTestCase("Zenith Inc", testutil.WithCaseType("Audit")),
	} {
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.List(ctx, CaseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Zeta Corp", all[0].Name)
	assert.Equal(t, "Alpha Ltd", all[1].Name)
	assert.Equal(t, 3, all[2].Seq)

	audits, err := repo.List(ctx, CaseFilter{CaseType: "Audit"})
	require.NoError(t, err)
	assert.Len(t, audits, 2)

	zs, err := repo.List(ctx, CaseFilter{NamePrefix: "Ze"})
	require.NoError(t, err)
	assert.Len(t, zs, 2)

	named, err := repo.List(ctx, CaseFilter{Names: []string{"Alpha Ltd", "Nope"}})
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "Alpha Ltd", named[0].Name)

	names, err := repo.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta Corp", "Alpha Ltd", "Zenith Inc"}, names)
}

func TestCaseRepo_CountByType(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCaseRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCase("a", testutil.WithCaseType("Audit"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCase("b", testutil.WithCaseType("Audit"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCase("c", testutil.WithCaseType("IPO"))))

	counts, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Audit": 2, "IPO": 1}, counts)
}

func TestCaseRepo_DeleteAndDeleteAll(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCaseRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCase("a")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCase("b")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCase("c")))

	require.NoError(t, repo.Delete(ctx, "a"))
	require.ErrorIs(t, repo.Delete(ctx, "a"), ErrNotFound)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := repo.List(ctx, CaseFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
