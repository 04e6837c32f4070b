package repository

import (
	"context"
	"testing"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedItemRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Ben")
	require.NoError(t, NewSQLiteSubjectRepo(database).Create(ctx, subj))

	repo := NewSQLiteTrackedItemRepo(database)
	item := testutil.NewTestItem(subj.ID, "Meal prep",
		testutil.WithCategory(domain.CategoryNutrition),
		testutil.WithCadence(domain.Weekly(4)),
	)
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Title, got.Title)
	assert.Equal(t, domain.CategoryNutrition, got.Category)
	assert.Equal(t, domain.Weekly(4), got.Cadence)
	assert.Equal(t, item.StartDate, got.StartDate)
	assert.True(t, got.Active)
}

func TestTrackedItemRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteTrackedItemRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTrackedItemRepo_CreateForUnknownSubject(t *testing.T) {
	repo := NewSQLiteTrackedItemRepo(testutil.NewTestDB(t))
	err := repo.Create(context.Background(), testutil.NewTestItem("ghost", "Water"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTrackedItemRepo_ListBySubjectAndDeactivate(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Cleo")
	other := testutil.NewTestSubject("Dan")
	subjects := NewSQLiteSubjectRepo(database)
	require.NoError(t, subjects.Create(ctx, subj))
	require.NoError(t, subjects.Create(ctx, other))

	repo := NewSQLiteTrackedItemRepo(database)
	a := testutil.NewTestItem(subj.ID, "Steps")
	b := testutil.NewTestItem(subj.ID, "Squats", testutil.WithCategory(domain.CategoryWorkout))
	c := testutil.NewTestItem(other.ID, "Water")
	for _, it := range []*domain.TrackedItem{a, b, c} {
		require.NoError(t, repo.Create(ctx, it))
	}

	items, err := repo.ListBySubject(ctx, subj.ID, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Ordered by category then title.
	assert.Equal(t, "Steps", items[0].Title)
	assert.Equal(t, "Squats", items[1].Title)

	require.NoError(t, repo.Deactivate(ctx, a.ID))
	items, err = repo.ListBySubject(ctx, subj.ID, false)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = repo.ListBySubject(ctx, subj.ID, true)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.ErrorIs(t, repo.Deactivate(ctx, "missing"), domain.ErrNotFound)
}

func TestTrackedItemRepo_FindByIDPrefix(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Cleo")
	require.NoError(t, NewSQLiteSubjectRepo(database).Create(ctx, subj))

	repo := NewSQLiteTrackedItemRepo(database)
	a := testutil.NewTestItem(subj.ID, "Steps")
	a.ID = "abc12345-0000"
	b := testutil.NewTestItem(subj.ID, "Squats")
	b.ID = "abd99999-0000"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	items, err := repo.FindByIDPrefix(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Steps", items[0].Title)

	items, err = repo.FindByIDPrefix(ctx, "ab")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = repo.FindByIDPrefix(ctx, "zz")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSubjectRepo_ListAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteSubjectRepo(database)

	require.NoError(t, repo.Create(ctx, testutil.NewTestSubject("Zoe")))
	ana := testutil.NewTestSubject("Ana")
	require.NoError(t, repo.Create(ctx, ana))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)

	got, err := repo.GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
