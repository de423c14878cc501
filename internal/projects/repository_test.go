package projects

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db)
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &ProjectDraft{
		Name:        "demo-app",
		Description: "a demo",
		OwnerID:     "user-1",
		Template:    "nextjs",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "demo-app", got.Name)
	assert.Equal(t, "user-1", got.OwnerID)
	assert.Equal(t, "nextjs", got.Template)
}

func TestRepository_GetMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_ListByOwner(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	mine, err := repo.Create(ctx, &ProjectDraft{Name: "mine", OwnerID: "user-1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &ProjectDraft{Name: "theirs", OwnerID: "user-2"})
	require.NoError(t, err)

	result, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, mine.ID, result[0].ID)
}

func TestRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &ProjectDraft{Name: "demo-app", OwnerID: "user-1"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	result, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, result)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}
