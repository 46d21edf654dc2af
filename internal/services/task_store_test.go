package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/mood"
	"mood-tracker/internal/repository/sqlite"
)

func newSQLiteStore(t *testing.T) TaskStore {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	store := NewSQLiteTaskStore(repo, utcValidator(), time.UTC)
	t.Cleanup(func() { store.Close() })
	return store
}

func taskStores(t *testing.T) map[string]TaskStore {
	return map[string]TaskStore{
		"memory": NewMemoryTaskStore(utcValidator()),
		"sqlite": newSQLiteStore(t),
	}
}

func TestTaskStore_Backends(t *testing.T) {
	for name, store := range taskStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			essay, err := store.Add(ctx, "Essay", "2024-01-12T00:00")
			require.NoError(t, err)
			assert.NotEmpty(t, essay.ID)

			_, err = store.Add(ctx, "Exam", "2024-01-11T00:00")
			require.NoError(t, err)
			_, err = store.Add(ctx, "Essay draft", "2024-01-12T00:00")
			require.NoError(t, err)

			view, err := store.SortedView(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Exam", "Essay", "Essay draft"}, taskNames(view))
			assert.True(t, view[0].Deadline.Equal(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)))

			again, err := store.SortedView(ctx)
			require.NoError(t, err)
			assert.Equal(t, view, again)

			removed, err := store.DeleteAt(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, essay.ID, removed.ID)

			_, err = store.DeleteAt(ctx, 5)
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeIndexOutOfRange))

			_, err = store.Add(ctx, "", "")
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))

			view, err = store.SortedView(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Exam", "Essay draft"}, taskNames(view))
		})
	}

	for name, store := range taskStores(t) {
		t.Run(name+" far-future deadline sorts last", func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Add(ctx, "Thesis", "2300-01-01T00:00")
			require.NoError(t, err)
			_, err = store.Add(ctx, "Essay", "2024-02-01T00:00")
			require.NoError(t, err)

			view, err := store.SortedView(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"Essay", "Thesis"}, taskNames(view))
			assert.True(t, view[1].Deadline.Equal(time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)), "got %s", view[1].Deadline)
			assert.Equal(t, mood.Calm, mood.Classify(&view[0].Deadline, fixedNow).Category)
		})
	}
}
