package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

var baseDeadline = time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)

func TestCreateTask(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := &Task{Name: "Essay", Deadline: baseDeadline}
	require.NoError(t, repo.CreateTask(ctx, task))

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, int64(1), task.Seq)

	retrieved, err := repo.TaskAt(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, task, retrieved)
}

func TestCreateTask_KeepsProvidedID(t *testing.T) {
	repo := setupTestDB(t)

	task := &Task{ID: "fixed-id", Name: "Exam", Deadline: baseDeadline}
	require.NoError(t, repo.CreateTask(context.Background(), task))
	assert.Equal(t, "fixed-id", task.ID)
}

func TestCreateTask_DuplicateID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateTask(ctx, &Task{ID: "dup", Name: "a", Deadline: baseDeadline}))
	err := repo.CreateTask(ctx, &Task{ID: "dup", Name: "b", Deadline: baseDeadline})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insert task")
}

func TestTaskAt(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.TaskAt(ctx, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	require.NoError(t, repo.CreateTask(ctx, &Task{Name: "later", Deadline: baseDeadline.Add(time.Hour)}))
	require.NoError(t, repo.CreateTask(ctx, &Task{Name: "sooner", Deadline: baseDeadline}))

	first, err := repo.TaskAt(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "sooner", first.Name)

	second, err := repo.TaskAt(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "later", second.Name)

	_, err = repo.TaskAt(ctx, 2)
	assert.Contains(t, err.Error(), "not found")
}

func TestListTasks_OrderedByDeadlineThenInsertion(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	inserts := []*Task{
		{Name: "late", Deadline: baseDeadline.Add(72 * time.Hour)},
		{Name: "tie-first", Deadline: baseDeadline},
		{Name: "early", Deadline: baseDeadline.Add(-time.Hour)},
		{Name: "tie-second", Deadline: baseDeadline},
	}
	for _, task := range inserts {
		require.NoError(t, repo.CreateTask(ctx, task))
	}

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)

	var names []string
	for _, task := range tasks {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"early", "tie-first", "tie-second", "late"}, names)
}

func TestListTasks_Empty(t *testing.T) {
	repo := setupTestDB(t)

	tasks, err := repo.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteTask(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	task := &Task{Name: "Essay", Deadline: baseDeadline}
	require.NoError(t, repo.CreateTask(ctx, task))

	require.NoError(t, repo.DeleteTask(ctx, task.ID))

	count, err := repo.CountTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	err = repo.DeleteTask(ctx, task.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSequenceKeepsGrowingAfterDelete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := &Task{Name: "a", Deadline: baseDeadline}
	second := &Task{Name: "b", Deadline: baseDeadline}
	require.NoError(t, repo.CreateTask(ctx, first))
	require.NoError(t, repo.CreateTask(ctx, second))
	require.NoError(t, repo.DeleteTask(ctx, first.ID))

	third := &Task{Name: "c", Deadline: baseDeadline}
	require.NoError(t, repo.CreateTask(ctx, third))
	assert.Greater(t, third.Seq, second.Seq)
}

func TestNewWithTimeout(t *testing.T) {
	repo, err := NewWithTimeout(":memory:", 2*time.Second)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.CreateTask(context.Background(), &Task{Name: "x", Deadline: baseDeadline}))
	count, err := repo.CountTasks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListTasks_FarFutureDeadline(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	thesis := &Task{Name: "Thesis", Deadline: time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)}
	essay := &Task{Name: "Essay", Deadline: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.CreateTask(ctx, thesis))
	require.NoError(t, repo.CreateTask(ctx, essay))

	tasks, err := repo.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Essay", tasks[0].Name)
	assert.Equal(t, "Thesis", tasks[1].Name)
	assert.True(t, thesis.Deadline.Equal(tasks[1].Deadline), "got %s", tasks[1].Deadline)
}
