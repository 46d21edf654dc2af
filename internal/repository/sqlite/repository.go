package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mood-tracker/internal/errors"
	"mood-tracker/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for task storage operations
type Repository interface {
	CreateTask(ctx context.Context, task *Task) error
	TaskAt(ctx context.Context, index int) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	CountTasks(ctx context.Context) (int, error)
	DeleteTask(ctx context.Context, id string) error
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// New creates a new SQLite repository instance with no per-query timeout
func New(dsn string) (*SQLiteRepository, error) {
	return NewWithTimeout(dsn, 0)
}

// NewWithTimeout creates a repository whose queries are bounded by queryTimeout.
// A zero timeout leaves the caller's context untouched.
func NewWithTimeout(dsn string, queryTimeout time.Duration) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// every connection to :memory: is a distinct database
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, queryTimeout: queryTimeout}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// CreateTask inserts a task. An empty ID is replaced by a new UUID and the
// sequence number is assigned from the current maximum.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	var seq int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM tasks`).Scan(&seq); err != nil {
		return HandleDatabaseError("next sequence", err)
	}

	seconds, nanos := DeadlineToDB(task.Deadline)
	query := `INSERT INTO tasks (id, name, deadline_s, deadline_nanos, seq) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, task.ID, task.Name, seconds, nanos, seq); err != nil {
		return HandleDatabaseError("insert task", err)
	}

	task.Seq = seq
	task.Deadline = DeadlineFromDB(seconds, nanos)
	return nil
}

// TaskAt retrieves the task at index of the deadline ordering
func (r *SQLiteRepository) TaskAt(ctx context.Context, index int) (*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks` + taskOrder + ` LIMIT 1 OFFSET ?`
	return QueryOne(ctx, r.db, "task", strconv.Itoa(index), query, ScanTask, index)
}

// ListTasks retrieves all tasks by ascending deadline, ties in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks` + taskOrder
	return QueryAll(ctx, r.db, "tasks", query, ScanTasks)
}

// CountTasks returns the number of stored tasks
func (r *SQLiteRepository) CountTasks(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, HandleDatabaseError("count tasks", err)
	}
	return count, nil
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecOne(ctx, r.db, "delete task", "task", id, query, id)
}
