package services

import (
	"context"
	"sync"
	"time"

	"mood-tracker/internal/domain"
	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/repository/sqlite"
	"mood-tracker/internal/tasks"
	"mood-tracker/internal/validation"
)

// memoryTaskStore guards a tasks.Store for use from concurrent handlers
type memoryTaskStore struct {
	mu    sync.Mutex
	store *tasks.Store
}

// NewMemoryTaskStore creates a TaskStore kept entirely in process memory
func NewMemoryTaskStore(validator *validation.TaskValidator) TaskStore {
	return &memoryTaskStore{store: tasks.NewStore(validator)}
}

func (m *memoryTaskStore) Add(_ context.Context, name, deadline string) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Add(name, deadline)
}

func (m *memoryTaskStore) DeleteAt(_ context.Context, index int) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.DeleteAt(index)
}

func (m *memoryTaskStore) SortedView(_ context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.SortedView(), nil
}

func (m *memoryTaskStore) Close() error {
	return nil
}

// sqliteTaskStore keeps tasks in an in-memory SQLite database
type sqliteTaskStore struct {
	mu        sync.Mutex
	repo      sqlite.Repository
	validator *validation.TaskValidator
	mapper    *domain.TaskMapper
	loc       *time.Location
}

// NewSQLiteTaskStore creates a TaskStore over repo. Deadlines read back are
// expressed in loc.
func NewSQLiteTaskStore(repo sqlite.Repository, validator *validation.TaskValidator, loc *time.Location) TaskStore {
	if validator == nil {
		validator = validation.NewTaskValidator()
	}
	return &sqliteTaskStore{
		repo:      repo,
		validator: validator,
		mapper:    domain.NewTaskMapper(),
		loc:       loc,
	}
}

func (s *sqliteTaskStore) Add(ctx context.Context, name, deadline string) (domain.Task, error) {
	cleanName, parsed, err := s.validator.ValidateTask(name, deadline)
	if err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return domain.Task{}, ve.ToInvalidInput()
		}
		return domain.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dbTask := s.mapper.ToDatabase(domain.NewTask(cleanName, parsed))
	if err := s.repo.CreateTask(ctx, &dbTask); err != nil {
		return domain.Task{}, err
	}

	return s.mapper.FromDatabase(dbTask, s.loc), nil
}

// DeleteAt resolves index against the current ordering and deletes by ID.
// The lock keeps the ordering stable between the statements.
func (s *sqliteTaskStore) DeleteAt(ctx context.Context, index int) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.repo.CountTasks(ctx)
	if err != nil {
		return domain.Task{}, err
	}
	if index < 0 || index >= count {
		return domain.Task{}, apperrors.NewIndexOutOfRangeError(index, count)
	}

	target, err := s.repo.TaskAt(ctx, index)
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.DeleteTask(ctx, target.ID); err != nil {
		return domain.Task{}, err
	}
	return s.mapper.FromDatabase(*target, s.loc), nil
}

func (s *sqliteTaskStore) SortedView(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(ctx)
}

func (s *sqliteTaskStore) list(ctx context.Context) ([]domain.Task, error) {
	dbTasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.FromDatabaseSlice(dbTasks, s.loc), nil
}

func (s *sqliteTaskStore) Close() error {
	return s.repo.Close()
}
