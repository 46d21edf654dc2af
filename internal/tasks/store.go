// Package tasks holds the in-memory task list for one application session.
package tasks

import (
	"slices"

	"github.com/google/uuid"

	"mood-tracker/internal/domain"
	apperrors "mood-tracker/internal/errors"
	"mood-tracker/internal/validation"
)

// Store owns the task list. It is kept sorted by deadline, ties in insertion
// order, after every mutation. A Store is not safe for concurrent use.
type Store struct {
	validator *validation.TaskValidator
	tasks     []domain.Task
	nextSeq   int64
	newID     func() string
}

// NewStore creates an empty store. A nil validator uses the default limits.
func NewStore(validator *validation.TaskValidator) *Store {
	if validator == nil {
		validator = validation.NewTaskValidator()
	}
	return &Store{
		validator: validator,
		newID:     uuid.NewString,
	}
}

// Add validates the raw inputs and appends a task. Invalid input leaves the
// store unchanged and returns an InvalidInput error.
func (s *Store) Add(name, deadline string) (domain.Task, error) {
	cleanName, parsed, err := s.validator.ValidateTask(name, deadline)
	if err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return domain.Task{}, ve.ToInvalidInput()
		}
		return domain.Task{}, err
	}

	s.nextSeq++
	task := domain.Task{
		ID:       s.newID(),
		Name:     cleanName,
		Deadline: parsed,
		Seq:      s.nextSeq,
	}

	s.tasks = append(s.tasks, task)
	s.sort()

	return task, nil
}

// DeleteAt removes the task at index of the sorted view. An out-of-range
// index returns an IndexOutOfRange error and changes nothing.
func (s *Store) DeleteAt(index int) (domain.Task, error) {
	if index < 0 || index >= len(s.tasks) {
		return domain.Task{}, apperrors.NewIndexOutOfRangeError(index, len(s.tasks))
	}

	removed := s.tasks[index]
	s.tasks = slices.Delete(s.tasks, index, index+1)

	return removed, nil
}

// SortedView returns a copy of the tasks ordered by ascending deadline
func (s *Store) SortedView() []domain.Task {
	return slices.Clone(s.tasks)
}

func (s *Store) sort() {
	slices.SortStableFunc(s.tasks, compareTasks)
}

func compareTasks(a, b domain.Task) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	default:
		return 0
	}
}
