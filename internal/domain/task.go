package domain

import (
	"strings"
	"time"
)

// Task represents a user-entered obligation in the domain model.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID       string
	Name     string
	Deadline time.Time
	// Seq is the insertion sequence; it breaks ties between equal deadlines.
	Seq int64
}

// NewTask creates a new Task with the given name and deadline.
func NewTask(name string, deadline time.Time) Task {
	return Task{
		Name:     name,
		Deadline: deadline,
	}
}

// IsValid checks if the task has a non-blank name and a deadline.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Name) != "" && !t.Deadline.IsZero()
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}

// IsOverdue reports whether the deadline is not after now.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Deadline.After(now)
}

// TimeRemaining returns the signed duration until the deadline.
func (t Task) TimeRemaining(now time.Time) time.Duration {
	return t.Deadline.Sub(now)
}

// Before orders tasks by deadline, then by insertion sequence.
func (t Task) Before(other Task) bool {
	if t.Deadline.Equal(other.Deadline) {
		return t.Seq < other.Seq
	}
	return t.Deadline.Before(other.Deadline)
}
