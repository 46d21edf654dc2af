package domain

import (
	"time"

	"mood-tracker/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:       domainTask.ID,
		Name:     domainTask.Name,
		Deadline: domainTask.Deadline.UTC(),
		Seq:      domainTask.Seq,
	}
}

// FromDatabase converts a database Task to a domain Task, expressing the
// deadline in loc. A nil loc keeps UTC.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task, loc *time.Location) Task {
	deadline := dbTask.Deadline
	if loc != nil {
		deadline = deadline.In(loc)
	}
	return Task{
		ID:       dbTask.ID,
		Name:     dbTask.Name,
		Deadline: deadline,
		Seq:      dbTask.Seq,
	}
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task, loc *time.Location) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task, loc)
	}
	return domainTasks
}
