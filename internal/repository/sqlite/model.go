package sqlite

import "time"

// Task is a row of the tasks table
type Task struct {
	ID       string
	Name     string
	Deadline time.Time // stored as unix seconds plus nanos, always UTC on read
	Seq      int64
}
