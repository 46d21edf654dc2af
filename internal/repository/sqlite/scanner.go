package sqlite

// taskColumns is the column order ScanTask expects
const taskColumns = "id, name, deadline_s, deadline_nanos, seq"

// taskOrder sorts by deadline, ties in insertion order
const taskOrder = " ORDER BY deadline_s ASC, deadline_nanos ASC, seq ASC"

// Scanner is satisfied by both *sql.Row and *sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows is the iteration side of *sql.Rows
type Rows interface {
	Scanner
	Next() bool
	Err() error
}

// ScanTask reads one task row laid out as taskColumns
func ScanTask(scanner Scanner) (*Task, error) {
	var (
		task    Task
		seconds int64
		nanos   int64
	)
	if err := scanner.Scan(&task.ID, &task.Name, &seconds, &nanos, &task.Seq); err != nil {
		return nil, err
	}
	task.Deadline = DeadlineFromDB(seconds, nanos)
	return &task, nil
}

// ScanTasks reads every remaining row. An empty result is an empty, non-nil slice.
func ScanTasks(rows Rows) ([]*Task, error) {
	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
