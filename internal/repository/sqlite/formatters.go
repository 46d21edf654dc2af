package sqlite

import (
	"time"
)

// DeadlineToDB splits a deadline into unix seconds and the nanosecond
// remainder. Ordering by (seconds, nanos) is chronological for every year
// time.Time can hold, regardless of the zone the value was entered in.
func DeadlineToDB(t time.Time) (seconds int64, nanos int64) {
	return t.Unix(), int64(t.Nanosecond())
}

// DeadlineFromDB decodes a stored deadline into a UTC time
func DeadlineFromDB(seconds, nanos int64) time.Time {
	return time.Unix(seconds, nanos).UTC()
}
