package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"mood-tracker/internal/errors"
)

// HandleDatabaseError converts a driver error into an app error. A query cut
// short by the per-query timeout is reported as a timeout.
func HandleDatabaseError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		timeoutErr := errors.NewTimeoutError(operation, nil)
		timeoutErr.Cause = err
		return timeoutErr
	}
	return errors.NewDatabaseError(operation, err)
}

// requireOneRow reports NotFound when a write touched no row
func requireOneRow(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entity, id)
	}
	return nil
}

// ExecOne runs a statement that must affect exactly the row identified by id
func ExecOne(ctx context.Context, db *sql.DB, operation, entity, id, query string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError(operation, err)
	}
	return requireOneRow(result, entity, id)
}

// QueryOne scans the single row identified by id
func QueryOne[T any](ctx context.Context, db *sql.DB, entity, id, query string, scan func(Scanner) (*T, error), args ...interface{}) (*T, error) {
	result, err := scan(db.QueryRowContext(ctx, query, args...))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(entity, id)
	}
	if err != nil {
		return nil, HandleDatabaseError("get "+entity, err)
	}
	return result, nil
}

// QueryAll scans every row of query
func QueryAll[T any](ctx context.Context, db *sql.DB, entity, query string, scan func(Rows) ([]*T, error), args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("list "+entity, err)
	}
	defer rows.Close()

	results, err := scan(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entity, err)
	}
	return results, nil
}
