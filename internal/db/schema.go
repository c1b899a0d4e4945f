package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
)

var schemaMu sync.Mutex

// EnsureSchema creates the users and exercise tables if they do not exist.
// It runs once at startup, before the server accepts requests.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	for _, stmt := range dialect.Schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema (%s): %w", dialect.Name(), err)
		}
	}
	return nil
}

// TableExists reports whether a table called name exists in the current database.
func TableExists(ctx context.Context, db *sql.DB, dialect Dialect, name string) (bool, error) {
	var found string
	err := db.QueryRowContext(ctx, dialect.Rebind(dialect.TableExistsQuery()), name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
