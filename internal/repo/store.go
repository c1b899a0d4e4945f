package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crucial707/exercise-tracker/internal/db"
	"github.com/crucial707/exercise-tracker/internal/metrics"
)

// Store groups the repositories over one connection pool.
type Store struct {
	DB        *sql.DB
	Dialect   db.Dialect
	Timeout   time.Duration
	Users     *UserRepo
	Exercises *ExerciseRepo
}

// NewStore wires the repositories. timeout bounds every statement; zero disables it.
func NewStore(database *sql.DB, dialect db.Dialect, timeout time.Duration) *Store {
	return &Store{
		DB:        database,
		Dialect:   dialect,
		Timeout:   timeout,
		Users:     NewUserRepo(database, dialect, timeout),
		Exercises: NewExerciseRepo(database, dialect, timeout),
	}
}

// TableExists reports whether the named table exists.
func (s *Store) TableExists(ctx context.Context, name string) (ok bool, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("table_exists", start, err) }(time.Now())
	ctx, cancel := bound(ctx, s.Timeout)
	defer cancel()
	defer guard(ctx, &err)
	return db.TableExists(ctx, s.DB, s.Dialect, name)
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) (err error) {
	ctx, cancel := bound(ctx, s.Timeout)
	defer cancel()
	defer guard(ctx, &err)
	return s.DB.PingContext(ctx)
}

// bound applies the per-statement timeout to ctx.
func bound(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// guard attaches the context error to *err when the statement was cut short,
// since drivers report cancellation with their own error values.
func guard(ctx context.Context, err *error) {
	if *err == nil {
		return
	}
	if cerr := ctx.Err(); cerr != nil && !errors.Is(*err, cerr) {
		*err = fmt.Errorf("%w: %v", cerr, *err)
	}
}
