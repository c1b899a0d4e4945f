package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crucial707/exercise-tracker/internal/db"
	"github.com/crucial707/exercise-tracker/internal/metrics"
	"github.com/crucial707/exercise-tracker/internal/models"
	"github.com/crucial707/exercise-tracker/internal/query"
)

// ErrUserNotFound is returned by ExerciseRepo.Create when the exercise's user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ExerciseRepo reads and writes the exercise table and its join with users.
type ExerciseRepo struct {
	DB      *sql.DB
	Dialect db.Dialect
	Timeout time.Duration
}

// NewExerciseRepo returns a new ExerciseRepo.
func NewExerciseRepo(database *sql.DB, dialect db.Dialect, timeout time.Duration) *ExerciseRepo {
	return &ExerciseRepo{DB: database, Dialect: dialect, Timeout: timeout}
}

// Create inserts e and returns it with its assigned exerciseId. The user
// existence check is part of the same statement; ErrUserNotFound when it fails.
func (r *ExerciseRepo) Create(ctx context.Context, e models.Exercise) (_ models.Exercise, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("insert_exercise", start, err) }(time.Now())
	ctx, cancel := bound(ctx, r.Timeout)
	defer cancel()
	defer guard(ctx, &err)

	err = r.DB.QueryRowContext(ctx,
		r.Dialect.Rebind(r.Dialect.InsertExerciseQuery()),
		e.UserID, e.Duration, e.Description, e.Date, e.UserID,
	).Scan(&e.ExerciseID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Exercise{}, ErrUserNotFound
	}
	if err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// List returns every exercise in insertion order.
func (r *ExerciseRepo) List(ctx context.Context) (_ []models.Exercise, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("list_exercises", start, err) }(time.Now())
	ctx, cancel := bound(ctx, r.Timeout)
	defer cancel()
	defer guard(ctx, &err)

	rows, err := r.DB.QueryContext(ctx,
		`SELECT exerciseId, userId, duration, description, date FROM exercise ORDER BY exerciseId`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err = rows.Scan(&e.ExerciseID, &e.UserID, &e.Duration, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	err = rows.Err()
	return list, err
}

// CountMatching runs a single-row count query built by the query package.
// It returns 0 when nothing matches.
func (r *ExerciseRepo) CountMatching(ctx context.Context, q query.Query) (n int, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("count_logs", start, err) }(time.Now())
	ctx, cancel := bound(ctx, r.Timeout)
	defer cancel()
	defer guard(ctx, &err)

	err = r.DB.QueryRowContext(ctx, r.Dialect.Rebind(q.SQL), q.Args...).Scan(&n)
	return n, err
}

// SelectMatching runs a data query built by the query package and returns the joined rows.
func (r *ExerciseRepo) SelectMatching(ctx context.Context, q query.Query) (_ []models.LogRow, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("select_logs", start, err) }(time.Now())
	ctx, cancel := bound(ctx, r.Timeout)
	defer cancel()
	defer guard(ctx, &err)

	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(q.SQL), q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LogRow{}
	for rows.Next() {
		var row models.LogRow
		if err = rows.Scan(&row.UserID, &row.Username, &row.ExerciseID, &row.Duration, &row.Description, &row.Date); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	err = rows.Err()
	return out, err
}
