// Package service validates requests and runs them through the query
// builder, the storage gateway and the log assembler.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/exercise-tracker/internal/apperr"
	"github.com/crucial707/exercise-tracker/internal/dates"
	"github.com/crucial707/exercise-tracker/internal/logs"
	"github.com/crucial707/exercise-tracker/internal/metrics"
	"github.com/crucial707/exercise-tracker/internal/models"
	"github.com/crucial707/exercise-tracker/internal/query"
	"github.com/crucial707/exercise-tracker/internal/repo"
)

// UserStore is the user side of the storage gateway.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// ExerciseStore is the exercise side of the storage gateway.
type ExerciseStore interface {
	Create(ctx context.Context, e models.Exercise) (models.Exercise, error)
	List(ctx context.Context) ([]models.Exercise, error)
	CountMatching(ctx context.Context, q query.Query) (int, error)
	SelectMatching(ctx context.Context, q query.Query) ([]models.LogRow, error)
}

// Tracker orchestrates user, exercise and log workflows.
type Tracker struct {
	users     UserStore
	exercises ExerciseStore
	assembler *logs.Assembler
	now       func() time.Time
}

// NewTracker constructs a Tracker. A nil assembler defaults to total counts with human dates.
func NewTracker(users UserStore, exercises ExerciseStore, assembler *logs.Assembler) *Tracker {
	if assembler == nil {
		assembler = logs.NewAssembler(logs.CountTotal)
	}
	return &Tracker{users: users, exercises: exercises, assembler: assembler, now: time.Now}
}

// WithClock replaces the clock used for user ids and default exercise dates.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// ==========================
// Users
// ==========================

type createUserInput struct {
	Username string `json:"username" validate:"required"`
}

// CreateUser signs up a user. The id is the creation time in milliseconds.
func (t *Tracker) CreateUser(ctx context.Context, username string) (*models.User, error) {
	in := createUserInput{Username: strings.TrimSpace(username)}
	if err := validateStruct(in); err != nil {
		return nil, apperr.Validation("Username is required", fieldErrors(err))
	}

	existing, err := t.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, apperr.Storage("find user", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("Username already exists")
	}

	user := models.User{ID: t.now().UnixMilli(), Username: in.Username}
	if err := t.users.Create(ctx, user); err != nil {
		return nil, apperr.Storage("insert user", err)
	}
	metrics.UsersCreated.Inc()
	return &user, nil
}

// ListUsers returns every user; NotFound when there are none.
func (t *Tracker) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := t.users.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list users", err)
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("No users found")
	}
	return users, nil
}

// ==========================
// Exercises
// ==========================

// AddExerciseInput carries the raw request values for a new exercise.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

type addExerciseInput struct {
	Description string `json:"description" validate:"required"`
	Duration    string `json:"duration" validate:"required"`
}

// AddExercise validates and stores an exercise. A missing date means today;
// an unknown user is NotFound and nothing is written.
func (t *Tracker) AddExercise(ctx context.Context, in AddExerciseInput) (*models.Exercise, error) {
	userID, err := parseUserID(in.UserID)
	if err != nil {
		return nil, err
	}

	raw := addExerciseInput{
		Description: strings.TrimSpace(in.Description),
		Duration:    strings.TrimSpace(in.Duration),
	}
	if err := validateStruct(raw); err != nil {
		fields := fieldErrors(err)
		msg := "description missing"
		if _, ok := fields["description"]; !ok {
			msg = "duration missing"
		}
		return nil, apperr.Validation(msg, fields)
	}

	duration, err := strconv.ParseFloat(raw.Duration, 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return nil, apperr.Validation("Invalid duration: must be a positive number",
			map[string]string{"duration": "must be a positive number"})
	}

	date := dates.Today(t.now())
	if strings.TrimSpace(in.Date) != "" {
		d, ok := dates.Normalize(in.Date)
		if !ok {
			return nil, apperr.Validation("Invalid date format", map[string]string{"date": "invalid date"})
		}
		date = d
	}

	created, err := t.exercises.Create(ctx, models.Exercise{
		UserID:      userID,
		Duration:    duration,
		Description: raw.Description,
		Date:        date,
	})
	if errors.Is(err, repo.ErrUserNotFound) {
		return nil, userNotFound(in.UserID)
	}
	if err != nil {
		return nil, apperr.Storage("insert exercise", err)
	}
	metrics.ExercisesLogged.Inc()
	return &created, nil
}

// ListExercises returns every exercise; NotFound when there are none.
func (t *Tracker) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	list, err := t.exercises.List(ctx)
	if err != nil {
		return nil, apperr.Storage("list exercises", err)
	}
	if len(list) == 0 {
		return nil, apperr.NotFound("No exercises found")
	}
	return list, nil
}

// ==========================
// Logs
// ==========================

// LogsInput carries the raw log filters. Empty strings are absent filters,
// except UserID when RequireUser is set.
type LogsInput struct {
	UserID      string
	From        string
	To          string
	Limit       string
	RequireUser bool
}

// Logs validates the filters, checks the user, runs the count and data
// queries and assembles {count, logs}. Nothing is queried when validation fails.
func (t *Tracker) Logs(ctx context.Context, in LogsInput) (*models.LogResult, error) {
	f, err := t.parseFilter(in)
	if err != nil {
		return nil, err
	}

	if id, ok := f.UserID.Get(); ok {
		user, err := t.users.GetByID(ctx, id)
		if err != nil {
			return nil, apperr.Storage("find user", err)
		}
		if user == nil {
			return nil, userNotFound(in.UserID)
		}
	}

	countQ, dataQ := query.Build(f)
	total, err := t.exercises.CountMatching(ctx, countQ)
	if err != nil {
		return nil, apperr.Storage("count logs", err)
	}
	rows, err := t.exercises.SelectMatching(ctx, dataQ)
	if err != nil {
		return nil, apperr.Storage("select logs", err)
	}

	metrics.IncLogQueries(f.Limit.Set)
	res := t.assembler.Assemble(rows, f, query.Some(total))
	return &res, nil
}

func (t *Tracker) parseFilter(in LogsInput) (query.Filter, error) {
	var f query.Filter
	fields := make(map[string]string)

	if in.RequireUser || strings.TrimSpace(in.UserID) != "" {
		id, err := parseUserID(in.UserID)
		if err != nil {
			return f, err
		}
		f.UserID = query.Some(id)
	}

	if s := strings.TrimSpace(in.From); s != "" {
		if d, ok := dates.Normalize(s); ok {
			f.FromDate = query.Some(d)
		} else {
			fields["from"] = "invalid date"
		}
	}
	if s := strings.TrimSpace(in.To); s != "" {
		if d, ok := dates.Normalize(s); ok {
			f.ToDate = query.Some(d)
		} else {
			fields["to"] = "invalid date"
		}
	}
	if len(fields) > 0 {
		return f, apperr.Validation("Invalid date format in 'from' or 'to'", fields)
	}
	if f.FromDate.Set && f.ToDate.Set && f.FromDate.Value > f.ToDate.Value {
		return f, apperr.Validation("'from' date must be earlier than 'to' date",
			map[string]string{"from": "must not be after 'to'"})
	}

	if s := strings.TrimSpace(in.Limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return f, apperr.Validation("Invalid limit: must be a positive integer",
				map[string]string{"limit": "must be a positive integer"})
		}
		f.Limit = query.Some(n)
	}
	return f, nil
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid user id", map[string]string{"id": "must be an integer"})
	}
	return id, nil
}

func userNotFound(raw string) error {
	return apperr.NotFound(fmt.Sprintf("No user found for the ID %s", strings.TrimSpace(raw)))
}
