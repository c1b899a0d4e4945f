package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/crucial707/exercise-tracker/internal/apperr"
	"github.com/crucial707/exercise-tracker/internal/logs"
	"github.com/crucial707/exercise-tracker/internal/models"
	"github.com/crucial707/exercise-tracker/internal/query"
	"github.com/crucial707/exercise-tracker/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory UserStore and ExerciseStore. It evaluates the
// built queries by replaying the filter the test last set, and records calls.
type memStore struct {
	users     []models.User
	exercises []models.Exercise
	calls     []string
	failWith  error
}

func (m *memStore) Create(ctx context.Context, u models.User) error {
	m.calls = append(m.calls, "users.Create")
	if m.failWith != nil {
		return m.failWith
	}
	m.users = append(m.users, u)
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	m.calls = append(m.calls, "users.GetByID")
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetByUsername(ctx context.Context, name string) (*models.User, error) {
	m.calls = append(m.calls, "users.GetByUsername")
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.Username == name {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) List(ctx context.Context) ([]models.User, error) {
	m.calls = append(m.calls, "users.List")
	return append([]models.User{}, m.users...), m.failWith
}

type exerciseStore struct {
	*memStore
	lastCount query.Query
	lastData  query.Query
}

func (e *exerciseStore) Create(ctx context.Context, ex models.Exercise) (models.Exercise, error) {
	e.calls = append(e.calls, "exercises.Create")
	if e.failWith != nil {
		return models.Exercise{}, e.failWith
	}
	found := false
	for _, u := range e.users {
		if u.ID == ex.UserID {
			found = true
		}
	}
	if !found {
		return models.Exercise{}, repo.ErrUserNotFound
	}
	ex.ExerciseID = int64(len(e.exercises) + 1)
	e.exercises = append(e.exercises, ex)
	return ex, nil
}

func (e *exerciseStore) List(ctx context.Context) ([]models.Exercise, error) {
	e.calls = append(e.calls, "exercises.List")
	return append([]models.Exercise{}, e.exercises...), e.failWith
}

// matching evaluates a built query's args against the stored rows. The
// argument order mirrors the predicate: user id, from, to (and limit for data).
func (e *exerciseStore) matching(q query.Query) []models.LogRow {
	args := append([]any{}, q.Args...)
	var id *int64
	var from, to string
	if strings.Contains(q.SQL, "users.id = ?") {
		v := args[0].(int64)
		id = &v
		args = args[1:]
	}
	if strings.Contains(q.SQL, "exercise.date >= ?") {
		from = args[0].(string)
		args = args[1:]
	}
	if strings.Contains(q.SQL, "exercise.date <= ?") {
		to = args[0].(string)
	}
	var out []models.LogRow
	for _, ex := range e.exercises {
		if id != nil && ex.UserID != *id {
			continue
		}
		if from != "" && ex.Date < from {
			continue
		}
		if to != "" && ex.Date > to {
			continue
		}
		out = append(out, models.LogRow{UserID: ex.UserID, ExerciseID: ex.ExerciseID, Duration: ex.Duration, Description: ex.Description, Date: ex.Date})
	}
	return out
}

func (e *exerciseStore) CountMatching(ctx context.Context, q query.Query) (int, error) {
	e.calls = append(e.calls, "exercises.CountMatching")
	e.lastCount = q
	if e.failWith != nil {
		return 0, e.failWith
	}
	return len(e.matching(q)), nil
}

func (e *exerciseStore) SelectMatching(ctx context.Context, q query.Query) ([]models.LogRow, error) {
	e.calls = append(e.calls, "exercises.SelectMatching")
	e.lastData = q
	if e.failWith != nil {
		return nil, e.failWith
	}
	rows := e.matching(q)
	if strings.HasSuffix(q.SQL, "LIMIT ?") {
		limit := q.Args[len(q.Args)-1].(int)
		if limit < len(rows) {
			rows = rows[:limit]
		}
	}
	return rows, nil
}

func newTracker() (*Tracker, *memStore, *exerciseStore) {
	users := &memStore{}
	exercises := &exerciseStore{memStore: users}
	clock := time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(users, exercises, logs.NewAssembler(logs.CountTotal)).
		WithClock(func() time.Time { return clock })
	return tr, users, exercises
}

func seedScenario(users *memStore) {
	users.users = []models.User{{ID: 1, Username: "a"}}
	users.calls = nil
}

func TestCreateUser(t *testing.T) {
	tr, users, _ := newTracker()

	u, err := tr.CreateUser(context.Background(), "  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, time.Date(2024, time.May, 5, 12, 0, 0, 0, time.UTC).UnixMilli(), u.ID)
	assert.Len(t, users.users, 1)

	_, err = tr.CreateUser(context.Background(), "alice")
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateUser_Blank(t *testing.T) {
	tr, users, _ := newTracker()
	_, err := tr.CreateUser(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "required", ae.Fields["username"])
	assert.Empty(t, users.calls, "validation must not touch storage")
}

func TestCreateUser_StorageFailure(t *testing.T) {
	tr, users, _ := newTracker()
	users.failWith = errors.New("database is locked")
	_, err := tr.CreateUser(context.Background(), "bob")
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))
}

func TestListUsers_Empty(t *testing.T) {
	tr, _, _ := newTracker()
	_, err := tr.ListUsers(context.Background())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAddExercise(t *testing.T) {
	tr, users, ex := newTracker()
	seedScenario(users)

	e, err := tr.AddExercise(context.Background(), AddExerciseInput{UserID: "1", Description: "run", Duration: "12.5", Date: "2024/01/02"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", e.Date)
	assert.Equal(t, 12.5, e.Duration)
	assert.Equal(t, int64(1), e.ExerciseID)

	e, err = tr.AddExercise(context.Background(), AddExerciseInput{UserID: "1", Description: "swim", Duration: "5"})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-05", e.Date, "missing date defaults to today")
	assert.Len(t, ex.exercises, 2)
}

func TestAddExercise_Validation(t *testing.T) {
	cases := []struct {
		name string
		in   AddExerciseInput
		msg  string
	}{
		{"bad id", AddExerciseInput{UserID: "abc", Description: "run", Duration: "1"}, "invalid user id"},
		{"no description", AddExerciseInput{UserID: "1", Duration: "1"}, "description missing"},
		{"no duration", AddExerciseInput{UserID: "1", Description: "run"}, "duration missing"},
		{"zero duration", AddExerciseInput{UserID: "1", Description: "run", Duration: "0"}, "Invalid duration: must be a positive number"},
		{"negative duration", AddExerciseInput{UserID: "1", Description: "run", Duration: "-3"}, "Invalid duration: must be a positive number"},
		{"text duration", AddExerciseInput{UserID: "1", Description: "run", Duration: "long"}, "Invalid duration: must be a positive number"},
		{"NaN duration", AddExerciseInput{UserID: "1", Description: "run", Duration: "NaN"}, "Invalid duration: must be a positive number"},
		{"bad date", AddExerciseInput{UserID: "1", Description: "run", Duration: "1", Date: "someday"}, "Invalid date format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, users, _ := newTracker()
			seedScenario(users)

			_, err := tr.AddExercise(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			var ae *apperr.Error
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tc.msg, ae.Message)
			assert.Empty(t, users.calls)
		})
	}
}

func TestAddExercise_UnknownUser(t *testing.T) {
	tr, users, ex := newTracker()
	seedScenario(users)

	_, err := tr.AddExercise(context.Background(), AddExerciseInput{UserID: "99", Description: "run", Duration: "1"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.EqualError(t, err, "No user found for the ID 99")
	assert.Empty(t, ex.exercises)
}

func TestLogs_Scenario(t *testing.T) {
	tr, users, ex := newTracker()
	seedScenario(users)
	ex.exercises = []models.Exercise{
		{ExerciseID: 1, UserID: 1, Duration: 10, Description: "run", Date: "2024-01-01"},
		{ExerciseID: 2, UserID: 1, Duration: 20, Description: "swim", Date: "2024-02-01"},
	}

	res, err := tr.Logs(context.Background(), LogsInput{UserID: "1", From: "2024-01-15", RequireUser: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Logs, 1)
	assert.Equal(t, "2024-02-01", res.Logs[0].Date)
	assert.Equal(t, "2024-Feb-01", res.Logs[0].DateHuman)
	assert.Equal(t, []any{int64(1), "2024-01-15"}, ex.lastCount.Args)
}

func TestLogs_LimitKeepsTotal(t *testing.T) {
	tr, users, ex := newTracker()
	seedScenario(users)
	for i, d := range []string{"2024-03-01", "2024-01-01", "2024-02-01"} {
		ex.exercises = append(ex.exercises, models.Exercise{ExerciseID: int64(i + 1), UserID: 1, Duration: 1, Description: "d", Date: d})
	}

	res, err := tr.Logs(context.Background(), LogsInput{UserID: "1", Limit: "2", RequireUser: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Len(t, res.Logs, 2)
	assert.Equal(t, "2024-01-01", res.Logs[0].Date)
	assert.Equal(t, []any{int64(1), 2}, ex.lastData.Args)
}

func TestLogs_RejectsBeforeQuerying(t *testing.T) {
	cases := map[string]LogsInput{
		"zero limit":     {UserID: "1", Limit: "0", RequireUser: true},
		"negative limit": {UserID: "1", Limit: "-1", RequireUser: true},
		"text limit":     {UserID: "1", Limit: "ten", RequireUser: true},
		"bad from":       {UserID: "1", From: "nope", RequireUser: true},
		"bad to":         {UserID: "1", To: "2024-02-31", RequireUser: true},
		"inverted range": {UserID: "1", From: "2024-03-01", To: "2024-01-01", RequireUser: true},
		"missing user":   {RequireUser: true},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			tr, users, _ := newTracker()
			seedScenario(users)

			_, err := tr.Logs(context.Background(), in)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Empty(t, users.calls)
		})
	}
}

func TestLogs_UnknownUser(t *testing.T) {
	tr, users, _ := newTracker()
	seedScenario(users)

	_, err := tr.Logs(context.Background(), LogsInput{UserID: "2", RequireUser: true})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, []string{"users.GetByID"}, users.calls)
}

func TestLogs_AllUsers(t *testing.T) {
	tr, users, ex := newTracker()
	users.users = []models.User{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}}
	ex.exercises = []models.Exercise{
		{ExerciseID: 1, UserID: 2, Duration: 1, Description: "x", Date: "2024-01-05"},
		{ExerciseID: 2, UserID: 1, Duration: 1, Description: "y", Date: "2024-01-01"},
	}

	res, err := tr.Logs(context.Background(), LogsInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, int64(2), res.Logs[0].ExerciseID)
	assert.Empty(t, ex.lastCount.Args)
	assert.NotContains(t, ex.lastCount.SQL, "WHERE")
}

func TestLogs_StorageTimeout(t *testing.T) {
	tr, users, ex := newTracker()
	seedScenario(users)

	// The user lookup succeeds; the count runs out of time.
	tr.exercises = timeoutStore{ex}
	_, err := tr.Logs(context.Background(), LogsInput{UserID: "1", RequireUser: true})
	assert.Equal(t, apperr.KindTimeout, apperr.KindOf(err))
}

type timeoutStore struct{ *exerciseStore }

func (timeoutStore) CountMatching(ctx context.Context, q query.Query) (int, error) {
	return 0, context.DeadlineExceeded
}
