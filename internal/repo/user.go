package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crucial707/exercise-tracker/internal/db"
	"github.com/crucial707/exercise-tracker/internal/metrics"
	"github.com/crucial707/exercise-tracker/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB      *sql.DB
	Dialect db.Dialect
	Timeout time.Duration
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(database *sql.DB, dialect db.Dialect, timeout time.Duration) *UserRepo {
	return &UserRepo{DB: database, Dialect: dialect, Timeout: timeout}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, user models.User) (err error) {
	defer func(start time.Time) { metrics.ObserveStorage("insert_user", start, err) }(time.Now())
	ctx, cancel := bound(ctx, r.Timeout)
	defer cancel()
	defer guard(ctx, &err)

	_, err = r.DB.ExecContext(ctx,
		r.Dialect.Rebind(`INSERT INTO users (username, id) VALUES (?, ?)`),
		user.Username, user.ID,
	)
	return err
}

// ==========================
// Get By ID (nil when missing)
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int64) (_ *models.User, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("get_user", start, err) }(time.Now())
	ctx, cancel := bound(ctx, r.Timeout)
	defer cancel()
	defer guard(ctx, &err)

	query := `
		SELECT id, username
		FROM users
		WHERE id = ?
	`

	user := &models.User{}
	err = r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), id).
		Scan(&user.ID, &user.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ==========================
// Get By Username (nil when missing)
// ==========================
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (_ *models.User, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("get_user_by_name", start, err) }(time.Now())
	ctx, cancel := bound(ctx, r.Timeout)
	defer cancel()
	defer guard(ctx, &err)

	query := `
		SELECT id, username
		FROM users
		WHERE username = ?
		LIMIT 1
	`

	user := &models.User{}
	err = r.DB.QueryRowContext(ctx, r.Dialect.Rebind(query), username).
		Scan(&user.ID, &user.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) (_ []models.User, err error) {
	defer func(start time.Time) { metrics.ObserveStorage("list_users", start, err) }(time.Now())
	ctx, cancel := bound(ctx, r.Timeout)
	defer cancel()
	defer guard(ctx, &err)

	rows, err := r.DB.QueryContext(ctx, `SELECT id, username FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	err = rows.Err()
	return users, err
}
