package db

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between the supported stores.
// Queries are written with "?" placeholders and passed through Rebind.
type Dialect interface {
	Name() string
	DriverName() string
	Rebind(query string) string
	Schema() []string
	TableExistsQuery() string
	// InsertExerciseQuery inserts an exercise only when its user exists and
	// returns the new exerciseId. Args: userId, duration, description, date, userId.
	InsertExerciseQuery() string
}

// DialectFor returns the dialect registered under name.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	case "postgres", "postgresql":
		return Postgres{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", name)
}

// SQLite is the single-file store served by modernc.org/sqlite.
type SQLite struct{}

func (SQLite) Name() string       { return "sqlite" }
func (SQLite) DriverName() string { return "sqlite" }

func (SQLite) Rebind(query string) string { return query }

func (SQLite) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS exercise (
			exerciseId INTEGER PRIMARY KEY AUTOINCREMENT,
			userId INTEGER,
			duration INTEGER,
			description TEXT,
			date TEXT
		)`,
	}
}

func (SQLite) TableExistsQuery() string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`
}

func (SQLite) InsertExerciseQuery() string {
	return `INSERT INTO exercise (userId, duration, description, date)
		SELECT ?, ?, ?, ?
		WHERE EXISTS (SELECT 1 FROM users WHERE id = ?)
		RETURNING exerciseId`
}

// Postgres is served by lib/pq. Unquoted identifiers fold to lower case on both
// the CREATE and the SELECT side, so the camelCase column names still line up.
type Postgres struct{}

func (Postgres) Name() string       { return "postgres" }
func (Postgres) DriverName() string { return "postgres" }

// Rebind rewrites "?" placeholders to $1, $2, ... in order of appearance.
func (Postgres) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (Postgres) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS exercise (
			exerciseId BIGSERIAL PRIMARY KEY,
			userId BIGINT,
			duration DOUBLE PRECISION,
			description TEXT,
			date TEXT
		)`,
	}
}

func (Postgres) TableExistsQuery() string {
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = ?`
}

// Parameters in a SELECT list have no inferable type, so they are cast to the column types.
func (Postgres) InsertExerciseQuery() string {
	return `INSERT INTO exercise (userId, duration, description, date)
		SELECT ?::bigint, ?::double precision, ?::text, ?::text
		WHERE EXISTS (SELECT 1 FROM users WHERE id = ?::bigint)
		RETURNING exerciseId`
}
