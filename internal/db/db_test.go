package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgres_Rebind(t *testing.T) {
	got := Postgres{}.Rebind(`SELECT 1 FROM users WHERE users.id = ? AND exercise.date >= ? LIMIT ?`)
	want := `SELECT 1 FROM users WHERE users.id = $1 AND exercise.date >= $2 LIMIT $3`
	if got != want {
		t.Errorf("Rebind: got %q, want %q", got, want)
	}
}

func TestSQLite_RebindIsIdentity(t *testing.T) {
	q := `SELECT 1 WHERE a = ? AND b = ?`
	if got := (SQLite{}).Rebind(q); got != q {
		t.Errorf("Rebind: got %q, want %q", got, q)
	}
}

func TestDialectFor(t *testing.T) {
	for _, name := range []string{"sqlite", "SQLite3", "postgres", "postgresql"} {
		if _, err := DialectFor(name); err != nil {
			t.Errorf("DialectFor(%q): %v", name, err)
		}
	}
	if _, err := DialectFor("mysql"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestSQLite_EnsureSchemaAndTableExists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	database, dialect, err := Connect(ctx, "sqlite", "file:"+path, 1, 1)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer database.Close()

	exists, err := TableExists(ctx, database, dialect, "users")
	if err != nil {
		t.Fatalf("TableExists before schema: %v", err)
	}
	if exists {
		t.Fatal("users table should not exist before EnsureSchema")
	}

	if err := EnsureSchema(ctx, database, dialect); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// Second call is a no-op.
	if err := EnsureSchema(ctx, database, dialect); err != nil {
		t.Fatalf("EnsureSchema (again): %v", err)
	}

	if _, err := database.ExecContext(ctx, `INSERT INTO users (username, id) VALUES (?, ?)`, "a", 1); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	for name, want := range map[string]bool{"users": true, "exercise": true, "never_created": false} {
		got, err := TableExists(ctx, database, dialect, name)
		if err != nil {
			t.Fatalf("TableExists(%q): %v", name, err)
		}
		if got != want {
			t.Errorf("TableExists(%q): got %v, want %v", name, got, want)
		}
	}
}

func TestPostgres_TableExistsUsesRebindQuery(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer database.Close()

	mock.ExpectQuery(`SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema\(\) AND table_name = \$1`).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))

	exists, err := TableExists(context.Background(), database, Postgres{}, "users")
	if err != nil {
		t.Fatalf("TableExists: %v", err)
	}
	if !exists {
		t.Error("expected users to exist")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
