package logs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/crucial707/exercise-tracker/internal/models"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestLogs_UserQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/5/logs" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("from") != "2024-01-01" || q.Get("limit") != "1" || q.Has("to") {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(models.LogResult{
			Count: 3,
			Logs:  []models.Log{{UserID: 5, ExerciseID: 2, Duration: 20, Description: "swim", Date: "2024-02-01"}},
		})
	}))
	defer srv.Close()
	t.Setenv("EXLOG_API_URL", srv.URL)

	cmd := logsCmd()
	_ = cmd.Flags().Set("user-id", "5")
	_ = cmd.Flags().Set("from", "2024-01-01")
	_ = cmd.Flags().Set("limit", "1")

	var err error
	out := captureOutput(t, func() {
		err = cmd.RunE(cmd, []string{})
	})
	if err != nil {
		t.Fatalf("RunE: %v", err)
	}
	if !strings.Contains(out, "swim") || !strings.Contains(out, "3") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestLogs_AllUsersJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/logs" || r.URL.RawQuery != "" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_ = json.NewEncoder(w).Encode(models.LogResult{Count: 0, Logs: []models.Log{}})
	}))
	defer srv.Close()
	t.Setenv("EXLOG_API_URL", srv.URL)

	cmd := logsCmd()
	_ = cmd.Flags().Set("json", "true")

	out := captureOutput(t, func() {
		_ = cmd.RunE(cmd, []string{})
	})
	if !strings.Contains(out, `"count": 0`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestLogs_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid limit: must be a positive integer"}`))
	}))
	defer srv.Close()
	t.Setenv("EXLOG_API_URL", srv.URL)

	cmd := logsCmd()
	_ = cmd.Flags().Set("user-id", "5")
	_ = cmd.Flags().Set("limit", "0")

	err := cmd.RunE(cmd, []string{})
	if err == nil || !strings.Contains(err.Error(), "Invalid limit") {
		t.Fatalf("expected API error, got: %v", err)
	}
}
