package models

// LogRow is one row of the users/exercise join as read from storage.
type LogRow struct {
	UserID      int64
	Username    string
	ExerciseID  int64
	Duration    float64
	Description string
	Date        string
}

// Log is the public view of an exercise in a log response.
type Log struct {
	UserID      int64   `json:"userId"`
	ExerciseID  int64   `json:"exerciseId"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	DateHuman   string  `json:"date_human,omitempty"`
}

// LogResult is the body returned by the log endpoints.
type LogResult struct {
	Count int   `json:"count"`
	Logs  []Log `json:"logs"`
}
