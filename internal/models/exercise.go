package models

// Exercise is one logged activity. Date is always YYYY-MM-DD.
type Exercise struct {
	ExerciseID  int64   `json:"exerciseId"`
	UserID      int64   `json:"userId"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}
