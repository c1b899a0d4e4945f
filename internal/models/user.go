package models

// User is created on signup and never mutated. ID is a millisecond timestamp assigned at creation.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
