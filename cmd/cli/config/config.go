package config

import (
	"os"
	"strings"
)

const defaultAPIURL = "http://localhost:3000"

// APIURL returns the base URL for the tracker API without a trailing slash.
// It can be overridden with the EXLOG_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("EXLOG_API_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return defaultAPIURL
}
