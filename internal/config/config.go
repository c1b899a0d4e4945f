package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported values for LOGS_COUNT_MODE.
const (
	CountModeTotal    = "total"
	CountModeReturned = "returned"
)

type Config struct {
	Port string

	// Env is "dev" (default) or "prod".
	Env string

	// DBDriver is "sqlite" (default, single file at DBPath) or "postgres".
	DBDriver string
	DBPath   string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// DBQueryTimeout bounds every storage statement. Set via DB_QUERY_TIMEOUT_MS.
	DBQueryTimeout time.Duration

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS. "*" allows any origin.
	// Set via CORS_ALLOWED_ORIGINS (comma-separated).
	CORSAllowedOrigins []string

	MaxBodyBytes int

	// WriteRatePerMinute and WriteRateBurst limit POST requests per client IP.
	WriteRatePerMinute int
	WriteRateBurst     int

	// LogsCountMode is "total" (matches ignoring limit) or "returned" (length of the returned logs).
	LogsCountMode string
}

// Load reads an optional .env file into the environment and builds the Config from it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("ENV", "dev"),

		DBDriver: strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBPath:   getEnv("DB_PATH", "./mydatabase.db"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "exercisedb"),
		DBUser: getEnv("DB_USER", "exerciseuser"),
		DBPass: getEnv("DB_PASS", "exercisepass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBQueryTimeout: time.Duration(getEnvInt("DB_QUERY_TIMEOUT_MS", 5000)) * time.Millisecond,

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		MaxBodyBytes: getEnvInt("MAX_BODY_BYTES", 1<<20),

		WriteRatePerMinute: getEnvInt("WRITE_RATE_PER_MIN", 120),
		WriteRateBurst:     getEnvInt("WRITE_RATE_BURST", 20),

		LogsCountMode: strings.ToLower(getEnv("LOGS_COUNT_MODE", CountModeTotal)),
	}
}

// Validate reports configuration values that cannot be served.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}
	switch c.LogsCountMode {
	case CountModeTotal, CountModeReturned:
	default:
		return fmt.Errorf("unsupported LOGS_COUNT_MODE %q (want %s or %s)", c.LogsCountMode, CountModeTotal, CountModeReturned)
	}
	return nil
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
			c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPass,
		)
	}
	// busy_timeout lets concurrent writers wait on the file lock instead of failing with SQLITE_BUSY.
	return "file:" + c.DBPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
