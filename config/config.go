package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 1 * time.Second
)

// Config keeps bot configuration loaded from environment variables.
type Config struct {
	TgToken   string
	DBConnStr string

	// Outbound delivery is best-effort. SendAsync makes sends fire-and-forget:
	// a failure is logged and never surfaced back into the conversation.
	SendAsync     bool
	RetryAttempts int
	RetryDelay    time.Duration
}

// Load reads configuration from the environment, honoring a local .env file
// if present. Missing mandatory values are an error: the process must not
// start without a bot token and a database connection string.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TG_TOKEN")
	if token == "" {
		return nil, errors.New("TG_TOKEN isn't set")
	}

	connStr := os.Getenv("DB_CONN_STR")
	if connStr == "" {
		return nil, errors.New("DB_CONN_STR isn't set")
	}

	return &Config{
		TgToken:       token,
		DBConnStr:     connStr,
		SendAsync:     getenvBool("SEND_ASYNC", false),
		RetryAttempts: getenvInt("SEND_RETRY_ATTEMPTS", defaultRetryAttempts),
		RetryDelay:    time.Duration(getenvInt("SEND_RETRY_DELAY_MS", int(defaultRetryDelay/time.Millisecond))) * time.Millisecond,
	}, nil
}

func getenvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}
