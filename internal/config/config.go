// Package config reads server settings from the environment.
// A .env file, if present, is loaded by the caller (cmd) before Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     string
	LogLevel string
	// LogFormat is "json" (default) or "console".
	LogFormat string
	DBPath    string

	AnswersFile string
	AllowedFile string
	MaxAttempts int
	WordLength  int

	DailyLocation *time.Location
	RotationSize  int
	FallbackWord  string

	SessionSecret  string
	SessionTTL     time.Duration
	CookieName     string
	SecureCookies  bool
	ClientOrigin   string
	RequestTimeout time.Duration
	GameTTL        time.Duration
}

// Load reads every setting, applying defaults for unset variables.
func Load() (Config, error) {
	c := Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
		DBPath:         getEnv("DB_PATH", "./data/fbwordle.db"),
		AnswersFile:    os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:    os.Getenv("WORDS_ALLOWED_FILE"),
		MaxAttempts:    envInt("MAX_ATTEMPTS", 6),
		WordLength:     envInt("WORD_LENGTH", 5),
		RotationSize:   envInt("ROTATION_SIZE", 30),
		FallbackWord:   strings.ToLower(getEnv("FALLBACK_WORD", "bread")),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionTTL:     envDuration("SESSION_TTL", 180*24*time.Hour),
		CookieName:     getEnv("COOKIE_NAME", "fbwordle_session"),
		SecureCookies:  getEnv("APP_ENV", "development") == "production",
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 10*time.Second),
		GameTTL:        envDuration("GAME_TTL", 24*time.Hour),
	}

	loc, err := time.LoadLocation(getEnv("DAILY_TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("DAILY_TIMEZONE: %w", err)
	}
	c.DailyLocation = loc

	if c.MaxAttempts <= 0 || c.WordLength <= 0 || c.RotationSize <= 0 {
		return Config{}, fmt.Errorf("MAX_ATTEMPTS, WORD_LENGTH and ROTATION_SIZE must be positive")
	}
	return c, nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// envDuration accepts Go durations ("90m") or a bare number of seconds.
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
