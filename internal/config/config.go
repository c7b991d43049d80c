// Package config loads crossfill's environment-variable configuration,
// the same .env-plus-os.Getenv convention the donor server used.
package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting crossfill's commands
// read. Fields are populated by Load; optional settings are left zero
// when their environment variable is unset.
type Config struct {
	DictionaryPath string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	Workers        int
}

// Load reads a .env file if present (missing is not an error, matching
// the donor's "No .env file found, using environment variables"
// behavior) and then populates a Config from the environment.
// DictionaryPath is always required, and a set CROSSFILL_WORKERS must
// be a positive integer. JWTSecret is checked by the caller via
// RequireJWTSecret, since it is only mandatory for commands that start
// the status server or mint tokens.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	dictPath := os.Getenv("DICTIONARY_PATH")
	if dictPath == "" {
		return nil, fmt.Errorf("config: DICTIONARY_PATH is required")
	}

	workers := runtime.GOMAXPROCS(0)
	if raw := os.Getenv("CROSSFILL_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: CROSSFILL_WORKERS must be a positive integer, got %q", raw)
		}
		workers = n
	}

	return &Config{
		DictionaryPath: dictPath,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("CROSSFILL_JWT_SECRET"),
		Workers:        workers,
	}, nil
}

// RequireJWTSecret fails startup if no CROSSFILL_JWT_SECRET was
// configured. Called only by the commands that need one: serve and
// token.
func (c *Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: CROSSFILL_JWT_SECRET is required for this command")
	}
	return nil
}
