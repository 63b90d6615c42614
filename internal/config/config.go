// Package config assembles the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultDBFile is the dataset file name, placed next to the executable.
	DefaultDBFile = "budget.db"

	envDBPath    = "BUDGETBOOK_DB_PATH"
	envAddr      = "BUDGETBOOK_ADDR"
	envJWTSecret = "BUDGETBOOK_JWT_SECRET"
	envTokenTTL  = "BUDGETBOOK_TOKEN_TTL"
	envLogLevel  = "LOG_LEVEL"
)

type Config struct {
	// Database
	DBPath string

	// API server
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration

	// Logging
	LogLevel string
}

// Load reads an optional .env file from the working directory and then the
// process environment. Variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load() // a missing .env is fine

	return &Config{
		DBPath:    getEnv(envDBPath, DefaultDBPath()),
		Addr:      getEnv(envAddr, ":8080"),
		JWTSecret: getEnv(envJWTSecret, ""),
		TokenTTL:  getEnvDuration(envTokenTTL, 24*time.Hour),
		LogLevel:  strings.ToLower(getEnv(envLogLevel, "info")),
	}
}

// DefaultDBPath places the dataset in the directory of the running executable,
// falling back to the working directory when that cannot be resolved.
func DefaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultDBFile
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultDBFile)
}

// Validate checks the settings every command needs and returns all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "database path cannot be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ValidateServer additionally checks the settings of the API server.
func (c *Config) ValidateServer() error {
	var problems []string
	if err := c.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Addr == "" {
		problems = append(problems, "listen address cannot be empty")
	}
	if len(c.JWTSecret) < 16 {
		problems = append(problems, envJWTSecret+" must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid token lifetime %s: must be positive", c.TokenTTL))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
