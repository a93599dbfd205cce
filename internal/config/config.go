// ABOUTME: Resolves client configuration from environment and .env files
// ABOUTME: Owns the API base URL and the per-user config directory

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL is used when no flag, env var, or .env entry is set.
	DefaultAPIURL = "http://localhost:8000"

	// EnvAPIURL overrides the backend URL without a flag.
	EnvAPIURL = "TASKFLOW_API_URL"

	// EnvToken supplies a bearer token for one-shot scripted calls,
	// bypassing the stored session entirely.
	EnvToken = "TASKFLOW_TOKEN"
)

// LoadDotenv loads a .env file from the working directory if one exists.
// Missing files are not an error; a present-but-unreadable file is.
func LoadDotenv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// APIURL returns the backend base URL from env or default. A flag value,
// when set, takes priority and is passed in by the caller.
func APIURL(flagValue string) string {
	if flagValue != "" {
		return normalizeURL(flagValue)
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		return normalizeURL(v)
	}
	return DefaultAPIURL
}

// normalizeURL strips a trailing slash so path joining stays predictable.
func normalizeURL(u string) string {
	return strings.TrimRight(u, "/")
}

// Dir returns the per-user config directory (~/.config/taskflow),
// creating it if necessary.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "taskflow")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}
