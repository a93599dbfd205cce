// ABOUTME: Tests for configuration resolution
// ABOUTME: Verifies flag/env/default priority and URL normalization

package config

import "testing"

func TestAPIURL_FlagWins(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env.example.com")
	if got := APIURL("http://flag.example.com"); got != "http://flag.example.com" {
		t.Errorf("expected flag value to win, got %s", got)
	}
}

func TestAPIURL_EnvFallback(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://env.example.com")
	if got := APIURL(""); got != "http://env.example.com" {
		t.Errorf("expected env value, got %s", got)
	}
}

func TestAPIURL_Default(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	if got := APIURL(""); got != DefaultAPIURL {
		t.Errorf("expected default %s, got %s", DefaultAPIURL, got)
	}
}

func TestAPIURL_TrailingSlashStripped(t *testing.T) {
	if got := APIURL("http://host:8000/"); got != "http://host:8000" {
		t.Errorf("expected trailing slash stripped, got %s", got)
	}
}
