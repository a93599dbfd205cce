// ABOUTME: Tests for the login, logout, and whoami commands
// ABOUTME: Drives a fake backend and a temp-dir session store

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskflow/cli/internal/client"
)

func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
				return
			}
			json.NewEncoder(w).Encode(client.AuthToken{AccessToken: "tok-123", TokenType: "bearer"})
		case "/user/profile":
			if r.Header.Get("Authorization") != "Bearer tok-123" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
				return
			}
			json.NewEncoder(w).Encode(client.User{ID: 1, Email: "ada@example.com", FullName: "Ada Lovelace"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLoginCommand_StoresToken(t *testing.T) {
	server := authServer(t)
	defer server.Close()
	isolate(t, server.URL)

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "ada@example.com", "hunter2")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Ada Lovelace")) {
		t.Error("expected user name in output")
	}

	// The token must land in auth.json under the config dir.
	home := os.Getenv("HOME")
	data, err := os.ReadFile(filepath.Join(home, ".config", "taskflow", "auth.json"))
	if err != nil {
		t.Fatalf("expected auth.json written: %v", err)
	}
	if !bytes.Contains(data, []byte("tok-123")) {
		t.Error("expected token persisted in auth.json")
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	server := authServer(t)
	defer server.Close()
	isolate(t, server.URL)

	var buf bytes.Buffer
	exitCode := runLogin(context.Background(), &buf, "ada@example.com", "wrong")

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Incorrect email or password")) {
		t.Error("expected server message in output")
	}
}

func TestLogoutCommand_RemovesToken(t *testing.T) {
	server := authServer(t)
	defer server.Close()
	isolate(t, server.URL)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "ada@example.com", "hunter2"); code != 0 {
		t.Fatalf("login failed: %s", buf.String())
	}

	buf.Reset()
	if code := runLogout(&buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	home := os.Getenv("HOME")
	if _, err := os.Stat(filepath.Join(home, ".config", "taskflow", "auth.json")); !os.IsNotExist(err) {
		t.Error("expected auth.json removed after logout")
	}
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	server := authServer(t)
	defer server.Close()
	isolate(t, server.URL)

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Not logged in")) {
		t.Error("expected not-logged-in message")
	}
}

func TestWhoamiCommand_WithEnvToken(t *testing.T) {
	server := authServer(t)
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok-123")

	var buf bytes.Buffer
	exitCode := runWhoami(context.Background(), &buf)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("ada@example.com")) {
		t.Error("expected email in output")
	}
}

func TestSignupCommand_AutoLogin(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/signup":
			json.NewEncoder(w).Encode(client.User{ID: 2, Email: "new@example.com", FullName: "New User"})
		case "/auth/login":
			json.NewEncoder(w).Encode(client.AuthToken{AccessToken: "tok-456", TokenType: "bearer"})
		case "/user/profile":
			json.NewEncoder(w).Encode(client.User{ID: 2, Email: "new@example.com", FullName: "New User"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	isolate(t, server.URL)

	var buf bytes.Buffer
	exitCode := runSignup(context.Background(), &buf, "new@example.com", "secret", "New User")

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	want := []string{"/auth/signup", "/auth/login", "/user/profile"}
	if len(paths) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}
