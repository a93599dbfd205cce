// ABOUTME: Tests for the health command
// ABOUTME: Verifies output formatting and exit codes for each health state

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskflow/cli/internal/client"
)

// isolate points the session store and flags at throwaway state.
func isolate(t *testing.T, serverURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TASKFLOW_TOKEN", "")
	apiURL = serverURL
	t.Cleanup(func() { apiURL = "" })
}

func TestFormatHealthHuman(t *testing.T) {
	resp := client.HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}

	output := formatHealthHuman("http://localhost:8000", resp)

	if !bytes.Contains([]byte(output), []byte("http://localhost:8000")) {
		t.Error("expected output to contain backend URL")
	}
	if !bytes.Contains([]byte(output), []byte("healthy")) {
		t.Error("expected output to contain status")
	}
	if !bytes.Contains([]byte(output), []byte("connected")) {
		t.Error("expected output to contain database state")
	}
}

func TestFormatHealthJSON(t *testing.T) {
	resp := client.HealthResponse{
		Status: "unhealthy",
		Error:  "database unreachable",
	}

	output := formatHealthJSON("http://localhost:8000", resp)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["backend"] != "http://localhost:8000" {
		t.Errorf("expected backend URL in JSON, got %v", parsed["backend"])
	}
	if parsed["error"] != "database unreachable" {
		t.Errorf("expected error in JSON, got %v", parsed["error"])
	}
}

func TestHealthCommand_Healthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.HealthResponse{Status: "healthy", Database: "connected"})
	}))
	defer server.Close()
	isolate(t, server.URL)

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("healthy")) {
		t.Error("expected healthy in output")
	}
}

func TestHealthCommand_UnhealthyBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.HealthResponse{Status: "unhealthy", Error: "database down"})
	}))
	defer server.Close()
	isolate(t, server.URL)

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2 for unhealthy backend, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("database down")) {
		t.Error("expected error detail in output")
	}
}

func TestHealthCommand_Unreachable(t *testing.T) {
	isolate(t, "http://127.0.0.1:1")

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	// Unreachable reports as unhealthy, not as a hard error.
	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("unhealthy")) {
		t.Error("expected unhealthy in output")
	}
}
