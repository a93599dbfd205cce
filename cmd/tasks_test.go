// ABOUTME: Tests for the task commands
// ABOUTME: Verifies filters, partial updates, and output formatting

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

func TestTaskListCommand_PassesFilters(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.Task{
			{ID: 1, Title: "Write docs", Status: "pending", Priority: "high"},
		})
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	var buf bytes.Buffer
	filters := client.TaskFilters{Status: "pending", Priority: "high"}
	exitCode := runTaskList(context.Background(), &buf, filters)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if query != "priority=high&status=pending" {
		t.Errorf("unexpected query string: %q", query)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Write docs")) {
		t.Error("expected task title in output")
	}
}

func TestTaskListCommand_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	var buf bytes.Buffer
	exitCode := runTaskList(context.Background(), &buf, client.TaskFilters{})

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("No tasks found")) {
		t.Error("expected empty-list message")
	}
}

func TestTaskCreateCommand_ServerAssignsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["status"]; ok {
			t.Error("create payload must not carry a status")
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Task{ID: 7, Title: body["title"].(string), Status: "pending", Priority: "medium"})
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	var buf bytes.Buffer
	exitCode := runTaskCreate(context.Background(), &buf, client.TaskCreate{Title: "New thing"})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Created task 7")) {
		t.Error("expected created id in output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("pending")) {
		t.Error("expected server-assigned status in output")
	}
}

func TestTaskUpdateCommand_PartialPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if len(body) != 1 {
			t.Errorf("expected only the changed field, got %v", body)
		}
		if body["status"] != "completed" {
			t.Errorf("expected status completed, got %v", body["status"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Task{ID: 3, Title: "Old title", Status: "completed", Priority: "low"})
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	status := client.TaskStatusCompleted
	var buf bytes.Buffer
	exitCode := runTaskUpdate(context.Background(), &buf, 3, client.TaskUpdate{Status: &status})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
}

func TestTaskDeleteCommand(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	var buf bytes.Buffer
	exitCode := runTaskDelete(context.Background(), &buf, 9)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if method != http.MethodDelete || path != "/tasks/9" {
		t.Errorf("expected DELETE /tasks/9, got %s %s", method, path)
	}
}

func TestTaskCommand_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Task not found"})
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	var buf bytes.Buffer
	exitCode := runTaskDelete(context.Background(), &buf, 404)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Task not found")) {
		t.Error("expected server message in output")
	}
}

func TestFormatTaskLine(t *testing.T) {
	task := client.Task{ID: 12, Title: "Ship it", Status: "in_progress", Priority: "high"}
	line := formatTaskLine(task)

	if !bytes.Contains([]byte(line), []byte("#12")) {
		t.Error("expected id in line")
	}
	if !bytes.Contains([]byte(line), []byte("in_progress")) {
		t.Error("expected status in line")
	}
	if !bytes.Contains([]byte(line), []byte("Ship it")) {
		t.Error("expected title in line")
	}
}
