// ABOUTME: Tests for the post commands
// ABOUTME: Verifies publish transitions and tag handling

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

func TestPostCreateCommand_SendsTags(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Post{
			ID: 1, Title: "Hello", Content: "First post", Status: "draft",
			Tags: []string{"go", "tui"},
		})
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	create := client.PostCreate{Title: "Hello", Content: "First post", Tags: []string{"go", "tui"}}
	var buf bytes.Buffer
	exitCode := runPostCreate(context.Background(), &buf, create)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	tags, ok := body["tags"].([]interface{})
	if !ok || len(tags) != 2 {
		t.Errorf("expected two tags in payload, got %v", body["tags"])
	}
}

func TestPostPublish_SetsStatusOnly(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Post{ID: 4, Title: "Draft", Content: "x", Status: "published"})
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	status := client.PostStatusPublished
	var buf bytes.Buffer
	exitCode := runPostUpdate(context.Background(), &buf, 4, client.PostUpdate{Status: &status})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if len(body) != 1 || body["status"] != "published" {
		t.Errorf("expected only status in payload, got %v", body)
	}
	if !bytes.Contains(buf.Bytes(), []byte("published")) {
		t.Error("expected published in output")
	}
}

func TestFormatPostLine_ViewsAndTags(t *testing.T) {
	post := client.Post{ID: 8, Title: "Popular", Status: "published", Tags: []string{"go"}, ViewCount: 42}
	line := formatPostLine(post)

	if !bytes.Contains([]byte(line), []byte("42 views")) {
		t.Errorf("expected view count, got %q", line)
	}
	if !bytes.Contains([]byte(line), []byte("(go)")) {
		t.Errorf("expected tags, got %q", line)
	}
}
