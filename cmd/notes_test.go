// ABOUTME: Tests for the note commands
// ABOUTME: Verifies favorite toggling and filter encoding

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

func TestNoteListCommand_FavoriteFilter(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.Note{
			{ID: 1, Title: "Meeting notes", Category: "work", IsFavorite: true},
		})
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	fav := false
	var buf bytes.Buffer
	exitCode := runNoteList(context.Background(), &buf, client.NoteFilters{Favorite: &fav})

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	// An explicit false must still reach the wire.
	if query != "is_favorite=false" {
		t.Errorf("unexpected query string: %q", query)
	}
}

func TestNoteFavoriteCommand_Toggles(t *testing.T) {
	var updateBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(client.Note{ID: 5, Title: "Ideas", IsFavorite: false})
		case http.MethodPut:
			json.NewDecoder(r.Body).Decode(&updateBody)
			json.NewEncoder(w).Encode(client.Note{ID: 5, Title: "Ideas", IsFavorite: true})
		}
	}))
	defer server.Close()
	isolate(t, server.URL)
	t.Setenv("TASKFLOW_TOKEN", "tok")

	var buf bytes.Buffer
	exitCode := runNoteFavorite(context.Background(), &buf, 5)

	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, buf.String())
	}
	if updateBody["is_favorite"] != true {
		t.Errorf("expected is_favorite true in update, got %v", updateBody)
	}
	if !bytes.Contains(buf.Bytes(), []byte("*")) {
		t.Error("expected favorite marker in output")
	}
}

func TestFormatNoteLine_DefaultCategory(t *testing.T) {
	note := client.Note{ID: 2, Title: "Loose thought"}
	line := formatNoteLine(note)

	if !bytes.Contains([]byte(line), []byte("[general]")) {
		t.Errorf("expected default category, got %q", line)
	}
}
