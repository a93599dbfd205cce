// ABOUTME: Render tests for the dashboard overview
// ABOUTME: Verifies counts, progress, and health appear in the output

package tui

import (
	"strings"
	"testing"

	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/tui/dashboard"
)

func TestDashboardRendersCounts(t *testing.T) {
	data := &dashboard.Data{
		User: &client.User{FullName: "Ada Lovelace", Email: "ada@example.com"},
		Tasks: []client.Task{
			{ID: 1, Status: client.TaskStatusCompleted},
			{ID: 2, Status: client.TaskStatusInProgress},
			{ID: 3, Status: client.TaskStatusPending},
			{ID: 4, Status: client.TaskStatusCompleted},
		},
		Notes: []client.Note{
			{ID: 1, IsFavorite: true},
			{ID: 2},
		},
		Posts: []client.Post{
			{ID: 1, Status: client.PostStatusPublished},
			{ID: 2, Status: client.PostStatusDraft},
		},
		Health: client.HealthResponse{Status: "healthy", Database: "connected"},
	}

	d := dashboard.New(data, 80, 30)
	view := d.View()

	if !strings.Contains(view, "Welcome back, Ada Lovelace") {
		t.Error("expected greeting with user name")
	}
	if !strings.Contains(view, "Tasks: 4") {
		t.Error("expected total task count")
	}
	if !strings.Contains(view, "2 completed, 1 in progress, 1 pending") {
		t.Error("expected per-status breakdown")
	}
	if !strings.Contains(view, "50% done") {
		t.Error("expected completion percentage")
	}
	if !strings.Contains(view, "Notes: 2") {
		t.Error("expected note count")
	}
	if !strings.Contains(view, "1 favorite(s)") {
		t.Error("expected favorite count")
	}
	if !strings.Contains(view, "Posts: 2") {
		t.Error("expected post count")
	}
	if !strings.Contains(view, "1 published, 1 draft(s)") {
		t.Error("expected post status breakdown")
	}
	if !strings.Contains(view, "HEALTHY") {
		t.Error("expected health badge")
	}
}

func TestDashboardRendersUnhealthyBackend(t *testing.T) {
	data := &dashboard.Data{
		Health: client.HealthResponse{Status: "unhealthy", Error: "Failed to connect to backend API"},
	}

	d := dashboard.New(data, 80, 30)
	view := d.View()

	if !strings.Contains(view, "UNHEALTHY") {
		t.Error("expected unhealthy badge")
	}
	if !strings.Contains(view, "Failed to connect to backend API") {
		t.Error("expected error detail")
	}
}

func TestDashboardLoadingState(t *testing.T) {
	d := dashboard.New(nil, 80, 30)
	view := d.View()

	if !strings.Contains(view, "Loading") {
		t.Error("expected loading placeholder before data arrives")
	}
}
