// ABOUTME: Entity types mirroring the TaskFlow API's JSON shapes
// ABOUTME: Users, tasks, notes, posts, and their create/update payloads

package client

import (
	"net/url"
	"strconv"
)

// User is the authenticated account. Re-derived on every start by
// calling the profile endpoint; never persisted locally.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

// AuthToken is the response from a successful login.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileUpdate carries optional profile changes. Nil fields are omitted.
type ProfileUpdate struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// Task statuses and priorities as assigned by the server. The client
// never invents defaults; a created task comes back with "pending".
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task is a to-do item.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// TaskCreate is the payload for creating a task.
type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}

// TaskUpdate is a partial update; nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// TaskFilters constrains task listings. Empty fields are omitted from
// the query string, never sent as empty constraints.
type TaskFilters struct {
	Status   string
	Priority string
	Search   string
}

func (f TaskFilters) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Priority != "" {
		v.Set("priority", f.Priority)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	return v
}

// Note is a free-form note with a category and favorite flag.
type Note struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	IsFavorite bool   `json:"is_favorite"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// NoteCreate is the payload for creating a note.
type NoteCreate struct {
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	Category   string `json:"category,omitempty"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
}

// NoteUpdate is a partial update; nil fields are left unchanged.
type NoteUpdate struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Category   *string `json:"category,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
}

// NoteFilters constrains note listings. Favorite is tri-state: nil
// means no constraint, matching the API's optional boolean.
type NoteFilters struct {
	Category string
	Favorite *bool
	Search   string
}

func (f NoteFilters) Values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Favorite != nil {
		v.Set("is_favorite", strconv.FormatBool(*f.Favorite))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	return v
}

// Post statuses as assigned by the server.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post is a short publishable post.
type Post struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
	ViewCount int      `json:"view_count"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// PostCreate is the payload for creating a post.
type PostCreate struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Status  string   `json:"status,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// PostUpdate is a partial update; nil fields are left unchanged.
type PostUpdate struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Status  *string   `json:"status,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// PostFilters constrains post listings.
type PostFilters struct {
	Status string
	Search string
}

func (f PostFilters) Values() url.Values {
	v := url.Values{}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	return v
}

// HealthResponse is the backend's health report. A reachable backend
// with a broken database reports status "unhealthy" with an error.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Error    string `json:"error,omitempty"`
}
