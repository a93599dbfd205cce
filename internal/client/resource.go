// ABOUTME: Generic CRUD client instantiated per resource
// ABOUTME: One parameterized type replaces hand-duplicated task/note/post clients

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Filters encodes list constraints into query parameters. Implementations
// omit unset fields entirely rather than sending empty values.
type Filters interface {
	Values() url.Values
}

// Resource is a typed CRUD wrapper over the request pipeline. T is the
// entity, C the create payload, U the partial-update payload. Tasks,
// notes, and posts share this one shape; only path and types differ.
type Resource[T any, C any, U any] struct {
	c    *Client
	path string
}

// NewResource creates a resource client rooted at path, e.g. "/tasks".
func NewResource[T any, C any, U any](c *Client, path string) *Resource[T, C, U] {
	return &Resource[T, C, U]{c: c, path: path}
}

// List fetches entities matching the filters. Always returns a non-nil
// slice on success, even when the server sends no body.
func (r *Resource[T, C, U]) List(ctx context.Context, filters Filters) ([]T, error) {
	path := r.path
	if filters != nil {
		if q := filters.Values().Encode(); q != "" {
			path += "?" + q
		}
	}

	out := r.c.Do(ctx, http.MethodGet, path, nil)
	items := []T{}
	if err := decodeInto(out, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get fetches a single entity by id.
func (r *Resource[T, C, U]) Get(ctx context.Context, id int) (T, error) {
	var item T
	out := r.c.Do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", r.path, id), nil)
	if err := decodeInto(out, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Create creates an entity and returns the server's version of it,
// including any server-assigned defaults.
func (r *Resource[T, C, U]) Create(ctx context.Context, data C) (T, error) {
	var item T
	out := r.c.Do(ctx, http.MethodPost, r.path, data)
	if err := decodeInto(out, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Update applies a partial update and returns the updated entity.
func (r *Resource[T, C, U]) Update(ctx context.Context, id int, data U) (T, error) {
	var item T
	out := r.c.Do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), data)
	if err := decodeInto(out, &item); err != nil {
		return item, err
	}
	return item, nil
}

// Delete removes an entity. The API answers 204 on success.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id int) error {
	out := r.c.Do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil)
	return out.Err()
}

// TaskClient is the resource client for /tasks.
type TaskClient = Resource[Task, TaskCreate, TaskUpdate]

// NoteClient is the resource client for /notes.
type NoteClient = Resource[Note, NoteCreate, NoteUpdate]

// PostClient is the resource client for /posts.
type PostClient = Resource[Post, PostCreate, PostUpdate]

// NewTaskClient creates the task resource client.
func NewTaskClient(c *Client) *TaskClient {
	return NewResource[Task, TaskCreate, TaskUpdate](c, "/tasks")
}

// NewNoteClient creates the note resource client.
func NewNoteClient(c *Client) *NoteClient {
	return NewResource[Note, NoteCreate, NoteUpdate](c, "/notes")
}

// NewPostClient creates the post resource client.
func NewPostClient(c *Client) *PostClient {
	return NewResource[Post, PostCreate, PostUpdate](c, "/posts")
}
