// ABOUTME: Debounced list-fetching state shared by all resource screens
// ABOUTME: Generation numbers guard against stale responses overwriting fresh state

package liststate

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/taskflow/cli/internal/client"
)

// DebounceInterval is how long filter edits must pause before a fetch fires.
const DebounceInterval = 300 * time.Millisecond

// FetchFunc loads a page of items for the given filters.
type FetchFunc[T any] func(ctx context.Context, filters client.Filters) ([]T, error)

// DebounceMsg fires when a filter edit's debounce window elapses.
// Generic so each screen's messages only match its own model.
type DebounceMsg[T any] struct {
	Seq int
}

// FetchedMsg carries the result of one fetch.
type FetchedMsg[T any] struct {
	Gen   int
	Items []T
	Err   error
}

// Model holds list state for one resource: items, loading, error, and
// the current filter set. Filter edits restart a 300ms debounce window;
// only the latest edit's window triggers a fetch, and only the latest
// fetch's response is applied. Responses for superseded generations are
// dropped, so a slow stale response can never overwrite fresher items.
type Model[T any] struct {
	fetch FetchFunc[T]

	Items   []T
	Loading bool
	Err     string

	filters client.Filters
	applied client.Filters
	editSeq int
	gen     int
}

// New creates a list model. Call Init to issue the first fetch.
func New[T any](fetch FetchFunc[T], initial client.Filters) *Model[T] {
	return &Model[T]{
		fetch:   fetch,
		Items:   []T{},
		filters: initial,
		applied: initial,
	}
}

// Init fetches immediately with the initial filters.
func (m *Model[T]) Init() tea.Cmd {
	return m.startFetch(m.applied)
}

// Filters returns the most recently edited filters (possibly not yet applied).
func (m *Model[T]) Filters() client.Filters {
	return m.filters
}

// SetFilters records a filter edit and restarts the debounce window.
// A burst of edits within the window results in exactly one fetch,
// using the filters from the last edit.
func (m *Model[T]) SetFilters(f client.Filters) tea.Cmd {
	m.filters = f
	m.editSeq++
	seq := m.editSeq
	return tea.Tick(DebounceInterval, func(time.Time) tea.Msg {
		return DebounceMsg[T]{Seq: seq}
	})
}

// Refresh re-issues the fetch with the last-applied filters, bypassing
// the debounce entirely.
func (m *Model[T]) Refresh() tea.Cmd {
	return m.startFetch(m.applied)
}

// Update handles debounce and fetch-result messages. Messages belonging
// to other models (or superseded ones) produce no state change.
func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case DebounceMsg[T]:
		if msg.Seq != m.editSeq {
			// A newer edit restarted the window; this one is void.
			return nil
		}
		m.applied = m.filters
		return m.startFetch(m.applied)

	case FetchedMsg[T]:
		if msg.Gen != m.gen {
			// Stale response from a superseded fetch.
			return nil
		}
		m.Loading = false
		if msg.Err != nil {
			// Session expiry is handled by the redirect; showing it here
			// would flash an error before the login screen appears.
			if errors.Is(msg.Err, client.ErrSessionExpired) {
				return nil
			}
			m.Err = msg.Err.Error()
			return nil
		}
		m.Err = ""
		m.Items = msg.Items
		return nil
	}
	return nil
}

func (m *Model[T]) startFetch(filters client.Filters) tea.Cmd {
	m.gen++
	gen := m.gen
	m.Loading = true
	fetch := m.fetch
	return func() tea.Msg {
		items, err := fetch(context.Background(), filters)
		return FetchedMsg[T]{Gen: gen, Items: items, Err: err}
	}
}
