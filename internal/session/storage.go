// ABOUTME: Storage capability backing the session store
// ABOUTME: Lets non-interactive contexts run with a no-op implementation

package session

// Storage persists a single opaque value under a fixed key. Implementations
// must treat Clear on an empty store as a success.
type Storage interface {
	// Get returns the stored value and whether one was present.
	Get() (string, bool)
	// Set overwrites any prior value.
	Set(value string) error
	// Clear removes the stored value. Idempotent.
	Clear() error
}

// NoopStorage holds nothing. Used where no persistent storage is
// available or wanted, e.g. one-shot scripted calls with TASKFLOW_TOKEN.
type NoopStorage struct{}

func (NoopStorage) Get() (string, bool) { return "", false }
func (NoopStorage) Set(string) error    { return nil }
func (NoopStorage) Clear() error        { return nil }

// MemoryStorage keeps the value in process memory only. Used for
// env-supplied tokens and in tests.
type MemoryStorage struct {
	value string
	set   bool
}

func (m *MemoryStorage) Get() (string, bool) { return m.value, m.set }

func (m *MemoryStorage) Set(value string) error {
	m.value = value
	m.set = true
	return nil
}

func (m *MemoryStorage) Clear() error {
	m.value = ""
	m.set = false
	return nil
}
