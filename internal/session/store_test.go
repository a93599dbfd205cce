// ABOUTME: Tests for the session store and its storage backends
// ABOUTME: Covers round-trips, idempotent clears, and file permissions

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	s := NewStore(&MemoryStorage{})

	if _, ok := s.Token(); ok {
		t.Error("expected no token in fresh store")
	}

	if err := s.SetToken("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token, ok := s.Token()
	if !ok || token != "abc" {
		t.Errorf("expected token abc, got %q (present=%t)", token, ok)
	}

	if err := s.ClearToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Error("expected no token after clear")
	}
}

func TestStore_SetOverwrites(t *testing.T) {
	s := NewStore(&MemoryStorage{})
	s.SetToken("first")
	s.SetToken("second")

	token, _ := s.Token()
	if token != "second" {
		t.Errorf("expected second, got %q", token)
	}
}

func TestStore_ClearIdempotent(t *testing.T) {
	s := NewStore(&MemoryStorage{})
	s.SetToken("abc")

	if err := s.ClearToken(); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Error("expected no token after double clear")
	}
}

func TestNoopStorage(t *testing.T) {
	s := NewStore(NoopStorage{})

	if err := s.SetToken("abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Error("noop storage must never report a token")
	}
	if err := s.ClearToken(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFileStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(NewFileStorage(dir))

	if err := s.SetToken("file-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second store over the same directory sees the persisted token.
	s2 := NewStore(NewFileStorage(dir))
	token, ok := s2.Token()
	if !ok || token != "file-token" {
		t.Errorf("expected persisted token, got %q (present=%t)", token, ok)
	}
}

func TestFileStorage_Permissions(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStorage(dir)
	if err := fs.Set("secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "auth.json"))
	if err != nil {
		t.Fatalf("stat auth.json: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}

func TestFileStorage_ClearMissingFile(t *testing.T) {
	fs := NewFileStorage(t.TempDir())
	if err := fs.Clear(); err != nil {
		t.Errorf("clear on missing file should succeed, got %v", err)
	}
}

func TestFileStorage_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "auth.json"), []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileStorage(dir)
	if _, ok := fs.Get(); ok {
		t.Error("corrupt auth.json must read as absent")
	}
}
