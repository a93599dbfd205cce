// ABOUTME: Tests for the authentication lifecycle state machine
// ABOUTME: Fakes the backend with httptest and asserts token side effects

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskflow/cli/internal/client"
	"github.com/taskflow/cli/internal/session"
)

func newManager(url string) (*Manager, *session.Store) {
	store := session.NewStore(&session.MemoryStorage{})
	c := client.New(url, store)
	return NewManager(c, store), store
}

func writeUser(w http.ResponseWriter) {
	json.NewEncoder(w).Encode(client.User{ID: 1, Email: "a@b.com", FullName: "A B"})
}

func TestHydrate_NoTokenSkipsNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	m, _ := newManager(server.URL)
	if got := m.Hydrate(context.Background()); got != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", got)
	}
	if called {
		t.Error("no identity call may be made without a token")
	}
}

func TestHydrate_ValidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/profile" {
			t.Errorf("expected /user/profile, got %s", r.URL.Path)
		}
		writeUser(w)
	}))
	defer server.Close()

	m, store := newManager(server.URL)
	store.SetToken("abc")

	if got := m.Hydrate(context.Background()); got != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", got)
	}
	state, user := m.State()
	if state != StateAuthenticated || user == nil || user.Email != "a@b.com" {
		t.Errorf("unexpected state %v user %+v", state, user)
	}
}

func TestHydrate_ExpiredTokenClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	m, store := newManager(server.URL)
	store.SetToken("stale")

	if got := m.Hydrate(context.Background()); got != StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", got)
	}
	if _, ok := store.Token(); ok {
		t.Error("expected token cleared after 401")
	}
	if m.LastError() == "" {
		t.Error("expected recorded error message")
	}
}

func TestHydrate_NetworkFailureKeepsToken(t *testing.T) {
	m, store := newManager("http://127.0.0.1:1")
	store.SetToken("keep-me")

	if got := m.Hydrate(context.Background()); got != StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", got)
	}
	if token, ok := store.Token(); !ok || token != "keep-me" {
		t.Error("token must survive a pure network failure during hydration")
	}
}

func TestLogin_StoresTokenAndLoadsUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			json.NewEncoder(w).Encode(client.AuthToken{AccessToken: "abc", TokenType: "bearer"})
		case "/user/profile":
			if got := r.Header.Get("Authorization"); got != "Bearer abc" {
				t.Errorf("identity call must carry new token, got %q", got)
			}
			writeUser(w)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	m, store := newManager(server.URL)
	user, err := m.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("unexpected user %+v", user)
	}
	if token, _ := store.Token(); token != "abc" {
		t.Errorf("expected stored token abc, got %q", token)
	}
	if state, _ := m.State(); state != StateAuthenticated {
		t.Errorf("expected authenticated, got %v", state)
	}
}

func TestLogin_FailureSurfacesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))
	defer server.Close()

	m, store := newManager(server.URL)
	_, err := m.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("login failure must be returned to the caller")
	}
	if state, _ := m.State(); state != StateUnauthenticated {
		t.Errorf("expected unauthenticated, got %v", state)
	}
	if _, ok := store.Token(); ok {
		t.Error("no token may be stored after failed login")
	}
}

func TestSignup_AutoLogin(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/auth/signup":
			w.WriteHeader(http.StatusCreated)
			writeUser(w)
		case "/auth/login":
			json.NewEncoder(w).Encode(client.AuthToken{AccessToken: "abc", TokenType: "bearer"})
		case "/user/profile":
			writeUser(w)
		}
	}))
	defer server.Close()

	m, _ := newManager(server.URL)
	user, err := m.Signup(context.Background(), "a@b.com", "pw", "A B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "a@b.com" {
		t.Errorf("unexpected user %+v", user)
	}

	want := []string{"/auth/signup", "/auth/login", "/user/profile"}
	if len(paths) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestSignup_FailureSkipsLogin(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	}))
	defer server.Close()

	m, _ := newManager(server.URL)
	_, err := m.Signup(context.Background(), "a@b.com", "pw", "A B")
	if err == nil {
		t.Fatal("expected signup error")
	}
	if len(paths) != 1 || paths[0] != "/auth/signup" {
		t.Errorf("signup failure must not attempt login, calls: %v", paths)
	}
}

func TestLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeUser(w)
	}))
	defer server.Close()

	m, store := newManager(server.URL)
	store.SetToken("abc")
	m.Hydrate(context.Background())

	if err := m.Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Error("expected token cleared on logout")
	}
	state, user := m.State()
	if state != StateUnauthenticated || user != nil {
		t.Errorf("expected unauthenticated with nil user, got %v %+v", state, user)
	}
}
