// ABOUTME: Identity and profile endpoint wrappers
// ABOUTME: Login, signup, current-user, profile update, and health check

package client

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Login exchanges credentials for a bearer token. It does not store the
// token; the auth manager owns that side effect.
func (c *Client) Login(ctx context.Context, email, password string) (AuthToken, error) {
	var token AuthToken
	out := c.Do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err := decodeInto(out, &token); err != nil {
		return AuthToken{}, err
	}
	return token, nil
}

// Signup registers a new account and returns the created user.
func (c *Client) Signup(ctx context.Context, email, password, fullName string) (User, error) {
	var user User
	out := c.Do(ctx, http.MethodPost, "/auth/signup", signupRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	})
	if err := decodeInto(out, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// CurrentUser fetches the profile for the stored token.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var user User
	out := c.Do(ctx, http.MethodGet, "/user/profile", nil)
	if err := decodeInto(out, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// UpdateProfile changes the email and/or full name of the current user.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (User, error) {
	var user User
	out := c.Do(ctx, http.MethodPut, "/user/profile", update)
	if err := decodeInto(out, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Health checks backend and database reachability. An unreachable
// backend is reported as an unhealthy response rather than an error so
// callers render one shape for both failure modes.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	out := c.Do(ctx, http.MethodGet, "/health", nil)
	if out.Kind == KindNetworkError {
		return HealthResponse{Status: "unhealthy", Error: "Failed to connect to backend API"}, nil
	}
	if err := decodeInto(out, &health); err != nil {
		return HealthResponse{}, err
	}
	return health, nil
}
