// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgstate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/megaredb/pg-manager/pgmanager"
)

const loginFailedMessage = "Invalid username or password"

// Session holds the authenticated identity, or its absence. Every other
// store receives the session at construction time and reads the user id from
// it when no explicit id is supplied.
type Session struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	logger  *slog.Logger

	authenticated bool
	user          *pgmanager.AppUser
	token         string
	errMsg        string
}

// NewSession creates an unauthenticated session
func NewSession(backend pgmanager.Backend, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{backend: backend, logger: logger}
}

// Login verifies credentials against the backend. Failures never surface as
// a returned error: empty credentials and backend rejections both set the
// session error message and leave the session unauthenticated. Empty
// credentials issue no backend call at all.
func (s *Session) Login(ctx context.Context, username, password string) {
	if username == "" || password == "" {
		s.mu.Lock()
		s.errMsg = loginFailedMessage
		s.mu.Unlock()
		return
	}

	result, err := s.backend.VerifyCredentials(ctx, username, password)
	if err != nil {
		s.logger.Error("failed to verify credentials", "error", err)
		result = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if result == nil {
		s.errMsg = loginFailedMessage
		return
	}

	user := result.User
	s.authenticated = true
	s.user = &user
	s.token = result.Token
	s.errMsg = ""
}

// Logout clears the authenticated state and identity unconditionally
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.user = nil
	s.token = ""
	s.errMsg = ""
}

// Authenticated reports whether a login has succeeded
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// User returns a copy of the authenticated identity, or nil
func (s *Session) User() *pgmanager.AppUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// UserID returns the authenticated user id, or 0 when logged out
func (s *Session) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return 0
	}
	return s.user.UserID
}

// Token returns the bearer token of the current session, or ""
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// TokenProvider adapts the session to the token callback shape the HTTP
// backend expects
func (s *Session) TokenProvider() func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		return s.Token(), nil
	}
}

// Err returns the last login error message, or ""
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// effectiveUserID resolves the user id an operation is scoped to: an
// explicit non-zero argument wins, otherwise the session user. The second
// return is false when neither is available; callers must then short-circuit
// silently without issuing a backend call.
func (s *Session) effectiveUserID(userID int64) (int64, bool) {
	if userID != 0 {
		return userID, true
	}
	uid := s.UserID()
	return uid, uid != 0
}
