// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgstate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/megaredb/pg-manager/pgmanager"
)

// UserStore caches the application user accounts for administration. Unlike
// the other caches it is not scoped to the session user.
type UserStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	logger  *slog.Logger

	gen   int64
	items []pgmanager.AppUser
}

// Users returns the cached collection
func (s *UserStore) Users() []pgmanager.AppUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Load replaces the cached collection with the backend's full user list. A
// failure keeps the previous snapshot.
func (s *UserStore) Load(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	result, err := s.backend.GetAppUsers(ctx)
	if err != nil {
		s.logger.Error("failed to load users", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.items = result
}

// Create registers a user and reloads on success. The password travels in
// clear on this call only; the backend stores a hash.
func (s *UserStore) Create(ctx context.Context, username, password string, role *string) error {
	req := pgmanager.CreateAppUserRequest{Username: username, Password: password, Role: role}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid user payload: %w", err)
	}
	if _, err := s.backend.CreateAppUser(ctx, req); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.Load(ctx)
	return nil
}

// Update modifies a user and reloads on success. A nil password keeps the
// stored hash unchanged.
func (s *UserStore) Update(ctx context.Context, userID int64, username string, password, role *string) error {
	req := pgmanager.UpdateAppUserRequest{UserID: userID, Username: username, Password: password, Role: role}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid user payload: %w", err)
	}
	if err := s.backend.UpdateAppUser(ctx, req); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.Load(ctx)
	return nil
}

// Delete removes a user and reloads on success
func (s *UserStore) Delete(ctx context.Context, userID int64) error {
	if err := s.backend.DeleteAppUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.Load(ctx)
	return nil
}
