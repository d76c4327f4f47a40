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

// ConnectionPayload is the client-side shape of a connection being created
// or updated. The encrypted password travels under db_password on the wire;
// the transform happens here and must be exact, otherwise the backend stores
// nothing for the credential.
type ConnectionPayload struct {
	UserID              int64 // 0 means the current session user
	FolderID            *int64
	ConnectionName      string
	Host                string
	Port                *int64
	DBName              string
	DBUser              string
	DBPasswordEncrypted string
	SSLMode             *string
}

// ConnectionStore caches the user's saved connections
type ConnectionStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	session *Session
	logger  *slog.Logger

	gen       int64
	items     []pgmanager.Connection
	tagFilter []int64
}

// Connections returns the cached collection
func (s *ConnectionStore) Connections() []pgmanager.Connection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// SetTagFilter restricts subsequent loads to connections carrying any of the
// given tags. Changing the filter does not reload by itself.
func (s *ConnectionStore) SetTagFilter(tagIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tagFilter = slices.Clone(tagIDs)
}

// TagFilter returns the active tag-id filter, or nil
func (s *ConnectionStore) TagFilter() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tagFilter)
}

// Load replaces the cached collection with the backend's full list for the
// effective user, honoring the active tag filter. A load failure keeps the
// previous snapshot; a stale response (a newer load already started) is
// discarded.
func (s *ConnectionStore) Load(ctx context.Context, userID int64) {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	var withTags []int64
	if len(s.tagFilter) > 0 {
		withTags = slices.Clone(s.tagFilter)
	}
	s.mu.Unlock()

	result, err := s.backend.GetConnections(ctx, uid, withTags)
	if err != nil {
		s.logger.Error("failed to load connections", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.items = result
}

// Create saves a new connection and reloads the collection on success
func (s *ConnectionStore) Create(ctx context.Context, payload ConnectionPayload) error {
	uid, ok := s.session.effectiveUserID(payload.UserID)
	if !ok {
		return nil
	}

	req := pgmanager.CreateConnectionRequest{
		UserID:         uid,
		ConnectionName: payload.ConnectionName,
		Host:           payload.Host,
		Port:           payload.Port,
		DBName:         payload.DBName,
		DBUser:         payload.DBUser,
		DBPassword:     payload.DBPasswordEncrypted,
		SSLMode:        payload.SSLMode,
		FolderID:       payload.FolderID,
	}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid connection payload: %w", err)
	}
	if _, err := s.backend.CreateConnection(ctx, req); err != nil {
		return fmt.Errorf("failed to create connection: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// Update modifies an existing connection and reloads the collection on
// success. An empty DBPasswordEncrypted keeps the stored credentials.
func (s *ConnectionStore) Update(ctx context.Context, connectionID int64, payload ConnectionPayload) error {
	req := pgmanager.UpdateConnectionRequest{
		ConnectionID:   connectionID,
		ConnectionName: payload.ConnectionName,
		Host:           payload.Host,
		Port:           payload.Port,
		DBName:         payload.DBName,
		DBUser:         payload.DBUser,
		SSLMode:        payload.SSLMode,
		FolderID:       payload.FolderID,
	}
	if payload.DBPasswordEncrypted != "" {
		password := payload.DBPasswordEncrypted
		req.DBPassword = &password
	}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid connection payload: %w", err)
	}
	if err := s.backend.UpdateConnection(ctx, req); err != nil {
		return fmt.Errorf("failed to update connection: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// Delete removes a connection and reloads the collection on success
func (s *ConnectionStore) Delete(ctx context.Context, connectionID int64) error {
	if err := s.backend.DeleteConnection(ctx, connectionID); err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}
