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

// FolderStore caches the user's connection folders
type FolderStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	session *Session
	logger  *slog.Logger

	gen   int64
	items []pgmanager.ConnectionFolder
}

// Folders returns the cached collection
func (s *FolderStore) Folders() []pgmanager.ConnectionFolder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Load replaces the cached collection with the backend's full list for the
// effective user. A failure keeps the previous snapshot.
func (s *FolderStore) Load(ctx context.Context, userID int64) {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	result, err := s.backend.GetConnectionFolders(ctx, uid)
	if err != nil {
		s.logger.Error("failed to load folders", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.items = result
}

// Create adds a folder for the effective user and reloads on success
func (s *FolderStore) Create(ctx context.Context, folderName string, userID int64) error {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return nil
	}

	req := pgmanager.CreateFolderRequest{UserID: uid, FolderName: folderName}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid folder payload: %w", err)
	}
	if _, err := s.backend.CreateConnectionFolder(ctx, req); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	s.Load(ctx, uid)
	return nil
}

// Update renames a folder and reloads on success
func (s *FolderStore) Update(ctx context.Context, folderID int64, folderName string) error {
	req := pgmanager.UpdateFolderRequest{FolderID: folderID, FolderName: folderName}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid folder payload: %w", err)
	}
	if err := s.backend.UpdateConnectionFolder(ctx, req); err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// Delete removes a folder and reloads on success. Cascading to contained
// connections is a backend concern.
func (s *FolderStore) Delete(ctx context.Context, folderID int64) error {
	if err := s.backend.DeleteConnectionFolder(ctx, folderID); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}
