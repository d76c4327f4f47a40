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

// BookmarkStore caches the user's schema-object bookmarks. Bookmark identity
// is the (connection, schema, object name, object type) 4-tuple.
type BookmarkStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	session *Session
	logger  *slog.Logger

	gen   int64
	items []pgmanager.Bookmark
}

// Bookmarks returns the cached collection
func (s *BookmarkStore) Bookmarks() []pgmanager.Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// IsBookmarked reports whether the cache contains the given 4-tuple
func (s *BookmarkStore) IsBookmarked(connectionID int64, schemaName, objectName, objectType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.items {
		if b.ConnectionID == connectionID && b.SchemaName == schemaName &&
			b.ObjectName == objectName && b.ObjectType == objectType {
			return true
		}
	}
	return false
}

// Load replaces the cached collection with the backend's full list for the
// effective user. A failure keeps the previous snapshot.
func (s *BookmarkStore) Load(ctx context.Context, userID int64) {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	result, err := s.backend.GetBookmarks(ctx, uid)
	if err != nil {
		s.logger.Error("failed to load bookmarks", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.items = result
}

// Toggle flips a bookmark's membership. The server decides add-vs-remove;
// the cache is never mutated optimistically, only reloaded after the call.
func (s *BookmarkStore) Toggle(ctx context.Context, connectionID int64, schemaName, objectName, objectType string) error {
	req := pgmanager.BookmarkRequest{
		ConnectionID: connectionID,
		SchemaName:   schemaName,
		ObjectName:   objectName,
		ObjectType:   objectType,
	}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid bookmark payload: %w", err)
	}
	if err := s.backend.ToggleBookmark(ctx, req); err != nil {
		return fmt.Errorf("failed to toggle bookmark: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}
