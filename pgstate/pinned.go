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

// PinnedStore is a filtered remote view over the user's pinned queries: the
// backend applies search and sort; the store holds the descriptor and the
// last fetched result set.
type PinnedStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	session *Session
	logger  *slog.Logger

	gen   int64
	items []pgmanager.PinnedQuery

	search  string
	sortAsc bool
}

// Queries returns the last fetched result set
func (s *PinnedStore) Queries() []pgmanager.PinnedQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// SetSearch updates the search text of the descriptor
func (s *PinnedStore) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
}

// SetSortAsc updates the sort direction
func (s *PinnedStore) SetSortAsc(asc bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortAsc = asc
}

// Load fetches the pinned queries of the effective user using the current
// descriptor, replacing the result set on success
func (s *PinnedStore) Load(ctx context.Context, userID int64) {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	var search *string
	if s.search != "" {
		text := s.search
		search = &text
	}
	sortAsc := s.sortAsc
	s.mu.Unlock()

	result, err := s.backend.GetPinnedQueries(ctx, uid, search, sortAsc)
	if err != nil {
		s.logger.Error("failed to load pinned queries", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.items = result
}

// Create pins a query and reloads on success
func (s *PinnedStore) Create(ctx context.Context, connectionID int64, name, queryText string, description *string) error {
	req := pgmanager.CreatePinnedQueryRequest{
		ConnectionID: connectionID,
		QueryName:    name,
		QueryText:    queryText,
		Description:  description,
	}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid pinned query payload: %w", err)
	}
	if _, err := s.backend.CreatePinnedQuery(ctx, req); err != nil {
		return fmt.Errorf("failed to create pinned query: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// Update renames a pinned query or edits its description, reloading on
// success. The query text itself is immutable.
func (s *PinnedStore) Update(ctx context.Context, pinnedQueryID int64, name string, description *string) error {
	req := pgmanager.UpdatePinnedQueryRequest{
		PinnedQueryID: pinnedQueryID,
		QueryName:     name,
		Description:   description,
	}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid pinned query payload: %w", err)
	}
	if err := s.backend.UpdatePinnedQuery(ctx, req); err != nil {
		return fmt.Errorf("failed to update pinned query: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// Delete removes a pinned query and reloads on success
func (s *PinnedStore) Delete(ctx context.Context, pinnedQueryID int64) error {
	if err := s.backend.DeletePinnedQuery(ctx, pinnedQueryID); err != nil {
		return fmt.Errorf("failed to delete pinned query: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}
