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

// TagStore caches the user's tags together with the derived
// connection→tag-ids relation map. The map is never patched in place: every
// load refetches the complete edge list and rebuilds it from scratch, so it
// is always internally consistent with the last fetched edges.
type TagStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	session *Session
	logger  *slog.Logger

	gen            int64
	items          []pgmanager.Tag
	connectionTags map[int64][]int64
}

// Tags returns the cached collection
func (s *TagStore) Tags() []pgmanager.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// ConnectionTags returns a copy of the derived connection→tag-ids map
func (s *TagStore) ConnectionTags() map[int64][]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64][]int64, len(s.connectionTags))
	for connID, tagIDs := range s.connectionTags {
		out[connID] = slices.Clone(tagIDs)
	}
	return out
}

// TagsFor returns the tag ids attached to a connection, or nil
func (s *TagStore) TagsFor(connectionID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.connectionTags[connectionID])
}

// Load replaces the tag collection and rebuilds the relation map from the
// full edge list. Either fetch failing keeps the corresponding previous
// state; the two containers may transiently disagree until both settle.
func (s *TagStore) Load(ctx context.Context, userID int64) {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	tags, err := s.backend.GetTags(ctx, uid)
	if err != nil {
		s.logger.Error("failed to load tags", "error", err)
		return
	}

	s.mu.Lock()
	if gen == s.gen {
		s.items = tags
	}
	s.mu.Unlock()

	edges, err := s.backend.GetAllConnectionTags(ctx)
	if err != nil {
		s.logger.Error("failed to load connection tags", "error", err)
		return
	}

	rebuilt := make(map[int64][]int64)
	for _, edge := range edges {
		rebuilt[edge.ConnectionID] = append(rebuilt[edge.ConnectionID], edge.TagID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.connectionTags = rebuilt
}

// Create adds a tag for the current session user; a missing session is a
// silent no-op.
func (s *TagStore) Create(ctx context.Context, name string, color *string) error {
	uid, ok := s.session.effectiveUserID(0)
	if !ok {
		return nil
	}

	req := pgmanager.CreateTagRequest{UserID: uid, TagName: name, ColorHex: color}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid tag payload: %w", err)
	}
	if _, err := s.backend.CreateTag(ctx, req); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	s.Load(ctx, uid)
	return nil
}

// Update renames or recolors a tag and reloads on success
func (s *TagStore) Update(ctx context.Context, tagID int64, name string, color *string) error {
	req := pgmanager.UpdateTagRequest{TagID: tagID, TagName: name, ColorHex: color}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid tag payload: %w", err)
	}
	if err := s.backend.UpdateTag(ctx, req); err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// Delete removes a tag and reloads on success
func (s *TagStore) Delete(ctx context.Context, tagID int64) error {
	if err := s.backend.DeleteTag(ctx, tagID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// AddToConnection attaches a tag to a connection and reloads on success
func (s *TagStore) AddToConnection(ctx context.Context, tagID, connectionID int64) error {
	req := pgmanager.AddConnectionTagRequest{TagID: tagID, ConnectionID: connectionID}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid connection tag payload: %w", err)
	}
	if err := s.backend.AddConnectionTag(ctx, req); err != nil {
		return fmt.Errorf("failed to add connection tag: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// RemoveFromConnection detaches a tag from a connection and reloads on
// success
func (s *TagStore) RemoveFromConnection(ctx context.Context, tagID, connectionID int64) error {
	if err := s.backend.RemoveConnectionTag(ctx, tagID, connectionID); err != nil {
		return fmt.Errorf("failed to remove connection tag: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// TagsForConnection fetches the tags of one connection directly from the
// backend, bypassing the cache
func (s *TagStore) TagsForConnection(ctx context.Context, connectionID int64) ([]pgmanager.Tag, error) {
	tags, err := s.backend.GetTagsForConnection(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags for connection: %w", err)
	}
	return tags, nil
}
