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

// DiagramStore caches the user's saved diagrams. Definitions are opaque
// serialized layouts; the store never parses them.
type DiagramStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	session *Session
	logger  *slog.Logger

	gen   int64
	items []pgmanager.Diagram
}

// Diagrams returns the cached collection
func (s *DiagramStore) Diagrams() []pgmanager.Diagram {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Load replaces the cached collection with the backend's full list for the
// effective user. A failure keeps the previous snapshot.
func (s *DiagramStore) Load(ctx context.Context, userID int64) {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	result, err := s.backend.GetDiagrams(ctx, uid)
	if err != nil {
		s.logger.Error("failed to load diagrams", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.items = result
}

// Create saves a new diagram and reloads on success. Returns the
// server-assigned diagram id so callers can attach it to an open tab.
func (s *DiagramStore) Create(ctx context.Context, connectionID int64, name, definitionJSON string) (int64, error) {
	req := pgmanager.CreateDiagramRequest{
		ConnectionID:   connectionID,
		DiagramName:    name,
		DefinitionJSON: definitionJSON,
	}
	if err := pgmanager.Validate(req); err != nil {
		return 0, fmt.Errorf("invalid diagram payload: %w", err)
	}
	id, err := s.backend.CreateDiagram(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("failed to create diagram: %w", err)
	}

	s.Load(ctx, 0)
	return id, nil
}

// Update replaces a diagram's name and definition and reloads on success
func (s *DiagramStore) Update(ctx context.Context, diagramID int64, name, definitionJSON string) error {
	req := pgmanager.UpdateDiagramRequest{
		DiagramID:      diagramID,
		DiagramName:    name,
		DefinitionJSON: definitionJSON,
	}
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid diagram payload: %w", err)
	}
	if err := s.backend.UpdateDiagram(ctx, req); err != nil {
		return fmt.Errorf("failed to update diagram: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}

// Delete removes a diagram and reloads on success
func (s *DiagramStore) Delete(ctx context.Context, diagramID int64) error {
	if err := s.backend.DeleteDiagram(ctx, diagramID); err != nil {
		return fmt.Errorf("failed to delete diagram: %w", err)
	}

	s.Load(ctx, 0)
	return nil
}
