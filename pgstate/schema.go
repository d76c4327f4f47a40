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

// SchemaData is the per-connection cell of the schema cache: the schema name
// list plus tables and views keyed by schema name. An inner key that is
// absent has never been fetched; a present key with an empty slice was
// fetched and is genuinely empty.
type SchemaData struct {
	Schemas []pgmanager.Schema
	Tables  map[string][]pgmanager.Table
	Views   map[string][]pgmanager.View
}

// SchemaStore is a two-level cache (connection → schema → tables/views)
// filled lazily, one level at a time, as the UI drills into a connection.
// Loading tables for one schema never evicts sibling schemas or other
// connections.
type SchemaStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	logger  *slog.Logger

	cache map[int64]*SchemaData
	gens  map[string]int64
}

// NewSchemaStore creates an empty schema cache
func NewSchemaStore(backend pgmanager.Backend, logger *slog.Logger) *SchemaStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaStore{
		backend: backend,
		logger:  logger,
		cache:   make(map[int64]*SchemaData),
		gens:    make(map[string]int64),
	}
}

// entryLocked returns the cell for a connection, creating an empty one on
// demand. Callers must hold s.mu.
func (s *SchemaStore) entryLocked(connectionID int64) *SchemaData {
	entry, ok := s.cache[connectionID]
	if !ok {
		entry = &SchemaData{
			Schemas: []pgmanager.Schema{},
			Tables:  make(map[string][]pgmanager.Table),
			Views:   make(map[string][]pgmanager.View),
		}
		s.cache[connectionID] = entry
	}
	return entry
}

func (s *SchemaStore) beginLoad(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[key]++
	return s.gens[key]
}

// TestConnection probes connectivity. Failures collapse to false; this never
// returns an error to the caller.
func (s *SchemaStore) TestConnection(ctx context.Context, connectionID int64) bool {
	ok, err := s.backend.TestConnection(ctx, connectionID)
	if err != nil {
		s.logger.Error("connection test failed", "connection_id", connectionID, "error", err)
		return false
	}
	return ok
}

// LoadSchemas fetches the schema list for a connection, replaces the cell's
// Schemas field and returns the fetched list. Tables and views already
// cached for the connection are untouched.
func (s *SchemaStore) LoadSchemas(ctx context.Context, connectionID int64) ([]pgmanager.Schema, error) {
	key := fmt.Sprintf("schemas:%d", connectionID)
	gen := s.beginLoad(key)

	schemas, err := s.backend.GetSchemas(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schemas: %w", err)
	}
	if schemas == nil {
		schemas = []pgmanager.Schema{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gens[key] {
		s.entryLocked(connectionID).Schemas = schemas
	}
	return schemas, nil
}

// LoadTables fetches the tables of exactly one schema and writes them under
// that schema's key, creating the connection cell if absent. Calling this
// before LoadSchemas is legal.
func (s *SchemaStore) LoadTables(ctx context.Context, connectionID int64, schemaName string) ([]pgmanager.Table, error) {
	key := fmt.Sprintf("tables:%d:%s", connectionID, schemaName)
	gen := s.beginLoad(key)

	tables, err := s.backend.GetTables(ctx, connectionID, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	if tables == nil {
		tables = []pgmanager.Table{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gens[key] {
		s.entryLocked(connectionID).Tables[schemaName] = tables
	}
	return tables, nil
}

// LoadViews fetches the views of exactly one schema, mirroring LoadTables
func (s *SchemaStore) LoadViews(ctx context.Context, connectionID int64, schemaName string) ([]pgmanager.View, error) {
	key := fmt.Sprintf("views:%d:%s", connectionID, schemaName)
	gen := s.beginLoad(key)

	views, err := s.backend.GetViews(ctx, connectionID, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}
	if views == nil {
		views = []pgmanager.View{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gens[key] {
		s.entryLocked(connectionID).Views[schemaName] = views
	}
	return views, nil
}

// Schemas returns the cached schema list for a connection. The second return
// is false when the connection has no cache cell at all.
func (s *SchemaStore) Schemas(connectionID int64) ([]pgmanager.Schema, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[connectionID]
	if !ok {
		return nil, false
	}
	return slices.Clone(entry.Schemas), true
}

// Tables returns the cached tables of one schema. The second return is false
// when that schema's tables have never been loaded; a true with an empty
// slice means the schema was loaded and has no tables.
func (s *SchemaStore) Tables(connectionID int64, schemaName string) ([]pgmanager.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[connectionID]
	if !ok {
		return nil, false
	}
	tables, ok := entry.Tables[schemaName]
	if !ok {
		return nil, false
	}
	return slices.Clone(tables), true
}

// Views returns the cached views of one schema with the same tri-state
// semantics as Tables
func (s *SchemaStore) Views(connectionID int64, schemaName string) ([]pgmanager.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[connectionID]
	if !ok {
		return nil, false
	}
	views, ok := entry.Views[schemaName]
	if !ok {
		return nil, false
	}
	return slices.Clone(views), true
}

// ForeignKeys fetches the foreign-key relations of a connection's database.
// Used by the diagram builder; not cached.
func (s *SchemaStore) ForeignKeys(ctx context.Context, connectionID int64) ([]pgmanager.ForeignKeyRelation, error) {
	relations, err := s.backend.GetForeignKeys(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load foreign keys: %w", err)
	}
	return relations, nil
}

// SchemaColumns fetches the column definitions of one schema. Used by the
// diagram builder; not cached.
func (s *SchemaStore) SchemaColumns(ctx context.Context, connectionID int64, schemaName string) ([]pgmanager.ColumnDef, error) {
	columns, err := s.backend.GetSchemaColumns(ctx, connectionID, schemaName)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema columns: %w", err)
	}
	return columns, nil
}
