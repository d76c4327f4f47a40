// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgstate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/megaredb/pg-manager/pgmanager"
)

// HistoryStore is a filtered remote view over the query history: the backend
// filters, sorts and paginates; the store holds only the view descriptor and
// the last fetched page. Changing a descriptor field never reloads by
// itself, so the UI can batch several changes before one Load.
type HistoryStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	session *Session
	logger  *slog.Logger

	gen      int64
	items    []pgmanager.QueryHistoryItem
	page     int64
	pageSize int

	search    string
	status    string // "all", "success" or "error"
	sortDesc  bool
	startDate string // ISO-8601, "" when unset
	endDate   string
}

// Items returns the last fetched page
func (s *HistoryStore) Items() []pgmanager.QueryHistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Page returns the page the current items belong to
func (s *HistoryStore) Page() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageSize returns the fixed page size of the view
func (s *HistoryStore) PageSize() int {
	return s.pageSize
}

// SetSearch updates the search text of the descriptor
func (s *HistoryStore) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = search
}

// SetStatus updates the status filter ("all", "success" or "error")
func (s *HistoryStore) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// SetSortDesc updates the sort direction
func (s *HistoryStore) SetSortDesc(desc bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortDesc = desc
}

// SetDateRange updates the inclusive date range; "" clears a bound
func (s *HistoryStore) SetDateRange(startDate, endDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startDate = startDate
	s.endDate = endDate
}

// formatDateParam rewrites an ISO-8601 timestamp into the space-separated
// form the backend expects. An empty input becomes nil: the backend treats
// null and empty string differently for optional dates.
func formatDateParam(iso string) *string {
	if iso == "" {
		return nil
	}
	formatted := strings.Replace(iso, "T", " ", 1)
	return &formatted
}

// Load fetches one page of history for the effective user using the current
// descriptor. offset = page * pageSize. On success the result page replaces
// the previous one and Page is set to the requested page; on failure the
// previous page is retained.
func (s *HistoryStore) Load(ctx context.Context, page int64, userID int64) {
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
	status := s.status
	sortDesc := s.sortDesc
	startDate := s.startDate
	endDate := s.endDate
	pageSize := int64(s.pageSize)
	s.mu.Unlock()

	req := pgmanager.GetQueryHistoryRequest{
		UserID:       uid,
		Limit:        pageSize,
		Offset:       page * pageSize,
		SearchQuery:  search,
		StatusFilter: &status,
		StartDate:    formatDateParam(startDate),
		EndDate:      formatDateParam(endDate),
		SortDesc:     &sortDesc,
	}

	result, err := s.backend.GetQueryHistory(ctx, req)
	if err != nil {
		s.logger.Error("failed to load query history", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.items = result
	s.page = page
}

// Record appends one query execution to the backend history. History is
// append-only; entries are never updated or deleted from the client.
func (s *HistoryStore) Record(ctx context.Context, req pgmanager.AddQueryHistoryRequest) error {
	if err := pgmanager.Validate(req); err != nil {
		return fmt.Errorf("invalid history payload: %w", err)
	}
	if _, err := s.backend.AddQueryHistory(ctx, req); err != nil {
		return fmt.Errorf("failed to record query history: %w", err)
	}
	return nil
}
