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

// ActivityStore caches the per-user activity log and exposes the aggregate
// user statistics view.
type ActivityStore struct {
	mu      sync.Mutex
	backend pgmanager.Backend
	session *Session
	logger  *slog.Logger

	gen   int64
	items []pgmanager.AppUserLog
}

// Logs returns the cached activity log
func (s *ActivityStore) Logs() []pgmanager.AppUserLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Load replaces the cached log with the backend's full list for the
// effective user. A failure keeps the previous snapshot.
func (s *ActivityStore) Load(ctx context.Context, userID int64) {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	result, err := s.backend.GetAppUserLogs(ctx, uid)
	if err != nil {
		s.logger.Error("failed to load activity log", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.items = result
}

// Log appends an activity entry for the current session user. This is
// fire-and-forget: a missing session is a silent no-op and backend failures
// are only logged.
func (s *ActivityStore) Log(ctx context.Context, actionType string, details *string) {
	uid, ok := s.session.effectiveUserID(0)
	if !ok {
		return
	}

	req := pgmanager.CreateAppUserLogRequest{
		UserID:     uid,
		ActionType: actionType,
		Details:    details,
	}
	if _, err := s.backend.CreateAppUserLog(ctx, req); err != nil {
		s.logger.Error("failed to record activity", "action", actionType, "error", err)
	}
}

// Statistics fetches the aggregate statistics of the effective user
func (s *ActivityStore) Statistics(ctx context.Context, userID int64) (*pgmanager.UserStatistics, error) {
	uid, ok := s.session.effectiveUserID(userID)
	if !ok {
		return nil, nil
	}

	stats, err := s.backend.GetUserStatistics(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load user statistics: %w", err)
	}
	return stats, nil
}
