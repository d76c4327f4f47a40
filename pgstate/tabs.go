// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgstate

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// TabKind distinguishes what an editor tab holds
type TabKind string

const (
	TabKindQuery   TabKind = "query"
	TabKindDiagram TabKind = "diagram"
)

// Tab is an open editor or diagram tab. Tabs are purely local and ephemeral:
// they are never persisted to or loaded from the backend. This is the one
// entity the state layer owns outright rather than caching.
type Tab struct {
	ID           string
	Title        string
	Kind         TabKind
	ConnectionID int64
	Content      string // SQL text, or the schema name for a fresh diagram
	DiagramID    *int64 // backing saved diagram, if any
	DiagramData  string // serialized diagram for initialization, if any
	Dirty        bool
}

// TabSpec describes a tab to open; the id is generated by the store
type TabSpec struct {
	Title        string
	Kind         TabKind
	ConnectionID int64
	Content      string
	DiagramID    *int64
	DiagramData  string
}

// TabStore tracks open tabs and the active tab. At most one tab is active at
// any time, and the active id is always derived from the post-mutation tab
// sequence.
type TabStore struct {
	mu          sync.Mutex
	tabs        []Tab
	activeTabID string // "" when no tab is open
}

// Tabs returns the open tabs in order
func (s *TabStore) Tabs() []Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tabs)
}

// ActiveTabID returns the active tab id, or "" when none
func (s *TabStore) ActiveTabID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTabID
}

// AddTab opens a new tab with a fresh id, appends it and makes it active.
// Open tabs accumulate without limit.
func (s *TabStore) AddTab(spec TabSpec) string {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs = append(s.tabs, Tab{
		ID:           id,
		Title:        spec.Title,
		Kind:         spec.Kind,
		ConnectionID: spec.ConnectionID,
		Content:      spec.Content,
		DiagramID:    spec.DiagramID,
		DiagramData:  spec.DiagramData,
	})
	s.activeTabID = id
	return id
}

// CloseTab removes a tab. If it was active, the last remaining tab becomes
// active (last-wins, not most-recently-used), or none when the sequence is
// empty. Closing a non-active tab never changes the active id.
func (s *TabStore) CloseTab(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tabs = slices.DeleteFunc(s.tabs, func(t Tab) bool { return t.ID == id })
	if s.activeTabID == id {
		if len(s.tabs) > 0 {
			s.activeTabID = s.tabs[len(s.tabs)-1].ID
		} else {
			s.activeTabID = ""
		}
	}
}

// SetActive reassigns the active id unconditionally. The caller is
// responsible for passing an id that exists among the open tabs.
func (s *TabStore) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTabID = id
}

// UpdateTabContent sets a tab's content and marks it dirty. Unknown ids are
// a no-op.
func (s *TabStore) UpdateTabContent(id, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tabs {
		if s.tabs[i].ID == id {
			s.tabs[i].Content = content
			s.tabs[i].Dirty = true
			return
		}
	}
}

// MarkAsSaved clears a tab's dirty flag. A non-empty newTitle renames the
// tab; a non-nil newDiagramID attaches the server-assigned backing id (e.g.
// after a diagram's first save). Unknown ids are a no-op.
func (s *TabStore) MarkAsSaved(id, newTitle string, newDiagramID *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tabs {
		if s.tabs[i].ID == id {
			s.tabs[i].Dirty = false
			if newTitle != "" {
				s.tabs[i].Title = newTitle
			}
			if newDiagramID != nil {
				s.tabs[i].DiagramID = newDiagramID
			}
			return
		}
	}
}
