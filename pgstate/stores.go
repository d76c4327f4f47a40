// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

// Package pgstate implements the client-side state layer of pg-manager: a
// set of keyed in-memory caches over backend-owned collections, kept
// consistent with a write-then-reload discipline. Loads replace whole
// collections; mutations call the backend and, on success, reload the owning
// collection. Read failures keep the previous snapshot; write failures
// propagate and skip the reload.
package pgstate

import (
	"context"
	"net/http"

	"github.com/megaredb/pg-manager/pgmanager"
)

// Stores bundles every store of the state layer wired to one backend and one
// session.
type Stores struct {
	Session     *Session
	Connections *ConnectionStore
	Folders     *FolderStore
	Tags        *TagStore
	Bookmarks   *BookmarkStore
	Diagrams    *DiagramStore
	Schema      *SchemaStore
	History     *HistoryStore
	Pinned      *PinnedStore
	Tabs        *TabStore
	Activity    *ActivityStore
	Users       *UserStore
}

// New wires the store layer to a backend. cfg may be nil; defaults apply.
func New(backend pgmanager.Backend, cfg *Config) *Stores {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = DefaultConfig().Logger
	}

	session := NewSession(backend, logger)
	pageSize := cfg.HistoryPageSize
	if pageSize <= 0 {
		pageSize = DefaultConfig().HistoryPageSize
	}

	return &Stores{
		Session:     session,
		Connections: &ConnectionStore{backend: backend, session: session, logger: logger},
		Folders:     &FolderStore{backend: backend, session: session, logger: logger},
		Tags:        &TagStore{backend: backend, session: session, logger: logger},
		Bookmarks:   &BookmarkStore{backend: backend, session: session, logger: logger},
		Diagrams:    &DiagramStore{backend: backend, session: session, logger: logger},
		Schema:      NewSchemaStore(backend, logger),
		History:     &HistoryStore{backend: backend, session: session, logger: logger, status: "all", sortDesc: true, pageSize: pageSize},
		Pinned:      &PinnedStore{backend: backend, session: session, logger: logger},
		Tabs:        &TabStore{},
		Activity:    &ActivityStore{backend: backend, session: session, logger: logger},
		Users:       &UserStore{backend: backend, logger: logger},
	}
}

// ConnectHTTP builds the store layer on top of an HTTP backend whose bearer
// token tracks the session: after a successful login every subsequent call
// carries the token the backend issued.
func ConnectHTTP(cfg *Config) *Stores {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var session *Session
	backend := pgmanager.NewHTTPBackend(cfg.BackendURL, func(ctx context.Context) (string, error) {
		if session == nil {
			return "", nil
		}
		return session.Token(), nil
	}, &http.Client{Timeout: cfg.RequestTimeout}, cfg.Logger)

	stores := New(backend, cfg)
	session = stores.Session
	return stores
}
