// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

// Package pgmanager defines the wire model of the pg-manager backend: the
// entity projections the client caches, the request payloads it sends, and
// the Backend boundary every store talks through. The backend owns the real
// data; everything the client holds is a non-authoritative copy.
package pgmanager

import (
	"context"
)

// Backend is the remote procedure surface of the backend engine. One method
// corresponds to one logical remote call; all calls are scoped by the ids in
// their arguments and may fail with a transport or backend error.
//
// Stores depend on this interface, not on the HTTP implementation, so tests
// can substitute an in-memory fake.
type Backend interface {
	// VerifyCredentials returns the identity and a bearer token for valid
	// credentials, or (nil, nil) when the backend rejects them.
	VerifyCredentials(ctx context.Context, username, password string) (*LoginResult, error)

	GetConnections(ctx context.Context, userID int64, withTags []int64) ([]Connection, error)
	CreateConnection(ctx context.Context, req CreateConnectionRequest) (int64, error)
	UpdateConnection(ctx context.Context, req UpdateConnectionRequest) error
	DeleteConnection(ctx context.Context, connectionID int64) error

	GetConnectionFolders(ctx context.Context, userID int64) ([]ConnectionFolder, error)
	CreateConnectionFolder(ctx context.Context, req CreateFolderRequest) (int64, error)
	UpdateConnectionFolder(ctx context.Context, req UpdateFolderRequest) error
	DeleteConnectionFolder(ctx context.Context, folderID int64) error

	GetTags(ctx context.Context, userID int64) ([]Tag, error)
	CreateTag(ctx context.Context, req CreateTagRequest) (int64, error)
	UpdateTag(ctx context.Context, req UpdateTagRequest) error
	DeleteTag(ctx context.Context, tagID int64) error
	AddConnectionTag(ctx context.Context, req AddConnectionTagRequest) error
	RemoveConnectionTag(ctx context.Context, tagID, connectionID int64) error
	GetAllConnectionTags(ctx context.Context) ([]ConnectionTag, error)
	GetTagsForConnection(ctx context.Context, connectionID int64) ([]Tag, error)

	GetBookmarks(ctx context.Context, userID int64) ([]Bookmark, error)
	// ToggleBookmark adds the bookmark if absent and removes it if present.
	// The server is the sole arbiter of membership.
	ToggleBookmark(ctx context.Context, req BookmarkRequest) error

	TestConnection(ctx context.Context, connectionID int64) (bool, error)
	GetSchemas(ctx context.Context, connectionID int64) ([]Schema, error)
	GetTables(ctx context.Context, connectionID int64, schemaName string) ([]Table, error)
	GetViews(ctx context.Context, connectionID int64, schemaName string) ([]View, error)
	GetForeignKeys(ctx context.Context, connectionID int64) ([]ForeignKeyRelation, error)
	GetSchemaColumns(ctx context.Context, connectionID int64, schemaName string) ([]ColumnDef, error)

	GetDiagrams(ctx context.Context, userID int64) ([]Diagram, error)
	CreateDiagram(ctx context.Context, req CreateDiagramRequest) (int64, error)
	UpdateDiagram(ctx context.Context, req UpdateDiagramRequest) error
	DeleteDiagram(ctx context.Context, diagramID int64) error

	GetQueryHistory(ctx context.Context, req GetQueryHistoryRequest) ([]QueryHistoryItem, error)
	AddQueryHistory(ctx context.Context, req AddQueryHistoryRequest) (int64, error)

	GetPinnedQueries(ctx context.Context, userID int64, searchQuery *string, sortAsc bool) ([]PinnedQuery, error)
	CreatePinnedQuery(ctx context.Context, req CreatePinnedQueryRequest) (int64, error)
	UpdatePinnedQuery(ctx context.Context, req UpdatePinnedQueryRequest) error
	DeletePinnedQuery(ctx context.Context, pinnedQueryID int64) error

	GetAppUsers(ctx context.Context) ([]AppUser, error)
	CreateAppUser(ctx context.Context, req CreateAppUserRequest) (int64, error)
	UpdateAppUser(ctx context.Context, req UpdateAppUserRequest) error
	DeleteAppUser(ctx context.Context, userID int64) error

	CreateAppUserLog(ctx context.Context, req CreateAppUserLogRequest) (int64, error)
	GetAppUserLogs(ctx context.Context, userID int64) ([]AppUserLog, error)
	GetUserStatistics(ctx context.Context, userID int64) (*UserStatistics, error)
}
