// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgstate

import (
	"context"
	"sync"

	"github.com/megaredb/pg-manager/pgmanager"
)

// fakeBackend implements pgmanager.Backend with overridable function fields.
// Unset fields return zero values. Every invocation is counted by procedure
// name so tests can assert that no call (or exactly one) was issued.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	verifyCredentials    func(username, password string) (*pgmanager.LoginResult, error)
	getConnections       func(userID int64, withTags []int64) ([]pgmanager.Connection, error)
	createConnection     func(req pgmanager.CreateConnectionRequest) (int64, error)
	updateConnection     func(req pgmanager.UpdateConnectionRequest) error
	deleteConnection     func(connectionID int64) error
	getFolders           func(userID int64) ([]pgmanager.ConnectionFolder, error)
	getTags              func(userID int64) ([]pgmanager.Tag, error)
	getAllConnectionTags func() ([]pgmanager.ConnectionTag, error)
	getBookmarks         func(userID int64) ([]pgmanager.Bookmark, error)
	toggleBookmark       func(req pgmanager.BookmarkRequest) error
	testConnection       func(connectionID int64) (bool, error)
	getSchemas           func(connectionID int64) ([]pgmanager.Schema, error)
	getTables            func(connectionID int64, schemaName string) ([]pgmanager.Table, error)
	getViews             func(connectionID int64, schemaName string) ([]pgmanager.View, error)
	getDiagrams          func(userID int64) ([]pgmanager.Diagram, error)
	getQueryHistory      func(req pgmanager.GetQueryHistoryRequest) ([]pgmanager.QueryHistoryItem, error)
	getPinnedQueries     func(userID int64, searchQuery *string, sortAsc bool) ([]pgmanager.PinnedQuery, error)
	getAppUsers          func() ([]pgmanager.AppUser, error)
	getAppUserLogs       func(userID int64) ([]pgmanager.AppUserLog, error)
	getUserStatistics    func(userID int64) (*pgmanager.UserStatistics, error)
}

var _ pgmanager.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string]int)}
}

func (f *fakeBackend) record(procedure string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[procedure]++
}

func (f *fakeBackend) callCount(procedure string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[procedure]
}

func (f *fakeBackend) VerifyCredentials(_ context.Context, username, password string) (*pgmanager.LoginResult, error) {
	f.record("verify_user_credentials")
	if f.verifyCredentials != nil {
		return f.verifyCredentials(username, password)
	}
	return nil, nil
}

func (f *fakeBackend) GetConnections(_ context.Context, userID int64, withTags []int64) ([]pgmanager.Connection, error) {
	f.record("get_connections")
	if f.getConnections != nil {
		return f.getConnections(userID, withTags)
	}
	return nil, nil
}

func (f *fakeBackend) CreateConnection(_ context.Context, req pgmanager.CreateConnectionRequest) (int64, error) {
	f.record("create_connection")
	if f.createConnection != nil {
		return f.createConnection(req)
	}
	return 1, nil
}

func (f *fakeBackend) UpdateConnection(_ context.Context, req pgmanager.UpdateConnectionRequest) error {
	f.record("update_connection")
	if f.updateConnection != nil {
		return f.updateConnection(req)
	}
	return nil
}

func (f *fakeBackend) DeleteConnection(_ context.Context, connectionID int64) error {
	f.record("delete_connection")
	if f.deleteConnection != nil {
		return f.deleteConnection(connectionID)
	}
	return nil
}

func (f *fakeBackend) GetConnectionFolders(_ context.Context, userID int64) ([]pgmanager.ConnectionFolder, error) {
	f.record("get_connection_folders")
	if f.getFolders != nil {
		return f.getFolders(userID)
	}
	return nil, nil
}

func (f *fakeBackend) CreateConnectionFolder(_ context.Context, _ pgmanager.CreateFolderRequest) (int64, error) {
	f.record("create_connection_folder")
	return 1, nil
}

func (f *fakeBackend) UpdateConnectionFolder(_ context.Context, _ pgmanager.UpdateFolderRequest) error {
	f.record("update_connection_folder")
	return nil
}

func (f *fakeBackend) DeleteConnectionFolder(_ context.Context, _ int64) error {
	f.record("delete_connection_folder")
	return nil
}

func (f *fakeBackend) GetTags(_ context.Context, userID int64) ([]pgmanager.Tag, error) {
	f.record("get_tags")
	if f.getTags != nil {
		return f.getTags(userID)
	}
	return nil, nil
}

func (f *fakeBackend) CreateTag(_ context.Context, _ pgmanager.CreateTagRequest) (int64, error) {
	f.record("create_tag")
	return 1, nil
}

func (f *fakeBackend) UpdateTag(_ context.Context, _ pgmanager.UpdateTagRequest) error {
	f.record("update_tag")
	return nil
}

func (f *fakeBackend) DeleteTag(_ context.Context, _ int64) error {
	f.record("delete_tag")
	return nil
}

func (f *fakeBackend) AddConnectionTag(_ context.Context, _ pgmanager.AddConnectionTagRequest) error {
	f.record("add_connection_tag")
	return nil
}

func (f *fakeBackend) RemoveConnectionTag(_ context.Context, _, _ int64) error {
	f.record("remove_connection_tag")
	return nil
}

func (f *fakeBackend) GetAllConnectionTags(_ context.Context) ([]pgmanager.ConnectionTag, error) {
	f.record("get_all_connection_tags")
	if f.getAllConnectionTags != nil {
		return f.getAllConnectionTags()
	}
	return nil, nil
}

func (f *fakeBackend) GetTagsForConnection(_ context.Context, _ int64) ([]pgmanager.Tag, error) {
	f.record("get_tags_for_connection")
	return nil, nil
}

func (f *fakeBackend) GetBookmarks(_ context.Context, userID int64) ([]pgmanager.Bookmark, error) {
	f.record("get_bookmarks")
	if f.getBookmarks != nil {
		return f.getBookmarks(userID)
	}
	return nil, nil
}

func (f *fakeBackend) ToggleBookmark(_ context.Context, req pgmanager.BookmarkRequest) error {
	f.record("toggle_bookmark")
	if f.toggleBookmark != nil {
		return f.toggleBookmark(req)
	}
	return nil
}

func (f *fakeBackend) TestConnection(_ context.Context, connectionID int64) (bool, error) {
	f.record("test_connection")
	if f.testConnection != nil {
		return f.testConnection(connectionID)
	}
	return true, nil
}

func (f *fakeBackend) GetSchemas(_ context.Context, connectionID int64) ([]pgmanager.Schema, error) {
	f.record("get_schemas")
	if f.getSchemas != nil {
		return f.getSchemas(connectionID)
	}
	return nil, nil
}

func (f *fakeBackend) GetTables(_ context.Context, connectionID int64, schemaName string) ([]pgmanager.Table, error) {
	f.record("get_tables")
	if f.getTables != nil {
		return f.getTables(connectionID, schemaName)
	}
	return nil, nil
}

func (f *fakeBackend) GetViews(_ context.Context, connectionID int64, schemaName string) ([]pgmanager.View, error) {
	f.record("get_views")
	if f.getViews != nil {
		return f.getViews(connectionID, schemaName)
	}
	return nil, nil
}

func (f *fakeBackend) GetForeignKeys(_ context.Context, _ int64) ([]pgmanager.ForeignKeyRelation, error) {
	f.record("get_foreign_keys")
	return nil, nil
}

func (f *fakeBackend) GetSchemaColumns(_ context.Context, _ int64, _ string) ([]pgmanager.ColumnDef, error) {
	f.record("get_schema_columns")
	return nil, nil
}

func (f *fakeBackend) GetDiagrams(_ context.Context, userID int64) ([]pgmanager.Diagram, error) {
	f.record("get_diagrams")
	if f.getDiagrams != nil {
		return f.getDiagrams(userID)
	}
	return nil, nil
}

func (f *fakeBackend) CreateDiagram(_ context.Context, _ pgmanager.CreateDiagramRequest) (int64, error) {
	f.record("create_diagram")
	return 1, nil
}

func (f *fakeBackend) UpdateDiagram(_ context.Context, _ pgmanager.UpdateDiagramRequest) error {
	f.record("update_diagram")
	return nil
}

func (f *fakeBackend) DeleteDiagram(_ context.Context, _ int64) error {
	f.record("delete_diagram")
	return nil
}

func (f *fakeBackend) GetQueryHistory(_ context.Context, req pgmanager.GetQueryHistoryRequest) ([]pgmanager.QueryHistoryItem, error) {
	f.record("get_query_history")
	if f.getQueryHistory != nil {
		return f.getQueryHistory(req)
	}
	return nil, nil
}

func (f *fakeBackend) AddQueryHistory(_ context.Context, _ pgmanager.AddQueryHistoryRequest) (int64, error) {
	f.record("add_query_history")
	return 1, nil
}

func (f *fakeBackend) GetPinnedQueries(_ context.Context, userID int64, searchQuery *string, sortAsc bool) ([]pgmanager.PinnedQuery, error) {
	f.record("get_pinned_queries")
	if f.getPinnedQueries != nil {
		return f.getPinnedQueries(userID, searchQuery, sortAsc)
	}
	return nil, nil
}

func (f *fakeBackend) CreatePinnedQuery(_ context.Context, _ pgmanager.CreatePinnedQueryRequest) (int64, error) {
	f.record("create_pinned_query")
	return 1, nil
}

func (f *fakeBackend) UpdatePinnedQuery(_ context.Context, _ pgmanager.UpdatePinnedQueryRequest) error {
	f.record("update_pinned_query")
	return nil
}

func (f *fakeBackend) DeletePinnedQuery(_ context.Context, _ int64) error {
	f.record("delete_pinned_query")
	return nil
}

func (f *fakeBackend) GetAppUsers(_ context.Context) ([]pgmanager.AppUser, error) {
	f.record("get_app_users")
	if f.getAppUsers != nil {
		return f.getAppUsers()
	}
	return nil, nil
}

func (f *fakeBackend) CreateAppUser(_ context.Context, _ pgmanager.CreateAppUserRequest) (int64, error) {
	f.record("create_app_user")
	return 1, nil
}

func (f *fakeBackend) UpdateAppUser(_ context.Context, _ pgmanager.UpdateAppUserRequest) error {
	f.record("update_app_user")
	return nil
}

func (f *fakeBackend) DeleteAppUser(_ context.Context, _ int64) error {
	f.record("delete_app_user")
	return nil
}

func (f *fakeBackend) CreateAppUserLog(_ context.Context, _ pgmanager.CreateAppUserLogRequest) (int64, error) {
	f.record("create_app_user_log")
	return 1, nil
}

func (f *fakeBackend) GetAppUserLogs(_ context.Context, userID int64) ([]pgmanager.AppUserLog, error) {
	f.record("get_app_user_logs")
	if f.getAppUserLogs != nil {
		return f.getAppUserLogs(userID)
	}
	return nil, nil
}

func (f *fakeBackend) GetUserStatistics(_ context.Context, userID int64) (*pgmanager.UserStatistics, error) {
	f.record("get_user_statistics")
	if f.getUserStatistics != nil {
		return f.getUserStatistics(userID)
	}
	return &pgmanager.UserStatistics{}, nil
}
