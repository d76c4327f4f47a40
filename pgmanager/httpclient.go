// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgmanager

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/megaredb/pg-manager/internal/auth"
)

var _ Backend = (*HTTPBackend)(nil)

// HTTPBackend implements Backend over JSON/HTTP. Every remote procedure maps
// to POST {BaseURL}/api/{procedure} with a JSON body and a JSON response.
type HTTPBackend struct {
	BaseURL string
	// Token returns the bearer token for the current session, or "" before
	// login. Calls are sent without an Authorization header in that case.
	// A token set on the context via auth.SetToken takes precedence.
	Token  func(ctx context.Context) (string, error)
	HTTP   *http.Client
	logger *slog.Logger
}

// NewHTTPBackend creates an HTTP backend client. httpClient and logger may be
// nil, in which case http.DefaultClient and slog.Default() are used.
func NewHTTPBackend(baseURL string, token func(ctx context.Context) (string, error), httpClient *http.Client, logger *slog.Logger) *HTTPBackend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPBackend{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    httpClient,
		logger:  logger,
	}
}

// call performs one remote procedure invocation. body is marshaled as the
// request payload; when out is non-nil the response body is unmarshaled into
// it. Non-200 responses become errors carrying the response text.
func (b *HTTPBackend) call(ctx context.Context, procedure string, body any, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", procedure, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", b.BaseURL+"/api/"+procedure, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", procedure, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// A token placed in the context overrides the session token.
	token, ok := auth.GetToken(ctx)
	if !ok && b.Token != nil {
		token, err = b.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", procedure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", procedure, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d for %s: %s", resp.StatusCode, procedure, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", procedure, err)
		}
	}
	return nil
}

func (b *HTTPBackend) VerifyCredentials(ctx context.Context, username, password string) (*LoginResult, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	// The backend answers null for rejected credentials, so decode through a
	// pointer that stays nil in that case.
	var result *LoginResult
	if err := b.call(ctx, "verify_user_credentials", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (b *HTTPBackend) GetConnections(ctx context.Context, userID int64, withTags []int64) ([]Connection, error) {
	body := struct {
		UserID   int64   `json:"user_id"`
		WithTags []int64 `json:"with_tags"`
	}{userID, withTags}

	var connections []Connection
	if err := b.call(ctx, "get_connections", body, &connections); err != nil {
		return nil, err
	}
	return connections, nil
}

func (b *HTTPBackend) CreateConnection(ctx context.Context, req CreateConnectionRequest) (int64, error) {
	var id int64
	if err := b.call(ctx, "create_connection", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *HTTPBackend) UpdateConnection(ctx context.Context, req UpdateConnectionRequest) error {
	return b.call(ctx, "update_connection", req, nil)
}

func (b *HTTPBackend) DeleteConnection(ctx context.Context, connectionID int64) error {
	body := struct {
		ConnectionID int64 `json:"connection_id"`
	}{connectionID}
	return b.call(ctx, "delete_connection", body, nil)
}

func (b *HTTPBackend) GetConnectionFolders(ctx context.Context, userID int64) ([]ConnectionFolder, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{userID}

	var folders []ConnectionFolder
	if err := b.call(ctx, "get_connection_folders", body, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (b *HTTPBackend) CreateConnectionFolder(ctx context.Context, req CreateFolderRequest) (int64, error) {
	var id int64
	if err := b.call(ctx, "create_connection_folder", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *HTTPBackend) UpdateConnectionFolder(ctx context.Context, req UpdateFolderRequest) error {
	return b.call(ctx, "update_connection_folder", req, nil)
}

func (b *HTTPBackend) DeleteConnectionFolder(ctx context.Context, folderID int64) error {
	body := struct {
		FolderID int64 `json:"folder_id"`
	}{folderID}
	return b.call(ctx, "delete_connection_folder", body, nil)
}

func (b *HTTPBackend) GetTags(ctx context.Context, userID int64) ([]Tag, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{userID}

	var tags []Tag
	if err := b.call(ctx, "get_tags", body, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (b *HTTPBackend) CreateTag(ctx context.Context, req CreateTagRequest) (int64, error) {
	var id int64
	if err := b.call(ctx, "create_tag", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *HTTPBackend) UpdateTag(ctx context.Context, req UpdateTagRequest) error {
	return b.call(ctx, "update_tag", req, nil)
}

func (b *HTTPBackend) DeleteTag(ctx context.Context, tagID int64) error {
	body := struct {
		TagID int64 `json:"tag_id"`
	}{tagID}
	return b.call(ctx, "delete_tag", body, nil)
}

func (b *HTTPBackend) AddConnectionTag(ctx context.Context, req AddConnectionTagRequest) error {
	return b.call(ctx, "add_connection_tag", req, nil)
}

func (b *HTTPBackend) RemoveConnectionTag(ctx context.Context, tagID, connectionID int64) error {
	body := struct {
		TagID        int64 `json:"tag_id"`
		ConnectionID int64 `json:"connection_id"`
	}{tagID, connectionID}
	return b.call(ctx, "remove_connection_tag", body, nil)
}

func (b *HTTPBackend) GetAllConnectionTags(ctx context.Context) ([]ConnectionTag, error) {
	var edges []ConnectionTag
	if err := b.call(ctx, "get_all_connection_tags", struct{}{}, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (b *HTTPBackend) GetTagsForConnection(ctx context.Context, connectionID int64) ([]Tag, error) {
	body := struct {
		ConnectionID int64 `json:"connection_id"`
	}{connectionID}

	var tags []Tag
	if err := b.call(ctx, "get_tags_for_connection", body, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (b *HTTPBackend) GetBookmarks(ctx context.Context, userID int64) ([]Bookmark, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{userID}

	var bookmarks []Bookmark
	if err := b.call(ctx, "get_bookmarks", body, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (b *HTTPBackend) ToggleBookmark(ctx context.Context, req BookmarkRequest) error {
	return b.call(ctx, "toggle_bookmark", req, nil)
}

func (b *HTTPBackend) TestConnection(ctx context.Context, connectionID int64) (bool, error) {
	body := struct {
		ConnectionID int64 `json:"connection_id"`
	}{connectionID}

	var ok bool
	if err := b.call(ctx, "test_connection", body, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (b *HTTPBackend) GetSchemas(ctx context.Context, connectionID int64) ([]Schema, error) {
	body := struct {
		ConnectionID int64 `json:"connection_id"`
	}{connectionID}

	var schemas []Schema
	if err := b.call(ctx, "get_schemas", body, &schemas); err != nil {
		return nil, err
	}
	return schemas, nil
}

func (b *HTTPBackend) GetTables(ctx context.Context, connectionID int64, schemaName string) ([]Table, error) {
	body := struct {
		ConnectionID int64  `json:"connection_id"`
		SchemaName   string `json:"schema_name"`
	}{connectionID, schemaName}

	var tables []Table
	if err := b.call(ctx, "get_tables", body, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (b *HTTPBackend) GetViews(ctx context.Context, connectionID int64, schemaName string) ([]View, error) {
	body := struct {
		ConnectionID int64  `json:"connection_id"`
		SchemaName   string `json:"schema_name"`
	}{connectionID, schemaName}

	var views []View
	if err := b.call(ctx, "get_views", body, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (b *HTTPBackend) GetForeignKeys(ctx context.Context, connectionID int64) ([]ForeignKeyRelation, error) {
	body := struct {
		ConnectionID int64 `json:"connection_id"`
	}{connectionID}

	var relations []ForeignKeyRelation
	if err := b.call(ctx, "get_foreign_keys", body, &relations); err != nil {
		return nil, err
	}
	return relations, nil
}

func (b *HTTPBackend) GetSchemaColumns(ctx context.Context, connectionID int64, schemaName string) ([]ColumnDef, error) {
	body := struct {
		ConnectionID int64  `json:"connection_id"`
		SchemaName   string `json:"schema_name"`
	}{connectionID, schemaName}

	var columns []ColumnDef
	if err := b.call(ctx, "get_schema_columns", body, &columns); err != nil {
		return nil, err
	}
	return columns, nil
}

func (b *HTTPBackend) GetDiagrams(ctx context.Context, userID int64) ([]Diagram, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{userID}

	var diagrams []Diagram
	if err := b.call(ctx, "get_diagrams", body, &diagrams); err != nil {
		return nil, err
	}
	return diagrams, nil
}

func (b *HTTPBackend) CreateDiagram(ctx context.Context, req CreateDiagramRequest) (int64, error) {
	var id int64
	if err := b.call(ctx, "create_diagram", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *HTTPBackend) UpdateDiagram(ctx context.Context, req UpdateDiagramRequest) error {
	return b.call(ctx, "update_diagram", req, nil)
}

func (b *HTTPBackend) DeleteDiagram(ctx context.Context, diagramID int64) error {
	body := struct {
		DiagramID int64 `json:"diagram_id"`
	}{diagramID}
	return b.call(ctx, "delete_diagram", body, nil)
}

func (b *HTTPBackend) GetQueryHistory(ctx context.Context, req GetQueryHistoryRequest) ([]QueryHistoryItem, error) {
	var items []QueryHistoryItem
	if err := b.call(ctx, "get_query_history", req, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (b *HTTPBackend) AddQueryHistory(ctx context.Context, req AddQueryHistoryRequest) (int64, error) {
	var id int64
	if err := b.call(ctx, "add_query_history", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *HTTPBackend) GetPinnedQueries(ctx context.Context, userID int64, searchQuery *string, sortAsc bool) ([]PinnedQuery, error) {
	body := struct {
		UserID      int64   `json:"user_id"`
		SearchQuery *string `json:"search_query"`
		SortAsc     bool    `json:"sort_asc"`
	}{userID, searchQuery, sortAsc}

	var queries []PinnedQuery
	if err := b.call(ctx, "get_pinned_queries", body, &queries); err != nil {
		return nil, err
	}
	return queries, nil
}

func (b *HTTPBackend) CreatePinnedQuery(ctx context.Context, req CreatePinnedQueryRequest) (int64, error) {
	var id int64
	if err := b.call(ctx, "create_pinned_query", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *HTTPBackend) UpdatePinnedQuery(ctx context.Context, req UpdatePinnedQueryRequest) error {
	return b.call(ctx, "update_pinned_query", req, nil)
}

func (b *HTTPBackend) DeletePinnedQuery(ctx context.Context, pinnedQueryID int64) error {
	body := struct {
		PinnedQueryID int64 `json:"pinned_query_id"`
	}{pinnedQueryID}
	return b.call(ctx, "delete_pinned_query", body, nil)
}

func (b *HTTPBackend) GetAppUsers(ctx context.Context) ([]AppUser, error) {
	var users []AppUser
	if err := b.call(ctx, "get_app_users", struct{}{}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (b *HTTPBackend) CreateAppUser(ctx context.Context, req CreateAppUserRequest) (int64, error) {
	var id int64
	if err := b.call(ctx, "create_app_user", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *HTTPBackend) UpdateAppUser(ctx context.Context, req UpdateAppUserRequest) error {
	return b.call(ctx, "update_app_user", req, nil)
}

func (b *HTTPBackend) DeleteAppUser(ctx context.Context, userID int64) error {
	body := struct {
		UserID int64 `json:"user_id"`
	}{userID}
	return b.call(ctx, "delete_app_user", body, nil)
}

func (b *HTTPBackend) CreateAppUserLog(ctx context.Context, req CreateAppUserLogRequest) (int64, error) {
	var id int64
	if err := b.call(ctx, "create_app_user_log", req, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *HTTPBackend) GetAppUserLogs(ctx context.Context, userID int64) ([]AppUserLog, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{userID}

	var logs []AppUserLog
	if err := b.call(ctx, "get_app_user_logs", body, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (b *HTTPBackend) GetUserStatistics(ctx context.Context, userID int64) (*UserStatistics, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{userID}

	var stats UserStatistics
	if err := b.call(ctx, "get_user_statistics", body, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
