// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgmanager

import (
	"github.com/go-playground/validator/v10"
)

// Request payloads for backend mutations. Field names follow the backend
// wire format; optional fields are pointers so that "absent" marshals as an
// explicit null rather than an empty string.

var validate = validator.New()

// Validate checks a request payload against its validate struct tags.
// A validation failure counts as a write failure: the caller must not issue
// the remote call.
func Validate(req any) error {
	return validate.Struct(req)
}

// LoginResult is the response of a successful credentials verification
type LoginResult struct {
	User  AppUser `json:"user"`
	Token string  `json:"token"`
}

// CreateConnectionRequest creates a new saved connection. DBPassword carries
// the value the client keeps under db_password_encrypted; the wire name is
// db_password and the original key must not appear in the payload.
type CreateConnectionRequest struct {
	UserID         int64   `json:"user_id" validate:"required"`
	ConnectionName string  `json:"connection_name" validate:"required"`
	Host           string  `json:"host" validate:"required"`
	Port           *int64  `json:"port"`
	DBName         string  `json:"db_name" validate:"required"`
	DBUser         string  `json:"db_user" validate:"required"`
	DBPassword     string  `json:"db_password" validate:"required"`
	SSLMode        *string `json:"ssl_mode"`
	FolderID       *int64  `json:"folder_id"`
}

// UpdateConnectionRequest updates an existing connection. A nil DBPassword
// keeps the stored credentials unchanged.
type UpdateConnectionRequest struct {
	ConnectionID   int64   `json:"connection_id" validate:"required"`
	ConnectionName string  `json:"connection_name" validate:"required"`
	Host           string  `json:"host" validate:"required"`
	Port           *int64  `json:"port"`
	DBName         string  `json:"db_name" validate:"required"`
	DBUser         string  `json:"db_user" validate:"required"`
	DBPassword     *string `json:"db_password"`
	SSLMode        *string `json:"ssl_mode"`
	FolderID       *int64  `json:"folder_id"`
}

// CreateFolderRequest creates a connection folder
type CreateFolderRequest struct {
	UserID     int64  `json:"user_id" validate:"required"`
	FolderName string `json:"folder_name" validate:"required"`
}

// UpdateFolderRequest renames a connection folder
type UpdateFolderRequest struct {
	FolderID   int64  `json:"folder_id" validate:"required"`
	FolderName string `json:"folder_name" validate:"required"`
}

// CreateTagRequest creates a tag
type CreateTagRequest struct {
	UserID   int64   `json:"user_id" validate:"required"`
	TagName  string  `json:"tag_name" validate:"required"`
	ColorHex *string `json:"color_hex"`
}

// UpdateTagRequest renames or recolors a tag
type UpdateTagRequest struct {
	TagID    int64   `json:"tag_id" validate:"required"`
	TagName  string  `json:"tag_name" validate:"required"`
	ColorHex *string `json:"color_hex"`
}

// AddConnectionTagRequest attaches a tag to a connection
type AddConnectionTagRequest struct {
	TagID        int64 `json:"tag_id" validate:"required"`
	ConnectionID int64 `json:"connection_id" validate:"required"`
}

// BookmarkRequest identifies a schema object by its 4-tuple. The server
// decides whether a toggle adds or removes the bookmark.
type BookmarkRequest struct {
	ConnectionID int64  `json:"connection_id" validate:"required"`
	SchemaName   string `json:"schema_name" validate:"required"`
	ObjectName   string `json:"object_name" validate:"required"`
	ObjectType   string `json:"object_type" validate:"required"`
}

// CreateDiagramRequest saves a new diagram
type CreateDiagramRequest struct {
	ConnectionID   int64  `json:"connection_id" validate:"required"`
	DiagramName    string `json:"diagram_name" validate:"required"`
	DefinitionJSON string `json:"definition_json" validate:"required"`
}

// UpdateDiagramRequest replaces a diagram's name and definition
type UpdateDiagramRequest struct {
	DiagramID      int64  `json:"diagram_id" validate:"required"`
	DiagramName    string `json:"diagram_name" validate:"required"`
	DefinitionJSON string `json:"definition_json" validate:"required"`
}

// CreatePinnedQueryRequest pins a query
type CreatePinnedQueryRequest struct {
	ConnectionID int64   `json:"connection_id" validate:"required"`
	QueryName    string  `json:"query_name" validate:"required"`
	QueryText    string  `json:"query_text" validate:"required"`
	Description  *string `json:"description"`
}

// UpdatePinnedQueryRequest renames a pinned query or edits its description
type UpdatePinnedQueryRequest struct {
	PinnedQueryID int64   `json:"pinned_query_id" validate:"required"`
	QueryName     string  `json:"query_name" validate:"required"`
	Description   *string `json:"description"`
}

// GetQueryHistoryRequest is the view descriptor sent for a history page.
// Date strings use a space separator, never the ISO "T"; absent optionals
// are explicit nulls because the backend distinguishes null from "".
type GetQueryHistoryRequest struct {
	UserID       int64   `json:"user_id" validate:"required"`
	Limit        int64   `json:"limit"`
	Offset       int64   `json:"offset"`
	SearchQuery  *string `json:"search_query"`
	StatusFilter *string `json:"status_filter"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	SortDesc     *bool   `json:"sort_desc"`
}

// AddQueryHistoryRequest appends one query execution to the history
type AddQueryHistoryRequest struct {
	ConnectionID    int64   `json:"connection_id" validate:"required"`
	QueryText       string  `json:"query_text" validate:"required"`
	Status          string  `json:"status" validate:"required,oneof=success error"`
	ExecutionTimeMs *int64  `json:"execution_time_ms"`
	ErrorMessage    *string `json:"error_message"`
}

// CreateAppUserRequest registers an application user
type CreateAppUserRequest struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Role     *string `json:"role"`
}

// UpdateAppUserRequest updates an application user; a nil Password keeps the
// stored hash unchanged.
type UpdateAppUserRequest struct {
	UserID   int64   `json:"user_id" validate:"required"`
	Username string  `json:"username" validate:"required"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// CreateAppUserLogRequest appends one activity-log entry
type CreateAppUserLogRequest struct {
	UserID     int64   `json:"user_id" validate:"required"`
	ActionType string  `json:"action_type" validate:"required"`
	Details    *string `json:"details"`
}
