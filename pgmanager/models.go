// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgmanager

// Entity models for backend-owned collections.
// The client holds non-authoritative projections of these; all fields mirror
// the backend wire format and have json struct tags.

// AppUser represents an authenticated application user
type AppUser struct {
	UserID    int64   `json:"user_id"`
	Username  string  `json:"username"`
	Role      *string `json:"role"`
	CreatedAt *string `json:"created_at,omitempty"`
}

// Connection represents a saved database connection.
// DBPasswordEncrypted is an opaque encrypted blob; it is never decrypted
// client-side.
type Connection struct {
	ConnectionID        int64   `json:"connection_id"`
	FolderID            *int64  `json:"folder_id,omitempty"`
	UserID              int64   `json:"user_id"`
	ConnectionName      string  `json:"connection_name"`
	Host                string  `json:"host"`
	Port                *int64  `json:"port,omitempty"`
	DBName              string  `json:"db_name"`
	DBUser              string  `json:"db_user"`
	DBPasswordEncrypted string  `json:"db_password_encrypted"`
	SSLMode             *string `json:"ssl_mode,omitempty"`
}

// ConnectionFolder groups connections for a single user
type ConnectionFolder struct {
	FolderID   int64  `json:"folder_id"`
	UserID     int64  `json:"user_id"`
	FolderName string `json:"folder_name"`
}

// Tag is a user-defined label attachable to connections
type Tag struct {
	TagID    int64   `json:"tag_id"`
	UserID   int64   `json:"user_id"`
	TagName  string  `json:"tag_name"`
	ColorHex *string `json:"color_hex"`
}

// ConnectionTag is an unordered many-to-many edge between a tag and a connection
type ConnectionTag struct {
	TagID        int64 `json:"tag_id"`
	ConnectionID int64 `json:"connection_id"`
}

// Bookmark marks a schema object as bookmarked. Identity is the
// (connection, schema, object name, object type) 4-tuple; BookmarkID is a
// server-side surrogate used only for deletion.
type Bookmark struct {
	BookmarkID   int64  `json:"bookmark_id"`
	ConnectionID int64  `json:"connection_id"`
	SchemaName   string `json:"schema_name"`
	ObjectName   string `json:"object_name"`
	ObjectType   string `json:"object_type"`
}

// Schema is a database schema name as reported by introspection
type Schema struct {
	SchemaName string `json:"schema_name"`
}

// Table is a table within a schema
type Table struct {
	TableName   string `json:"table_name"`
	TableSchema string `json:"table_schema"`
}

// View is a view within a schema
type View struct {
	ViewName   string `json:"view_name"`
	ViewSchema string `json:"view_schema"`
}

// ForeignKeyRelation describes a single foreign-key edge between two columns
type ForeignKeyRelation struct {
	ConstraintName    string `json:"constraint_name"`
	SchemaName        string `json:"schema_name"`
	TableName         string `json:"table_name"`
	ColumnName        string `json:"column_name"`
	ForeignSchemaName string `json:"foreign_schema_name"`
	ForeignTableName  string `json:"foreign_table_name"`
	ForeignColumnName string `json:"foreign_column_name"`
}

// ColumnDef describes a column of a table within a schema
type ColumnDef struct {
	TableName  string `json:"table_name"`
	ColumnName string `json:"column_name"`
	DataType   string `json:"data_type"`
}

// Diagram is a saved ER diagram. DefinitionJSON is an opaque serialized
// layout; the client never parses it.
type Diagram struct {
	DiagramID      int64   `json:"diagram_id"`
	ConnectionID   int64   `json:"connection_id"`
	DiagramName    string  `json:"diagram_name"`
	DefinitionJSON string  `json:"definition_json"`
	CreatedAt      *string `json:"created_at,omitempty"`
}

// QueryHistoryItem is one recorded query execution. History is append-only
// from the client's perspective.
type QueryHistoryItem struct {
	HistoryID       int64   `json:"history_id"`
	ConnectionID    int64   `json:"connection_id"`
	QueryText       string  `json:"query_text"`
	Status          string  `json:"status"` // "success" or "error"
	ExecutionTimeMs *int64  `json:"execution_time_ms,omitempty"`
	ErrorMessage    *string `json:"error_message,omitempty"`
	ExecutedAt      *string `json:"executed_at,omitempty"`
}

// PinnedQuery is a saved query with a name and optional description
type PinnedQuery struct {
	PinnedQueryID int64   `json:"pinned_query_id"`
	ConnectionID  int64   `json:"connection_id"`
	QueryName     string  `json:"query_name"`
	QueryText     string  `json:"query_text"`
	Description   *string `json:"description,omitempty"`
	CreatedAt     *string `json:"created_at,omitempty"`
}

// AppUserLog is one entry of the per-user activity log
type AppUserLog struct {
	LogID      int64   `json:"log_id"`
	UserID     int64   `json:"user_id"`
	ActionType string  `json:"action_type"`
	Details    *string `json:"details"`
	Timestamp  *string `json:"timestamp,omitempty"`
}

// UserStatistics is an aggregate view over a user's stored entities and history
type UserStatistics struct {
	TotalConnections int64   `json:"total_connections"`
	TotalQueries     int64   `json:"total_queries"`
	SuccessQueries   int64   `json:"success_queries"`
	ErrorQueries     int64   `json:"error_queries"`
	PinnedQueries    int64   `json:"pinned_queries"`
	LastLogin        *string `json:"last_login"`
	UserCreatedAt    *string `json:"user_created_at"`
}
