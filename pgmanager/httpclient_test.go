// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package pgmanager

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/megaredb/pg-manager/internal/auth"
)

type capturedCall struct {
	path   string
	header http.Header
	body   map[string]any
}

// newCaptureServer records every request and answers with the given JSON.
func newCaptureServer(t *testing.T, response string) (*httptest.Server, *[]capturedCall) {
	t.Helper()
	var calls []capturedCall
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		calls = append(calls, capturedCall{path: r.URL.Path, header: r.Header.Clone(), body: body})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestCreateConnectionWireFormat(t *testing.T) {
	srv, calls := newCaptureServer(t, "11")
	backend := NewHTTPBackend(srv.URL, nil, nil, nil)

	id, err := backend.CreateConnection(context.Background(), CreateConnectionRequest{
		UserID:         7,
		ConnectionName: "prod",
		Host:           "db.example.com",
		DBName:         "app",
		DBUser:         "svc",
		DBPassword:     "enc:opaque-blob",
	})
	require.NoError(t, err)
	require.Equal(t, int64(11), id)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	require.Equal(t, "/api/create_connection", call.path)
	require.Equal(t, "application/json", call.header.Get("Content-Type"))

	// The credential travels as db_password; the client-side name must not leak.
	require.Equal(t, "enc:opaque-blob", call.body["db_password"])
	require.NotContains(t, call.body, "db_password_encrypted")
	// Optional fields are explicit nulls, not omitted.
	require.Contains(t, call.body, "port")
	require.Nil(t, call.body["port"])
}

func TestBearerTokenHeader(t *testing.T) {
	srv, calls := newCaptureServer(t, "[]")
	secret := "test-secret"
	token, err := auth.NewToken(secret, 7, "tester", time.Hour)
	require.NoError(t, err)

	backend := NewHTTPBackend(srv.URL, func(ctx context.Context) (string, error) {
		return token, nil
	}, nil, nil)

	_, err = backend.GetConnections(context.Background(), 7, nil)
	require.NoError(t, err)

	header := (*calls)[0].header.Get("Authorization")
	require.Equal(t, "Bearer "+token, header)

	claims, err := auth.ParseToken(secret, token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "tester", claims.Username)
}

func TestNoTokenNoAuthorizationHeader(t *testing.T) {
	srv, calls := newCaptureServer(t, "[]")
	backend := NewHTTPBackend(srv.URL, func(ctx context.Context) (string, error) {
		return "", nil
	}, nil, nil)

	_, err := backend.GetConnections(context.Background(), 7, nil)
	require.NoError(t, err)

	require.Empty(t, (*calls)[0].header.Get("Authorization"))
}

func TestContextTokenOverridesSessionToken(t *testing.T) {
	srv, calls := newCaptureServer(t, "[]")
	backend := NewHTTPBackend(srv.URL, func(ctx context.Context) (string, error) {
		return "session-token", nil
	}, nil, nil)

	ctx := auth.SetToken(context.Background(), "override-token")
	_, err := backend.GetConnections(ctx, 7, nil)
	require.NoError(t, err)

	require.Equal(t, "Bearer override-token", (*calls)[0].header.Get("Authorization"))
}

func TestVerifyCredentialsNullResponse(t *testing.T) {
	srv, _ := newCaptureServer(t, "null")
	backend := NewHTTPBackend(srv.URL, nil, nil, nil)

	result, err := backend.VerifyCredentials(context.Background(), "tester", "wrong")

	require.NoError(t, err)
	require.Nil(t, result)
}

func TestVerifyCredentialsSuccess(t *testing.T) {
	srv, calls := newCaptureServer(t, `{"user":{"user_id":7,"username":"tester","role":null},"token":"tok"}`)
	backend := NewHTTPBackend(srv.URL, nil, nil, nil)

	result, err := backend.VerifyCredentials(context.Background(), "tester", "secret")

	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, int64(7), result.User.UserID)
	require.Equal(t, "tok", result.Token)

	require.Equal(t, "/api/verify_user_credentials", (*calls)[0].path)
	require.Equal(t, "tester", (*calls)[0].body["username"])
	require.Equal(t, "secret", (*calls)[0].body["password"])
}

func TestErrorStatusCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "connection limit reached", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	backend := NewHTTPBackend(srv.URL, nil, nil, nil)

	_, err := backend.GetConnections(context.Background(), 7, nil)

	require.Error(t, err)
	require.ErrorContains(t, err, "status 500")
	require.ErrorContains(t, err, "connection limit reached")
}

func TestGetQueryHistoryWireFormat(t *testing.T) {
	srv, calls := newCaptureServer(t, "[]")
	backend := NewHTTPBackend(srv.URL, nil, nil, nil)

	status := "all"
	sortDesc := true
	_, err := backend.GetQueryHistory(context.Background(), GetQueryHistoryRequest{
		UserID:       7,
		Limit:        20,
		Offset:       40,
		StatusFilter: &status,
		SortDesc:     &sortDesc,
	})
	require.NoError(t, err)

	body := (*calls)[0].body
	require.Equal(t, float64(40), body["offset"])
	require.Equal(t, "all", body["status_filter"])
	// Unset optionals are sent as explicit nulls; the backend distinguishes
	// null from empty string for dates and search.
	require.Contains(t, body, "search_query")
	require.Nil(t, body["search_query"])
	require.Contains(t, body, "start_date")
	require.Nil(t, body["start_date"])
}

func TestValidateRejectsIncompleteRequest(t *testing.T) {
	err := Validate(CreateConnectionRequest{ConnectionName: "prod"})
	require.Error(t, err)

	err = Validate(CreateConnectionRequest{
		UserID:         7,
		ConnectionName: "prod",
		Host:           "db.example.com",
		DBName:         "app",
		DBUser:         "svc",
		DBPassword:     "enc:blob",
	})
	require.NoError(t, err)

	err = Validate(AddQueryHistoryRequest{ConnectionID: 1, QueryText: "select 1", Status: "pending"})
	require.Error(t, err)
}
