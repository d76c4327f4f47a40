// Copyright 2025 megaredb
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
)

type contextKey string

const tokenKey contextKey = "token"

// SetToken sets a bearer token in the context. A token set this way
// overrides the session token for the calls made with that context.
func SetToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// GetToken retrieves the bearer token from the context
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
