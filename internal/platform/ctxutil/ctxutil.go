// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores the per-request values the middleware chain attaches
// to [context.Context]: the correlation id, the request logger and the admin
// claims of the caller.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/catalog/internal/platform/sec"
)

// key is unexported so no other package can read or overwrite these values.
type key int

const (
	keyRequestID key = iota
	keyLogger
	keyAdmin
)

// AnonymousActor is reported by [Actor] when no admin claims are attached,
// which is the case for the public contact form.
const AnonymousActor = "anonymous"

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID returns the request ID, or "" outside an HTTP request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithAdmin attaches the verified bearer token claims.
func WithAdmin(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, keyAdmin, claims)
}

// Admin returns the verified claims, or nil for unauthenticated requests.
func Admin(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(keyAdmin).(*sec.AuthClaims)
	return claims
}

// Actor names the operator behind a request for audit log lines: the token
// username, else its subject id, else [AnonymousActor].
func Actor(ctx context.Context) string {
	claims := Admin(ctx)
	switch {
	case claims == nil:
		return AnonymousActor
	case claims.Username != "":
		return claims.Username
	case claims.UserID != "":
		return claims.UserID
	default:
		return AnonymousActor
	}
}
