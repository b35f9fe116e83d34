// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/vendora/internal/platform/apperr"
	"github.com/taibuivan/vendora/internal/platform/constants"
	"github.com/taibuivan/vendora/internal/platform/ctxutil"
	"github.com/taibuivan/vendora/internal/platform/respond"
	"github.com/taibuivan/vendora/internal/platform/sec"
)

// SessionResolver resolves an opaque session token into an authenticated identity.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject mocks during unit
// testing. The resolver owns the session-store lookup and the expiry check;
// the middleware owns the transport concerns (cookie extraction, status codes,
// context injection).
//
// # Error Contract
//
// ResolveToken returns an [apperr.AppError]: INVALID_TOKEN when the token is
// unknown to the store, EXPIRED_TOKEN when the session's expiry is in the
// past. Both map to HTTP 403.
type SessionResolver interface {
	ResolveToken(ctx context.Context, token string) (*sec.Identity, error)
}

// Authenticate is the authentication gate for protected routes.
//
// # Flow
//  1. Read the session token from the 'token' cookie (trimmed).
//  2. If absent, abort with HTTP 401 Unauthorized.
//  3. Resolve the token via the [SessionResolver] (one store lookup).
//  4. On failure (unknown or expired token), abort with HTTP 403.
//  5. Inject the [*sec.Identity] into the request context and proceed.
//
// # Usage
//
// Mount on protected route groups only — public catalogue reads never pay the
// store lookup. The check is stateless per request: no session affinity, no
// caching beyond the store's own consistency guarantees.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || strings.TrimSpace(cookie.Value) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Missing session token"))
				return
			}
			token := strings.TrimSpace(cookie.Value)

			// ── 2. Session Resolution ─────────────────────────────────────────
			identity, err := resolver.ResolveToken(request.Context(), token)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
