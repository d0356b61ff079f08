// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"devlink/internal/models"
	"devlink/internal/repository"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// UserKey is the context key for the authenticated user.
	UserKey contextKey = "user"
	// RequestIDKey is the context key for the request id.
	RequestIDKey contextKey = "request_id"
)

// credentialsDetail is the single message sent for every authentication
// failure, whatever the cause.
const credentialsDetail = "Could not validate credentials"

// ErrUnauthenticated is returned by Resolve when the request carries no
// usable identity: no header, a malformed or expired token, or a token
// naming an account that no longer exists.
var ErrUnauthenticated = errors.New("unauthenticated")

// TokenResolver turns a bearer token into a user id.
type TokenResolver interface {
	ResolveToken(token string) (int64, error)
}

// UserFinder looks up users by id.
type UserFinder interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Authenticator resolves bearer tokens to users. It keeps no state between
// requests.
type Authenticator struct {
	tokens TokenResolver
	users  UserFinder
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens TokenResolver, users UserFinder) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Resolve authenticates an Authorization header value. Any authentication
// failure wraps ErrUnauthenticated; other errors are storage failures.
func (a *Authenticator) Resolve(ctx context.Context, header string) (*models.User, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, ErrUnauthenticated
	}

	id, err := a.tokens.ResolveToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := a.users.FindUserByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d no longer exists", ErrUnauthenticated, id)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// RequireUser rejects requests without a valid bearer token with 401 and
// stores the resolved user in the request context for downstream handlers.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.Resolve(r.Context(), r.Header.Get("Authorization"))
		if errors.Is(err, ErrUnauthenticated) {
			slog.Debug("authentication failed", "path", r.URL.Path, "error", err)
			models.NewUnauthorizedError(credentialsDetail).WriteJSON(w)
			return
		}
		if err != nil {
			slog.Error("authentication lookup failed",
				"error", err,
				"request_id", GetRequestID(r.Context()),
			)
			models.NewInternalError().WriteJSON(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromCtx returns the authenticated user, or nil outside RequireUser.
func UserFromCtx(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserKey).(*models.User)
	return user
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
