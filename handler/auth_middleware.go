package handler

import (
	"context"
	"errors"
	"net/http"
	"venue-review-api/common"
	"venue-review-api/model"
	"venue-review-api/schema"
	"venue-review-api/service"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok
}

// AuthMiddleware resolves the X-Authorization token to a user id.
type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) authenticate(r *http.Request) (int, *common.AppError) {
	v, err := schema.Validate(schema.FromHeader(r.Header, model.AuthHeader), model.TokenSchema)
	if err != nil {
		return 0, common.NewAppError(http.StatusUnauthorized, "Authorization header is required", nil)
	}
	token, _ := v.String("x-authorization")

	userID, err := m.auth.Authorize(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return 0, common.NewAppError(http.StatusUnauthorized, "Invalid token", nil)
		}
		return 0, common.NewAppError(http.StatusUnauthorized, "Could not verify token", err)
	}
	return userID, nil
}

// RequireAuth rejects requests without a valid token with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, appErr := m.authenticate(r)
		if appErr != nil {
			appErr.Send(w)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth identifies the caller when a valid token is sent and lets anonymous requests through.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, appErr := m.authenticate(r); appErr == nil {
			r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
		}
		next.ServeHTTP(w, r)
	})
}
