package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"livestock-invest-go/internal/auth"
	usersdomain "livestock-invest-go/internal/domain/users"
	"livestock-invest-go/pkg/logger"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
	userSlotKey
)

type UserLoader interface {
	Get(ctx context.Context, userID string) (*usersdomain.User, error)
}

type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

type TokenAuth struct {
	tokens TokenParser
	users  UserLoader
	log    logger.Logger
}

func NewTokenAuth(tokens TokenParser, users UserLoader, log logger.Logger) *TokenAuth {
	return &TokenAuth{tokens: tokens, users: users, log: log}
}

// Middleware verifies the bearer token and reloads its user, so approval
// and rejection take effect on the next request.
func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		claims, err := a.tokens.Parse(token)
		if err != nil {
			unauthorized(w)
			return
		}

		user, err := a.users.Get(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, usersdomain.ErrUserNotFound) {
				unauthorized(w)
				return
			}
			a.log.InternalError("auth: load user failed", err, "user_id", claims.Subject)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if !user.IsActive() {
			writeError(w, http.StatusForbidden, "account_inactive", usersdomain.AccessMessage(user.Role, user.Status))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
	})
}

func RequireRole(roles ...usersdomain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "forbidden", "forbidden")
		})
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user usersdomain.User) context.Context {
	if slot, ok := ctx.Value(userSlotKey).(*userSlot); ok {
		slot.userID = user.ID
	}
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (usersdomain.User, bool) {
	user, ok := ctx.Value(userKey).(usersdomain.User)
	if !ok || user.ID == "" {
		return usersdomain.User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
