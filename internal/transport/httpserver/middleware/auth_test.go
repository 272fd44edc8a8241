package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"livestock-invest-go/internal/auth"
	usersdomain "livestock-invest-go/internal/domain/users"
	"livestock-invest-go/pkg/logger"
)

type stubUsers map[string]usersdomain.User

func (s stubUsers) Get(ctx context.Context, userID string) (*usersdomain.User, error) {
	user, ok := s[userID]
	if !ok {
		return nil, usersdomain.ErrUserNotFound
	}
	return &user, nil
}

func newTestAuth(t *testing.T, users stubUsers) (*TokenAuth, *auth.Tokens) {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return NewTokenAuth(tokens, users, logger.Nop()), tokens
}

func serve(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestTokenAuthAndRequireRole(t *testing.T) {
	users := stubUsers{
		"admin":    {ID: "admin", Role: usersdomain.RoleAdmin, Status: usersdomain.StatusActive},
		"investor": {ID: "investor", Role: usersdomain.RoleInvestor, Status: usersdomain.StatusActive},
		"pending":  {ID: "pending", Role: usersdomain.RoleBreeder, Status: usersdomain.StatusPending},
	}
	tokenAuth, tokens := newTestAuth(t, users)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, found := UserFromContext(r.Context()); !found {
			t.Errorf("expected user in context")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	handler := tokenAuth.Middleware(RequireRole(usersdomain.RoleAdmin)(ok))

	issue := func(id string) string {
		raw, _, err := tokens.Issue(users[id])
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		return raw
	}

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "garbage", http.StatusUnauthorized},
		{"admin", issue("admin"), http.StatusNoContent},
		{"wrong role", issue("investor"), http.StatusForbidden},
		{"pending account", issue("pending"), http.StatusForbidden},
	}
	for _, tc := range cases {
		if rec := serve(handler, tc.token); rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, rec.Code)
		}
	}

	adminToken := issue("admin")
	delete(users, "admin")
	if rec := serve(handler, adminToken); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", rec.Code)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := NewCORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/cycles", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/cycles", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow origin for unknown origin, got %q", got)
	}
}

func TestCORSWildcard(t *testing.T) {
	handler := NewCORS([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://anywhere.example" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
