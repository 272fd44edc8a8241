package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	usersdomain "livestock-invest-go/internal/domain/users"
	"livestock-invest-go/pkg/logger"

	"go.uber.org/zap/zapcore"
)

func TestRequestLoggerRecordsAuthenticatedUser(t *testing.T) {
	users := stubUsers{
		"investor": {ID: "investor", Role: usersdomain.RoleInvestor, Status: usersdomain.StatusActive},
	}
	tokenAuth, tokens := newTestAuth(t, users)
	raw, _, err := tokens.Issue(users["investor"])
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var buf bytes.Buffer
	log := logger.New(&buf, zapcore.InfoLevel, "json")
	handler := RequestLogger(log)(tokenAuth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	handler.ServeHTTP(httptest.NewRecorder(), func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		return req
	}())

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["user_id"] != "investor" {
		t.Fatalf("expected user_id investor, got %v", entry["user_id"])
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Fatalf("expected status 418, got %v", entry["status"])
	}
	if entry["path"] != "/api/dashboard" {
		t.Fatalf("unexpected path %v", entry["path"])
	}
}

func TestRequestLoggerServerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, zapcore.InfoLevel, "json")
	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Fatalf("expected error level entry, got %s", buf.String())
	}
	if strings.Contains(buf.String(), "user_id") {
		t.Fatalf("expected no user_id for anonymous request, got %s", buf.String())
	}
}
