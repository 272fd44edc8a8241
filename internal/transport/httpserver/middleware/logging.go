package middleware

import (
	"context"
	"net/http"
	"time"

	"livestock-invest-go/pkg/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// userSlot lets the auth middleware report the caller back to the request
// logger, which runs outside it.
type userSlot struct {
	userID string
}

// RequestLogger logs one line per request. Server errors log at error level.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			slot := &userSlot{}

			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), userSlotKey, slot)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []any{
				"request_id", chimw.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"latency", time.Since(start),
				"ip", r.RemoteAddr,
			}
			if slot.userID != "" {
				fields = append(fields, "user_id", slot.userID)
			}

			if status >= http.StatusInternalServerError {
				log.Error("http request failed", fields...)
				return
			}
			log.Info("http request completed", fields...)
		})
	}
}
