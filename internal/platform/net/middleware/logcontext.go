package middleware

import (
	"net/http"

	"slotwatch/internal/platform/logger"
	pnet "slotwatch/internal/platform/net"
)

// LogContext copies the request id into the logger's context keys so that
// logger.C picks it up downstream. Mount after RequestID
func LogContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if reqID := pnet.RequestID(ctx); reqID != "" {
				ctx = logger.WithRequest(ctx, reqID, pnet.RunID(ctx))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
