package middleware

import (
	"context"
	"net/http"
	"time"

	"ownerapi/pkg/logger"

	"github.com/google/uuid"
)

type contextKey string

const RequestIDKey contextKey = "requestID"

// RequestIDMiddleware tags every request with a generated id, echoes
// it in the X-Request-ID header, and writes an access log line once
// the handler returns.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		logger.Sugar.Infow("request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}
