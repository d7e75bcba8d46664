package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLoggerMiddleware logs one http_request record per request.
type RequestLoggerMiddleware struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewRequestLoggerMiddleware returns a request logging middleware.
func NewRequestLoggerMiddleware(logger *slog.Logger) Middleware {
	return &RequestLoggerMiddleware{
		logger: logger,
		now:    time.Now,
	}
}

// Handle records method, path, status, duration and the request id set by chi's RequestID middleware.
func (m *RequestLoggerMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := m.now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		m.logger.Log(
			r.Context(),
			level,
			"http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration_ms", m.now().Sub(start).Milliseconds(),
			"bytes", ww.BytesWritten(),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}
