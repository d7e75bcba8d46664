package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/CameronXie/storefront/internal/api/rest/response"
)

const (
	allowAnyOrigin = "*"

	allowedMethods = "GET, POST, OPTIONS"
	allowedHeaders = "Content-Type, Authorization"

	originNotAllowedMessage = "This origin is not allowed."
)

// CORSMiddleware allows cross-origin requests from a fixed set of domains and answers preflight requests.
// A request is allowed when its Origin or Host is listed. Requests without an Origin are not cross-origin and pass through.
type CORSMiddleware struct {
	allowAll bool
	allowed  map[string]struct{}
	logger   *slog.Logger
}

// NewCORSMiddleware returns a CORS middleware for the given domains. "*" allows every origin.
func NewCORSMiddleware(domains []string, logger *slog.Logger) Middleware {
	m := &CORSMiddleware{
		allowed: make(map[string]struct{}, len(domains)),
		logger:  logger,
	}

	for _, d := range domains {
		d = strings.TrimSpace(d)
		if d == allowAnyOrigin {
			m.allowAll = true
			continue
		}
		if d != "" {
			m.allowed[d] = struct{}{}
		}
	}

	return m
}

// Handle sets the CORS headers, rejects unknown origins with 403 and ends preflight requests with 204.
func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !m.isAllowed(origin, r.Host) {
			m.logger.WarnContext(r.Context(), "cors_origin_rejected", "origin", origin, "host", r.Host)
			response.JSONErrorResponse(w, http.StatusForbidden, "Forbidden", originNotAllowedMessage)
			return
		}

		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", allowedMethods)
		h.Set("Access-Control-Allow-Headers", allowedHeaders)
		h.Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *CORSMiddleware) isAllowed(origin, host string) bool {
	if m.allowAll {
		return true
	}

	if _, ok := m.allowed[origin]; ok {
		return true
	}

	_, ok := m.allowed[host]
	return ok
}
