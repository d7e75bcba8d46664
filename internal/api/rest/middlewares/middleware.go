package middlewares

import "net/http"

// Middleware wraps an http.Handler with cross-cutting behaviour.
type Middleware interface {
	Handle(next http.Handler) http.Handler
}
