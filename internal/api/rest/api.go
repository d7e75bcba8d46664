package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/CameronXie/storefront/internal/api/rest/middlewares"
	"github.com/CameronXie/storefront/internal/api/rest/response"
)

const DefaultRequestTimeout = 30 * time.Second

type RouterConfig struct {
	GraphQLHandler http.Handler
	Middlewares    []middlewares.Middleware
	RequestTimeout time.Duration
}

// NewRouterWithHandlers initializes a chi router with routes defined by the given RouterConfig.
// Middlewares run before routing, so preflight requests never reach a route.
func NewRouterWithHandlers(cfg *RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	for _, m := range cfg.Middlewares {
		router.Use(m.Handle)
	}
	router.Use(chiMiddleware.Recoverer)
	router.Use(chiMiddleware.Timeout(timeout))

	router.Get("/", response.Healthy)
	router.Get("/health", response.Healthy)
	router.Method(http.MethodPost, "/graphql", cfg.GraphQLHandler)

	return router
}
