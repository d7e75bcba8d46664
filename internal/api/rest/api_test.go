package rest

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CameronXie/storefront/internal/api/rest/middlewares"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	return NewRouterWithHandlers(&RouterConfig{
		GraphQLHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"data":{}}`))
		}),
		Middlewares: []middlewares.Middleware{
			middlewares.NewRequestLoggerMiddleware(logger),
			middlewares.NewCORSMiddleware([]string{"https://shop.example.com"}, logger),
		},
	})
}

func TestNewRouterWithHandlers(t *testing.T) {
	cases := map[string]struct {
		method             string
		path               string
		origin             string
		expectedStatusCode int
		expectedBody       string
	}{
		"should report healthy on root": {
			method:             http.MethodGet,
			path:               "/",
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"status":"healthy"}`,
		},
		"should report healthy on health": {
			method:             http.MethodGet,
			path:               "/health",
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"status":"healthy"}`,
		},
		"should route graphql posts": {
			method:             http.MethodPost,
			path:               "/graphql",
			expectedStatusCode: http.StatusOK,
			expectedBody:       `{"data":{}}`,
		},
		"should reject get on graphql": {
			method:             http.MethodGet,
			path:               "/graphql",
			expectedStatusCode: http.StatusMethodNotAllowed,
		},
		"should answer preflight before routing": {
			method:             http.MethodOptions,
			path:               "/graphql",
			origin:             "https://shop.example.com",
			expectedStatusCode: http.StatusNoContent,
		},
		"should return not found for unknown route": {
			method:             http.MethodGet,
			path:               "/unknown",
			expectedStatusCode: http.StatusNotFound,
		},
	}

	router := newTestRouter()

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			request := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			if tc.origin != "" {
				request.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, request)

			assert.Equal(t, tc.expectedStatusCode, w.Code)
			if tc.expectedBody != "" {
				assert.Equal(t, tc.expectedBody, strings.TrimSpace(w.Body.String()))
			}
		})
	}
}
