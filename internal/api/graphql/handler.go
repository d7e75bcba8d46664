package graphql

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/CameronXie/storefront/internal/api/rest/response"
)

const maxRequestBodyBytes = 1 << 20

// Request is the JSON body of a GraphQL request.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
	OperationName string         `json:"operationName,omitempty"`
}

// Handler executes GraphQL requests against a schema.
type Handler struct {
	schema graphql.Schema
	logger *slog.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(schema graphql.Schema, logger *slog.Logger) *Handler {
	return &Handler{
		schema: schema,
		logger: logger,
	}
}

// ServeHTTP handles POST /graphql. Malformed bodies get a 400; everything else,
// including resolver errors, is answered with 200 and the GraphQL result.
// A result with errors carries no data, so clients never see a partial response.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request

	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			response.JSONErrorResponse(w, http.StatusBadRequest, "Invalid request body", "request body is empty")
			return
		}

		response.JSONErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		response.JSONErrorResponse(w, http.StatusBadRequest, "Invalid request", "query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	if result.HasErrors() {
		messages := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			messages = append(messages, e.Message)
		}
		h.logger.InfoContext(r.Context(), "graphql_errors", "operation", req.OperationName, "errors", messages)
		result.Data = nil
	}

	response.JSONResponse(w, http.StatusOK, result)
}
