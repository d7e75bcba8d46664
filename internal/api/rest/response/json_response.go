package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-GraphQL error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// JSONResponse writes the given data as a JSON response with the specified status code.
func JSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// JSONErrorResponse writes an ErrorResponse with the specified status code.
func JSONErrorResponse(w http.ResponseWriter, statusCode int, err, message string) {
	JSONResponse(w, statusCode, ErrorResponse{Error: err, Message: message})
}

// Healthy writes the health check reply.
func Healthy(w http.ResponseWriter, _ *http.Request) {
	JSONResponse(w, http.StatusOK, HealthResponse{Status: "healthy"})
}
