package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/flouswise/finance/internal/apperror"
	"github.com/flouswise/finance/internal/logger"
)

// ErrorResponse represents a JSON error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondAppError writes a JSON error response from an AppError.
// It extracts the status code and message from the error.
func respondAppError(w http.ResponseWriter, err *apperror.AppError) {
	resp := ErrorResponse{
		Error: err.Message,
		Field: err.Field,
	}
	respondJSON(w, err.StatusCode, resp)
}

// respondServiceError maps a service error to its response. Errors without an
// HTTP meaning are logged and reported as 500 with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.GetStatusCode(err)
	if status < http.StatusInternalServerError {
		resp := ErrorResponse{Error: apperror.GetMessage(err)}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			resp.Field = appErr.Field
		}
		respondJSON(w, status, resp)
		return
	}

	logger.FromContext(r.Context()).Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	respondAppError(w, apperror.Internal(err))
}

func parseMonths(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("months")
	if raw == "" {
		return 0, nil
	}
	months, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ValidationError("months", "must be an integer")
	}
	return months, nil
}
