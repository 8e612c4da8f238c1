package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flouswise/finance/internal/apperror"
)

func TestRespondJSON_Success(t *testing.T) {
	rr := httptest.NewRecorder()

	data := map[string]string{"message": "success"}
	respondJSON(rr, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rr.Body.String(), "success")
}

func TestRespondJSON_EmptyData(t *testing.T) {
	rr := httptest.NewRecorder()

	respondJSON(rr, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String()) // nil data results in no body
}

func TestRespondJSON_Array(t *testing.T) {
	rr := httptest.NewRecorder()

	respondJSON(rr, http.StatusOK, []string{"a", "b", "c"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `["a","b","c"]`)
}

func TestRespondAppError(t *testing.T) {
	rr := httptest.NewRecorder()

	respondAppError(rr, apperror.BadRequest("invalid request body"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, rr.Body.String())
}

func TestRespondServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "profile not found",
			err:        apperror.ProfileNotFound(),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"financial profile not found"}`,
		},
		{
			name:       "profile exists",
			err:        apperror.ProfileExists(),
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"financial profile already exists"}`,
		},
		{
			name:       "analytics missing",
			err:        apperror.AnalyticsNotFound("health score"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"health score not yet calculated"}`,
		},
		{
			name:       "validation keeps the field",
			err:        apperror.ValidationError("months", "must be between 1 and 120"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"must be between 1 and 120","field":"months"}`,
		},
		{
			name:       "wrapped app error",
			err:        fmt.Errorf("loading: %w", apperror.ProfileNotFound()),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"financial profile not found"}`,
		},
		{
			name:       "wrapped sentinel",
			err:        fmt.Errorf("parsing months: %w", apperror.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"parsing months: validation error"}`,
		},
		{
			name:       "internal details are hidden",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"an internal error occurred"}`,
		},
		{
			name:       "internal app error",
			err:        apperror.Internal(errors.New("disk full on db-1")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"an internal error occurred"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)

			respondServiceError(rr, req, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestParseMonths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"?months=12", 12, false},
		{"?months=-3", -3, false},
		{"?months=six", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/analytics/net-worth"+tt.query, nil)

			got, err := parseMonths(req)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperror.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
