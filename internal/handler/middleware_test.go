package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flouswise/finance/internal/logger"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": sub,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authHeader func(t *testing.T) string
		wantCode   int
		wantUserID string
	}{
		{
			name:       "missing authorization header",
			authHeader: func(t *testing.T) string { return "" },
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "invalid authorization format - no bearer",
			authHeader: func(t *testing.T) string { return "invalid-token" },
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "invalid authorization format - wrong prefix",
			authHeader: func(t *testing.T) string { return "Basic invalid-token" },
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: func(t *testing.T) string { return "Bearer invalid-jwt-token" },
			wantCode:   http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, "other-secret", validClaims("user-1"))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, jwt.MapClaims{
					"sub": "user-1",
					"exp": time.Now().Add(-time.Minute).Unix(),
				})
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "missing subject",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "valid token",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, validClaims("0b6a7c1e-user"))
			},
			wantCode:   http.StatusOK,
			wantUserID: "0b6a7c1e-user",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nextCalled := false
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotUserID = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(testSecret)(next)
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			if h := tt.authHeader(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCode == http.StatusOK, nextCalled)
			assert.Equal(t, tt.wantUserID, gotUserID)
		})
	}
}

func TestAuthMiddleware_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims("user-1")).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestGetUserID_NoValue(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetUserID(req.Context()))
}

func TestRequestContext(t *testing.T) {
	t.Parallel()

	var sawRequestID bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawRequestID = middleware.GetReqID(r.Context()) != ""
		assert.NotNil(t, logger.FromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})

	handler := middleware.RequestID(RequestContext(next))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, sawRequestID)
}
