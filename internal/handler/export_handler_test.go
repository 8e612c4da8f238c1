package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/flouswise/finance/internal/apperror"
)

// MockExportService implements ExportServiceInterface for testing
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) AnalyticsReportPDF(ctx context.Context, userID string) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExportService) NetWorthCSV(ctx context.Context, userID string, monthsBack int) ([]byte, error) {
	args := m.Called(ctx, userID, monthsBack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestExportHandler_AnalyticsReportPDF(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mockService := new(MockExportService)
		mockService.On("AnalyticsReportPDF", mock.Anything, "user-1").Return([]byte("%PDF-1.3 test"), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/report/pdf", nil).WithContext(ctxWithUserID("user-1"))
		w := httptest.NewRecorder()
		NewExportHandler(mockService).AnalyticsReportPDF(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=\"flouswise_health_report_")
		assert.Equal(t, "13", w.Header().Get("Content-Length"))
		assert.Equal(t, "%PDF-1.3 test", w.Body.String())
	})

	t.Run("analytics missing", func(t *testing.T) {
		t.Parallel()
		mockService := new(MockExportService)
		mockService.On("AnalyticsReportPDF", mock.Anything, "user-1").Return(nil, apperror.AnalyticsNotFound("health score"))

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/report/pdf", nil).WithContext(ctxWithUserID("user-1"))
		w := httptest.NewRecorder()
		NewExportHandler(mockService).AnalyticsReportPDF(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})
}

func TestExportHandler_NetWorthCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		setupMock  func(*MockExportService)
		wantStatus int
	}{
		{
			name:  "success",
			query: "?months=3",
			setupMock: func(m *MockExportService) {
				m.On("NetWorthCSV", mock.Anything, "user-1", 3).Return([]byte("Date,Net Worth\n"), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad months",
			query:      "?months=x",
			setupMock:  func(m *MockExportService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "zero selects the default window",
			query: "?months=0",
			setupMock: func(m *MockExportService) {
				m.On("NetWorthCSV", mock.Anything, "user-1", 0).Return([]byte("Date,Net Worth\n"), nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockService := new(MockExportService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/analytics/net-worth/export/csv"+tt.query, nil)
			req = req.WithContext(ctxWithUserID("user-1"))
			w := httptest.NewRecorder()
			NewExportHandler(mockService).NetWorthCSV(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
				assert.Contains(t, w.Body.String(), "Date,Net Worth")
			}
			mockService.AssertExpectations(t)
		})
	}
}
