package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flouswise/finance/internal/apperror"
	"github.com/flouswise/finance/internal/model"
)

// MockReportSource for testing
type MockReportSource struct {
	mock.Mock
}

func (m *MockReportSource) GetHealthScore(ctx context.Context, userID string) (*model.HealthScore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthScore), args.Error(1)
}

func (m *MockReportSource) GetRatios(ctx context.Context, userID string) (*model.Ratios, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ratios), args.Error(1)
}

func (m *MockReportSource) GetSpending(ctx context.Context, userID string) (*model.SpendingBreakdown, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SpendingBreakdown), args.Error(1)
}

func (m *MockReportSource) GetNetWorthTrend(ctx context.Context, userID string, monthsBack int) ([]model.NetWorthDataPoint, error) {
	args := m.Called(ctx, userID, monthsBack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NetWorthDataPoint), args.Error(1)
}

func reportFixtures() (*model.HealthScore, *model.Ratios, *model.SpendingBreakdown) {
	score := &model.HealthScore{
		UserID:       "user-1",
		OverallScore: 58,
		Status:       model.HealthStatusFair,
		HealthComponents: model.HealthComponents{
			IncomeStability: 100, ExpenseManagement: 40, DebtHealth: 90, EmergencyFund: 25, SavingsRate: 40,
		},
		Recommendations: pq.StringArray{"Aim to save at least 10-20% of your monthly income."},
		CalculatedAt:    fixedNow,
	}
	ratios := &model.Ratios{
		UserID:              "user-1",
		DebtToIncomeRatio:   18.52,
		DebtToIncomeStatus:  model.RatioStatusGood,
		SavingsRate:         8.89,
		SavingsRateStatus:   model.RatioStatusCritical,
		EmergencyFundMonths: 0.61,
		EmergencyFundStatus: model.RatioStatusCritical,
	}
	spending := &model.SpendingBreakdown{
		UserID: "user-1",
		Categories: model.CategoryAmounts{
			model.CategoryHousing: decimal.NewFromInt(5000),
			model.CategoryFood:    decimal.NewFromInt(3200),
		},
		Percentages: model.CategoryPercentages{
			model.CategoryHousing: 60.98,
			model.CategoryFood:    39.02,
		},
		Insights:      pq.StringArray{"Housing takes 61% of your spending - look for cheaper housing or a roommate"},
		TotalExpenses: decimal.NewFromInt(8200),
	}
	return score, ratios, spending
}

func TestExportService_AnalyticsReportPDF(t *testing.T) {
	t.Parallel()

	src := new(MockReportSource)
	profiles := new(MockProfileSource)
	score, ratios, spending := reportFixtures()

	profile := sampleProfile("user-1")
	profile.BasicInformation.FullName = "Youssef Amrani"
	profiles.On("Get", mock.Anything, "user-1").Return(profile, nil)
	src.On("GetHealthScore", mock.Anything, "user-1").Return(score, nil)
	src.On("GetRatios", mock.Anything, "user-1").Return(ratios, nil)
	src.On("GetSpending", mock.Anything, "user-1").Return(spending, nil)

	svc := NewExportService(src, profiles)
	got, err := svc.AnalyticsReportPDF(context.Background(), "user-1")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "%PDF"))
	src.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestExportService_AnalyticsReportPDF_NotCalculated(t *testing.T) {
	t.Parallel()

	src := new(MockReportSource)
	profiles := new(MockProfileSource)
	profiles.On("Get", mock.Anything, "user-1").Return(sampleProfile("user-1"), nil)
	src.On("GetHealthScore", mock.Anything, "user-1").Return(nil, apperror.AnalyticsNotFound("health score"))

	svc := NewExportService(src, profiles)
	_, err := svc.AnalyticsReportPDF(context.Background(), "user-1")

	assert.ErrorIs(t, err, apperror.ErrAnalyticsNotFound)
	src.AssertNotCalled(t, "GetRatios", mock.Anything, mock.Anything)
}

func TestRenderAnalyticsReport_NoInsightsOrRecommendations(t *testing.T) {
	t.Parallel()

	score, ratios, spending := reportFixtures()
	score.Recommendations = nil
	spending.Insights = nil

	got, err := RenderAnalyticsReport(AnalyticsReportData{
		Currency:    "USD",
		HealthScore: score,
		Ratios:      ratios,
		Spending:    spending,
		GeneratedAt: time.Now(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestExportService_NetWorthCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		points    []model.NetWorthDataPoint
		err       error
		wantLines []string
		wantErr   bool
	}{
		{
			name: "trend rows",
			points: []model.NetWorthDataPoint{
				{Date: time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC), NetWorth: decimal.NewFromInt(-15000)},
				{Date: time.Date(2026, 2, 2, 3, 0, 0, 0, time.UTC), NetWorth: decimal.NewFromFloat(-14250.5)},
			},
			wantLines: []string{
				"Date,Net Worth",
				"2026-01-02T03:00:00Z,-15000.00",
				"2026-02-02T03:00:00Z,-14250.50",
			},
		},
		{
			name:      "empty history",
			points:    []model.NetWorthDataPoint{},
			wantLines: []string{"Date,Net Worth"},
		},
		{
			name:    "invalid window",
			err:     apperror.ValidationError("months", "must be between 1 and 120"),
			wantErr: true,
		},
		{
			name:    "store error",
			err:     errors.New("db down"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := new(MockReportSource)
			if tt.err != nil {
				src.On("GetNetWorthTrend", mock.Anything, "user-1", 3).Return(nil, tt.err)
			} else {
				src.On("GetNetWorthTrend", mock.Anything, "user-1", 3).Return(tt.points, nil)
			}

			svc := NewExportService(src, new(MockProfileSource))
			got, err := svc.NetWorthCSV(context.Background(), "user-1", 3)

			if tt.wantErr {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(string(got)), "\n")
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestCurrencyLine(t *testing.T) {
	t.Parallel()

	spending := &model.SpendingBreakdown{TotalExpenses: decimal.NewFromInt(9200)}

	tests := []struct {
		name   string
		data   AnalyticsReportData
		want   string
		wantOK bool
	}{
		{
			name:   "dirham report",
			data:   AnalyticsReportData{Currency: "MAD", Spending: spending},
			want:   "Amounts in Moroccan Dirham. Monthly spending: 9,200.00 MAD",
			wantOK: true,
		},
		{
			name:   "euro report",
			data:   AnalyticsReportData{Currency: "EUR", Spending: spending},
			want:   "Amounts in Euro. Monthly spending: 9,200.00 EUR",
			wantOK: true,
		},
		{
			name: "unknown currency",
			data: AnalyticsReportData{Currency: "JPY", Spending: spending},
		},
		{
			name: "no spending breakdown",
			data: AnalyticsReportData{Currency: "MAD"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := currencyLine(tt.data)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
