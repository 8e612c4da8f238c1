package handler

import (
	"context"

	"github.com/flouswise/finance/internal/model"
)

// ProfileServiceInterface for handler testing
type ProfileServiceInterface interface {
	Create(ctx context.Context, userID string, profile *model.Profile) (*model.Profile, error)
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, profile *model.Profile) (*model.Profile, error)
	Delete(ctx context.Context, userID string) error
	DashboardSummary(ctx context.Context, userID string) (*model.DashboardSummary, error)
}

// AnalyticsServiceInterface for handler testing
type AnalyticsServiceInterface interface {
	Recalculate(ctx context.Context, userID string) error
	GetHealthScore(ctx context.Context, userID string) (*model.HealthScore, error)
	GetRatios(ctx context.Context, userID string) (*model.Ratios, error)
	GetSpending(ctx context.Context, userID string) (*model.SpendingBreakdown, error)
	GetNetWorthTrend(ctx context.Context, userID string, monthsBack int) ([]model.NetWorthDataPoint, error)
	GetCompleteAnalytics(ctx context.Context, userID string) (*model.Analytics, error)
}

// ExportServiceInterface for handler testing
type ExportServiceInterface interface {
	AnalyticsReportPDF(ctx context.Context, userID string) ([]byte, error)
	NetWorthCSV(ctx context.Context, userID string, monthsBack int) ([]byte, error)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}
