package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/flouswise/finance/internal/model"
)

func TestRatioCalculator_Calculate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := testProfile(9000, 5000, 3200, 5000, 20000)

	got := NewRatioCalculator().Calculate(p.UserID, Aggregate(p), now)

	assert.Equal(t, "user-1", got.UserID)
	assert.InDelta(t, 91.11, got.ExpenseToIncomeRatio, 0.01)
	assert.Equal(t, model.RatioStatusCritical, got.ExpenseToIncomeStatus)
	assert.InDelta(t, 8.89, got.SavingsRate, 0.01)
	assert.Equal(t, model.RatioStatusCritical, got.SavingsRateStatus)
	assert.InDelta(t, 0.61, got.EmergencyFundMonths, 0.01)
	assert.Equal(t, model.RatioStatusCritical, got.EmergencyFundStatus)
	assert.InDelta(t, 18.52, got.DebtToIncomeRatio, 0.01)
	assert.Equal(t, model.RatioStatusGood, got.DebtToIncomeStatus)
	assert.Equal(t, now, got.CalculatedAt)
}

func TestRatioCalculator_ZeroDenominators(t *testing.T) {
	t.Parallel()

	got := NewRatioCalculator().Calculate("user-empty", Aggregate(&model.Profile{}), time.Now())

	assert.Zero(t, got.DebtToIncomeRatio)
	assert.Zero(t, got.SavingsRate)
	assert.Zero(t, got.EmergencyFundMonths)
	assert.Zero(t, got.ExpenseToIncomeRatio)
	assert.Equal(t, model.RatioStatusGood, got.DebtToIncomeStatus)
	assert.Equal(t, model.RatioStatusCritical, got.SavingsRateStatus)
	assert.Equal(t, model.RatioStatusCritical, got.EmergencyFundStatus)
	assert.Equal(t, model.RatioStatusGood, got.ExpenseToIncomeStatus)
}

func TestRatioStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status func(string) string
		value  string
		want   string
	}{
		{"debt below 200", wrap(DebtToIncomeStatus), "199.99", model.RatioStatusGood},
		{"debt at 200", wrap(DebtToIncomeStatus), "200", model.RatioStatusWarning},
		{"debt at 300", wrap(DebtToIncomeStatus), "300", model.RatioStatusCritical},
		{"savings at 15", wrap(SavingsRateStatus), "15", model.RatioStatusGood},
		{"savings at 10", wrap(SavingsRateStatus), "10", model.RatioStatusWarning},
		{"savings below 10", wrap(SavingsRateStatus), "9.99", model.RatioStatusCritical},
		{"negative savings", wrap(SavingsRateStatus), "-20", model.RatioStatusCritical},
		{"three months", wrap(EmergencyFundStatus), "3", model.RatioStatusGood},
		{"one month", wrap(EmergencyFundStatus), "1", model.RatioStatusWarning},
		{"under a month", wrap(EmergencyFundStatus), "0.5", model.RatioStatusCritical},
		{"expenses at 80", wrap(ExpenseToIncomeStatus), "80", model.RatioStatusGood},
		{"expenses at 90", wrap(ExpenseToIncomeStatus), "90", model.RatioStatusWarning},
		{"expenses above 90", wrap(ExpenseToIncomeStatus), "90.01", model.RatioStatusCritical},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.status(tt.value))
		})
	}
}

func wrap(fn func(decimal.Decimal) string) func(string) string {
	return func(s string) string { return fn(decimal.RequireFromString(s)) }
}
