package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flouswise/finance/internal/model"
)

// RatioCalculator derives the four key financial ratios from the totals.
type RatioCalculator struct{}

func NewRatioCalculator() *RatioCalculator {
	return &RatioCalculator{}
}

func (c *RatioCalculator) Calculate(userID string, t Totals, now time.Time) model.Ratios {
	debtToIncome := percent(t.TotalDebt, t.AnnualIncome())
	savingsRate := percent(t.MonthlyIncome.Sub(t.MonthlyExpenses), t.MonthlyIncome)
	emergencyMonths := safeDiv(t.EmergencyFund, t.MonthlyExpenses)
	expenseToIncome := percent(t.MonthlyExpenses, t.MonthlyIncome)

	return model.Ratios{
		UserID:                userID,
		DebtToIncomeRatio:     debtToIncome.InexactFloat64(),
		DebtToIncomeStatus:    DebtToIncomeStatus(debtToIncome),
		SavingsRate:           savingsRate.InexactFloat64(),
		SavingsRateStatus:     SavingsRateStatus(savingsRate),
		EmergencyFundMonths:   emergencyMonths.InexactFloat64(),
		EmergencyFundStatus:   EmergencyFundStatus(emergencyMonths),
		ExpenseToIncomeRatio:  expenseToIncome.InexactFloat64(),
		ExpenseToIncomeStatus: ExpenseToIncomeStatus(expenseToIncome),
		CalculatedAt:          now,
	}
}

func DebtToIncomeStatus(pct decimal.Decimal) string {
	switch {
	case pct.LessThan(d("200")):
		return model.RatioStatusGood
	case pct.LessThan(d("300")):
		return model.RatioStatusWarning
	default:
		return model.RatioStatusCritical
	}
}

func SavingsRateStatus(pct decimal.Decimal) string {
	switch {
	case pct.GreaterThanOrEqual(d("15")):
		return model.RatioStatusGood
	case pct.GreaterThanOrEqual(d("10")):
		return model.RatioStatusWarning
	default:
		return model.RatioStatusCritical
	}
}

func EmergencyFundStatus(months decimal.Decimal) string {
	switch {
	case months.GreaterThanOrEqual(d("3")):
		return model.RatioStatusGood
	case months.GreaterThanOrEqual(d("1")):
		return model.RatioStatusWarning
	default:
		return model.RatioStatusCritical
	}
}

func ExpenseToIncomeStatus(pct decimal.Decimal) string {
	switch {
	case pct.LessThanOrEqual(d("80")):
		return model.RatioStatusGood
	case pct.LessThanOrEqual(d("90")):
		return model.RatioStatusWarning
	default:
		return model.RatioStatusCritical
	}
}
