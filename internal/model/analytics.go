package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Health score status labels.
const (
	HealthStatusExcellent = "Excellent"
	HealthStatusGood      = "Good"
	HealthStatusFair      = "Fair"
	HealthStatusPoor      = "Poor"
)

// Ratio status bands.
const (
	RatioStatusGood     = "Good"
	RatioStatusWarning  = "Warning"
	RatioStatusCritical = "Critical"
)

// HealthComponents holds the five component scores, each in [0,100].
type HealthComponents struct {
	IncomeStability   int `db:"income_stability_score" json:"incomeStability"`
	ExpenseManagement int `db:"expense_management_score" json:"expenseManagement"`
	DebtHealth        int `db:"debt_health_score" json:"debtHealth"`
	EmergencyFund     int `db:"emergency_fund_score" json:"emergencyFund"`
	SavingsRate       int `db:"savings_rate_score" json:"savingsRate"`
}

type HealthScore struct {
	UserID           string `db:"user_id" json:"userId"`
	OverallScore     int    `db:"overall_score" json:"overallScore"`
	Status           string `db:"status" json:"status"`
	HealthComponents `json:"componentScores"`
	Recommendations  pq.StringArray `db:"recommendations" json:"topRecommendations"`
	CalculatedAt     time.Time      `db:"calculated_at" json:"calculatedAt"`
}

type Ratios struct {
	UserID                string    `db:"user_id" json:"userId"`
	DebtToIncomeRatio     float64   `db:"debt_to_income_ratio" json:"debtToIncomeRatio"`
	DebtToIncomeStatus    string    `db:"debt_to_income_status" json:"debtToIncomeStatus"`
	SavingsRate           float64   `db:"savings_rate" json:"savingsRate"`
	SavingsRateStatus     string    `db:"savings_rate_status" json:"savingsRateStatus"`
	EmergencyFundMonths   float64   `db:"emergency_fund_months" json:"emergencyFundMonths"`
	EmergencyFundStatus   string    `db:"emergency_fund_status" json:"emergencyFundStatus"`
	ExpenseToIncomeRatio  float64   `db:"expense_to_income_ratio" json:"expenseToIncomeRatio"`
	ExpenseToIncomeStatus string    `db:"expense_to_income_status" json:"expenseToIncomeStatus"`
	CalculatedAt          time.Time `db:"calculated_at" json:"calculatedAt"`
}

// Spending category names, in their canonical order.
const (
	CategoryDebtPayments   = "Debt Payments"
	CategoryFood           = "Food"
	CategoryTransportation = "Transportation"
	CategoryHousing        = "Housing"
	CategoryUtilities      = "Utilities"
	CategoryHealthcare     = "Healthcare"
	CategoryEntertainment  = "Entertainment"
	CategoryEducation      = "Education"
)

// SpendingCategories lists the eight categories in the order used for tie breaking.
var SpendingCategories = []string{
	CategoryDebtPayments,
	CategoryFood,
	CategoryTransportation,
	CategoryHousing,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryEntertainment,
	CategoryEducation,
}

type SpendingBreakdown struct {
	UserID        string              `db:"user_id" json:"userId"`
	Categories    CategoryAmounts     `db:"categories" json:"categories"`
	Percentages   CategoryPercentages `db:"percentages" json:"percentages"`
	TopCategories pq.StringArray      `db:"top_categories" json:"topCategories"`
	Insights      pq.StringArray      `db:"insights" json:"insights"`
	TotalExpenses decimal.Decimal     `db:"total_expenses" json:"totalExpenses"`
	CalculatedAt  time.Time           `db:"calculated_at" json:"calculatedAt"`
}

// NetWorthSnapshot is one point of the append-only net worth history.
type NetWorthSnapshot struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"userId"`
	NetWorth    decimal.Decimal `db:"net_worth" json:"netWorth"`
	TotalAssets decimal.Decimal `db:"total_assets" json:"totalAssets"`
	TotalDebt   decimal.Decimal `db:"total_debt" json:"totalDebt"`
	RecordedAt  time.Time       `db:"recorded_at" json:"recordedAt"`
}

// NetWorthDataPoint is the trend representation of a snapshot.
type NetWorthDataPoint struct {
	Date     time.Time       `json:"date"`
	NetWorth decimal.Decimal `json:"netWorth"`
}

// Analytics bundles every derived artifact of a user.
type Analytics struct {
	HealthScore   *HealthScore        `json:"financialHealthScore"`
	Ratios        *Ratios             `json:"financialRatios"`
	Spending      *SpendingBreakdown  `json:"spendingByCategory"`
	NetWorthTrend []NetWorthDataPoint `json:"netWorthTrend"`
}

type DashboardSummary struct {
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses      decimal.Decimal `json:"monthlyExpenses"`
	NetSurplusOrDeficit  decimal.Decimal `json:"netSurplusOrDeficit"`
	FinancialHealthScore int             `json:"financialHealthScore"`
}

// CategoryAmounts maps a spending category to its monthly amount. Stored as JSONB.
type CategoryAmounts map[string]decimal.Decimal

func (c CategoryAmounts) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CategoryAmounts) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// CategoryPercentages maps a spending category to its share of total spending. Stored as JSONB.
type CategoryPercentages map[string]float64

func (c CategoryPercentages) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *CategoryPercentages) Scan(src interface{}) error {
	return scanJSON(src, c)
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported JSONB source type")
	}
}
