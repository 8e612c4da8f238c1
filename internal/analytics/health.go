package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flouswise/finance/internal/model"
)

// Component weights of the overall score. They sum to 1.
var (
	weightIncomeStability   = decimal.RequireFromString("0.20")
	weightExpenseManagement = decimal.RequireFromString("0.20")
	weightDebtHealth        = decimal.RequireFromString("0.20")
	weightEmergencyFund     = decimal.RequireFromString("0.25")
	weightSavingsRate       = decimal.RequireFromString("0.15")
)

// MaxRecommendations bounds the recommendation list of a health score.
const MaxRecommendations = 3

// Recommendation templates.
const (
	RecommendReduceSpending = "Your expenses are very high relative to income. Focus on reducing non-essential spending."
	RecommendEmergencyFund  = "Build your emergency fund to cover at least 3-6 months of expenses."
	RecommendSaveMore       = "Aim to save at least 10-20% of your monthly income."
	RecommendDebtStrategy   = "Your debt level is high. Consider a debt reduction strategy like the debt snowball or avalanche method."
	RecommendKeepGoing      = "You're doing well! Continue maintaining good financial habits."
)

type threshold struct {
	limit decimal.Decimal
	score int
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Expense/income ratio, inclusive upper bounds.
var expenseBands = []threshold{
	{d("0.70"), 100},
	{d("0.80"), 80},
	{d("0.90"), 60},
	{d("1.00"), 40},
}

// Debt as a percentage of annual income, exclusive upper bounds.
var debtBands = []threshold{
	{d("100"), 90},
	{d("200"), 70},
	{d("300"), 50},
	{d("400"), 30},
}

// Months of expenses covered, inclusive lower bounds.
var emergencyBands = []threshold{
	{d("6"), 100},
	{d("3"), 75},
	{d("1"), 50},
}

// Savings rate percentage, inclusive lower bounds.
var savingsBands = []threshold{
	{d("20"), 100},
	{d("15"), 80},
	{d("10"), 60},
	{d("5"), 40},
}

// HealthScorer computes the weighted financial health score.
type HealthScorer struct{}

func NewHealthScorer() *HealthScorer {
	return &HealthScorer{}
}

// Score builds the complete health score document for a profile.
func (s *HealthScorer) Score(p *model.Profile, t Totals, now time.Time) model.HealthScore {
	c := s.Components(p, t)
	overall := Overall(c)
	return model.HealthScore{
		UserID:           p.UserID,
		OverallScore:     overall,
		Status:           HealthStatus(overall),
		HealthComponents: c,
		Recommendations:  Recommendations(t),
		CalculatedAt:     now,
	}
}

func (s *HealthScorer) Components(p *model.Profile, t Totals) model.HealthComponents {
	return model.HealthComponents{
		IncomeStability:   IncomeStabilityScore(p.Income.IncomeStability),
		ExpenseManagement: ExpenseManagementScore(t),
		DebtHealth:        DebtHealthScore(t),
		EmergencyFund:     EmergencyFundScore(t),
		SavingsRate:       SavingsRateScore(t),
	}
}

// Overall is the weighted sum of the components, truncated toward zero.
func Overall(c model.HealthComponents) int {
	sum := decimal.NewFromInt(int64(c.IncomeStability)).Mul(weightIncomeStability).
		Add(decimal.NewFromInt(int64(c.ExpenseManagement)).Mul(weightExpenseManagement)).
		Add(decimal.NewFromInt(int64(c.DebtHealth)).Mul(weightDebtHealth)).
		Add(decimal.NewFromInt(int64(c.EmergencyFund)).Mul(weightEmergencyFund)).
		Add(decimal.NewFromInt(int64(c.SavingsRate)).Mul(weightSavingsRate))
	return int(sum.IntPart())
}

func HealthStatus(overall int) string {
	switch {
	case overall >= 80:
		return model.HealthStatusExcellent
	case overall >= 60:
		return model.HealthStatusGood
	case overall >= 40:
		return model.HealthStatusFair
	default:
		return model.HealthStatusPoor
	}
}

func IncomeStabilityScore(label string) int {
	switch label {
	case model.StabilityVeryStable:
		return 100
	case model.StabilityMostlyStable:
		return 80
	case model.StabilityVariable:
		return 60
	case model.StabilityHighlyVariable:
		return 40
	default:
		return 50
	}
}

func ExpenseManagementScore(t Totals) int {
	if t.MonthlyIncome.IsZero() {
		return 0
	}
	ratio := t.MonthlyExpenses.Div(t.MonthlyIncome)
	for _, b := range expenseBands {
		if ratio.LessThanOrEqual(b.limit) {
			return b.score
		}
	}
	return 20
}

func DebtHealthScore(t Totals) int {
	annual := t.AnnualIncome()
	if annual.IsZero() {
		if t.TotalDebt.IsPositive() {
			return 0
		}
		return 100
	}
	ratio := percent(t.TotalDebt, annual)
	if ratio.IsZero() {
		return 100
	}
	for _, b := range debtBands {
		if ratio.LessThan(b.limit) {
			return b.score
		}
	}
	return 10
}

func EmergencyFundScore(t Totals) int {
	if t.MonthlyExpenses.IsZero() {
		if t.EmergencyFund.IsPositive() {
			return 100
		}
		return 0
	}
	months := t.EmergencyFund.Div(t.MonthlyExpenses)
	for _, b := range emergencyBands {
		if months.GreaterThanOrEqual(b.limit) {
			return b.score
		}
	}
	if months.IsPositive() {
		return 25
	}
	return 0
}

func SavingsRateScore(t Totals) int {
	if t.MonthlyIncome.IsZero() {
		return 0
	}
	rate := percent(t.MonthlyIncome.Sub(t.MonthlyExpenses), t.MonthlyIncome)
	for _, b := range savingsBands {
		if rate.GreaterThanOrEqual(b.limit) {
			return b.score
		}
	}
	if rate.IsPositive() {
		return 20
	}
	return 0
}

// Recommendations returns up to MaxRecommendations advice strings in trigger order,
// or a single encouragement when nothing triggers.
func Recommendations(t Totals) []string {
	var recs []string

	income := t.MonthlyIncome
	if !income.IsZero() {
		if t.MonthlyExpenses.Div(income).GreaterThan(d("0.90")) {
			recs = append(recs, RecommendReduceSpending)
		}
		if safeDiv(t.EmergencyFund, t.MonthlyExpenses).LessThan(d("3")) {
			recs = append(recs, RecommendEmergencyFund)
		}
		if percent(income.Sub(t.MonthlyExpenses), income).LessThan(d("10")) {
			recs = append(recs, RecommendSaveMore)
		}
	}
	if t.TotalDebt.GreaterThan(t.AnnualIncome().Mul(decimal.NewFromInt(2))) {
		recs = append(recs, RecommendDebtStrategy)
	}

	if len(recs) == 0 {
		return []string{RecommendKeepGoing}
	}
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
