package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flouswise/finance/internal/model"
)

// TopCategoryCount is how many categories the breakdown ranks.
const TopCategoryCount = 3

type insightRule struct {
	category string
	share    decimal.Decimal // percentage of total spending that must be exceeded
	template string          // receives the rounded percentage
}

var insightRules = []insightRule{
	{model.CategoryDebtPayments, d("30"), "Debt payments consuming %s%% of expenses - priority to eliminate"},
	{model.CategoryFood, d("25"), "Food expenses are high (%s%% of spending) - consider meal planning to reduce costs"},
	{model.CategoryHousing, d("35"), "Housing takes %s%% of your spending - look for cheaper housing or a roommate"},
	{model.CategoryEntertainment, d("15"), "Entertainment is %s%% of your spending - set a monthly cap for leisure"},
}

// SpendingAnalyzer buckets expenses into the fixed spending categories.
type SpendingAnalyzer struct{}

func NewSpendingAnalyzer() *SpendingAnalyzer {
	return &SpendingAnalyzer{}
}

// CategoryTotals returns the monthly amount for every category in canonical order.
func CategoryTotals(p *model.Profile) []decimal.Decimal {
	f := p.FixedExpenses
	v := p.VariableExpenses
	return []decimal.Decimal{
		MonthlyDebtPayments(p),
		model.Sum(v.GroceryShopping, v.EatingOut, v.Coffee, v.FoodDelivery),
		model.Sum(f.MonthlyFuel, f.PublicTransportPass, f.Parking),
		model.Sum(f.Rent, f.PropertyTax, f.HomeInsurance),
		model.Sum(f.Electricity, f.Water, f.Gas, f.Internet),
		model.Sum(v.Medications, v.DoctorVisits, v.PharmacyItems),
		model.Sum(v.MoviesEvents, v.Hobbies, v.SportsGym, v.OtherEntertainment),
		model.Sum(v.SchoolFees, v.SchoolSupplies, v.Tutoring, v.OnlineCourses),
	}
}

func (a *SpendingAnalyzer) Analyze(p *model.Profile, now time.Time) model.SpendingBreakdown {
	amounts := CategoryTotals(p)

	total := decimal.Zero
	for _, amt := range amounts {
		total = total.Add(amt)
	}

	categories := make(model.CategoryAmounts, len(amounts))
	percentages := make(model.CategoryPercentages, len(amounts))
	shares := make(map[string]decimal.Decimal, len(amounts))
	for i, name := range model.SpendingCategories {
		share := percent(amounts[i], total)
		categories[name] = amounts[i]
		percentages[name] = share.InexactFloat64()
		shares[name] = share
	}

	return model.SpendingBreakdown{
		UserID:        p.UserID,
		Categories:    categories,
		Percentages:   percentages,
		TopCategories: topCategories(amounts),
		Insights:      insights(shares, total),
		TotalExpenses: total,
		CalculatedAt:  now,
	}
}

// topCategories ranks categories by amount; equal amounts keep canonical order.
func topCategories(amounts []decimal.Decimal) []string {
	idx := make([]int, len(amounts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return amounts[idx[i]].GreaterThan(amounts[idx[j]])
	})

	n := TopCategoryCount
	if n > len(idx) {
		n = len(idx)
	}
	top := make([]string, n)
	for i := 0; i < n; i++ {
		top[i] = model.SpendingCategories[idx[i]]
	}
	return top
}

func insights(shares map[string]decimal.Decimal, total decimal.Decimal) []string {
	out := []string{}
	if !total.IsPositive() {
		return out
	}
	for _, rule := range insightRules {
		share := shares[rule.category]
		if share.GreaterThan(rule.share) {
			out = append(out, fmt.Sprintf(rule.template, share.Round(0).String()))
		}
	}
	return out
}
