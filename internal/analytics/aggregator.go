// Package analytics computes the derived financial artifacts of a profile: health
// score, ratios, spending breakdown and net worth snapshots. Every function here is
// pure; persistence is handled by the service layer.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/flouswise/finance/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Totals are the monthly aggregates every analytic is derived from.
type Totals struct {
	MonthlyIncome    decimal.Decimal
	FixedExpenses    decimal.Decimal
	VariableExpenses decimal.Decimal
	MonthlyExpenses  decimal.Decimal
	TotalDebt        decimal.Decimal
	TotalAssets      decimal.Decimal
	EmergencyFund    decimal.Decimal
}

// AnnualIncome is twelve months of income.
func (t Totals) AnnualIncome() decimal.Decimal {
	return t.MonthlyIncome.Mul(decimal.NewFromInt(12))
}

// NetWorth is total assets minus total debt.
func (t Totals) NetWorth() decimal.Decimal {
	return t.TotalAssets.Sub(t.TotalDebt)
}

// ProfileTotals converts the aggregates into the cached profile representation.
func (t Totals) ProfileTotals() model.ProfileTotals {
	return model.ProfileTotals{
		MonthlyIncome:    t.MonthlyIncome,
		FixedExpenses:    t.FixedExpenses,
		VariableExpenses: t.VariableExpenses,
		MonthlyExpenses:  t.MonthlyExpenses,
		TotalDebt:        t.TotalDebt,
		TotalAssets:      t.TotalAssets,
		NetWorth:         t.NetWorth(),
	}
}

// Aggregate sums the raw profile fields into monthly totals. Negative inputs are
// summed as given.
func Aggregate(p *model.Profile) Totals {
	fixed := FixedExpenses(p)
	variable := VariableExpenses(p)
	return Totals{
		MonthlyIncome:    MonthlyIncome(p),
		FixedExpenses:    fixed,
		VariableExpenses: variable,
		MonthlyExpenses:  fixed.Add(variable),
		TotalDebt:        TotalDebt(p),
		TotalAssets:      TotalAssets(p),
		EmergencyFund:    model.OrZero(p.AssetsAndSavings.EmergencyFund),
	}
}

// MonthlyIncome is salary, self-employed income and every additional source.
func MonthlyIncome(p *model.Profile) decimal.Decimal {
	in := p.Income
	total := model.Sum(in.MonthlyNetSalary, in.AverageMonthlyIncome)
	for _, src := range in.AdditionalSources {
		total = total.Add(model.OrZero(src.MonthlyAmount))
	}
	return total
}

// MonthlyExpenses is fixed plus variable expenses.
func MonthlyExpenses(p *model.Profile) decimal.Decimal {
	return FixedExpenses(p).Add(VariableExpenses(p))
}

func FixedExpenses(p *model.Profile) decimal.Decimal {
	f := p.FixedExpenses
	total := model.Sum(
		f.Rent, f.PropertyTax, f.HomeInsurance,
		f.Electricity, f.Water, f.Gas, f.Internet, f.FixedPhoneLine,
		f.MobilePhonePlan, f.AdditionalPhones,
		f.CarLoanPayment, f.CarInsurance, f.MonthlyFuel, f.PublicTransportPass, f.Parking, f.MaintenanceReserve,
		f.HealthInsurance, f.LifeInsurance, f.OtherInsurance,
		f.OtherFixedExpensesAmount,
	)
	for _, sub := range f.Subscriptions {
		total = total.Add(model.OrZero(sub.MonthlyCost))
	}
	return total
}

func VariableExpenses(p *model.Profile) decimal.Decimal {
	v := p.VariableExpenses
	return model.Sum(
		v.GroceryShopping, v.EatingOut, v.Coffee, v.FoodDelivery,
		v.Medications, v.DoctorVisits, v.PharmacyItems,
		v.HygieneProducts, v.HaircutsSalon, v.OtherPersonalCare,
		v.ClothingSpending,
		v.SchoolFees, v.SchoolSupplies, v.Tutoring, v.OnlineCourses,
		v.MoviesEvents, v.Hobbies, v.SportsGym, v.OtherEntertainment,
		v.Gifts, v.CharityDonations, v.FamilyGatherings,
	)
}

// TotalDebt is the outstanding amount across all debts.
func TotalDebt(p *model.Profile) decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Debts {
		total = total.Add(model.OrZero(d.TotalAmountOwed))
	}
	return total
}

// MonthlyDebtPayments is the sum of scheduled monthly debt payments.
func MonthlyDebtPayments(p *model.Profile) decimal.Decimal {
	total := decimal.Zero
	for _, d := range p.Debts {
		total = total.Add(model.OrZero(d.MonthlyPayment))
	}
	return total
}

func TotalAssets(p *model.Profile) decimal.Decimal {
	a := p.AssetsAndSavings
	return model.Sum(
		a.BankAccountBalance, a.CashAtHome, a.EmergencyFund, a.OtherLiquidSavings,
		a.CarValue, a.MotorcycleValue, a.PropertyValue,
		a.LaptopValue, a.PhoneValue, a.GoldJewelryValue, a.OtherValuableItemsValue,
		a.Stocks, a.MutualFunds, a.BusinessInvestment, a.Cryptocurrency, a.OtherInvestmentsValue,
	)
}

// safeDiv returns zero when the denominator is zero.
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

func percent(num, den decimal.Decimal) decimal.Decimal {
	return safeDiv(num, den).Mul(hundred)
}
