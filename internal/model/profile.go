package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/flouswise/finance/pkg/datetime"
)

// Profile is the complete financial-data document for one user. Every money field
// is optional; a nil amount is read as zero through OrZero.
type Profile struct {
	UserID string `json:"userId"`

	BasicInformation     BasicInformation     `json:"basicInformation"`
	Income               Income               `json:"income"`
	Dependents           Dependents           `json:"dependents"`
	FixedExpenses        FixedExpenses        `json:"fixedExpenses"`
	VariableExpenses     VariableExpenses     `json:"variableExpenses"`
	Debts                []Debt               `json:"debts"`
	AssetsAndSavings     AssetsAndSavings     `json:"assetsAndSavings"`
	Skills               Skills               `json:"skills"`
	FinancialGoals       []FinancialGoal      `json:"financialGoals"`
	MoroccanSpecificInfo MoroccanSpecificInfo `json:"moroccanSpecificInfo"`
	RiskProfile          RiskProfile          `json:"riskProfile"`
	AdditionalContext    string               `json:"additionalContext,omitempty"`

	Currency          string `json:"currency"`
	IsProfileComplete bool   `json:"isProfileComplete"`

	// Totals is recomputed on every write and ignored on input.
	Totals ProfileTotals `json:"totals"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileTotals caches the aggregated monthly figures of a profile.
type ProfileTotals struct {
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome"`
	FixedExpenses    decimal.Decimal `json:"fixedExpenses"`
	VariableExpenses decimal.Decimal `json:"variableExpenses"`
	MonthlyExpenses  decimal.Decimal `json:"monthlyExpenses"`
	TotalDebt        decimal.Decimal `json:"totalDebt"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}

type BasicInformation struct {
	FullName              string           `json:"fullName,omitempty"`
	Age                   *int             `json:"age,omitempty"`
	Gender                string           `json:"gender,omitempty"`
	City                  string           `json:"city,omitempty"`
	Email                 string           `json:"email,omitempty"`
	LivingStatus          string           `json:"livingStatus,omitempty"`
	HousingType           string           `json:"housingType,omitempty"`
	MonthlyRentOrMortgage *decimal.Decimal `json:"monthlyRentOrMortgage,omitempty"`
	ContractEndDate       *datetime.Date   `json:"contractEndDate,omitempty"`
}

// Income stability labels accepted by the health scorer.
const (
	StabilityVeryStable     = "Very stable"
	StabilityMostlyStable   = "Mostly stable"
	StabilityVariable       = "Variable"
	StabilityHighlyVariable = "Highly variable"
)

type Income struct {
	EmploymentStatus     string                   `json:"employmentStatus,omitempty"`
	Occupation           string                   `json:"occupation,omitempty"`
	MonthlyNetSalary     *decimal.Decimal         `json:"monthlyNetSalary,omitempty"`
	SalaryPaymentDay     *int                     `json:"salaryPaymentDay,omitempty"`
	IncomeStability      string                   `json:"incomeStability,omitempty"`
	WorkHoursPerWeek     *int                     `json:"workHoursPerWeek,omitempty"`
	BusinessType         string                   `json:"businessType,omitempty"`
	AverageMonthlyIncome *decimal.Decimal         `json:"averageMonthlyIncome,omitempty"`
	IncomeVariability    string                   `json:"incomeVariability,omitempty"`
	BusinessExpenses     *decimal.Decimal         `json:"businessExpenses,omitempty"`
	AdditionalSources    []AdditionalIncomeSource `json:"additionalSources,omitempty"`
}

type AdditionalIncomeSource struct {
	SourceName    string           `json:"sourceName,omitempty"`
	MonthlyAmount *decimal.Decimal `json:"monthlyAmount,omitempty"`
	Frequency     string           `json:"frequency,omitempty"`
	Stability     string           `json:"stability,omitempty"`
}

type Dependents struct {
	NumberOfDependents *int              `json:"numberOfDependents,omitempty"`
	DependentPersons   []DependentPerson `json:"dependentPersons,omitempty"`
	SendMoneyToFamily  bool              `json:"sendMoneyToFamily,omitempty"`
	MoneyRecipient     string            `json:"moneyRecipient,omitempty"`
	AmountSent         *decimal.Decimal  `json:"amountSent,omitempty"`
	Frequency          string            `json:"frequency,omitempty"`
	OtherObligations   string            `json:"otherObligations,omitempty"`
}

type DependentPerson struct {
	Relationship         string           `json:"relationship,omitempty"`
	Age                  *int             `json:"age,omitempty"`
	MonthlySupportAmount *decimal.Decimal `json:"monthlySupportAmount,omitempty"`
	Notes                string           `json:"notes,omitempty"`
}

type FixedExpenses struct {
	Rent          *decimal.Decimal `json:"rent,omitempty"`
	PropertyTax   *decimal.Decimal `json:"propertyTax,omitempty"`
	HomeInsurance *decimal.Decimal `json:"homeInsurance,omitempty"`

	Electricity    *decimal.Decimal `json:"electricity,omitempty"`
	Water          *decimal.Decimal `json:"water,omitempty"`
	Gas            *decimal.Decimal `json:"gas,omitempty"`
	Internet       *decimal.Decimal `json:"internet,omitempty"`
	FixedPhoneLine *decimal.Decimal `json:"fixedPhoneLine,omitempty"`

	MobilePhonePlan  *decimal.Decimal `json:"mobilePhonePlan,omitempty"`
	AdditionalPhones *decimal.Decimal `json:"additionalPhones,omitempty"`

	CarLoanPayment      *decimal.Decimal `json:"carLoanPayment,omitempty"`
	CarInsurance        *decimal.Decimal `json:"carInsurance,omitempty"`
	MonthlyFuel         *decimal.Decimal `json:"monthlyFuel,omitempty"`
	PublicTransportPass *decimal.Decimal `json:"publicTransportPass,omitempty"`
	Parking             *decimal.Decimal `json:"parking,omitempty"`
	MaintenanceReserve  *decimal.Decimal `json:"maintenanceReserve,omitempty"`

	HealthInsurance *decimal.Decimal `json:"healthInsurance,omitempty"`
	LifeInsurance   *decimal.Decimal `json:"lifeInsurance,omitempty"`
	OtherInsurance  *decimal.Decimal `json:"otherInsurance,omitempty"`

	Subscriptions []Subscription `json:"subscriptions,omitempty"`

	OtherFixedExpenses       string           `json:"otherFixedExpenses,omitempty"`
	OtherFixedExpensesAmount *decimal.Decimal `json:"otherFixedExpensesAmount,omitempty"`
}

type Subscription struct {
	Name        string           `json:"name,omitempty"`
	MonthlyCost *decimal.Decimal `json:"monthlyCost,omitempty"`
}

type VariableExpenses struct {
	GroceryShopping *decimal.Decimal `json:"groceryShopping,omitempty"`
	EatingOut       *decimal.Decimal `json:"eatingOut,omitempty"`
	Coffee          *decimal.Decimal `json:"coffee,omitempty"`
	FoodDelivery    *decimal.Decimal `json:"foodDelivery,omitempty"`

	Medications         *decimal.Decimal `json:"medications,omitempty"`
	DoctorVisits        *decimal.Decimal `json:"doctorVisits,omitempty"`
	PharmacyItems       *decimal.Decimal `json:"pharmacyItems,omitempty"`
	HasRAMEDOrInsurance bool             `json:"hasRAMEDOrInsurance,omitempty"`

	HygieneProducts   *decimal.Decimal `json:"hygieneProducts,omitempty"`
	HaircutsSalon     *decimal.Decimal `json:"haircutsSalon,omitempty"`
	OtherPersonalCare *decimal.Decimal `json:"otherPersonalCare,omitempty"`

	ClothingSpending *decimal.Decimal `json:"clothingSpending,omitempty"`

	SchoolFees     *decimal.Decimal `json:"schoolFees,omitempty"`
	SchoolSupplies *decimal.Decimal `json:"schoolSupplies,omitempty"`
	Tutoring       *decimal.Decimal `json:"tutoring,omitempty"`
	OnlineCourses  *decimal.Decimal `json:"onlineCourses,omitempty"`

	MoviesEvents       *decimal.Decimal `json:"moviesEvents,omitempty"`
	Hobbies            *decimal.Decimal `json:"hobbies,omitempty"`
	SportsGym          *decimal.Decimal `json:"sportsGym,omitempty"`
	OtherEntertainment *decimal.Decimal `json:"otherEntertainment,omitempty"`

	Gifts            *decimal.Decimal `json:"gifts,omitempty"`
	CharityDonations *decimal.Decimal `json:"charityDonations,omitempty"`
	FamilyGatherings *decimal.Decimal `json:"familyGatherings,omitempty"`
}

type Debt struct {
	DebtType          string           `json:"debtType,omitempty"`
	CreditorName      string           `json:"creditorName,omitempty"`
	TotalAmountOwed   *decimal.Decimal `json:"totalAmountOwed,omitempty"`
	MonthlyPayment    *decimal.Decimal `json:"monthlyPayment,omitempty"`
	InterestRate      *decimal.Decimal `json:"interestRate,omitempty"`
	RemainingPayments *int             `json:"remainingPayments,omitempty"`
	OriginalPurpose   string           `json:"originalPurpose,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

type AssetsAndSavings struct {
	BankAccountBalance *decimal.Decimal `json:"bankAccountBalance,omitempty"`
	CashAtHome         *decimal.Decimal `json:"cashAtHome,omitempty"`
	EmergencyFund      *decimal.Decimal `json:"emergencyFund,omitempty"`
	OtherLiquidSavings *decimal.Decimal `json:"otherLiquidSavings,omitempty"`

	OwnsCar         bool             `json:"ownsCar,omitempty"`
	CarValue        *decimal.Decimal `json:"carValue,omitempty"`
	CarHasLoan      bool             `json:"carHasLoan,omitempty"`
	OwnsMotorcycle  bool             `json:"ownsMotorcycle,omitempty"`
	MotorcycleValue *decimal.Decimal `json:"motorcycleValue,omitempty"`

	OwnsProperty        bool             `json:"ownsProperty,omitempty"`
	PropertyType        string           `json:"propertyType,omitempty"`
	PropertyValue       *decimal.Decimal `json:"propertyValue,omitempty"`
	PropertyHasMortgage bool             `json:"propertyHasMortgage,omitempty"`

	LaptopValue             *decimal.Decimal `json:"laptopValue,omitempty"`
	PhoneValue              *decimal.Decimal `json:"phoneValue,omitempty"`
	GoldJewelryValue        *decimal.Decimal `json:"goldJewelryValue,omitempty"`
	OtherValuableItems      string           `json:"otherValuableItems,omitempty"`
	OtherValuableItemsValue *decimal.Decimal `json:"otherValuableItemsValue,omitempty"`

	Stocks                *decimal.Decimal `json:"stocks,omitempty"`
	MutualFunds           *decimal.Decimal `json:"mutualFunds,omitempty"`
	BusinessInvestment    *decimal.Decimal `json:"businessInvestment,omitempty"`
	Cryptocurrency        *decimal.Decimal `json:"cryptocurrency,omitempty"`
	OtherInvestments      string           `json:"otherInvestments,omitempty"`
	OtherInvestmentsValue *decimal.Decimal `json:"otherInvestmentsValue,omitempty"`
}

type Skills struct {
	CurrentJobSkills         []string         `json:"currentJobSkills,omitempty"`
	HighestEducation         string           `json:"highestEducation,omitempty"`
	YearsOfExperience        *int             `json:"yearsOfExperience,omitempty"`
	CanDrive                 bool             `json:"canDrive,omitempty"`
	LanguagesSpoken          []string         `json:"languagesSpoken,omitempty"`
	WeekdayEveningHours      *int             `json:"weekdayEveningHours,omitempty"`
	WeekendHours             *int             `json:"weekendHours,omitempty"`
	WillingnessForSideIncome string           `json:"willingnessForSideIncome,omitempty"`
	CommuteTimeHours         *decimal.Decimal `json:"commuteTimeHours,omitempty"`
}

type FinancialGoal struct {
	GoalName        string           `json:"goalName,omitempty"`
	GoalType        string           `json:"goalType,omitempty"`
	TargetAmount    *decimal.Decimal `json:"targetAmount,omitempty"`
	TargetDate      *datetime.Date   `json:"targetDate,omitempty"`
	CurrentProgress *decimal.Decimal `json:"currentProgress,omitempty"`
	Priority        string           `json:"priority,omitempty"`
	WhyImportant    string           `json:"whyImportant,omitempty"`
	IsPrimaryGoal   bool             `json:"isPrimaryGoal,omitempty"`
}

type MoroccanSpecificInfo struct {
	ReceivesRAMED           bool             `json:"receivesRAMED,omitempty"`
	ChildrenReceiveTayssir  bool             `json:"childrenReceiveTayssir,omitempty"`
	AppliedForINDH          bool             `json:"appliedForINDH,omitempty"`
	AwareOfHousingSubsidies bool             `json:"awareOfHousingSubsidies,omitempty"`
	RegularCharity          *decimal.Decimal `json:"regularCharity,omitempty"`
	Zakat                   *decimal.Decimal `json:"zakat,omitempty"`
	AdjustForRamadan        bool             `json:"adjustForRamadan,omitempty"`
	PlanForEid              bool             `json:"planForEid,omitempty"`
}

type RiskProfile struct {
	RiskTolerance             string `json:"riskTolerance,omitempty"`
	FinancialStressLevel      string `json:"financialStressLevel,omitempty"`
	BiggestFinancialFear      string `json:"biggestFinancialFear,omitempty"`
	TrackExpenses             string `json:"trackExpenses,omitempty"`
	HasBudget                 string `json:"hasBudget,omitempty"`
	SavesRegularly            string `json:"savesRegularly,omitempty"`
	SavingsPlanAggressiveness string `json:"savingsPlanAggressiveness,omitempty"`
	DebtPayoffPhilosophy      string `json:"debtPayoffPhilosophy,omitempty"`
	InvestmentInterest        string `json:"investmentInterest,omitempty"`
}

// OrZero returns the amount or zero when it was never provided.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// Sum adds optional amounts, treating missing ones as zero.
func Sum(amounts ...*decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(OrZero(a))
	}
	return total
}

// Amount is a convenience for building profiles in code and tests.
func Amount(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}
