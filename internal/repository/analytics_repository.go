package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flouswise/finance/internal/model"
	"github.com/jmoiron/sqlx"
)

// HealthScoreRepository keeps the latest health score of each user.
type HealthScoreRepository struct {
	db *sqlx.DB
}

func NewHealthScoreRepository(db *sqlx.DB) *HealthScoreRepository {
	return &HealthScoreRepository{db: db}
}

func (r *HealthScoreRepository) Upsert(ctx context.Context, userID string, s *model.HealthScore) error {
	s.UserID = userID
	query := `
		INSERT INTO financial_health_scores (user_id, overall_score, status,
			income_stability_score, expense_management_score, debt_health_score,
			emergency_fund_score, savings_rate_score, recommendations, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			status = EXCLUDED.status,
			income_stability_score = EXCLUDED.income_stability_score,
			expense_management_score = EXCLUDED.expense_management_score,
			debt_health_score = EXCLUDED.debt_health_score,
			emergency_fund_score = EXCLUDED.emergency_fund_score,
			savings_rate_score = EXCLUDED.savings_rate_score,
			recommendations = EXCLUDED.recommendations,
			calculated_at = EXCLUDED.calculated_at`
	_, err := execer(ctx, r.db).ExecContext(ctx, query,
		s.UserID, s.OverallScore, s.Status,
		s.IncomeStability, s.ExpenseManagement, s.DebtHealth,
		s.EmergencyFund, s.SavingsRate, s.Recommendations, s.CalculatedAt,
	)
	return err
}

func (r *HealthScoreRepository) Get(ctx context.Context, userID string) (*model.HealthScore, error) {
	var s model.HealthScore
	query := `
		SELECT user_id, overall_score, status, income_stability_score, expense_management_score,
			debt_health_score, emergency_fund_score, savings_rate_score, recommendations, calculated_at
		FROM financial_health_scores WHERE user_id = $1`
	err := r.db.GetContext(ctx, &s, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RatiosRepository keeps the latest financial ratios of each user.
type RatiosRepository struct {
	db *sqlx.DB
}

func NewRatiosRepository(db *sqlx.DB) *RatiosRepository {
	return &RatiosRepository{db: db}
}

func (r *RatiosRepository) Upsert(ctx context.Context, userID string, ratios *model.Ratios) error {
	ratios.UserID = userID
	query := `
		INSERT INTO financial_ratios (user_id, debt_to_income_ratio, debt_to_income_status,
			savings_rate, savings_rate_status, emergency_fund_months, emergency_fund_status,
			expense_to_income_ratio, expense_to_income_status, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			debt_to_income_ratio = EXCLUDED.debt_to_income_ratio,
			debt_to_income_status = EXCLUDED.debt_to_income_status,
			savings_rate = EXCLUDED.savings_rate,
			savings_rate_status = EXCLUDED.savings_rate_status,
			emergency_fund_months = EXCLUDED.emergency_fund_months,
			emergency_fund_status = EXCLUDED.emergency_fund_status,
			expense_to_income_ratio = EXCLUDED.expense_to_income_ratio,
			expense_to_income_status = EXCLUDED.expense_to_income_status,
			calculated_at = EXCLUDED.calculated_at`
	_, err := execer(ctx, r.db).ExecContext(ctx, query,
		ratios.UserID, ratios.DebtToIncomeRatio, ratios.DebtToIncomeStatus,
		ratios.SavingsRate, ratios.SavingsRateStatus, ratios.EmergencyFundMonths, ratios.EmergencyFundStatus,
		ratios.ExpenseToIncomeRatio, ratios.ExpenseToIncomeStatus, ratios.CalculatedAt,
	)
	return err
}

func (r *RatiosRepository) Get(ctx context.Context, userID string) (*model.Ratios, error) {
	var ratios model.Ratios
	query := `
		SELECT user_id, debt_to_income_ratio, debt_to_income_status, savings_rate, savings_rate_status,
			emergency_fund_months, emergency_fund_status, expense_to_income_ratio, expense_to_income_status, calculated_at
		FROM financial_ratios WHERE user_id = $1`
	err := r.db.GetContext(ctx, &ratios, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ratios, nil
}

// SpendingRepository keeps the latest spending breakdown of each user.
type SpendingRepository struct {
	db *sqlx.DB
}

func NewSpendingRepository(db *sqlx.DB) *SpendingRepository {
	return &SpendingRepository{db: db}
}

func (r *SpendingRepository) Upsert(ctx context.Context, userID string, b *model.SpendingBreakdown) error {
	b.UserID = userID
	query := `
		INSERT INTO spending_analytics (user_id, categories, percentages, top_categories, insights, total_expenses, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			categories = EXCLUDED.categories,
			percentages = EXCLUDED.percentages,
			top_categories = EXCLUDED.top_categories,
			insights = EXCLUDED.insights,
			total_expenses = EXCLUDED.total_expenses,
			calculated_at = EXCLUDED.calculated_at`
	_, err := execer(ctx, r.db).ExecContext(ctx, query,
		b.UserID, b.Categories, b.Percentages, b.TopCategories, b.Insights, b.TotalExpenses, b.CalculatedAt,
	)
	return err
}

func (r *SpendingRepository) Get(ctx context.Context, userID string) (*model.SpendingBreakdown, error) {
	var b model.SpendingBreakdown
	query := `
		SELECT user_id, categories, percentages, top_categories, insights, total_expenses, calculated_at
		FROM spending_analytics WHERE user_id = $1`
	err := r.db.GetContext(ctx, &b, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
