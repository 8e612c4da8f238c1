package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Schema creates every table used by the finance service. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
    user_id TEXT PRIMARY KEY,
    data JSONB NOT NULL DEFAULT '{}',
    is_profile_complete BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS financial_health_scores (
    user_id TEXT PRIMARY KEY REFERENCES user_profiles(user_id) ON DELETE CASCADE,
    overall_score INTEGER NOT NULL,
    status VARCHAR(20) NOT NULL,
    income_stability_score INTEGER NOT NULL,
    expense_management_score INTEGER NOT NULL,
    debt_health_score INTEGER NOT NULL,
    emergency_fund_score INTEGER NOT NULL,
    savings_rate_score INTEGER NOT NULL,
    recommendations TEXT[] NOT NULL DEFAULT '{}',
    calculated_at TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE TABLE IF NOT EXISTS financial_ratios (
    user_id TEXT PRIMARY KEY REFERENCES user_profiles(user_id) ON DELETE CASCADE,
    debt_to_income_ratio DOUBLE PRECISION NOT NULL,
    debt_to_income_status VARCHAR(20) NOT NULL,
    savings_rate DOUBLE PRECISION NOT NULL,
    savings_rate_status VARCHAR(20) NOT NULL,
    emergency_fund_months DOUBLE PRECISION NOT NULL,
    emergency_fund_status VARCHAR(20) NOT NULL,
    expense_to_income_ratio DOUBLE PRECISION NOT NULL,
    expense_to_income_status VARCHAR(20) NOT NULL,
    calculated_at TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE TABLE IF NOT EXISTS spending_analytics (
    user_id TEXT PRIMARY KEY REFERENCES user_profiles(user_id) ON DELETE CASCADE,
    categories JSONB NOT NULL,
    percentages JSONB NOT NULL,
    top_categories TEXT[] NOT NULL DEFAULT '{}',
    insights TEXT[] NOT NULL DEFAULT '{}',
    total_expenses DECIMAL(15, 2) NOT NULL,
    calculated_at TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE TABLE IF NOT EXISTS net_worth_history (
    id UUID PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES user_profiles(user_id) ON DELETE CASCADE,
    net_worth DECIMAL(15, 2) NOT NULL,
    total_assets DECIMAL(15, 2) NOT NULL,
    total_debt DECIMAL(15, 2) NOT NULL,
    recorded_at TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_net_worth_history_user_recorded ON net_worth_history (user_id, recorded_at);
`

func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
