package repository

import (
	"context"
	"time"

	"github.com/flouswise/finance/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// NetWorthRepository is the append-only net worth history.
type NetWorthRepository struct {
	db *sqlx.DB
}

func NewNetWorthRepository(db *sqlx.DB) *NetWorthRepository {
	return &NetWorthRepository{db: db}
}

func (r *NetWorthRepository) Append(ctx context.Context, userID string, s *model.NetWorthSnapshot) error {
	s.UserID = userID
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	query := `
		INSERT INTO net_worth_history (id, user_id, net_worth, total_assets, total_debt, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := execer(ctx, r.db).ExecContext(ctx, query, s.ID, s.UserID, s.NetWorth, s.TotalAssets, s.TotalDebt, s.RecordedAt)
	return err
}

// ListSince returns the snapshots recorded at or after since, oldest first.
func (r *NetWorthRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]model.NetWorthSnapshot, error) {
	snapshots := []model.NetWorthSnapshot{}
	query := `
		SELECT id, user_id, net_worth, total_assets, total_debt, recorded_at
		FROM net_worth_history
		WHERE user_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at ASC`
	err := r.db.SelectContext(ctx, &snapshots, query, userID, since)
	return snapshots, err
}
