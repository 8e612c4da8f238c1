package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flouswise/finance/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// ProfileRepository stores each profile as a JSONB document keyed by user id.
type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileRow struct {
	UserID            string    `db:"user_id"`
	Data              []byte    `db:"data"`
	IsProfileComplete bool      `db:"is_profile_complete"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r profileRow) profile() (*model.Profile, error) {
	var p model.Profile
	if err := json.Unmarshal(r.Data, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", r.UserID, err)
	}
	p.UserID = r.UserID
	p.IsProfileComplete = r.IsProfileComplete
	p.CreatedAt = r.CreatedAt
	p.UpdatedAt = r.UpdatedAt
	return &p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	query := `
		INSERT INTO user_profiles (user_id, data, is_profile_complete, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at`

	err = r.db.QueryRowxContext(ctx, query, profile.UserID, data, profile.IsProfileComplete).
		Scan(&profile.CreatedAt, &profile.UpdatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrProfileExists
	}
	return err
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var row profileRow
	query := `SELECT user_id, data, is_profile_complete, created_at, updated_at FROM user_profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &row, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.profile()
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	query := `
		UPDATE user_profiles
		SET data = $2, is_profile_complete = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING created_at, updated_at`
	err = r.db.QueryRowxContext(ctx, query, profile.UserID, data, profile.IsProfileComplete).
		Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProfileNotFound
	}
	return err
}

// Delete removes the profile; derived analytics rows cascade.
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_profiles WHERE user_id = $1)`
	err := r.db.GetContext(ctx, &exists, query, userID)
	return exists, err
}

func (r *ProfileRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM user_profiles ORDER BY user_id`)
	return ids, err
}
