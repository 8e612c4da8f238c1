package repository

import (
	"context"
	"errors"
	"time"

	"github.com/flouswise/finance/internal/model"
)

var ErrNotFound = errors.New("record not found")
var ErrProfileNotFound = errors.New("profile not found")
var ErrProfileExists = errors.New("profile already exists")

// UpsertByKey stores at most one value per key; a write replaces the previous value.
type UpsertByKey[T any] interface {
	Upsert(ctx context.Context, key string, v *T) error
	Get(ctx context.Context, key string) (*T, error)
}

// AppendLog keeps every value written for a key.
type AppendLog[T any] interface {
	Append(ctx context.Context, key string, v *T) error
	ListSince(ctx context.Context, key string, since time.Time) ([]T, error)
}

type ProfileRepositoryInterface interface {
	Create(ctx context.Context, profile *model.Profile) error
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error
	Delete(ctx context.Context, userID string) error
	Exists(ctx context.Context, userID string) (bool, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

var (
	_ ProfileRepositoryInterface           = (*ProfileRepository)(nil)
	_ UpsertByKey[model.HealthScore]       = (*HealthScoreRepository)(nil)
	_ UpsertByKey[model.Ratios]            = (*RatiosRepository)(nil)
	_ UpsertByKey[model.SpendingBreakdown] = (*SpendingRepository)(nil)
	_ AppendLog[model.NetWorthSnapshot]    = (*NetWorthRepository)(nil)
	_ TxRunner                             = (*Transactor)(nil)
)
