package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flouswise/finance/internal/analytics"
	"github.com/flouswise/finance/internal/apperror"
	"github.com/flouswise/finance/internal/events"
	"github.com/flouswise/finance/internal/logger"
	"github.com/flouswise/finance/internal/model"
	"github.com/flouswise/finance/internal/repository"
	"github.com/flouswise/finance/pkg/currency"
)

// Recomputer refreshes the stored analytics of a profile and serves the health score.
type Recomputer interface {
	RecomputeAll(ctx context.Context, userID string, profile *model.Profile) error
	GetHealthScore(ctx context.Context, userID string) (*model.HealthScore, error)
}

// ProfileService manages the financial profile of each user.
type ProfileService struct {
	repo            repository.ProfileRepositoryInterface
	analytics       Recomputer
	publisher       events.Publisher
	defaultCurrency string
}

func NewProfileService(repo repository.ProfileRepositoryInterface, analytics Recomputer) *ProfileService {
	return &ProfileService{
		repo:            repo,
		analytics:       analytics,
		publisher:       events.NoopPublisher{},
		defaultCurrency: string(currency.DefaultCurrency),
	}
}

// SetPublisher sets the publisher used for profile lifecycle events.
func (s *ProfileService) SetPublisher(p events.Publisher) {
	s.publisher = p
}

// SetDefaultCurrency sets the currency assigned to profiles that carry none.
func (s *ProfileService) SetDefaultCurrency(code string) {
	s.defaultCurrency = code
}

// Create stores a new profile. An incomplete profile created on registration is
// filled in; a complete one is a conflict.
func (s *ProfileService) Create(ctx context.Context, userID string, profile *model.Profile) (*model.Profile, error) {
	if err := s.prepare(profile, userID, ""); err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, userID)
	switch {
	case err == nil:
		if existing.IsProfileComplete {
			return nil, apperror.ProfileExists()
		}
		if err := s.repo.Update(ctx, profile); err != nil {
			return nil, fmt.Errorf("completing profile: %w", err)
		}
	case errors.Is(err, repository.ErrProfileNotFound):
		if err := s.repo.Create(ctx, profile); err != nil {
			if errors.Is(err, repository.ErrProfileExists) {
				return nil, apperror.ProfileExists()
			}
			return nil, fmt.Errorf("creating profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("checking existing profile: %w", err)
	}

	if err := s.analytics.RecomputeAll(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("recomputing analytics: %w", err)
	}
	s.publish(ctx, events.EventProfileCreated, userID)

	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, apperror.ProfileNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	return profile, nil
}

// Update replaces every section of the profile and recomputes analytics. A
// completed profile stays complete whatever the request says.
func (s *ProfileService) Update(ctx context.Context, userID string, profile *model.Profile) (*model.Profile, error) {
	existing, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.IsProfileComplete = profile.IsProfileComplete || existing.IsProfileComplete

	if err := s.prepare(profile, userID, existing.Currency); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, apperror.ProfileNotFound()
		}
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if err := s.analytics.RecomputeAll(ctx, userID, profile); err != nil {
		return nil, fmt.Errorf("recomputing analytics: %w", err)
	}
	s.publish(ctx, events.EventProfileUpdated, userID)

	return profile, nil
}

// Delete removes the profile; derived analytics are removed with it.
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return apperror.ProfileNotFound()
		}
		return fmt.Errorf("deleting profile: %w", err)
	}
	s.publish(ctx, events.EventProfileDeleted, userID)
	return nil
}

// EnsureProfile creates an empty, incomplete profile unless one already exists.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID string) error {
	exists, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("checking profile: %w", err)
	}
	if exists {
		return nil
	}

	shell := &model.Profile{}
	if err := s.prepare(shell, userID, ""); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, shell); err != nil && !errors.Is(err, repository.ErrProfileExists) {
		return fmt.Errorf("creating profile shell: %w", err)
	}

	logger.FromContext(ctx).Info("profile shell created", "user_id", userID)
	return nil
}

// DashboardSummary returns the headline monthly figures and the stored health score.
func (s *ProfileService) DashboardSummary(ctx context.Context, userID string) (*model.DashboardSummary, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	score, err := s.analytics.GetHealthScore(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := analytics.Aggregate(profile)
	return &model.DashboardSummary{
		MonthlyIncome:        totals.MonthlyIncome,
		MonthlyExpenses:      totals.MonthlyExpenses,
		NetSurplusOrDeficit:  totals.MonthlyIncome.Sub(totals.MonthlyExpenses),
		FinancialHealthScore: score.OverallScore,
	}, nil
}

// prepare binds the profile to its owner, resolves its currency and refreshes totals.
func (s *ProfileService) prepare(profile *model.Profile, userID, fallbackCurrency string) error {
	profile.UserID = userID

	if profile.Currency == "" {
		profile.Currency = fallbackCurrency
	}
	if profile.Currency == "" {
		profile.Currency = s.defaultCurrency
	}
	if !currency.IsValid(profile.Currency) {
		return apperror.ValidationError("currency",
			fmt.Sprintf("unsupported currency code, expected one of %s", strings.Join(currency.SupportedCurrencyCodes(), ", ")))
	}

	profile.Totals = analytics.Aggregate(profile).ProfileTotals()
	return nil
}

func (s *ProfileService) publish(ctx context.Context, eventType, userID string) {
	if err := s.publisher.Publish(ctx, events.NewProfileEvent(eventType, userID, "")); err != nil {
		logger.FromContext(ctx).Warn("failed to publish profile event",
			"event_type", eventType,
			"error", err,
		)
	}
}
