package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/flouswise/finance/internal/analytics"
	"github.com/flouswise/finance/internal/apperror"
	"github.com/flouswise/finance/internal/logger"
	"github.com/flouswise/finance/internal/model"
	"github.com/flouswise/finance/internal/repository"
	"github.com/flouswise/finance/pkg/datetime"
)

// Bounds of the net worth trend window, in months.
const (
	DefaultTrendMonths = 6
	MaxTrendMonths     = 120
)

// ProfileSource provides the stored profiles analytics are derived from.
type ProfileSource interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

// AnalyticsStores are the persistence capabilities of the derived artifacts.
type AnalyticsStores struct {
	HealthScores repository.UpsertByKey[model.HealthScore]
	Ratios       repository.UpsertByKey[model.Ratios]
	Spending     repository.UpsertByKey[model.SpendingBreakdown]
	NetWorth     repository.AppendLog[model.NetWorthSnapshot]
	// Tx groups the writes of one recompute. Without it each write stands alone.
	Tx repository.TxRunner
}

// AnalyticsEngines are the pure calculators run on every recompute.
type AnalyticsEngines struct {
	Scorer   *analytics.HealthScorer
	Ratios   *analytics.RatioCalculator
	Spending *analytics.SpendingAnalyzer
	NetWorth *analytics.NetWorthRecorder
}

// DefaultEngines returns the production calculators.
func DefaultEngines() AnalyticsEngines {
	return AnalyticsEngines{
		Scorer:   analytics.NewHealthScorer(),
		Ratios:   analytics.NewRatioCalculator(),
		Spending: analytics.NewSpendingAnalyzer(),
		NetWorth: analytics.NewNetWorthRecorder(),
	}
}

// AnalyticsService recomputes and serves the derived analytics of each profile.
// Reads never recompute; they return what the last recompute stored.
type AnalyticsService struct {
	profiles ProfileSource
	stores   AnalyticsStores
	engines  AnalyticsEngines

	now          func() time.Time
	async        bool
	asyncTimeout time.Duration
	trendMonths  int
	inflight     sync.WaitGroup
}

func NewAnalyticsService(profiles ProfileSource, stores AnalyticsStores, engines AnalyticsEngines) *AnalyticsService {
	return &AnalyticsService{
		profiles:     profiles,
		stores:       stores,
		engines:      engines,
		now:          time.Now,
		asyncTimeout: 30 * time.Second,
		trendMonths:  DefaultTrendMonths,
	}
}

// SetClock overrides the time source used for calculatedAt and trend windows.
func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.now = now
}

// SetAsync makes RecomputeAll return immediately and run in the background,
// bounded by timeout.
func (s *AnalyticsService) SetAsync(enabled bool, timeout time.Duration) {
	s.async = enabled
	if timeout > 0 {
		s.asyncTimeout = timeout
	}
}

// SetDefaultTrendMonths sets the window used when callers pass zero months.
func (s *AnalyticsService) SetDefaultTrendMonths(months int) {
	if months >= 1 && months <= MaxTrendMonths {
		s.trendMonths = months
	}
}

// RecomputeAll derives every artifact from the profile and stores them. It is
// idempotent apart from the net worth history, which grows by one snapshot per call.
func (s *AnalyticsService) RecomputeAll(ctx context.Context, userID string, profile *model.Profile) error {
	if !s.async {
		return s.recompute(ctx, userID, profile)
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.asyncTimeout)
		defer cancel()
		if err := s.recompute(ctx, userID, profile); err != nil {
			logger.FromContext(ctx).Error("background analytics recompute failed", "error", err)
		}
	}()
	return nil
}

// Wait blocks until background recomputes have finished.
func (s *AnalyticsService) Wait() {
	s.inflight.Wait()
}

func (s *AnalyticsService) recompute(ctx context.Context, userID string, profile *model.Profile) error {
	now := s.now()
	totals := analytics.Aggregate(profile)

	score := s.engines.Scorer.Score(profile, totals, now)
	ratios := s.engines.Ratios.Calculate(userID, totals, now)
	spending := s.engines.Spending.Analyze(profile, now)
	snapshot := s.engines.NetWorth.Snapshot(userID, totals, now)

	err := s.inTx(ctx, func(ctx context.Context) error {
		if err := s.stores.HealthScores.Upsert(ctx, userID, &score); err != nil {
			return fmt.Errorf("saving health score: %w", err)
		}
		if err := s.stores.Ratios.Upsert(ctx, userID, &ratios); err != nil {
			return fmt.Errorf("saving ratios: %w", err)
		}
		if err := s.stores.Spending.Upsert(ctx, userID, &spending); err != nil {
			return fmt.Errorf("saving spending breakdown: %w", err)
		}
		if err := s.stores.NetWorth.Append(ctx, userID, &snapshot); err != nil {
			return fmt.Errorf("appending net worth snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("analytics recomputed",
		"overall_score", score.OverallScore,
		"status", score.Status,
		"net_worth", snapshot.NetWorth.String(),
	)
	return nil
}

func (s *AnalyticsService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.stores.Tx == nil {
		return fn(ctx)
	}
	return s.stores.Tx.InTx(ctx, fn)
}

// Recalculate reloads the stored profile and recomputes synchronously.
func (s *AnalyticsService) Recalculate(ctx context.Context, userID string) error {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return err
	}
	return s.recompute(ctx, userID, profile)
}

// RecomputeEveryProfile recomputes all stored profiles and reports how many
// succeeded. A failing profile is logged and skipped. Shells that were never
// filled in and have no analytics yet are left alone.
func (s *AnalyticsService) RecomputeEveryProfile(ctx context.Context) (int, int, error) {
	ids, err := s.profiles.ListUserIDs(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("listing profiles: %w", err)
	}

	var ok, failed int
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return ok, failed, err
		}
		userCtx := logger.WithUserID(ctx, id)
		recomputed, err := s.recomputeStored(userCtx, id)
		if err != nil {
			failed++
			logger.FromContext(userCtx).Error("recompute failed", "error", err)
			continue
		}
		if recomputed {
			ok++
		}
	}
	return ok, failed, nil
}

func (s *AnalyticsService) recomputeStored(ctx context.Context, userID string) (bool, error) {
	profile, err := s.loadProfile(ctx, userID)
	if err != nil {
		return false, err
	}

	if !profile.IsProfileComplete {
		_, err := s.stores.HealthScores.Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			logger.FromContext(ctx).Debug("skipping empty profile shell")
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("checking stored analytics: %w", err)
		}
	}

	return true, s.recompute(ctx, userID, profile)
}

func (s *AnalyticsService) loadProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return nil, apperror.ProfileNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return profile, nil
}

func (s *AnalyticsService) GetHealthScore(ctx context.Context, userID string) (*model.HealthScore, error) {
	score, err := s.stores.HealthScores.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.AnalyticsNotFound("health score")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching health score: %w", err)
	}
	return score, nil
}

func (s *AnalyticsService) GetRatios(ctx context.Context, userID string) (*model.Ratios, error) {
	ratios, err := s.stores.Ratios.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.AnalyticsNotFound("financial ratios")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching ratios: %w", err)
	}
	return ratios, nil
}

func (s *AnalyticsService) GetSpending(ctx context.Context, userID string) (*model.SpendingBreakdown, error) {
	spending, err := s.stores.Spending.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.AnalyticsNotFound("spending analysis")
	}
	if err != nil {
		return nil, fmt.Errorf("fetching spending breakdown: %w", err)
	}
	return spending, nil
}

// GetNetWorthTrend returns the snapshots of the last monthsBack months, oldest
// first. Zero selects the default window. An empty history is not an error.
func (s *AnalyticsService) GetNetWorthTrend(ctx context.Context, userID string, monthsBack int) ([]model.NetWorthDataPoint, error) {
	if monthsBack == 0 {
		monthsBack = s.trendMonths
	}
	if monthsBack < 1 || monthsBack > MaxTrendMonths {
		return nil, apperror.ValidationError("months", fmt.Sprintf("must be between 1 and %d", MaxTrendMonths))
	}

	since := datetime.MonthsBefore(s.now(), monthsBack)
	history, err := s.stores.NetWorth.ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("fetching net worth history: %w", err)
	}
	return analytics.Trend(history), nil
}

// GetCompleteAnalytics bundles every artifact with the default trend window.
func (s *AnalyticsService) GetCompleteAnalytics(ctx context.Context, userID string) (*model.Analytics, error) {
	score, err := s.GetHealthScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	ratios, err := s.GetRatios(ctx, userID)
	if err != nil {
		return nil, err
	}
	spending, err := s.GetSpending(ctx, userID)
	if err != nil {
		return nil, err
	}
	trend, err := s.GetNetWorthTrend(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	return &model.Analytics{
		HealthScore:   score,
		Ratios:        ratios,
		Spending:      spending,
		NetWorthTrend: trend,
	}, nil
}
