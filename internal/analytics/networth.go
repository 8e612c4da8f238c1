package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/flouswise/finance/internal/model"
)

// NetWorthRecorder produces the snapshot appended to the net worth history on
// every recompute, whether or not the value changed.
type NetWorthRecorder struct{}

func NewNetWorthRecorder() *NetWorthRecorder {
	return &NetWorthRecorder{}
}

func (r *NetWorthRecorder) Snapshot(userID string, t Totals, now time.Time) model.NetWorthSnapshot {
	return model.NetWorthSnapshot{
		ID:          uuid.New(),
		UserID:      userID,
		NetWorth:    t.NetWorth(),
		TotalAssets: t.TotalAssets,
		TotalDebt:   t.TotalDebt,
		RecordedAt:  now,
	}
}

// Trend turns snapshots into chronologically ordered data points.
func Trend(history []model.NetWorthSnapshot) []model.NetWorthDataPoint {
	points := make([]model.NetWorthDataPoint, 0, len(history))
	for _, h := range history {
		points = append(points, model.NetWorthDataPoint{Date: h.RecordedAt, NetWorth: h.NetWorth})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}
