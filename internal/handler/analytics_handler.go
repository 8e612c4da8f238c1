package handler

import (
	"net/http"

	_ "github.com/flouswise/finance/internal/model" // swagger types
)

type AnalyticsHandler struct {
	service AnalyticsServiceInterface
}

func NewAnalyticsHandler(service AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetAll godoc
// @Summary Complete analytics
// @Description Health score, ratios, spending breakdown and the default net worth trend
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Analytics
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics [get]
func (h *AnalyticsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.GetCompleteAnalytics(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}

// HealthScore godoc
// @Summary Financial health score
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.HealthScore
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/health-score [get]
func (h *AnalyticsHandler) HealthScore(w http.ResponseWriter, r *http.Request) {
	score, err := h.service.GetHealthScore(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, score)
}

// Ratios godoc
// @Summary Financial ratios
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Ratios
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/ratios [get]
func (h *AnalyticsHandler) Ratios(w http.ResponseWriter, r *http.Request) {
	ratios, err := h.service.GetRatios(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, ratios)
}

// Spending godoc
// @Summary Spending by category
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.SpendingBreakdown
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /analytics/spending [get]
func (h *AnalyticsHandler) Spending(w http.ResponseWriter, r *http.Request) {
	spending, err := h.service.GetSpending(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, spending)
}

// NetWorth godoc
// @Summary Net worth trend
// @Description Snapshots of the last N months, oldest first
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param months query int false "Months back (1-120, default 6)"
// @Success 200 {array} model.NetWorthDataPoint
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /analytics/net-worth [get]
func (h *AnalyticsHandler) NetWorth(w http.ResponseWriter, r *http.Request) {
	months, err := parseMonths(r)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	trend, err := h.service.GetNetWorthTrend(r.Context(), GetUserID(r.Context()), months)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, trend)
}

// Recalculate godoc
// @Summary Recalculate analytics
// @Description Recompute every artifact from the stored profile and return them
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Analytics
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analytics/recalculate [post]
func (h *AnalyticsHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	if err := h.service.Recalculate(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	analytics, err := h.service.GetCompleteAnalytics(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}
