package handler

import (
	"encoding/json"
	"net/http"

	"github.com/flouswise/finance/internal/apperror"
	"github.com/flouswise/finance/internal/model"
)

type ProfileHandler struct {
	service ProfileServiceInterface
}

func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Create godoc
// @Summary Create the financial profile
// @Description Store the caller's financial profile and compute its analytics
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body model.Profile true "Profile data"
// @Success 201 {object} model.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile [post]
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input model.Profile
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondAppError(w, apperror.BadRequest("invalid request body"))
		return
	}

	profile, err := h.service.Create(r.Context(), userID, &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, profile)
}

// Get godoc
// @Summary Get the financial profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Get(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Update godoc
// @Summary Replace the financial profile
// @Description Replace every section of the profile and recompute analytics
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body model.Profile true "Profile data"
// @Success 200 {object} model.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := GetUserID(r.Context())

	var input model.Profile
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondAppError(w, apperror.BadRequest("invalid request body"))
		return
	}

	profile, err := h.service.Update(r.Context(), userID, &input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Delete godoc
// @Summary Delete the financial profile
// @Description Delete the profile together with its analytics and net worth history
// @Tags profile
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile [delete]
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), GetUserID(r.Context())); err != nil {
		respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Dashboard godoc
// @Summary Dashboard summary
// @Description Monthly income, expenses, surplus and the stored health score
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DashboardSummary
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile/dashboard [get]
func (h *ProfileHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.DashboardSummary(r.Context(), GetUserID(r.Context()))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
