package handlers

import (
	"context"
	"net/http"
	"time"

	"fitTrackAPI/middleware"
	"fitTrackAPI/services"
)

type DashboardHandler struct {
	activityService *services.ActivityService
}

func NewDashboardHandler(activityService *services.ActivityService) *DashboardHandler {
	return &DashboardHandler{
		activityService: activityService,
	}
}

// GetDashboard returns today's rollup plus remaining calories when the
// caller's body stats allow computing them.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	dashboard, err := h.activityService.GetDashboard(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	summary, err := h.activityService.GetWeeklySummary(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to build weekly summary")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
