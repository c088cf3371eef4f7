package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fitTrackAPI/internal/coach"
	"fitTrackAPI/middleware"
	"fitTrackAPI/services"
)

// Chat can fall through two inference attempts before the rule-based
// responder answers, so it gets a longer budget than the CRUD handlers.
const coachTimeout = 45 * time.Second

type CoachHandler struct {
	coachService *services.CoachService
}

func NewCoachHandler(coachService *services.CoachService) *CoachHandler {
	return &CoachHandler{
		coachService: coachService,
	}
}

type chatRequest struct {
	Message string          `json:"message"`
	History []coach.Message `json:"history"`
}

type chatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

func respondWithChat(w http.ResponseWriter, reply string) {
	w.Header().Set("Cache-Control", "no-store")
	respondWithJSON(w, http.StatusOK, &chatResponse{
		Success:   true,
		Response:  reply,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Chat answers a coach message. The service always produces a reply, so
// the only error responses here are auth and malformed input.
func (h *CoachHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), coachTimeout)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		respondWithError(w, http.StatusBadRequest, "message is required")
		return
	}

	respondWithChat(w, h.coachService.Chat(ctx, clerkID, req.Message, req.History))
}

func (h *CoachHandler) DailyMotivation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), coachTimeout)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	respondWithChat(w, h.coachService.DailyMotivation(ctx, clerkID))
}

func (h *CoachHandler) AnalyzeProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), coachTimeout)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reply, weekly, err := h.coachService.AnalyzeProgress(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to analyze progress")
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	respondWithJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"response":  reply,
		"summary":   weekly,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *CoachHandler) SuggestWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), coachTimeout)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		Preferences string `json:"preferences"`
	}
	// Body is optional for suggestions.
	json.NewDecoder(r.Body).Decode(&req)

	respondWithChat(w, h.coachService.SuggestWorkout(ctx, clerkID, req.Preferences))
}
