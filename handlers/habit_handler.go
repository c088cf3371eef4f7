package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"fitTrackAPI/internal/types/habit"
	"fitTrackAPI/middleware"
	"fitTrackAPI/services"
)

type HabitHandler struct {
	habitService *services.HabitService
}

func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

func (h *HabitHandler) GetHabits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habits, err := h.habitService.GetHabits(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get habits")
		return
	}

	respondWithJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	created, err := h.habitService.CreateHabit(ctx, clerkID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create habit")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habitID := mux.Vars(r)["id"]

	if err := h.habitService.DeleteHabit(ctx, clerkID, habitID); err != nil {
		if err.Error() == "habit not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete habit")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted successfully"})
}

// CheckIn marks the habit done for today. Checking in twice is not an
// error; the response says whether the habit was already checked.
func (h *HabitHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habitID := mux.Vars(r)["id"]

	result, err := h.habitService.CheckInHabit(ctx, clerkID, habitID)
	if err != nil {
		if err.Error() == "habit not found" {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to check in habit")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
