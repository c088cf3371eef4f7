package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"fitTrackAPI/internal/types/workout"
	"fitTrackAPI/middleware"
	"fitTrackAPI/services"
)

type WorkoutHandler struct {
	workoutService *services.WorkoutService
}

func NewWorkoutHandler(workoutService *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
	}
}

func (h *WorkoutHandler) GetExercises(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetClerkID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	exercises, err := h.workoutService.GetExercises(ctx, category, search)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get exercises")
		return
	}

	respondWithJSON(w, http.StatusOK, exercises)
}

// GetExerciseVideo returns an embeddable demo video URL for the
// exercise, from the catalog row when one is set and the built-in table
// otherwise.
func (h *WorkoutHandler) GetExerciseVideo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetClerkID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	exerciseID := mux.Vars(r)["id"]

	info, err := h.workoutService.GetExerciseVideoInfo(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, services.ErrVideoNotFound) {
			respondWithError(w, http.StatusNotFound, "No video available for this exercise")
			return
		}
		h.respondWithWorkoutError(w, err, "Failed to get exercise video")
		return
	}

	respondWithJSON(w, http.StatusOK, info)
}

func (h *WorkoutHandler) GetWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workouts, err := h.workoutService.GetWorkouts(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get workouts")
		return
	}

	respondWithJSON(w, http.StatusOK, workouts)
}

func (h *WorkoutHandler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req workout.CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.workoutService.CreateWorkout(ctx, clerkID, &req)
	if err != nil {
		h.respondWithWorkoutError(w, err, "Failed to create workout")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *WorkoutHandler) GetWorkoutDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workoutID := mux.Vars(r)["id"]

	detail, err := h.workoutService.GetWorkoutDetail(ctx, clerkID, workoutID)
	if err != nil {
		h.respondWithWorkoutError(w, err, "Failed to get workout")
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}

func (h *WorkoutHandler) DeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workoutID := mux.Vars(r)["id"]

	if err := h.workoutService.DeleteWorkout(ctx, clerkID, workoutID); err != nil {
		h.respondWithWorkoutError(w, err, "Failed to delete workout")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Workout deleted successfully"})
}

func (h *WorkoutHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workoutID := mux.Vars(r)["id"]

	var req workout.AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	added, err := h.workoutService.AddExercise(ctx, clerkID, workoutID, &req)
	if err != nil {
		h.respondWithWorkoutError(w, err, "Failed to add exercise to workout")
		return
	}

	respondWithJSON(w, http.StatusCreated, added)
}

func (h *WorkoutHandler) AddSet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workoutExerciseID := mux.Vars(r)["exerciseId"]

	var req workout.AddSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set, err := h.workoutService.AddSet(ctx, clerkID, workoutExerciseID, &req)
	if err != nil {
		h.respondWithWorkoutError(w, err, "Failed to add set")
		return
	}

	respondWithJSON(w, http.StatusCreated, set)
}

// CompleteWorkout closes the workout and records the estimated calorie
// burn as an exercise log.
func (h *WorkoutHandler) CompleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	workoutID := mux.Vars(r)["id"]

	entry, err := h.workoutService.CompleteWorkout(ctx, clerkID, workoutID)
	if err != nil {
		h.respondWithWorkoutError(w, err, "Failed to complete workout")
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}

func (h *WorkoutHandler) respondWithWorkoutError(w http.ResponseWriter, err error, fallback string) {
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "not found"):
		respondWithError(w, http.StatusNotFound, errMsg)
	case errMsg == "exercise already in this workout" || errMsg == "workout already completed":
		respondWithError(w, http.StatusConflict, errMsg)
	case strings.HasPrefix(errMsg, "invalid") || strings.Contains(errMsg, "required"):
		respondWithError(w, http.StatusBadRequest, errMsg)
	default:
		log.Printf("Workout Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
