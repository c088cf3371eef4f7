package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"fitTrackAPI/internal/types/food"
	"fitTrackAPI/middleware"
	"fitTrackAPI/services"
)

type FoodHandler struct {
	foodService *services.FoodService
}

func NewFoodHandler(foodService *services.FoodService) *FoodHandler {
	return &FoodHandler{
		foodService: foodService,
	}
}

func (h *FoodHandler) GetFoods(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, ok := middleware.GetClerkID(ctx); !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	category := r.URL.Query().Get("category")
	search := r.URL.Query().Get("search")

	foods, err := h.foodService.GetFoods(ctx, category, search)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get foods")
		return
	}

	respondWithJSON(w, http.StatusOK, foods)
}

func (h *FoodHandler) LogFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req food.LogFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.foodService.LogFood(ctx, clerkID, &req)
	if err != nil {
		h.respondWithFoodError(w, err, "Failed to log food")
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

// GetFoodLogs returns a day's logs grouped by meal. The date query
// parameter defaults to today.
func (h *FoodHandler) GetFoodLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	daily, err := h.foodService.GetFoodLogsByDate(ctx, clerkID, r.URL.Query().Get("date"))
	if err != nil {
		h.respondWithFoodError(w, err, "Failed to get food logs")
		return
	}

	respondWithJSON(w, http.StatusOK, daily)
}

func (h *FoodHandler) DeleteFoodLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	logID := mux.Vars(r)["id"]

	if err := h.foodService.DeleteFoodLog(ctx, clerkID, logID); err != nil {
		h.respondWithFoodError(w, err, "Failed to delete food log")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Food log deleted successfully"})
}

func (h *FoodHandler) LogWater(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req food.LogWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.foodService.LogWater(ctx, clerkID, &req)
	if err != nil {
		h.respondWithFoodError(w, err, "Failed to log water")
		return
	}

	respondWithJSON(w, http.StatusCreated, entry)
}

func (h *FoodHandler) GetWater(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	daily, err := h.foodService.GetWaterByDate(ctx, clerkID, r.URL.Query().Get("date"))
	if err != nil {
		h.respondWithFoodError(w, err, "Failed to get water intake")
		return
	}

	respondWithJSON(w, http.StatusOK, daily)
}

func (h *FoodHandler) respondWithFoodError(w http.ResponseWriter, err error, fallback string) {
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "not found"):
		respondWithError(w, http.StatusNotFound, errMsg)
	case strings.HasPrefix(errMsg, "invalid") || strings.Contains(errMsg, "must be positive"):
		respondWithError(w, http.StatusBadRequest, errMsg)
	default:
		log.Printf("Food Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
