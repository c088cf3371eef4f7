package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"fitTrackAPI/internal/types/social"
	"fitTrackAPI/middleware"
	"fitTrackAPI/services"
)

type SocialHandler struct {
	socialService *services.SocialService
}

func NewSocialHandler(socialService *services.SocialService) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
	}
}

func (h *SocialHandler) GetFriends(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	friends, err := h.socialService.GetFriends(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get friends")
		return
	}

	respondWithJSON(w, http.StatusOK, friends)
}

func (h *SocialHandler) GetPendingRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	pending, err := h.socialService.GetPendingRequests(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get pending requests")
		return
	}

	respondWithJSON(w, http.StatusOK, pending)
}

func (h *SocialHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req social.SendRequestInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ToUserID == "" {
		respondWithError(w, http.StatusBadRequest, "to_user_id is required")
		return
	}

	log.Printf("SendRequest Handler: %s -> %s", clerkID, req.ToUserID)

	request, err := h.socialService.SendFriendRequest(ctx, clerkID, req.ToUserID)
	if err != nil {
		h.respondWithSocialError(w, err, "Failed to send friend request")
		return
	}

	respondWithJSON(w, http.StatusCreated, request)
}

func (h *SocialHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.socialService.AcceptFriendRequest, "Friend request accepted")
}

func (h *SocialHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.socialService.DeclineFriendRequest, "Friend request declined")
}

func (h *SocialHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.socialService.CancelFriendRequest, "Friend request cancelled")
}

func (h *SocialHandler) resolveRequest(w http.ResponseWriter, r *http.Request,
	resolve func(context.Context, string, string) error, message string) {

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	requestID := mux.Vars(r)["id"]
	if requestID == "" {
		respondWithError(w, http.StatusBadRequest, "Request id is required")
		return
	}

	if err := resolve(ctx, clerkID, requestID); err != nil {
		h.respondWithSocialError(w, err, "Failed to resolve friend request")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *SocialHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	friendID := mux.Vars(r)["userId"]
	if friendID == "" {
		respondWithError(w, http.StatusBadRequest, "User id is required")
		return
	}

	if err := h.socialService.RemoveFriend(ctx, clerkID, friendID); err != nil {
		h.respondWithSocialError(w, err, "Failed to remove friend")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Friend removed successfully"})
}

// GetRelationshipStatus reports where the caller stands with another
// user: friends, incoming, outgoing or none.
func (h *SocialHandler) GetRelationshipStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	otherID := mux.Vars(r)["userId"]
	if otherID == "" {
		respondWithError(w, http.StatusBadRequest, "User id is required")
		return
	}

	status, err := h.socialService.GetRelationshipStatus(ctx, clerkID, otherID)
	if err != nil {
		h.respondWithSocialError(w, err, "Failed to get relationship status")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *SocialHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "Search query parameter 'q' is required")
		return
	}

	results, err := h.socialService.SearchUsers(ctx, clerkID, query)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to search users")
		return
	}

	respondWithJSON(w, http.StatusOK, results)
}

// GetInviteQr returns a QR code that deep-links to the caller's profile
// so friends can add them in person.
func (h *SocialHandler) GetInviteQr(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	qr, err := h.socialService.GenerateInviteQr(ctx, clerkID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate invite QR code")
		return
	}

	respondWithJSON(w, http.StatusOK, qr)
}

// respondWithSocialError maps the service's sentinel errors onto HTTP
// status codes.
func (h *SocialHandler) respondWithSocialError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, social.ErrSelfRequest):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, social.ErrDuplicateRequest), errors.Is(err, social.ErrAlreadyFriends):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, social.ErrRequestNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, social.ErrNotPending):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, social.ErrNotAuthorized):
		respondWithError(w, http.StatusForbidden, err.Error())
	case err.Error() == "user not found":
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Social Handler: %v", err)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
