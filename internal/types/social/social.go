package social

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"fitTrackAPI/internal/types/user"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestDeclined  RequestStatus = "declined"
	RequestCancelled RequestStatus = "cancelled"
)

// RelationshipStatus describes how a viewer relates to another user.
type RelationshipStatus string

const (
	RelationFriends  RelationshipStatus = "friends"
	RelationIncoming RelationshipStatus = "incoming"
	RelationOutgoing RelationshipStatus = "outgoing"
	RelationNone     RelationshipStatus = "none"
)

// Sentinel errors for the friend-request state machine. Handlers map
// these to 4xx responses; none of them leave stored state mutated.
var (
	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrDuplicateRequest = errors.New("a pending friend request already exists")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotPending       = errors.New("friend request is no longer pending")
	ErrNotAuthorized    = errors.New("not authorized to act on this friend request")
)

type FriendRequest struct {
	ID          uuid.UUID     `json:"id"`
	FromUserID  uuid.UUID     `json:"from_user_id"`
	ToUserID    uuid.UUID     `json:"to_user_id"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
}

// Friendship is an undirected edge stored canonically with
// UserAID < UserBID so each pair has exactly one row.
type Friendship struct {
	ID        uuid.UUID `json:"id"`
	UserAID   uuid.UUID `json:"user_a_id"`
	UserBID   uuid.UUID `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CanonicalPair orders two user IDs so the smaller one comes first.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}

// PendingRequests groups a user's open requests in both directions.
type PendingRequests struct {
	Incoming []*RequestWithUser `json:"incoming"`
	Outgoing []*RequestWithUser `json:"outgoing"`
}

// RequestWithUser is a pending request joined with the other party's
// profile summary.
type RequestWithUser struct {
	ID        uuid.UUID    `json:"id"`
	User      user.Summary `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

type SendRequestInput struct {
	ToUserID string `json:"to_user_id"`
}

// InviteQr is a scannable friend invite, PNG encoded as base64.
type InviteQr struct {
	InviteURL    string `json:"invite_url"`
	QrCodeBase64 string `json:"qr_code_base64"`
}
