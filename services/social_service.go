package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skip2/go-qrcode"

	"fitTrackAPI/internal/types/social"
	"fitTrackAPI/internal/types/user"
)

const searchResultLimit = 25

// escapeLike neutralizes LIKE wildcards in user-supplied search terms
// so "%" or "_" match literally instead of everything.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, "%", `\%`)
	term = strings.ReplaceAll(term, "_", `\_`)
	return term
}

type SocialService struct {
	db *pgxpool.Pool
}

func NewSocialService(db *pgxpool.Pool) *SocialService {
	return &SocialService{
		db: db,
	}
}

// SendFriendRequest creates a pending request from the caller to the
// target user. Fails closed on self requests, existing friendships and
// duplicate pending requests.
func (s *SocialService) SendFriendRequest(ctx context.Context, clerkID, toUserID string) (*social.FriendRequest, error) {
	fromID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	toID, err := uuid.Parse(toUserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}

	if fromID == toID {
		return nil, social.ErrSelfRequest
	}

	var exists bool
	err = s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, toID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check target user: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("user not found")
	}

	userA, userB := social.CanonicalPair(fromID, toID)
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM friendships WHERE user_a_id = $1 AND user_b_id = $2)`,
		userA, userB).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if exists {
		return nil, social.ErrAlreadyFriends
	}

	// The partial unique index on (from_user_id, to_user_id) WHERE
	// status = 'pending' closes the race between concurrent sends.
	query := `
		INSERT INTO friend_requests (from_user_id, to_user_id, status)
		VALUES ($1, $2, 'pending')
		ON CONFLICT (from_user_id, to_user_id) WHERE status = 'pending' DO NOTHING
		RETURNING id, from_user_id, to_user_id, status, created_at, responded_at
	`

	req := &social.FriendRequest{}
	err = s.db.QueryRow(ctx, query, fromID, toID).Scan(
		&req.ID, &req.FromUserID, &req.ToUserID, &req.Status, &req.CreatedAt, &req.RespondedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, social.ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	log.Printf("SendFriendRequest: %s -> %s (request %s)", fromID, toID, req.ID)
	return req, nil
}

// AcceptFriendRequest resolves a pending request addressed to the caller
// and creates the canonical friendship in the same transaction.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, clerkID, requestID string) error {
	actorID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	reqID, err := uuid.Parse(requestID)
	if err != nil {
		return fmt.Errorf("invalid request id")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var fromID, toID uuid.UUID
	var status social.RequestStatus
	err = tx.QueryRow(ctx,
		`SELECT from_user_id, to_user_id, status FROM friend_requests WHERE id = $1 FOR UPDATE`,
		reqID).Scan(&fromID, &toID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return social.ErrRequestNotFound
		}
		return fmt.Errorf("failed to load friend request: %w", err)
	}

	if toID != actorID {
		return social.ErrNotAuthorized
	}
	if status != social.RequestPending {
		return social.ErrNotPending
	}

	_, err = tx.Exec(ctx,
		`UPDATE friend_requests SET status = 'accepted', responded_at = NOW() WHERE id = $1`,
		reqID)
	if err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}

	userA, userB := social.CanonicalPair(fromID, toID)
	_, err = tx.Exec(ctx, `
		INSERT INTO friendships (user_a_id, user_b_id)
		VALUES ($1, $2)
		ON CONFLICT (user_a_id, user_b_id) DO NOTHING
	`, userA, userB)
	if err != nil {
		return fmt.Errorf("failed to create friendship: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("AcceptFriendRequest: request %s accepted, friendship %s/%s", reqID, userA, userB)
	return nil
}

// DeclineFriendRequest is valid only for the recipient of a pending
// request.
func (s *SocialService) DeclineFriendRequest(ctx context.Context, clerkID, requestID string) error {
	return s.resolveRequest(ctx, clerkID, requestID, social.RequestDeclined)
}

// CancelFriendRequest is valid only for the requester of a pending
// request.
func (s *SocialService) CancelFriendRequest(ctx context.Context, clerkID, requestID string) error {
	return s.resolveRequest(ctx, clerkID, requestID, social.RequestCancelled)
}

func (s *SocialService) resolveRequest(ctx context.Context, clerkID, requestID string, terminal social.RequestStatus) error {
	actorID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	reqID, err := uuid.Parse(requestID)
	if err != nil {
		return fmt.Errorf("invalid request id")
	}

	var fromID, toID uuid.UUID
	var status social.RequestStatus
	err = s.db.QueryRow(ctx,
		`SELECT from_user_id, to_user_id, status FROM friend_requests WHERE id = $1`,
		reqID).Scan(&fromID, &toID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return social.ErrRequestNotFound
		}
		return fmt.Errorf("failed to load friend request: %w", err)
	}

	// Decline belongs to the recipient, cancel to the requester.
	owner := toID
	if terminal == social.RequestCancelled {
		owner = fromID
	}
	if owner != actorID {
		return social.ErrNotAuthorized
	}
	if status != social.RequestPending {
		return social.ErrNotPending
	}

	result, err := s.db.Exec(ctx,
		`UPDATE friend_requests SET status = $2, responded_at = NOW() WHERE id = $1 AND status = 'pending'`,
		reqID, terminal)
	if err != nil {
		return fmt.Errorf("failed to resolve friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return social.ErrNotPending
	}

	return nil
}

// RemoveFriend deletes the canonical friendship row. Removing a
// friendship that does not exist is a no-op.
func (s *SocialService) RemoveFriend(ctx context.Context, clerkID, otherUserID string) error {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	otherID, err := uuid.Parse(otherUserID)
	if err != nil {
		return fmt.Errorf("invalid user id")
	}

	userA, userB := social.CanonicalPair(userID, otherID)
	result, err := s.db.Exec(ctx,
		`DELETE FROM friendships WHERE user_a_id = $1 AND user_b_id = $2`,
		userA, userB)
	if err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}

	if result.RowsAffected() > 0 {
		log.Printf("RemoveFriend: friendship %s/%s removed", userA, userB)
	}
	return nil
}

// GetRelationshipStatus reports friends/incoming/outgoing/none for a
// viewer and another user. An existing friendship wins over any stale
// pending request.
func (s *SocialService) GetRelationshipStatus(ctx context.Context, clerkID, otherUserID string) (social.RelationshipStatus, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return "", err
	}

	otherID, err := uuid.Parse(otherUserID)
	if err != nil {
		return "", fmt.Errorf("invalid user id")
	}

	userA, userB := social.CanonicalPair(userID, otherID)
	var exists bool
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM friendships WHERE user_a_id = $1 AND user_b_id = $2)`,
		userA, userB).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check friendship: %w", err)
	}
	if exists {
		return social.RelationFriends, nil
	}

	err = s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'
		)`, otherID, userID).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check incoming request: %w", err)
	}
	if exists {
		return social.RelationIncoming, nil
	}

	err = s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'
		)`, userID, otherID).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("failed to check outgoing request: %w", err)
	}
	if exists {
		return social.RelationOutgoing, nil
	}

	return social.RelationNone, nil
}

// GetFriends lists the caller's friends with profile summaries.
func (s *SocialService) GetFriends(ctx context.Context, clerkID string) ([]*user.Summary, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name, COALESCE(u.image_url, '')
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.user_a_id = $1 THEN f.user_b_id ELSE f.user_a_id END
		WHERE f.user_a_id = $1 OR f.user_b_id = $1
		ORDER BY u.username
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get friends: %w", err)
	}
	defer rows.Close()

	var friends []*user.Summary
	for rows.Next() {
		f := &user.Summary{}
		if err := rows.Scan(&f.ID, &f.Username, &f.Email, &f.FirstName, &f.LastName, &f.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}

	if friends == nil {
		friends = []*user.Summary{}
	}
	return friends, nil
}

// GetPendingRequests lists the caller's open requests in both
// directions, each joined with the other party's summary.
func (s *SocialService) GetPendingRequests(ctx context.Context, clerkID string) (*social.PendingRequests, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	pending := &social.PendingRequests{
		Incoming: []*social.RequestWithUser{},
		Outgoing: []*social.RequestWithUser{},
	}

	query := `
		SELECT fr.id, fr.from_user_id, fr.to_user_id, fr.created_at,
			   u.id, u.username, u.email, u.first_name, u.last_name, COALESCE(u.image_url, '')
		FROM friend_requests fr
		JOIN users u ON u.id = CASE WHEN fr.from_user_id = $1 THEN fr.to_user_id ELSE fr.from_user_id END
		WHERE (fr.from_user_id = $1 OR fr.to_user_id = $1) AND fr.status = 'pending'
		ORDER BY fr.created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fromID, toID uuid.UUID
		req := &social.RequestWithUser{}
		if err := rows.Scan(&req.ID, &fromID, &toID, &req.CreatedAt,
			&req.User.ID, &req.User.Username, &req.User.Email,
			&req.User.FirstName, &req.User.LastName, &req.User.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan pending request: %w", err)
		}

		if toID == userID {
			pending.Incoming = append(pending.Incoming, req)
		} else {
			pending.Outgoing = append(pending.Outgoing, req)
		}
	}

	return pending, nil
}

// SearchUsers matches the query case-insensitively against username and
// email, excluding the viewer. Results are capped and ordered by
// username.
func (s *SocialService) SearchUsers(ctx context.Context, clerkID, query string) ([]*user.Summary, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT id, username, email, first_name, last_name, COALESCE(image_url, '')
		FROM users
		WHERE id != $1 AND (username ILIKE $2 OR email ILIKE $2)
		ORDER BY username
		LIMIT $3
	`

	rows, err := s.db.Query(ctx, sqlQuery, userID, "%"+escapeLike(query)+"%", searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var results []*user.Summary
	for rows.Next() {
		u := &user.Summary{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		results = append(results, u)
	}

	if results == nil {
		results = []*user.Summary{}
	}
	return results, nil
}

// GenerateInviteQr renders a scannable friend-invite link for the
// caller's profile as a base64 PNG.
func (s *SocialService) GenerateInviteQr(ctx context.Context, clerkID string) (*social.InviteQr, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	scheme := os.Getenv("APP_LINK_SCHEME")
	if scheme == "" {
		scheme = "fittrack"
	}
	inviteURL := fmt.Sprintf("%s://friends/invite/%s", scheme, userID)

	pngBytes, err := qrcode.Encode(inviteURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR png: %w", err)
	}

	return &social.InviteQr{
		InviteURL:    inviteURL,
		QrCodeBase64: base64.StdEncoding.EncodeToString(pngBytes),
	}, nil
}
