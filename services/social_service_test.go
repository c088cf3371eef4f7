package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitTrackAPI/internal/types/social"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain term untouched", "alice", "alice"},
		{"percent escaped", "100%", `100\%`},
		{"underscore escaped", "gym_rat", `gym\_rat`},
		{"backslash escaped first", `a\%b`, `a\\\%b`},
		{"lone wildcard", "%", `\%`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeLike(tt.input))
		})
	}
}

func TestSendFriendRequestRejectsSelf(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSocialService(env.pool)
	alice := env.createUser(t, "alice")

	_, err := svc.SendFriendRequest(context.Background(), alice.ClerkID, alice.ID.String())
	assert.ErrorIs(t, err, social.ErrSelfRequest)
}

func TestSendFriendRequestDuplicatePending(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSocialService(env.pool)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	req, err := svc.SendFriendRequest(ctx, alice.ClerkID, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, social.RequestPending, req.Status)

	_, err = svc.SendFriendRequest(ctx, alice.ClerkID, bob.ID.String())
	assert.ErrorIs(t, err, social.ErrDuplicateRequest)
}

func TestAcceptFriendRequestAuthorization(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSocialService(env.pool)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	req, err := svc.SendFriendRequest(ctx, alice.ClerkID, bob.ID.String())
	require.NoError(t, err)

	// Only the recipient may accept.
	err = svc.AcceptFriendRequest(ctx, alice.ClerkID, req.ID.String())
	assert.ErrorIs(t, err, social.ErrNotAuthorized)

	err = svc.AcceptFriendRequest(ctx, carol.ClerkID, req.ID.String())
	assert.ErrorIs(t, err, social.ErrNotAuthorized)

	// The failed attempts must not have mutated anything.
	status, err := svc.GetRelationshipStatus(ctx, bob.ClerkID, alice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, social.RelationIncoming, status)
}

func TestAcceptResolvedRequest(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSocialService(env.pool)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	req, err := svc.SendFriendRequest(ctx, alice.ClerkID, bob.ID.String())
	require.NoError(t, err)

	require.NoError(t, svc.DeclineFriendRequest(ctx, bob.ClerkID, req.ID.String()))

	err = svc.AcceptFriendRequest(ctx, bob.ClerkID, req.ID.String())
	assert.ErrorIs(t, err, social.ErrNotPending)

	status, err := svc.GetRelationshipStatus(ctx, alice.ClerkID, bob.ID.String())
	require.NoError(t, err)
	assert.Equal(t, social.RelationNone, status)
}

func TestAcceptCreatesCanonicalFriendship(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSocialService(env.pool)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	req, err := svc.SendFriendRequest(ctx, alice.ClerkID, bob.ID.String())
	require.NoError(t, err)
	require.NoError(t, svc.AcceptFriendRequest(ctx, bob.ClerkID, req.ID.String()))

	// Exactly one friendship row, stored in canonical order.
	userA, userB := social.CanonicalPair(alice.ID, bob.ID)
	var count int
	err = env.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM friendships WHERE user_a_id = $1 AND user_b_id = $2`,
		userA, userB).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	for _, pair := range []struct{ viewer, other string }{
		{alice.ClerkID, bob.ID.String()},
		{bob.ClerkID, alice.ID.String()},
	} {
		status, err := svc.GetRelationshipStatus(ctx, pair.viewer, pair.other)
		require.NoError(t, err)
		assert.Equal(t, social.RelationFriends, status)
	}

	// Friends cannot open a new request in either direction.
	_, err = svc.SendFriendRequest(ctx, alice.ClerkID, bob.ID.String())
	assert.ErrorIs(t, err, social.ErrAlreadyFriends)
	_, err = svc.SendFriendRequest(ctx, bob.ClerkID, alice.ID.String())
	assert.ErrorIs(t, err, social.ErrAlreadyFriends)
}

func TestRemoveFriendIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSocialService(env.pool)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	// Removing a friendship that never existed is a no-op.
	assert.NoError(t, svc.RemoveFriend(ctx, alice.ClerkID, bob.ID.String()))

	req, err := svc.SendFriendRequest(ctx, alice.ClerkID, bob.ID.String())
	require.NoError(t, err)
	require.NoError(t, svc.AcceptFriendRequest(ctx, bob.ClerkID, req.ID.String()))

	assert.NoError(t, svc.RemoveFriend(ctx, alice.ClerkID, bob.ID.String()))
	assert.NoError(t, svc.RemoveFriend(ctx, alice.ClerkID, bob.ID.String()))

	status, err := svc.GetRelationshipStatus(ctx, bob.ClerkID, alice.ID.String())
	require.NoError(t, err)
	assert.Equal(t, social.RelationNone, status)
}

func TestSearchUsersTreatsWildcardsLiterally(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewSocialService(env.pool)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	// An exact fragment of bob's generated username finds him.
	results, err := svc.SearchUsers(ctx, alice.ClerkID, bob.Username)
	require.NoError(t, err)
	found := false
	for _, r := range results {
		if r.ID == bob.ID {
			found = true
		}
	}
	assert.True(t, found, "expected search to find bob by username")

	// A bare wildcard matches only literal "%" characters, so bob
	// (whose username has none) must not appear.
	results, err = svc.SearchUsers(ctx, alice.ClerkID, "%")
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, bob.ID, r.ID, "wildcard query should not match bob")
	}
}
