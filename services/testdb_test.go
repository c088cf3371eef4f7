package services

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"fitTrackAPI/internal/types/user"
)

// testEnv wires the service layer against a real database. Tests using
// it are skipped unless TEST_DATABASE_URL or DATABASE_URL is set, so
// the pure unit tests still run everywhere.
type testEnv struct {
	pool  *pgxpool.Pool
	users *UserService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set, skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, pool.Ping(ctx), "failed to ping test database")

	t.Cleanup(pool.Close)

	return &testEnv{
		pool:  pool,
		users: NewUserService(pool),
	}
}

// createUser registers a throwaway user and schedules its removal,
// dependents included.
func (e *testEnv) createUser(t *testing.T, tag string) *user.User {
	t.Helper()

	nonce := fmt.Sprintf("%s_%d", tag, time.Now().UnixNano())
	u, err := e.users.CreateUser(context.Background(), &user.CreateUserRequest{
		ClerkID:   "user_test_" + nonce,
		Email:     "test+" + nonce + "@example.com",
		Username:  "test_" + nonce,
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err, "failed to create test user")

	t.Cleanup(func() { e.deleteUser(u.ID) })
	return u
}

func (e *testEnv) deleteUser(id uuid.UUID) {
	ctx := context.Background()
	e.pool.Exec(ctx, `DELETE FROM friend_requests WHERE from_user_id = $1 OR to_user_id = $1`, id)
	e.pool.Exec(ctx, `DELETE FROM friendships WHERE user_a_id = $1 OR user_b_id = $1`, id)
	e.pool.Exec(ctx, `DELETE FROM habit_logs WHERE habit_id IN (SELECT id FROM habits WHERE user_id = $1)`, id)
	e.pool.Exec(ctx, `DELETE FROM habits WHERE user_id = $1`, id)
	e.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
}
