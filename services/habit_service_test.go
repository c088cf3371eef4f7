package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitTrackAPI/internal/types/habit"
)

func TestCheckInHabitIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewHabitService(env.pool)
	ctx := context.Background()

	u := env.createUser(t, "habit")

	h, err := svc.CreateHabit(ctx, u.ClerkID, &habit.CreateHabitRequest{Name: "Drink water"})
	require.NoError(t, err)

	first, err := svc.CheckInHabit(ctx, u.ClerkID, h.ID.String())
	require.NoError(t, err)
	assert.False(t, first.AlreadyChecked)

	second, err := svc.CheckInHabit(ctx, u.ClerkID, h.ID.String())
	require.NoError(t, err)
	assert.True(t, second.AlreadyChecked)

	// Exactly one log row, and both responses report its stored date.
	var count int
	var stored time.Time
	err = env.pool.QueryRow(ctx,
		`SELECT COUNT(*), MAX(date) FROM habit_logs WHERE habit_id = $1`, h.ID).Scan(&count, &stored)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, first.Date.Equal(stored), "first check-in date %v != stored %v", first.Date, stored)
	assert.True(t, second.Date.Equal(stored), "second check-in date %v != stored %v", second.Date, stored)
}

func TestCheckInHabitUnknownHabit(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewHabitService(env.pool)
	ctx := context.Background()

	u := env.createUser(t, "habit")

	_, err := svc.CheckInHabit(ctx, u.ClerkID, "00000000-0000-0000-0000-000000000000")
	assert.EqualError(t, err, "habit not found")
}
