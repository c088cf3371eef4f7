package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardZeroDefaultsOnEmptyData(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewActivityService(env.pool, env.users)
	ctx := context.Background()

	u := env.createUser(t, "fresh")

	dashboard, err := svc.GetDashboard(ctx, u.ClerkID)
	require.NoError(t, err)

	assert.Equal(t, 0, dashboard.HabitsCompleted)
	assert.Equal(t, 0.0, dashboard.CaloriesBurned)
	assert.Equal(t, 0.0, dashboard.CaloriesConsumed)
	assert.Equal(t, 0.0, dashboard.WaterIntakeMl)
	assert.Equal(t, "No exercises today", dashboard.RecentExercises)

	// Body stats are incomplete, so no energy numbers are derived.
	assert.Nil(t, dashboard.TDEE)
	assert.Nil(t, dashboard.RemainingCalories)
}

func TestWeeklySummaryZeroDefaultsOnEmptyData(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewActivityService(env.pool, env.users)
	ctx := context.Background()

	u := env.createUser(t, "fresh")

	weekly, err := svc.GetWeeklySummary(ctx, u.ClerkID)
	require.NoError(t, err)

	assert.Equal(t, 0, weekly.Workouts)
	assert.Equal(t, 0.0, weekly.CaloriesBurned)
	assert.Equal(t, 0, weekly.HabitsCompleted)
	assert.Equal(t, 0.0, weekly.AvgWaterMl)
}

func TestRecentActivityBlanksEmptyExercises(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewActivityService(env.pool, env.users)
	ctx := context.Background()

	u := env.createUser(t, "fresh")

	recent, err := svc.RecentActivity(ctx, u.ID)
	require.NoError(t, err)

	assert.Empty(t, recent.Exercises)
	assert.Equal(t, 0, recent.HabitsCompleted)
	assert.Equal(t, 0.0, recent.CaloriesConsumed)
}
