package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitTrackAPI/internal/coach"
	"fitTrackAPI/internal/energy"
)

// ActivityService rolls habit, exercise, food and water logs up into
// daily and weekly summaries. Every method here is query-only and
// tolerates empty data by returning zeros.
type ActivityService struct {
	db    *pgxpool.Pool
	users *UserService
}

func NewActivityService(db *pgxpool.Pool, users *UserService) *ActivityService {
	return &ActivityService{
		db:    db,
		users: users,
	}
}

// DaySummary is one day's rollup.
type DaySummary struct {
	HabitsCompleted  int     `json:"habits_completed"`
	CaloriesBurned   float64 `json:"calories_burned"`
	CaloriesConsumed float64 `json:"calories_consumed"`
	WaterIntakeMl    float64 `json:"water_intake_ml"`
}

// Dashboard is the today view. RemainingCalories is present only when
// the user's body stats are complete.
type Dashboard struct {
	DaySummary
	TDEE              *float64 `json:"tdee,omitempty"`
	RemainingCalories *float64 `json:"remaining_calories,omitempty"`
	RecentExercises   string   `json:"recent_exercises"`
}

// WeeklySummary covers the trailing seven days.
type WeeklySummary struct {
	Workouts        int     `json:"workouts"`
	CaloriesBurned  float64 `json:"calories_burned"`
	HabitsCompleted int     `json:"habits_completed"`
	AvgWaterMl      float64 `json:"avg_water_ml"`
}

func (s *ActivityService) daySummary(ctx context.Context, userID uuid.UUID) (*DaySummary, error) {
	summary := &DaySummary{}

	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM habit_logs hl
		JOIN habits h ON h.id = hl.habit_id
		WHERE h.user_id = $1 AND hl.date = CURRENT_DATE AND hl.completed = true
	`, userID).Scan(&summary.HabitsCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count habit completions: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(calories_burned), 0)
		FROM exercise_logs
		WHERE user_id = $1 AND date = CURRENT_DATE
	`, userID).Scan(&summary.CaloriesBurned)
	if err != nil {
		return nil, fmt.Errorf("failed to sum calories burned: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_calories), 0)
		FROM food_logs
		WHERE user_id = $1 AND date = CURRENT_DATE
	`, userID).Scan(&summary.CaloriesConsumed)
	if err != nil {
		return nil, fmt.Errorf("failed to sum calories consumed: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_ml), 0)
		FROM water_logs
		WHERE user_id = $1 AND date = CURRENT_DATE
	`, userID).Scan(&summary.WaterIntakeMl)
	if err != nil {
		return nil, fmt.Errorf("failed to sum water intake: %w", err)
	}

	return summary, nil
}

// recentExercises formats the last three exercise logs as
// "Name (N min), ..." or "No exercises today".
func (s *ActivityService) recentExercises(ctx context.Context, userID uuid.UUID) (string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT exercise_name, duration_minutes
		FROM exercise_logs
		WHERE user_id = $1 AND date = CURRENT_DATE
		ORDER BY id DESC
		LIMIT 3
	`, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get recent exercises: %w", err)
	}
	defer rows.Close()

	var parts []string
	for rows.Next() {
		var name string
		var minutes int
		if err := rows.Scan(&name, &minutes); err != nil {
			return "", fmt.Errorf("failed to scan exercise log: %w", err)
		}
		parts = append(parts, fmt.Sprintf("%s (%d min)", name, minutes))
	}

	if len(parts) == 0 {
		return "No exercises today", nil
	}
	return strings.Join(parts, ", "), nil
}

// GetDashboard builds the today view. Remaining calories are
// TDEE - consumed + burned, computed only for users with all five body
// stat fields set.
func (s *ActivityService) GetDashboard(ctx context.Context, clerkID string) (*Dashboard, error) {
	u, err := s.users.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	summary, err := s.daySummary(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{DaySummary: *summary}

	dashboard.RecentExercises, err = s.recentExercises(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	if u.HasBodyStats() {
		if bmr, ok := energy.BMR(*u.WeightKg, *u.HeightCm, *u.Age, *u.Gender); ok {
			tdee := energy.TDEE(bmr, *u.ActivityLevel)
			remaining := energy.Round2(tdee - summary.CaloriesConsumed + summary.CaloriesBurned)
			dashboard.TDEE = &tdee
			dashboard.RemainingCalories = &remaining
		}
	}

	return dashboard, nil
}

// GetWeeklySummary rolls up the trailing seven days for the progress
// analysis feature.
func (s *ActivityService) GetWeeklySummary(ctx context.Context, clerkID string) (*WeeklySummary, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	summary := &WeeklySummary{}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(calories_burned), 0)
		FROM exercise_logs
		WHERE user_id = $1 AND date > CURRENT_DATE - INTERVAL '7 days'
	`, userID).Scan(&summary.Workouts, &summary.CaloriesBurned)
	if err != nil {
		return nil, fmt.Errorf("failed to sum weekly exercise: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM habit_logs hl
		JOIN habits h ON h.id = hl.habit_id
		WHERE h.user_id = $1 AND hl.completed = true
		  AND hl.date > CURRENT_DATE - INTERVAL '7 days'
	`, userID).Scan(&summary.HabitsCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly habits: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_ml), 0) / 7
		FROM water_logs
		WHERE user_id = $1 AND date > CURRENT_DATE - INTERVAL '7 days'
	`, userID).Scan(&summary.AvgWaterMl)
	if err != nil {
		return nil, fmt.Errorf("failed to average weekly water: %w", err)
	}

	return summary, nil
}

// RecentActivity snapshots today's data for the coach context.
func (s *ActivityService) RecentActivity(ctx context.Context, userID uuid.UUID) (*coach.RecentActivity, error) {
	summary, err := s.daySummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.recentExercises(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exercises == "No exercises today" {
		exercises = ""
	}

	return &coach.RecentActivity{
		HabitsCompleted:  summary.HabitsCompleted,
		Exercises:        exercises,
		CaloriesBurned:   summary.CaloriesBurned,
		CaloriesConsumed: summary.CaloriesConsumed,
		WaterIntakeMl:    summary.WaterIntakeMl,
	}, nil
}
