package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitTrackAPI/internal/types/habit"
)

type HabitService struct {
	db *pgxpool.Pool
}

func NewHabitService(db *pgxpool.Pool) *HabitService {
	return &HabitService{
		db: db,
	}
}

func (s *HabitService) CreateHabit(ctx context.Context, clerkID string, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("habit name is required")
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = "daily"
	}

	query := `
		INSERT INTO habits (user_id, name, description, frequency)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, COALESCE(description, ''), frequency, created_at
	`

	h := &habit.Habit{}
	err = s.db.QueryRow(ctx, query, userID, req.Name, req.Description, frequency).Scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return h, nil
}

// GetHabits lists the caller's habits with today's completion state and
// the trailing seven-day completion count.
func (s *HabitService) GetHabits(ctx context.Context, clerkID string) ([]*habit.WithStreak, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT h.id, h.user_id, h.name, COALESCE(h.description, ''), h.frequency, h.created_at,
			   EXISTS (
				   SELECT 1 FROM habit_logs hl
				   WHERE hl.habit_id = h.id AND hl.date = CURRENT_DATE AND hl.completed = true
			   ) AS completed_today,
			   (
				   SELECT COUNT(*) FROM habit_logs hl
				   WHERE hl.habit_id = h.id AND hl.completed = true
					 AND hl.date > CURRENT_DATE - INTERVAL '7 days'
			   ) AS week_count
		FROM habits h
		WHERE h.user_id = $1
		ORDER BY h.created_at
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}
	defer rows.Close()

	var habits []*habit.WithStreak
	for rows.Next() {
		h := &habit.WithStreak{}
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency,
			&h.CreatedAt, &h.CompletedToday, &h.WeekCount); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}

	if habits == nil {
		habits = []*habit.WithStreak{}
	}
	return habits, nil
}

func (s *HabitService) DeleteHabit(ctx context.Context, clerkID, habitID string) error {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	hID, err := uuid.Parse(habitID)
	if err != nil {
		return fmt.Errorf("invalid habit id")
	}

	result, err := s.db.Exec(ctx,
		`DELETE FROM habits WHERE id = $1 AND user_id = $2`, hID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("habit not found")
	}

	return nil
}

// CheckInHabit records today's completion. The unique constraint on
// (habit_id, date) makes a second check-in on the same day a reported
// no-op instead of a duplicate row.
func (s *HabitService) CheckInHabit(ctx context.Context, clerkID, habitID string) (*habit.CheckInResult, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	hID, err := uuid.Parse(habitID)
	if err != nil {
		return nil, fmt.Errorf("invalid habit id")
	}

	var owned bool
	err = s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM habits WHERE id = $1 AND user_id = $2)`,
		hID, userID).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("failed to check habit: %w", err)
	}
	if !owned {
		return nil, fmt.Errorf("habit not found")
	}

	// The reported date comes from the database so it always matches the
	// stored row, even across a midnight boundary or timezone mismatch.
	checkIn := &habit.CheckInResult{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO habit_logs (habit_id, date, completed)
		VALUES ($1, CURRENT_DATE, true)
		ON CONFLICT (habit_id, date) DO NOTHING
		RETURNING date
	`, hID).Scan(&checkIn.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		checkIn.AlreadyChecked = true
		err = s.db.QueryRow(ctx,
			`SELECT MAX(date) FROM habit_logs WHERE habit_id = $1`, hID).Scan(&checkIn.Date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check in habit: %w", err)
	}

	if !checkIn.AlreadyChecked {
		log.Printf("CheckInHabit: habit %s checked in for user %s", hID, userID)
	}
	return checkIn, nil
}
