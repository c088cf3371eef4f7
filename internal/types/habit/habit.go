package habit

import (
	"time"

	"github.com/google/uuid"
)

type Habit struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	CreatedAt   time.Time `json:"created_at"`
}

type HabitLog struct {
	ID        uuid.UUID `json:"id"`
	HabitID   uuid.UUID `json:"habit_id"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

type CreateHabitRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
}

// WithStreak is a habit joined with today's state and the trailing
// seven-day completion count.
type WithStreak struct {
	Habit
	CompletedToday bool `json:"completed_today"`
	WeekCount      int  `json:"week_count"`
}

// CheckInResult reports whether a check-in created a log or found one
// already recorded for the date.
type CheckInResult struct {
	AlreadyChecked bool      `json:"already_checked"`
	Date           time.Time `json:"date"`
}
