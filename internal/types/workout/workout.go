package workout

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a catalog row, not a per-user log.
type Exercise struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	MuscleGroup        string    `json:"muscle_group"`
	Equipment          string    `json:"equipment"`
	CaloriesPerMinute  float64   `json:"calories_per_minute"`
	Description        string    `json:"description,omitempty"`
	Instructions       string    `json:"instructions,omitempty"`
	VideoURL           *string   `json:"video_url,omitempty"`
}

type Workout struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"created_at"`
}

// WorkoutExercise orders a catalog exercise within a workout session.
type WorkoutExercise struct {
	ID              uuid.UUID `json:"id"`
	WorkoutID       uuid.UUID `json:"workout_id"`
	ExerciseID      uuid.UUID `json:"exercise_id"`
	ExerciseName    string    `json:"exercise_name"`
	Category        string    `json:"category"`
	OrderIndex      int       `json:"order_index"`
	RestTimeSeconds int       `json:"rest_time_seconds"`
	Notes           string    `json:"notes,omitempty"`
	Sets            []*ExerciseSet `json:"sets"`
}

// ExerciseSet records one performance unit. SetNumber is monotonically
// increasing per workout exercise.
type ExerciseSet struct {
	ID                uuid.UUID `json:"id"`
	WorkoutExerciseID uuid.UUID `json:"workout_exercise_id"`
	SetNumber         int       `json:"set_number"`
	Reps              *int      `json:"reps"`
	WeightKg          *float64  `json:"weight_kg"`
	DurationSeconds   *int      `json:"duration_seconds"`
	DistanceM         *float64  `json:"distance_m"`
	Completed         bool      `json:"completed"`
}

// Detail is a workout with its ordered exercises and their sets.
type Detail struct {
	Workout
	Exercises []*WorkoutExercise `json:"exercises"`
}

// ExerciseLog is the per-date burn record feeding daily and weekly
// calorie aggregation.
type ExerciseLog struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ExerciseName    string    `json:"exercise_name"`
	DurationMinutes int       `json:"duration_minutes"`
	CaloriesBurned  float64   `json:"calories_burned"`
	Date            time.Time `json:"date"`
}

type CreateWorkoutRequest struct {
	Name            string `json:"name"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

type AddExerciseRequest struct {
	ExerciseID      string `json:"exercise_id"`
	RestTimeSeconds int    `json:"rest_time_seconds"`
	Notes           string `json:"notes"`
}

type AddSetRequest struct {
	Reps            *int     `json:"reps"`
	WeightKg        *float64 `json:"weight_kg"`
	DurationSeconds *int     `json:"duration_seconds"`
	DistanceM       *float64 `json:"distance_m"`
	Completed       bool     `json:"completed"`
}

// VideoInfo is the lookup result for an exercise how-to video. Source is
// "db" when the catalog row carries a URL, "default" when it comes from
// the built-in table.
type VideoInfo struct {
	Title  string `json:"title"`
	Embed  string `json:"embed"`
	Source string `json:"source"`
}

// Document is the mirrored form of a workout written to the document
// store, keyed by the relational workout ID.
type Document struct {
	SQLWorkoutID    string              `json:"sqlWorkoutId" firestore:"sqlWorkoutId"`
	UserID          string              `json:"userId" firestore:"userId"`
	Name            string              `json:"name" firestore:"name"`
	Notes           string              `json:"notes" firestore:"notes"`
	Date            string              `json:"date" firestore:"date"`
	DurationMinutes int                 `json:"durationMinutes" firestore:"durationMinutes"`
	Exercises       []*DocumentExercise `json:"exercises" firestore:"exercises"`
}

type DocumentExercise struct {
	ExerciseID string         `json:"exerciseId" firestore:"exerciseId"`
	Name       string         `json:"name" firestore:"name"`
	Category   string         `json:"category" firestore:"category"`
	Order      int            `json:"order" firestore:"order"`
	Sets       []*DocumentSet `json:"sets" firestore:"sets"`
}

type DocumentSet struct {
	SetNumber       int      `json:"setNumber" firestore:"setNumber"`
	Reps            *int     `json:"reps" firestore:"reps"`
	WeightKg        *float64 `json:"weightKg" firestore:"weightKg"`
	DurationSeconds *int     `json:"durationSeconds" firestore:"durationSeconds"`
	DistanceM       *float64 `json:"distanceM" firestore:"distanceM"`
	Completed       bool     `json:"completed" firestore:"completed"`
}
