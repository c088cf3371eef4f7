package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitTrackAPI/internal/types/workout"
	"fitTrackAPI/internal/video"
)

var ErrVideoNotFound = errors.New("no video available for this exercise")

type WorkoutService struct {
	db     *pgxpool.Pool
	mirror *MirrorDispatcher
}

func NewWorkoutService(db *pgxpool.Pool, mirror *MirrorDispatcher) *WorkoutService {
	return &WorkoutService{
		db:     db,
		mirror: mirror,
	}
}

// ---------------------------------------------------------------------
// Exercise catalog
// ---------------------------------------------------------------------

const exerciseColumns = `
	id, name, category, muscle_group, equipment, calories_per_minute,
	COALESCE(description, ''), COALESCE(instructions, ''), video_url
`

// GetExercises lists the catalog, optionally filtered by category or a
// case-insensitive name search.
func (s *WorkoutService) GetExercises(ctx context.Context, category, search string) ([]*workout.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE 1=1`
	args := []any{}

	if category != "" {
		args = append(args, category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	query += " ORDER BY category, name"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*workout.Exercise
	for rows.Next() {
		e := &workout.Exercise{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.MuscleGroup, &e.Equipment,
			&e.CaloriesPerMinute, &e.Description, &e.Instructions, &e.VideoURL); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}

	if exercises == nil {
		exercises = []*workout.Exercise{}
	}
	return exercises, nil
}

// GetExerciseVideoInfo resolves the how-to video for a catalog exercise.
// A URL stored on the row wins and is normalized to its embeddable form;
// otherwise the built-in table is consulted.
func (s *WorkoutService) GetExerciseVideoInfo(ctx context.Context, exerciseID string) (*workout.VideoInfo, error) {
	eID, err := uuid.Parse(exerciseID)
	if err != nil {
		return nil, fmt.Errorf("invalid exercise id")
	}

	var name string
	var videoURL *string
	err = s.db.QueryRow(ctx,
		`SELECT name, video_url FROM exercises WHERE id = $1`, eID).Scan(&name, &videoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("exercise not found")
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}

	if videoURL != nil && *videoURL != "" {
		return &workout.VideoInfo{
			Title:  name,
			Embed:  video.Normalize(*videoURL),
			Source: "db",
		}, nil
	}

	if info, ok := video.Lookup(name); ok {
		return &workout.VideoInfo{
			Title:  info.Title,
			Embed:  info.Embed,
			Source: "default",
		}, nil
	}

	return nil, ErrVideoNotFound
}

// ---------------------------------------------------------------------
// Workout sessions
// ---------------------------------------------------------------------

func (s *WorkoutService) CreateWorkout(ctx context.Context, clerkID string, req *workout.CreateWorkoutRequest) (*workout.Workout, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("workout name is required")
	}

	date := time.Now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD")
		}
	}

	query := `
		INSERT INTO workouts (user_id, name, date, duration_minutes, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, date, duration_minutes, COALESCE(notes, ''), completed, created_at
	`

	w := &workout.Workout{}
	err = s.db.QueryRow(ctx, query, userID, req.Name, date, req.DurationMinutes, req.Notes).Scan(
		&w.ID, &w.UserID, &w.Name, &w.Date, &w.DurationMinutes, &w.Notes, &w.Completed, &w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}

	s.mirrorWorkout(ctx, w.ID)
	return w, nil
}

func (s *WorkoutService) GetWorkouts(ctx context.Context, clerkID string) ([]*workout.Workout, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, date, duration_minutes, COALESCE(notes, ''), completed, created_at
		FROM workouts
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*workout.Workout
	for rows.Next() {
		w := &workout.Workout{}
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Date, &w.DurationMinutes,
			&w.Notes, &w.Completed, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}

	if workouts == nil {
		workouts = []*workout.Workout{}
	}
	return workouts, nil
}

// GetWorkoutDetail loads a workout with its ordered exercises and sets.
func (s *WorkoutService) GetWorkoutDetail(ctx context.Context, clerkID, workoutID string) (*workout.Detail, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	wID, err := uuid.Parse(workoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid workout id")
	}

	detail := &workout.Detail{}
	err = s.db.QueryRow(ctx, `
		SELECT id, user_id, name, date, duration_minutes, COALESCE(notes, ''), completed, created_at
		FROM workouts WHERE id = $1 AND user_id = $2
	`, wID, userID).Scan(
		&detail.ID, &detail.UserID, &detail.Name, &detail.Date, &detail.DurationMinutes,
		&detail.Notes, &detail.Completed, &detail.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("workout not found")
		}
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}

	detail.Exercises, err = s.loadWorkoutExercises(ctx, wID)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *WorkoutService) loadWorkoutExercises(ctx context.Context, workoutID uuid.UUID) ([]*workout.WorkoutExercise, error) {
	query := `
		SELECT we.id, we.workout_id, we.exercise_id, e.name, e.category,
			   we.order_index, we.rest_time_seconds, COALESCE(we.notes, '')
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = $1
		ORDER BY we.order_index
	`

	rows, err := s.db.Query(ctx, query, workoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout exercises: %w", err)
	}
	defer rows.Close()

	exercises := []*workout.WorkoutExercise{}
	for rows.Next() {
		we := &workout.WorkoutExercise{Sets: []*workout.ExerciseSet{}}
		if err := rows.Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &we.ExerciseName,
			&we.Category, &we.OrderIndex, &we.RestTimeSeconds, &we.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan workout exercise: %w", err)
		}
		exercises = append(exercises, we)
	}
	rows.Close()

	for _, we := range exercises {
		setRows, err := s.db.Query(ctx, `
			SELECT id, workout_exercise_id, set_number, reps, weight_kg,
				   duration_seconds, distance_m, completed
			FROM exercise_sets
			WHERE workout_exercise_id = $1
			ORDER BY set_number
		`, we.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get sets: %w", err)
		}
		for setRows.Next() {
			set := &workout.ExerciseSet{}
			if err := setRows.Scan(&set.ID, &set.WorkoutExerciseID, &set.SetNumber,
				&set.Reps, &set.WeightKg, &set.DurationSeconds, &set.DistanceM, &set.Completed); err != nil {
				setRows.Close()
				return nil, fmt.Errorf("failed to scan set: %w", err)
			}
			we.Sets = append(we.Sets, set)
		}
		setRows.Close()
	}

	return exercises, nil
}

func (s *WorkoutService) DeleteWorkout(ctx context.Context, clerkID, workoutID string) error {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	wID, err := uuid.Parse(workoutID)
	if err != nil {
		return fmt.Errorf("invalid workout id")
	}

	result, err := s.db.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`, wID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("workout not found")
	}

	if s.mirror != nil {
		s.mirror.DispatchDelete(wID.String())
	}
	return nil
}

// AddExercise appends a catalog exercise to a workout. Order index is
// max+1 within the workout; the same exercise cannot appear twice.
func (s *WorkoutService) AddExercise(ctx context.Context, clerkID, workoutID string, req *workout.AddExerciseRequest) (*workout.WorkoutExercise, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	wID, err := uuid.Parse(workoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid workout id")
	}
	eID, err := uuid.Parse(req.ExerciseID)
	if err != nil {
		return nil, fmt.Errorf("invalid exercise id")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var owned bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM workouts WHERE id = $1 AND user_id = $2)`,
		wID, userID).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("failed to check workout: %w", err)
	}
	if !owned {
		return nil, fmt.Errorf("workout not found")
	}

	query := `
		INSERT INTO workout_exercises (workout_id, exercise_id, order_index, rest_time_seconds, notes)
		SELECT $1, $2, COALESCE(MAX(order_index), 0) + 1, $3, $4
		FROM workout_exercises WHERE workout_id = $1
		ON CONFLICT (workout_id, exercise_id) DO NOTHING
		RETURNING id, workout_id, exercise_id, order_index, rest_time_seconds, COALESCE(notes, '')
	`

	we := &workout.WorkoutExercise{Sets: []*workout.ExerciseSet{}}
	err = tx.QueryRow(ctx, query, wID, eID, req.RestTimeSeconds, req.Notes).Scan(
		&we.ID, &we.WorkoutID, &we.ExerciseID, &we.OrderIndex, &we.RestTimeSeconds, &we.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("exercise already in this workout")
		}
		return nil, fmt.Errorf("failed to add exercise: %w", err)
	}

	err = tx.QueryRow(ctx,
		`SELECT name, category FROM exercises WHERE id = $1`, eID).Scan(&we.ExerciseName, &we.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("exercise not found")
		}
		return nil, fmt.Errorf("failed to load exercise: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.mirrorWorkout(ctx, wID)
	return we, nil
}

// AddSet records one performance unit with a monotonically increasing
// set number per workout exercise.
func (s *WorkoutService) AddSet(ctx context.Context, clerkID, workoutExerciseID string, req *workout.AddSetRequest) (*workout.ExerciseSet, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	weID, err := uuid.Parse(workoutExerciseID)
	if err != nil {
		return nil, fmt.Errorf("invalid workout exercise id")
	}

	var workoutID uuid.UUID
	err = s.db.QueryRow(ctx, `
		SELECT we.workout_id
		FROM workout_exercises we
		JOIN workouts w ON w.id = we.workout_id
		WHERE we.id = $1 AND w.user_id = $2
	`, weID, userID).Scan(&workoutID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("workout exercise not found")
		}
		return nil, fmt.Errorf("failed to check workout exercise: %w", err)
	}

	query := `
		INSERT INTO exercise_sets (workout_exercise_id, set_number, reps, weight_kg, duration_seconds, distance_m, completed)
		SELECT $1, COALESCE(MAX(set_number), 0) + 1, $2, $3, $4, $5, $6
		FROM exercise_sets WHERE workout_exercise_id = $1
		RETURNING id, workout_exercise_id, set_number, reps, weight_kg, duration_seconds, distance_m, completed
	`

	set := &workout.ExerciseSet{}
	err = s.db.QueryRow(ctx, query, weID, req.Reps, req.WeightKg,
		req.DurationSeconds, req.DistanceM, req.Completed).Scan(
		&set.ID, &set.WorkoutExerciseID, &set.SetNumber, &set.Reps, &set.WeightKg,
		&set.DurationSeconds, &set.DistanceM, &set.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to add set: %w", err)
	}

	s.mirrorWorkout(ctx, workoutID)
	return set, nil
}

// CompleteWorkout marks the session done, estimates calories burned from
// the catalog calories-per-minute of its exercises, and records the burn
// in exercise_logs for the aggregator.
func (s *WorkoutService) CompleteWorkout(ctx context.Context, clerkID, workoutID string) (*workout.ExerciseLog, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	wID, err := uuid.Parse(workoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid workout id")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var name string
	var date time.Time
	var duration int
	var completed bool
	err = tx.QueryRow(ctx, `
		SELECT name, date, duration_minutes, completed
		FROM workouts WHERE id = $1 AND user_id = $2 FOR UPDATE
	`, wID, userID).Scan(&name, &date, &duration, &completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("workout not found")
		}
		return nil, fmt.Errorf("failed to load workout: %w", err)
	}
	if completed {
		return nil, fmt.Errorf("workout already completed")
	}

	// Average the calories-per-minute over the session's exercises;
	// an empty session burns nothing.
	var caloriesPerMinute float64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(AVG(e.calories_per_minute), 0)
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = $1
	`, wID).Scan(&caloriesPerMinute)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate calories: %w", err)
	}

	caloriesBurned := caloriesPerMinute * float64(duration)

	_, err = tx.Exec(ctx, `UPDATE workouts SET completed = true WHERE id = $1`, wID)
	if err != nil {
		return nil, fmt.Errorf("failed to complete workout: %w", err)
	}

	logEntry := &workout.ExerciseLog{}
	err = tx.QueryRow(ctx, `
		INSERT INTO exercise_logs (user_id, exercise_name, duration_minutes, calories_burned, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, exercise_name, duration_minutes, calories_burned, date
	`, userID, name, duration, caloriesBurned, date).Scan(
		&logEntry.ID, &logEntry.UserID, &logEntry.ExerciseName,
		&logEntry.DurationMinutes, &logEntry.CaloriesBurned, &logEntry.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to record exercise log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("CompleteWorkout: workout %s completed, %.0f kcal burned", wID, caloriesBurned)
	s.mirrorWorkout(ctx, wID)
	return logEntry, nil
}

// mirrorWorkout queues the current state of a workout for the document
// store. Runs after the relational write has committed; any failure here
// only logs.
func (s *WorkoutService) mirrorWorkout(ctx context.Context, workoutID uuid.UUID) {
	if s.mirror == nil {
		return
	}

	doc, err := s.buildWorkoutDocument(ctx, workoutID)
	if err != nil {
		log.Printf("mirrorWorkout: failed to build document for %s: %v", workoutID, err)
		return
	}

	s.mirror.DispatchSave(doc)
}

func (s *WorkoutService) buildWorkoutDocument(ctx context.Context, workoutID uuid.UUID) (*workout.Document, error) {
	var userID uuid.UUID
	doc := &workout.Document{SQLWorkoutID: workoutID.String()}

	var date time.Time
	var notes string
	err := s.db.QueryRow(ctx, `
		SELECT user_id, name, COALESCE(notes, ''), date, duration_minutes
		FROM workouts WHERE id = $1
	`, workoutID).Scan(&userID, &doc.Name, &notes, &date, &doc.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to load workout: %w", err)
	}
	doc.UserID = userID.String()
	doc.Notes = notes
	doc.Date = date.Format("2006-01-02")

	exercises, err := s.loadWorkoutExercises(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	doc.Exercises = make([]*workout.DocumentExercise, 0, len(exercises))
	for _, we := range exercises {
		docEx := &workout.DocumentExercise{
			ExerciseID: we.ExerciseID.String(),
			Name:       we.ExerciseName,
			Category:   we.Category,
			Order:      we.OrderIndex,
			Sets:       make([]*workout.DocumentSet, 0, len(we.Sets)),
		}
		for _, set := range we.Sets {
			docEx.Sets = append(docEx.Sets, &workout.DocumentSet{
				SetNumber:       set.SetNumber,
				Reps:            set.Reps,
				WeightKg:        set.WeightKg,
				DurationSeconds: set.DurationSeconds,
				DistanceM:       set.DistanceM,
				Completed:       set.Completed,
			})
		}
		doc.Exercises = append(doc.Exercises, docEx)
	}

	return doc, nil
}
