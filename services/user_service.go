package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitTrackAPI/internal/energy"
	"fitTrackAPI/internal/types/user"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{
		db: db,
	}
}

// getUserIDByClerkID resolves the authenticated Clerk ID to the internal
// user UUID. Shared by every service in this package.
func getUserIDByClerkID(ctx context.Context, db *pgxpool.Pool, clerkID string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("user not found")
		}
		return uuid.Nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return userID, nil
}

const userColumns = `
	id, clerk_id, email, username, first_name, last_name, COALESCE(image_url, ''),
	age, gender, height_cm, weight_kg, activity_level, goal,
	target_weight_kg, target_date, created_at, updated_at
`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID, &u.ClerkID, &u.Email, &u.Username, &u.FirstName, &u.LastName, &u.ImageURL,
		&u.Age, &u.Gender, &u.HeightCm, &u.WeightKg, &u.ActivityLevel, &u.Goal,
		&u.TargetWeight, &u.TargetDate, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE clerk_id = $1`

	u, err := scanUser(s.db.QueryRow(ctx, query, clerkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// CreateUser inserts a new user synced from Clerk. Re-delivered webhook
// events update the existing row instead of failing.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	query := `
		INSERT INTO users (clerk_id, email, username, first_name, last_name, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (clerk_id) DO UPDATE SET
			email = EXCLUDED.email,
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			image_url = EXCLUDED.image_url,
			updated_at = NOW()
		RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(ctx, query,
		req.ClerkID, req.Email, req.Username, req.FirstName, req.LastName, req.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("CreateUser: synced user %s (clerk %s)", u.ID, u.ClerkID)
	return u, nil
}

func (s *UserService) UpdateProfileByClerkID(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	if req.Gender != nil {
		switch *req.Gender {
		case "male", "female", "other":
		default:
			return nil, fmt.Errorf("invalid gender value")
		}
	}
	if req.ActivityLevel != nil {
		switch *req.ActivityLevel {
		case "sedentary", "light", "moderate", "active", "very_active":
		default:
			return nil, fmt.Errorf("invalid activity_level value")
		}
	}
	if req.Goal != nil {
		switch *req.Goal {
		case "lose_weight", "gain_muscle", "maintain_weight":
		default:
			return nil, fmt.Errorf("invalid goal value")
		}
	}

	query := `
		UPDATE users SET
			username = COALESCE($2, username),
			first_name = COALESCE($3, first_name),
			last_name = COALESCE($4, last_name),
			image_url = COALESCE($5, image_url),
			age = COALESCE($6, age),
			gender = COALESCE($7, gender),
			height_cm = COALESCE($8, height_cm),
			weight_kg = COALESCE($9, weight_kg),
			activity_level = COALESCE($10, activity_level),
			goal = COALESCE($11, goal),
			target_weight_kg = COALESCE($12, target_weight_kg),
			target_date = COALESCE($13, target_date),
			updated_at = NOW()
		WHERE clerk_id = $1
		RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(ctx, query, clerkID,
		req.Username, req.FirstName, req.LastName, req.ImageURL,
		req.Age, req.Gender, req.HeightCm, req.WeightKg,
		req.ActivityLevel, req.Goal, req.TargetWeight, req.TargetDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return u, nil
}

func (s *UserService) DeleteUserByClerkID(ctx context.Context, clerkID string) error {
	result, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found")
	}

	log.Printf("DeleteUserByClerkID: deleted user for clerk %s", clerkID)
	return nil
}

// GetProfileStats derives BMI, BMR, TDEE and target calories from the
// stored body stats. Available stays false while any of the five stat
// fields is missing, so clients render "unavailable".
func (s *UserService) GetProfileStats(ctx context.Context, clerkID string) (*user.ProfileStats, error) {
	u, err := s.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	stats := &user.ProfileStats{}
	if !u.HasBodyStats() {
		return stats, nil
	}

	bmr, ok := energy.BMR(*u.WeightKg, *u.HeightCm, *u.Age, *u.Gender)
	if !ok {
		return stats, nil
	}

	goal := ""
	if u.Goal != nil {
		goal = *u.Goal
	}

	stats.Available = true
	stats.BMR = energy.Round2(bmr)
	stats.TDEE = energy.TDEE(bmr, *u.ActivityLevel)
	stats.TargetCalories = energy.Round2(energy.TargetCalories(stats.TDEE, goal))
	if bmi, ok := energy.BMI(*u.WeightKg, *u.HeightCm); ok {
		stats.BMI = bmi
	}

	if u.TargetDate != nil {
		days := int(math.Ceil(time.Until(*u.TargetDate).Hours() / 24))
		if days < 0 {
			days = 0
		}
		stats.DaysToGoal = &days
	}

	return stats, nil
}
