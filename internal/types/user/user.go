package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `json:"id"`
	ClerkID       string     `json:"clerkId"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Age           *int       `json:"age"`
	Gender        *string    `json:"gender"`
	HeightCm      *float64   `json:"height_cm"`
	WeightKg      *float64   `json:"weight_kg"`
	ActivityLevel *string    `json:"activity_level"`
	Goal          *string    `json:"goal"`
	TargetWeight  *float64   `json:"target_weight_kg"`
	TargetDate    *time.Time `json:"target_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HasBodyStats reports whether all five fields needed for energy
// calculations are populated.
func (u *User) HasBodyStats() bool {
	return u.Age != nil && u.Gender != nil && u.HeightCm != nil &&
		u.WeightKg != nil && u.ActivityLevel != nil
}

type CreateUserRequest struct {
	ClerkID   string `json:"clerk_id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url"`
}

// UpdateProfileRequest carries partial profile updates. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Username      *string    `json:"username"`
	FirstName     *string    `json:"first_name"`
	LastName      *string    `json:"last_name"`
	ImageURL      *string    `json:"image_url"`
	Age           *int       `json:"age"`
	Gender        *string    `json:"gender"`
	HeightCm      *float64   `json:"height_cm"`
	WeightKg      *float64   `json:"weight_kg"`
	ActivityLevel *string    `json:"activity_level"`
	Goal          *string    `json:"goal"`
	TargetWeight  *float64   `json:"target_weight_kg"`
	TargetDate    *time.Time `json:"target_date"`
}

// ProfileStats is the derived energy profile shown alongside the user.
// Available is false when body stats are incomplete; the numeric fields
// are then zero and clients should render "unavailable".
type ProfileStats struct {
	Available      bool    `json:"available"`
	BMI            float64 `json:"bmi,omitempty"`
	BMR            float64 `json:"bmr,omitempty"`
	TDEE           float64 `json:"tdee,omitempty"`
	TargetCalories float64 `json:"target_calories,omitempty"`
	DaysToGoal     *int    `json:"days_to_goal,omitempty"`
}

// Summary is the trimmed view returned by user search and friend lists.
type Summary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	ImageURL  string    `json:"image_url,omitempty"`
}
