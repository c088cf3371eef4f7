package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fitTrackAPI/internal/types/food"
)

type FoodService struct {
	db *pgxpool.Pool
}

func NewFoodService(db *pgxpool.Pool) *FoodService {
	return &FoodService{
		db: db,
	}
}

// GetFoods lists the catalog, optionally filtered by category or a
// case-insensitive name search.
func (s *FoodService) GetFoods(ctx context.Context, category, search string) ([]*food.Food, error) {
	query := `
		SELECT id, name, category, calories_per_serving, serving_size,
			   protein_g, carbs_g, fat_g, COALESCE(description, '')
		FROM foods WHERE 1=1
	`
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
		return nil, fmt.Errorf("failed to get foods: %w", err)
	}
	defer rows.Close()

	var foods []*food.Food
	for rows.Next() {
		f := &food.Food{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.CaloriesPerServing,
			&f.ServingSize, &f.ProteinG, &f.CarbsG, &f.FatG, &f.Description); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, f)
	}

	if foods == nil {
		foods = []*food.Food{}
	}
	return foods, nil
}

// LogFood records a consumption event. Total calories are computed here
// from the catalog row, inside the same transaction, so logs stay
// consistent even if the catalog changes later.
func (s *FoodService) LogFood(ctx context.Context, clerkID string, req *food.LogFoodRequest) (*food.FoodLog, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	foodID, err := uuid.Parse(req.FoodID)
	if err != nil {
		return nil, fmt.Errorf("invalid food id")
	}
	if req.Servings <= 0 {
		return nil, fmt.Errorf("servings must be positive")
	}
	if !food.ValidMealType(req.MealType) {
		return nil, fmt.Errorf("invalid meal_type, expected one of breakfast, lunch, snack, dinner")
	}

	date := time.Now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD")
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var name string
	var caloriesPerServing float64
	err = tx.QueryRow(ctx,
		`SELECT name, calories_per_serving FROM foods WHERE id = $1`, foodID).Scan(&name, &caloriesPerServing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("food not found")
		}
		return nil, fmt.Errorf("failed to load food: %w", err)
	}

	entry := &food.FoodLog{FoodName: name}
	err = tx.QueryRow(ctx, `
		INSERT INTO food_logs (user_id, food_id, servings, total_calories, meal_type, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, food_id, servings, total_calories, meal_type, date, created_at
	`, userID, foodID, req.Servings, req.Servings*caloriesPerServing, req.MealType, date).Scan(
		&entry.ID, &entry.UserID, &entry.FoodID, &entry.Servings,
		&entry.TotalCalories, &entry.MealType, &entry.Date, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to log food: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return entry, nil
}

// GetFoodLogsByDate returns one day's logs grouped by meal type, with
// the day's calorie total.
func (s *FoodService) GetFoodLogsByDate(ctx context.Context, clerkID, dateStr string) (*food.DailyNutrition, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD")
		}
	}

	query := `
		SELECT fl.id, fl.user_id, fl.food_id, f.name, fl.servings,
			   fl.total_calories, fl.meal_type, fl.date, fl.created_at
		FROM food_logs fl
		JOIN foods f ON f.id = fl.food_id
		WHERE fl.user_id = $1 AND fl.date = $2
		ORDER BY fl.created_at
	`

	rows, err := s.db.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get food logs: %w", err)
	}
	defer rows.Close()

	daily := &food.DailyNutrition{
		Date:  date.Format("2006-01-02"),
		Meals: map[string][]*food.FoodLog{},
	}
	for _, mealType := range food.MealTypes {
		daily.Meals[mealType] = []*food.FoodLog{}
	}

	for rows.Next() {
		entry := &food.FoodLog{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.FoodID, &entry.FoodName,
			&entry.Servings, &entry.TotalCalories, &entry.MealType, &entry.Date, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan food log: %w", err)
		}
		daily.Meals[entry.MealType] = append(daily.Meals[entry.MealType], entry)
		daily.TotalCalories += entry.TotalCalories
	}

	return daily, nil
}

func (s *FoodService) DeleteFoodLog(ctx context.Context, clerkID, logID string) error {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return err
	}

	lID, err := uuid.Parse(logID)
	if err != nil {
		return fmt.Errorf("invalid log id")
	}

	result, err := s.db.Exec(ctx,
		`DELETE FROM food_logs WHERE id = $1 AND user_id = $2`, lID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete food log: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("food log not found")
	}

	return nil
}

// LogWater adds an intake amount to the caller's day.
func (s *FoodService) LogWater(ctx context.Context, clerkID string, req *food.LogWaterRequest) (*food.WaterLog, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	if req.AmountMl <= 0 {
		return nil, fmt.Errorf("amount_ml must be positive")
	}

	date := time.Now()
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD")
		}
	}

	entry := &food.WaterLog{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO water_logs (user_id, amount_ml, date)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, amount_ml, date
	`, userID, req.AmountMl, date).Scan(&entry.ID, &entry.UserID, &entry.AmountMl, &entry.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to log water: %w", err)
	}

	return entry, nil
}

// GetWaterByDate sums a day's intake. A day with no logs is zero, not an
// error.
func (s *FoodService) GetWaterByDate(ctx context.Context, clerkID, dateStr string) (*food.DailyWater, error) {
	userID, err := getUserIDByClerkID(ctx, s.db, clerkID)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if dateStr != "" {
		date, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD")
		}
	}

	daily := &food.DailyWater{Date: date.Format("2006-01-02")}
	err = s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_ml), 0) FROM water_logs
		WHERE user_id = $1 AND date = $2
	`, userID, date).Scan(&daily.TotalMl)
	if err != nil {
		return nil, fmt.Errorf("failed to get water total: %w", err)
	}

	return daily, nil
}
