package services

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogService seeds the exercise and food catalogs. Seeding is
// idempotent: rows are keyed by name and existing ones are skipped, so
// it is safe to run on every deploy.
type CatalogService struct {
	db *pgxpool.Pool
}

func NewCatalogService(db *pgxpool.Pool) *CatalogService {
	return &CatalogService{
		db: db,
	}
}

type exerciseSeed struct {
	Name              string
	Category          string
	MuscleGroup       string
	Equipment         string
	CaloriesPerMinute float64
	Description       string
	Instructions      string
}

var exerciseSeeds = []exerciseSeed{
	// Chest
	{"Barbell Bench Press", "Chest", "Pectorals", "Barbell", 6.0, "Classic compound chest exercise", "Lie on bench, grip barbell slightly wider than shoulders, lower to chest, press up"},
	{"Incline Barbell Bench Press", "Chest", "Upper Pectorals", "Barbell", 6.5, "Targets upper chest", "Set bench to 30-45 degrees, perform bench press motion"},
	{"Dumbbell Bench Press", "Chest", "Pectorals", "Dumbbell", 5.5, "Dumbbell variation for better range of motion", "Lie on bench with dumbbells, press up and together"},
	{"Incline Dumbbell Press", "Chest", "Upper Pectorals", "Dumbbell", 6.0, "Upper chest focus with dumbbells", "Incline bench, press dumbbells up and together"},
	{"Push-ups", "Chest", "Pectorals", "Bodyweight", 7.0, "Classic bodyweight chest exercise", "Start in plank, lower chest to ground, push back up"},
	{"Chest Dips", "Chest", "Lower Pectorals", "Bodyweight", 6.5, "Bodyweight exercise for lower chest", "Lean forward on dip bars, lower and press back up"},

	// Back
	{"Deadlift", "Back", "Entire Back", "Barbell", 8.0, "King of all exercises, full body compound", "Hip hinge movement, keep bar close to body"},
	{"Pull-ups", "Back", "Latissimus Dorsi", "Bodyweight", 8.0, "Upper body pulling exercise", "Hang from bar, pull body up until chin over bar"},
	{"Barbell Rows", "Back", "Middle Traps, Rhomboids", "Barbell", 6.0, "Compound pulling exercise", "Bent over position, pull bar to lower chest"},
	{"Lat Pulldown", "Back", "Latissimus Dorsi", "Cable", 5.0, "Vertical pulling movement", "Wide grip, pull bar down to upper chest"},

	// Legs
	{"Barbell Squat", "Legs", "Quadriceps, Glutes", "Barbell", 8.0, "King of leg exercises", "Bar on upper back, squat down and up"},
	{"Leg Press", "Legs", "Quadriceps, Glutes", "Machine", 6.0, "Machine-based leg exercise", "Feet on platform, press weight up"},
	{"Romanian Deadlift", "Legs", "Hamstrings, Glutes", "Barbell", 7.0, "Hip hinge movement for posterior chain", "Keep knees slightly bent, hinge at hips"},
	{"Walking Lunges", "Legs", "Quadriceps, Glutes", "Bodyweight", 6.0, "Dynamic leg exercise", "Step forward into lunge, alternate legs"},

	// Shoulders
	{"Overhead Press", "Shoulders", "Anterior Deltoids", "Barbell", 6.0, "Compound shoulder exercise", "Press barbell overhead from shoulder level"},
	{"Dumbbell Shoulder Press", "Shoulders", "Anterior Deltoids", "Dumbbell", 5.5, "Seated or standing shoulder press", "Press dumbbells overhead simultaneously"},
	{"Lateral Raises", "Shoulders", "Medial Deltoids", "Dumbbell", 3.5, "Side delt isolation", "Raise dumbbells out to sides until parallel"},

	// Arms
	{"Barbell Curls", "Arms", "Biceps", "Barbell", 3.5, "Classic bicep exercise", "Curl barbell up to chest, lower slowly"},
	{"Dumbbell Curls", "Arms", "Biceps", "Dumbbell", 3.5, "Bicep isolation with dumbbells", "Curl dumbbells up, can be alternating or simultaneous"},
	{"Tricep Dips", "Arms", "Triceps", "Bodyweight", 6.0, "Bodyweight tricep exercise", "Dip down on parallel bars or bench"},

	// Core
	{"Plank", "Core", "Core", "Bodyweight", 4.0, "Isometric core exercise", "Hold body straight in push-up position"},
	{"Crunches", "Core", "Abdominals", "Bodyweight", 4.0, "Basic ab exercise", "Lie on back, curl shoulders toward knees"},

	// Cardio
	{"Treadmill Running", "Cardio", "Cardiovascular", "Treadmill", 10.0, "Indoor running", "Maintain steady pace, monitor heart rate"},
	{"Cycling", "Cardio", "Cardiovascular", "Bike", 8.0, "Stationary or outdoor cycling", "Maintain consistent pedaling rhythm"},
	{"Jump Rope", "Cardio", "Cardiovascular", "Jump Rope", 12.0, "High intensity cardio", "Jump over rope with light bouncing motion"},
	{"Burpees", "Cardio", "Full Body", "Bodyweight", 10.0, "High intensity full-body movement", "Squat, plank, optional push-up, jump back up"},
}

type foodSeed struct {
	Name               string
	Category           string
	CaloriesPerServing float64
	ServingSize        string
	ProteinG           float64
	CarbsG             float64
	FatG               float64
	Description        string
}

var foodSeeds = []foodSeed{
	// Breakfast
	{"Scrambled Eggs", "Breakfast", 140, "2 eggs", 12, 1, 10, "Protein-rich breakfast"},
	{"Boiled Egg", "Breakfast", 68, "1 large egg", 6, 0.5, 5, "High protein, low calorie"},
	{"Oatmeal", "Breakfast", 150, "1 cup cooked (240g)", 5, 27, 3, "High fiber breakfast"},
	{"Granola", "Breakfast", 250, "1/2 cup (60g)", 6, 35, 9, "Crunchy cereal"},
	{"Bread Toast", "Breakfast", 80, "1 slice (30g)", 3, 14, 1, "Whole wheat toast"},
	{"Bagel", "Breakfast", 245, "1 medium (90g)", 10, 48, 1.5, "Dense bread ring"},
	{"Peanut Butter Toast", "Breakfast", 190, "1 slice with 1 tbsp PB", 7, 17, 10, "High protein toast"},
	{"Avocado Toast", "Breakfast", 220, "1 slice with 1/4 avocado", 5, 20, 13, "Healthy fats"},
	{"Greek Yogurt", "Breakfast", 100, "1 cup (170g)", 17, 6, 1, "High protein yogurt"},
	{"Protein Shake", "Breakfast", 150, "1 scoop (30g)", 25, 5, 2, "Post-workout drink"},
	{"Pancakes", "Breakfast", 175, "2 medium (100g)", 5, 30, 4, "Classic breakfast"},

	// Main course
	{"White Rice", "Main Course", 130, "1 cup cooked (150g)", 2.5, 28, 0.3, "Plain steamed rice"},
	{"Brown Rice", "Main Course", 110, "1 cup cooked (150g)", 2.5, 23, 0.9, "Whole grain rice"},
	{"Roti", "Main Course", 80, "1 piece (30g)", 3, 15, 0.5, "Whole wheat flatbread"},
	{"Dal", "Main Course", 120, "1 cup (150g)", 7, 20, 1, "Lentil curry"},
	{"Chicken Curry", "Main Course", 250, "1 cup (150g)", 25, 8, 13, "Chicken in gravy"},
	{"Grilled Chicken Breast", "Main Course", 165, "100g", 31, 0, 3.6, "Lean protein staple"},
	{"Chicken Tikka", "Main Course", 200, "6 pieces (150g)", 28, 4, 8, "Grilled chicken pieces"},
	{"Fish Curry", "Main Course", 180, "1 cup (150g)", 20, 6, 8, "Fish in spiced gravy"},
	{"Baked Salmon", "Main Course", 206, "100g", 22, 0, 13, "Omega-3 rich fish"},
	{"Palak Paneer", "Main Course", 260, "1 cup (150g)", 12, 10, 19, "Spinach paneer curry"},
	{"Biryani", "Main Course", 350, "1 cup (200g)", 15, 45, 12, "Spiced rice with meat"},
	{"Pasta with Tomato Sauce", "Main Course", 220, "1 cup (200g)", 8, 43, 2, "Simple pasta dish"},
	{"Tofu Stir Fry", "Main Course", 180, "1 cup (200g)", 14, 10, 10, "Plant-based protein"},

	// Snacks
	{"Almonds", "Snacks", 160, "1/4 cup (30g)", 6, 6, 14, "Raw almonds"},
	{"Peanuts", "Snacks", 160, "1/4 cup (30g)", 7, 5, 14, "Roasted peanuts"},
	{"Trail Mix", "Snacks", 140, "1/4 cup (30g)", 4, 13, 9, "Nuts and dried fruit"},
	{"Protein Bar", "Snacks", 180, "1 bar (50g)", 20, 18, 5, "High protein snack bar"},
	{"Popcorn", "Snacks", 30, "1 cup air-popped (8g)", 1, 6, 0.3, "Popped corn kernels"},
	{"Samosa", "Snacks", 250, "1 piece (60g)", 4, 28, 13, "Fried pastry with filling"},
	{"Hummus with Carrots", "Snacks", 130, "1/4 cup with 1 carrot", 4, 14, 7, "Chickpea dip with veg"},

	// Fruits
	{"Apple", "Fruits", 95, "1 medium (180g)", 0.5, 25, 0.3, "Fresh apple"},
	{"Banana", "Fruits", 105, "1 medium (120g)", 1.3, 27, 0.4, "Yellow banana"},
	{"Orange", "Fruits", 62, "1 medium (130g)", 1.2, 15, 0.2, "Fresh orange"},
	{"Strawberries", "Fruits", 49, "1 cup (150g)", 1, 12, 0.5, "Fresh strawberries"},
	{"Blueberries", "Fruits", 84, "1 cup (150g)", 1.1, 21, 0.5, "Fresh blueberries"},
	{"Grapes", "Fruits", 104, "1 cup (150g)", 1.1, 27, 0.2, "Green or red grapes"},

	// Vegetables
	{"Broccoli", "Vegetables", 55, "1 cup cooked (156g)", 3.7, 11, 0.6, "Steamed broccoli"},
	{"Spinach", "Vegetables", 41, "1 cup cooked (180g)", 5.3, 7, 0.5, "Cooked spinach"},
	{"Sweet Potato", "Vegetables", 103, "1 medium (130g)", 2.3, 24, 0.2, "Baked sweet potato"},
	{"Mixed Salad", "Vegetables", 35, "2 cups (100g)", 2, 7, 0.3, "Leafy greens, no dressing"},

	// Dairy
	{"Milk", "Dairy", 103, "1 cup (244ml)", 8, 12, 2.4, "Low-fat milk"},
	{"Cottage Cheese", "Dairy", 98, "1/2 cup (113g)", 11, 3.4, 4.3, "High casein protein"},
	{"Cheddar Cheese", "Dairy", 115, "1 oz (28g)", 7, 0.4, 9.4, "Sharp cheddar"},

	// Beverages
	{"Orange Juice", "Beverages", 112, "1 cup (248ml)", 1.7, 26, 0.5, "Fresh squeezed juice"},
	{"Black Coffee", "Beverages", 2, "1 cup (240ml)", 0.3, 0, 0, "Plain brewed coffee"},
	{"Green Tea", "Beverages", 0, "1 cup (240ml)", 0, 0, 0, "Unsweetened green tea"},
}

// SeedExercises inserts any missing catalog exercises and reports a
// summary of additions.
func (s *CatalogService) SeedExercises(ctx context.Context) (int, error) {
	added := 0
	for _, seed := range exerciseSeeds {
		result, err := s.db.Exec(ctx, `
			INSERT INTO exercises (name, category, muscle_group, equipment, calories_per_minute, description, instructions)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (name) DO NOTHING
		`, seed.Name, seed.Category, seed.MuscleGroup, seed.Equipment,
			seed.CaloriesPerMinute, seed.Description, seed.Instructions)
		if err != nil {
			return added, fmt.Errorf("failed to seed exercise %q: %w", seed.Name, err)
		}
		added += int(result.RowsAffected())
	}

	log.Printf("SeedExercises: added %d of %d exercises (%d already present)",
		added, len(exerciseSeeds), len(exerciseSeeds)-added)
	return added, nil
}

// SeedFoods inserts any missing catalog foods and reports a summary of
// additions.
func (s *CatalogService) SeedFoods(ctx context.Context) (int, error) {
	added := 0
	for _, seed := range foodSeeds {
		result, err := s.db.Exec(ctx, `
			INSERT INTO foods (name, category, calories_per_serving, serving_size, protein_g, carbs_g, fat_g, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (name) DO NOTHING
		`, seed.Name, seed.Category, seed.CaloriesPerServing, seed.ServingSize,
			seed.ProteinG, seed.CarbsG, seed.FatG, seed.Description)
		if err != nil {
			return added, fmt.Errorf("failed to seed food %q: %w", seed.Name, err)
		}
		added += int(result.RowsAffected())
	}

	log.Printf("SeedFoods: added %d of %d foods (%d already present)",
		added, len(foodSeeds), len(foodSeeds)-added)
	return added, nil
}

// Seed runs both catalog seeds.
func (s *CatalogService) Seed(ctx context.Context) error {
	if _, err := s.SeedExercises(ctx); err != nil {
		return err
	}
	if _, err := s.SeedFoods(ctx); err != nil {
		return err
	}
	return nil
}
