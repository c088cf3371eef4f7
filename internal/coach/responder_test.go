package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackExerciseInstructions(t *testing.T) {
	resp := Fallback("How do I do a burpee?", nil)
	assert.Contains(t, resp, "How to do a Burpee")
	assert.Contains(t, resp, "Explode upward into a jump")

	resp = Fallback("what's the proper form for deadlifts", nil)
	assert.Contains(t, resp, "Conventional Deadlift Cues")

	// A how-to question for an unknown exercise gets the generic prompt.
	resp = Fallback("how to do a kettlebell swing", nil)
	assert.Contains(t, resp, "Tell me the exercise name")
}

func TestFallbackWorkoutByGoal(t *testing.T) {
	resp := Fallback("give me a workout", &Profile{Goal: "lose_weight"})
	assert.Contains(t, resp, "Fat Burning Workout")

	resp = Fallback("give me a workout", &Profile{Goal: "gain_muscle"})
	assert.Contains(t, resp, "Strength Training")

	resp = Fallback("give me a workout", &Profile{Goal: "maintain_weight"})
	assert.Contains(t, resp, "balanced full-body workout")

	resp = Fallback("give me a workout", nil)
	assert.Contains(t, resp, "balanced full-body workout")
}

func TestFallbackNutritionByGoal(t *testing.T) {
	resp := Fallback("what should I eat today", &Profile{Goal: "lose_weight"})
	assert.Contains(t, resp, "Nutrition for Weight Loss")

	resp = Fallback("meal ideas please", &Profile{Goal: "gain_muscle"})
	assert.Contains(t, resp, "Nutrition for Muscle Gain")

	resp = Fallback("diet advice with no goal set", &Profile{})
	assert.Contains(t, resp, "Balanced Nutrition Guide")
}

func TestFallbackMotivationUsesName(t *testing.T) {
	resp := Fallback("I need someone to motivate me", &Profile{Name: "Maya"})
	assert.Contains(t, resp, "Listen up, Maya!")

	resp = Fallback("motivate me", nil)
	assert.Contains(t, resp, "Listen up, Champion!")
}

func TestFallbackProgressTips(t *testing.T) {
	// "progress" alone, with no technique or workout keywords.
	resp := Fallback("progress", nil)
	assert.Contains(t, resp, "Maximize Your Progress")
}

func TestFallbackDefaultGreeting(t *testing.T) {
	resp := Fallback("hello", &Profile{Username: "sam", Goal: "lose_weight"})
	assert.Contains(t, resp, "Hey sam!")
	assert.Contains(t, resp, "I see your goal is weight loss.")

	resp = Fallback("", nil)
	assert.Contains(t, resp, "Hey there!")
	assert.NotContains(t, resp, "I see your goal")
}

func TestFallbackBranchOrder(t *testing.T) {
	// Technique questions win over workout intent even when both match.
	resp := Fallback("how to train squat form at the gym", &Profile{Goal: "lose_weight"})
	assert.Contains(t, resp, "Bodyweight Squat Basics")
}

func TestBuildUserContext(t *testing.T) {
	p := &Profile{
		Name:          "Maya",
		Age:           25,
		Gender:        "female",
		HeightCm:      170,
		WeightKg:      65,
		Goal:          "lose_weight",
		ActivityLevel: "very_active",
	}
	recent := &RecentActivity{
		HabitsCompleted:  2,
		Exercises:        "Running (30 min)",
		CaloriesBurned:   300,
		CaloriesConsumed: 1800,
		WaterIntakeMl:    1500,
	}

	ctx := BuildUserContext(p, recent)
	assert.Contains(t, ctx, "- Name: Maya")
	assert.Contains(t, ctx, "- Fitness Goal: Lose Weight")
	assert.Contains(t, ctx, "- Activity Level: Very Active")
	assert.Contains(t, ctx, "Completed 2 habits today")
	assert.Contains(t, ctx, "Recent Exercise: Running (30 min)")
	assert.Contains(t, ctx, "Water Intake Today: 1500 ml")

	ctx = BuildUserContext(&Profile{Username: "sam"}, nil)
	assert.Contains(t, ctx, "- Name: sam")
	assert.Contains(t, ctx, "- Fitness Goal: Not set")
	assert.NotContains(t, ctx, "Recent Habits")
}

func TestFlattenPrompt(t *testing.T) {
	prompt := FlattenPrompt([]Message{
		{Role: "system", Content: "Be helpful."},
		{Role: "user", Content: "Hi"},
		{Role: "assistant", Content: "Hello!"},
		{Role: "user", Content: "Plan my day"},
		{Role: "other", Content: "noise"},
		{Role: "user", Content: "   "},
	})

	assert.Equal(t, "System: Be helpful.\nUser: Hi\nAssistant: Hello!\nUser: Plan my day\nUser: noise\nAssistant:", prompt)
}
