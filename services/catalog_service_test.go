package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExerciseSeedsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, seed := range exerciseSeeds {
		assert.False(t, seen[seed.Name], "duplicate exercise seed %q", seed.Name)
		seen[seed.Name] = true

		assert.NotEmpty(t, seed.Category, "exercise %q missing category", seed.Name)
		assert.Greater(t, seed.CaloriesPerMinute, 0.0, "exercise %q needs a burn rate", seed.Name)
	}
}

func TestFoodSeedsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, seed := range foodSeeds {
		assert.False(t, seen[seed.Name], "duplicate food seed %q", seed.Name)
		seen[seed.Name] = true

		assert.NotEmpty(t, seed.Category, "food %q missing category", seed.Name)
		assert.NotEmpty(t, seed.ServingSize, "food %q missing serving size", seed.Name)
		assert.GreaterOrEqual(t, seed.CaloriesPerServing, 0.0, "food %q has negative calories", seed.Name)
	}
}
