package food

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidMealType(t *testing.T) {
	for _, mealType := range MealTypes {
		assert.True(t, ValidMealType(mealType), "%q should be valid", mealType)
	}

	assert.False(t, ValidMealType("brunch"))
	assert.False(t, ValidMealType("Breakfast"))
	assert.False(t, ValidMealType(""))
}
