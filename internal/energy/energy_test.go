package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMR(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		age      int
		gender   string
		expected float64
		ok       bool
	}{
		{"male reference", 70, 175, 25, "male", 1716.25, true},
		{"female reference", 70, 175, 25, "female", 1550.25, true},
		{"other gender gets no offset", 70, 175, 25, "other", 1711.25, true},
		{"missing weight", 0, 175, 25, "male", 0, false},
		{"missing height", 70, 0, 25, "male", 0, false},
		{"missing age", 70, 175, 0, "male", 0, false},
		{"missing gender", 70, 175, 25, "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bmr, ok := BMR(tt.weight, tt.height, tt.age, tt.gender)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, bmr, 0.001)
		})
	}
}

func TestTDEE(t *testing.T) {
	tests := []struct {
		level    string
		expected float64
	}{
		{"sedentary", 2059.5},
		{"light", 2359.84},
		{"moderate", 2660.19},
		{"active", 2960.53},
		{"very_active", 3260.88},
		{"couch_potato", 2059.5}, // unknown level falls back to sedentary
		{"", 2059.5},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.InDelta(t, tt.expected, TDEE(1716.25, tt.level), 0.001)
		})
	}
}

func TestTargetCalories(t *testing.T) {
	assert.InDelta(t, 2160.19, TargetCalories(2660.19, "lose_weight"), 0.001)
	assert.InDelta(t, 3160.19, TargetCalories(2660.19, "gain_muscle"), 0.001)
	assert.InDelta(t, 2660.19, TargetCalories(2660.19, "maintain_weight"), 0.001)
	assert.InDelta(t, 2660.19, TargetCalories(2660.19, ""), 0.001)
}

func TestEndToEndScenario(t *testing.T) {
	// 70kg, 175cm, 25y, male, moderate activity, lose_weight goal.
	bmr, ok := BMR(70, 175, 25, "male")
	require.True(t, ok)
	require.InDelta(t, 1716.25, bmr, 0.001)

	tdee := TDEE(bmr, "moderate")
	require.InDelta(t, 2660.19, tdee, 0.001)

	require.InDelta(t, 2160.19, TargetCalories(tdee, "lose_weight"), 0.001)
}

func TestBMI(t *testing.T) {
	bmi, ok := BMI(70, 175)
	require.True(t, ok)
	assert.InDelta(t, 22.86, bmi, 0.001)

	_, ok = BMI(0, 175)
	assert.False(t, ok)
	_, ok = BMI(70, 0)
	assert.False(t, ok)
}
