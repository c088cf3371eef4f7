package energy

import "math"

// Activity factors for the Mifflin-St Jeor TDEE calculation.
const (
	factorSedentary  = 1.2
	factorLight      = 1.375
	factorModerate   = 1.55
	factorActive     = 1.725
	factorVeryActive = 1.9
)

// BMR computes the basal metabolic rate using the Mifflin-St Jeor equation.
// Returns false when any input is missing so callers can show "unavailable"
// instead of a bogus number. Gender values other than male/female get the
// base formula without an offset. That three-way branch is intentional.
func BMR(weightKg, heightCm float64, age int, gender string) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 || gender == "" {
		return 0, false
	}

	base := 10*weightKg + 6.25*heightCm - 5*float64(age)

	switch gender {
	case "male":
		return base + 5, true
	case "female":
		return base - 161, true
	default:
		return base, true
	}
}

// TDEE scales BMR by the activity factor. Unknown activity levels fall back
// to sedentary (1.2).
func TDEE(bmr float64, activityLevel string) float64 {
	factor := factorSedentary

	switch activityLevel {
	case "sedentary":
		factor = factorSedentary
	case "light":
		factor = factorLight
	case "moderate":
		factor = factorModerate
	case "active":
		factor = factorActive
	case "very_active":
		factor = factorVeryActive
	}

	return Round2(bmr * factor)
}

// TargetCalories adjusts TDEE for the user's goal: a 500 kcal deficit for
// weight loss, a 500 kcal surplus for muscle gain, flat otherwise.
func TargetCalories(tdee float64, goal string) float64 {
	switch goal {
	case "lose_weight":
		return tdee - 500
	case "gain_muscle":
		return tdee + 500
	default:
		return tdee
	}
}

// BMI computes body mass index from weight in kg and height in cm.
func BMI(weightKg, heightCm float64) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	heightM := heightCm / 100
	return Round2(weightKg / (heightM * heightM)), true
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
