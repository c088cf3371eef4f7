package coach

import (
	"fmt"
	"regexp"
	"strings"
)

var howToPattern = regexp.MustCompile(`\bhow\s+(to|do)\b`)

var techniqueKeywords = []string{"form", "technique", "tutorial", "proper form"}

var exerciseNames = []string{
	"burpee", "push up", "push-up", "squat", "deadlift", "bench press",
	"plank", "lunge", "shoulder press", "row", "curl", "tricep dip",
}

var workoutKeywords = []string{"workout", "exercise", "train", "gym", "fitness"}
var nutritionKeywords = []string{"food", "eat", "nutrition", "diet", "meal", "calorie", "protein"}
var motivationKeywords = []string{"motivate", "inspire", "lazy", "tired", "give up", "quit", "hard"}
var progressKeywords = []string{"progress", "improve", "better", "tip", "advice", "help"}

// Fallback produces a deterministic coach reply when the hosted model is
// unavailable. Branch order matters: the first matching intent wins.
func Fallback(userMessage string, p *Profile) string {
	messageLower := strings.ToLower(userMessage)

	if howToPattern.MatchString(messageLower) ||
		containsAny(messageLower, techniqueKeywords) ||
		containsAny(messageLower, exerciseNames) {
		return exerciseInstructions(messageLower)
	}

	if containsAny(messageLower, workoutKeywords) {
		return workoutPlan(p)
	}

	if containsAny(messageLower, nutritionKeywords) {
		return nutritionPlan(p)
	}

	if containsAny(messageLower, motivationKeywords) {
		return motivationMessage(p)
	}

	if containsAny(messageLower, progressKeywords) {
		return progressTips()
	}

	return defaultGreeting(p)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func workoutPlan(p *Profile) string {
	goal := ""
	if p != nil {
		goal = p.Goal
	}

	switch goal {
	case "lose_weight":
		return `💪 Perfect timing to ask! For weight loss, here's your workout plan:

**30-Minute Fat Burning Workout:**
1. Warm-up (5 min): Light jogging or jumping jacks
2. HIIT Circuit (20 min) - Do each for 45 sec, rest 15 sec:
   • Burpees
   • High knees
   • Mountain climbers
   • Jump squats
   • Push-ups
3. Cool-down (5 min): Stretching

**Frequency:** 4-5 times per week
**Tip:** Stay consistent and track your progress! 🔥`
	case "gain_muscle":
		return `💪 Let's build some muscle! Here's your workout:

**Strength Training (45 min):**
**Upper Body:**
• Bench Press: 4 sets x 8-10 reps
• Pull-ups: 4 sets x 6-8 reps
• Shoulder Press: 3 sets x 10 reps
• Bicep Curls: 3 sets x 12 reps

**Lower Body:**
• Squats: 4 sets x 8-10 reps
• Deadlifts: 4 sets x 6-8 reps
• Leg Press: 3 sets x 12 reps

**Frequency:** 4-5 days/week
**Pro Tip:** Eat protein within 30 min post-workout! 🏋️`
	default:
		return `💪 Here's a balanced full-body workout for you:

**40-Minute Complete Workout:**
1. Warm-up (5 min): Dynamic stretching
2. Circuit (30 min) - 3 rounds:
   • Push-ups: 12 reps
   • Squats: 15 reps
   • Plank: 45 seconds
   • Lunges: 10 each leg
   • Dumbbell rows: 12 reps
   • Rest: 60 seconds
3. Cool-down (5 min): Static stretches

Do this 3-4 times weekly for best results! 💯`
	}
}

func nutritionPlan(p *Profile) string {
	goal := ""
	if p != nil {
		goal = p.Goal
	}

	switch goal {
	case "lose_weight":
		return `🥗 Nutrition for Weight Loss:

**Daily Calorie Target:** ~500 kcal deficit from maintenance

**Meal Structure:**
• **Breakfast:** Oatmeal with berries + eggs
• **Lunch:** Grilled chicken salad with olive oil
• **Dinner:** Baked fish with vegetables
• **Snacks:** Greek yogurt, nuts (small portions)

**Key Rules:**
✅ Drink 3-4 liters water daily
✅ Protein at every meal (keeps you full)
✅ Avoid sugary drinks & processed foods
✅ Eat slowly, track portions

**Pro Tip:** Meal prep on Sundays for the week! 📝`
	case "gain_muscle":
		return `🥗 Nutrition for Muscle Gain:

**Daily Calorie Target:** ~300-500 kcal surplus

**Meal Structure (5-6 meals):**
• **Meal 1:** Eggs, oats, banana
• **Meal 2:** Chicken, rice, vegetables
• **Meal 3:** Tuna sandwich, apple
• **Meal 4 (Pre-workout):** Protein shake, banana
• **Meal 5 (Post-workout):** Chicken, sweet potato
• **Meal 6:** Cottage cheese, nuts

**Macros Target:**
• Protein: 1.6-2g per kg bodyweight
• Carbs: 4-6g per kg
• Fats: 1g per kg

**Muscle-Building Foods:** Chicken, eggs, fish, rice, oats, sweet potato 💪`
	default:
		return `🥗 Balanced Nutrition Guide:

**Plate Method:**
• 1/2 plate: Vegetables (colorful!)
• 1/4 plate: Lean protein (chicken, fish, tofu)
• 1/4 plate: Complex carbs (brown rice, quinoa)
• Healthy fats: Olive oil, nuts, avocado

**Daily Essentials:**
✅ 8+ glasses water
✅ 5 servings fruits/vegetables
✅ Lean protein each meal
✅ Whole grains over refined
✅ Limit processed foods & sugar

**Sample Day:**
• Breakfast: Oats + banana + almonds
• Lunch: Grilled chicken salad
• Snack: Greek yogurt
• Dinner: Salmon + quinoa + veggies

Stay consistent and you'll see results! 🌟`
	}
}

func motivationMessage(p *Profile) string {
	name := "Champion"
	if p != nil && p.Name != "" {
		name = p.Name
	}

	return fmt.Sprintf(`🌟 Listen up, %s!

**Remember This:**
• You didn't come this far to only come this far
• Every workout counts, even the short ones
• Progress > Perfection
• You're stronger than your excuses

**Quick Motivation Boost:**
1. Think about WHY you started
2. Visualize your goal body/strength
3. Remember how good you feel AFTER working out
4. You'll regret NOT doing it, never regret doing it

**Right Now:** Put on your workout clothes. Once you're dressed, you're 90%% there! 💪

The hardest part is starting - and you're already thinking about it. That's a win! Now GO! 🔥

You've got this! 💯`, name)
}

func progressTips() string {
	return `📈 Tips to Maximize Your Progress:

**Workout Tips:**
✅ Track everything (reps, weight, time)
✅ Progressive overload (increase gradually)
✅ Rest 48 hours between muscle groups
✅ Get 7-9 hours sleep
✅ Stay hydrated (3-4L water daily)

**Nutrition Tips:**
✅ Meal prep weekly
✅ Protein with every meal
✅ Don't skip breakfast
✅ Eat within 30 min post-workout
✅ Limit cheat meals to 1-2/week

**Mental Game:**
✅ Set SMART goals
✅ Take progress photos monthly
✅ Find a workout buddy
✅ Celebrate small wins
✅ Be patient - results take time

**Remember:** Consistency beats intensity! Show up even when motivation is low. 🎯`
}

func defaultGreeting(p *Profile) string {
	name := p.DisplayName()

	goalText := ""
	if p != nil && p.Goal != "" {
		goalMap := map[string]string{
			"lose_weight":     "weight loss",
			"gain_muscle":     "muscle gain",
			"maintain_weight": "maintaining fitness",
		}
		goal, ok := goalMap[p.Goal]
		if !ok {
			goal = "fitness"
		}
		goalText = fmt.Sprintf(" I see your goal is %s.", goal)
	}

	return fmt.Sprintf(`👋 Hey %s!%s

I'm your AI fitness coach, here to help with:

🏋️ **Workouts** - Custom plans for your goals
🥗 **Nutrition** - Meal plans and diet advice
💪 **Motivation** - Keep you fired up
📊 **Progress** - Tips to see results faster

**Try asking me:**
• "Give me a workout for today"
• "What should I eat to reach my goal?"
• "I need motivation to stay consistent"
• "How can I see results faster?"

I'm here 24/7 to help you crush your fitness goals! What would you like to know? 💪`, name, goalText)
}

func exerciseSteps(title string, bullets [5]string, tips []string) string {
	tipsText := ""
	if len(tips) > 0 {
		tipsText = "\n\nPro tips:\n- " + strings.Join(tips, "\n- ")
	}

	return fmt.Sprintf(`📘 %s

1) %s
2) %s
3) %s
4) %s
5) %s%s

Want a short demo GIF or common mistakes to avoid?`,
		title, bullets[0], bullets[1], bullets[2], bullets[3], bullets[4], tipsText)
}

func exerciseInstructions(messageLower string) string {
	if strings.Contains(messageLower, "burpee") {
		return exerciseSteps(
			"How to do a Burpee (full-body)",
			[5]string{
				"Start standing, feet shoulder-width, core tight",
				"Squat down and place hands on floor in front of you",
				"Jump feet back into a plank (body straight, don't sag)",
				"Do an optional push-up, then jump feet back to hands",
				"Explode upward into a jump, arms overhead",
			},
			[]string{
				"Keep your chest up as you drop into the squat",
				"Brace your core during the plank to protect your lower back",
				"Scale it: step back instead of jumping, or skip the push-up",
			},
		)
	}

	if strings.Contains(messageLower, "push") &&
		(strings.Contains(messageLower, "up") || strings.Contains(messageLower, "push-up")) {
		return exerciseSteps(
			"Proper Push-up Form",
			[5]string{
				"Hands under shoulders, body in a straight line",
				"Screw palms into the floor to engage lats",
				"Lower chest towards floor, elbows ~45° from body",
				"Keep core and glutes tight to avoid sagging",
				"Press back up, fully extend without locking elbows",
			},
			[]string{"If tough, elevate hands on a bench; if easy, add tempo or weight"},
		)
	}

	if strings.Contains(messageLower, "squat") {
		return exerciseSteps(
			"Bodyweight Squat Basics",
			[5]string{
				"Stand shoulder-width, toes slightly out",
				"Brace core and keep chest tall",
				"Push hips back and bend knees, tracking over toes",
				"Descend until thighs are at least parallel",
				"Drive through mid-foot to stand up",
			},
			[]string{"Knees track with toes, don't cave in; keep heels down"},
		)
	}

	if strings.Contains(messageLower, "deadlift") {
		return exerciseSteps(
			"Conventional Deadlift Cues",
			[5]string{
				"Feet hip-width, bar over mid-foot",
				"Grip just outside knees, brace belly",
				"Hips higher than squat, chest up, back neutral",
				"Push floor away, bar stays close/shaves shins",
				"Lock out by squeezing glutes, don't lean back",
			},
			[]string{"If rounding, reduce load; think 'proud chest'"},
		)
	}

	if strings.Contains(messageLower, "bench") && strings.Contains(messageLower, "press") {
		return exerciseSteps(
			"Barbell Bench Press Essentials",
			[5]string{
				"Feet planted, slight arch, shoulder blades pinched",
				"Grip so forearms are vertical at bottom",
				"Unrack and set the bar over upper chest",
				"Lower to mid/low chest, elbows ~45°",
				"Press up, keep wrists straight and shoulder blades tight",
			},
			[]string{"Use a spotter; touch chest softly, don't bounce"},
		)
	}

	return "🧭 Tell me the exercise name (e.g., burpees, squats, deadlift), and I'll give you step-by-step form cues and tips!"
}
