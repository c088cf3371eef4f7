package coach

import (
	"fmt"
	"strings"
)

// Message is one turn of a chat conversation, OpenAI-style.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Profile is the snapshot of a user the coach personalizes against.
// Zero values mean "not set".
type Profile struct {
	Name          string
	Username      string
	Age           int
	Gender        string
	HeightCm      float64
	WeightKg      float64
	Goal          string
	ActivityLevel string
}

// DisplayName prefers the real name, then the username, then a generic
// address.
func (p *Profile) DisplayName() string {
	if p == nil {
		return "there"
	}
	if p.Name != "" {
		return p.Name
	}
	if p.Username != "" {
		return p.Username
	}
	return "there"
}

// RecentActivity summarizes today's logged data for the coach context.
type RecentActivity struct {
	HabitsCompleted  int
	Exercises        string
	CaloriesBurned   float64
	CaloriesConsumed float64
	WaterIntakeMl    float64
}

// SystemPrompt guides the hosted model's behavior.
func SystemPrompt() string {
	return `You are an expert fitness coach and nutritionist. Your role is to:
- Provide personalized fitness and health advice
- Motivate users to reach their fitness goals
- Offer workout suggestions based on user data
- Give nutritional guidance
- Be encouraging, supportive, and professional
- Keep responses concise (2-3 paragraphs max)
- Use emojis occasionally to be friendly

Always consider the user's:
- Current fitness goals (lose weight, gain muscle, maintain weight)
- Activity level and recent workouts
- Dietary habits
- Personal stats (age, height, weight)

Be encouraging but realistic. Safety first!`
}

// BuildUserContext renders the profile and today's activity into the
// secondary system message sent to the hosted model.
func BuildUserContext(p *Profile, recent *RecentActivity) string {
	var b strings.Builder

	b.WriteString("\nUser Profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.DisplayName())
	fmt.Fprintf(&b, "- Age: %d years old\n", p.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", p.Gender)
	fmt.Fprintf(&b, "- Height: %.0f cm, Weight: %.0f kg\n", p.HeightCm, p.WeightKg)
	fmt.Fprintf(&b, "- Fitness Goal: %s\n", titleize(p.Goal, "Not set"))
	fmt.Fprintf(&b, "- Activity Level: %s\n", titleize(p.ActivityLevel, "Not set"))

	if recent != nil {
		if recent.HabitsCompleted > 0 {
			fmt.Fprintf(&b, "\nRecent Habits: Completed %d habits today", recent.HabitsCompleted)
		}
		if recent.Exercises != "" {
			fmt.Fprintf(&b, "\nRecent Exercise: %s", recent.Exercises)
		}
		if recent.CaloriesBurned > 0 {
			fmt.Fprintf(&b, "\nCalories Burned Today: %.0f kcal", recent.CaloriesBurned)
		}
		if recent.CaloriesConsumed > 0 {
			fmt.Fprintf(&b, "\nCalories Consumed Today: %.0f kcal", recent.CaloriesConsumed)
		}
		if recent.WaterIntakeMl > 0 {
			fmt.Fprintf(&b, "\nWater Intake Today: %.0f ml", recent.WaterIntakeMl)
		}
	}

	return b.String()
}

// FlattenPrompt turns a chat transcript into a single text-generation
// prompt for models that don't support structured chat.
func FlattenPrompt(messages []Message) string {
	roleMap := map[string]string{
		"system":    "System",
		"user":      "User",
		"assistant": "Assistant",
	}

	parts := make([]string, 0, len(messages)+1)
	for _, m := range messages {
		role, ok := roleMap[m.Role]
		if !ok {
			role = "User"
		}
		content := strings.TrimSpace(m.Content)
		if content != "" {
			parts = append(parts, role+": "+content)
		}
	}
	parts = append(parts, "Assistant:")

	return strings.Join(parts, "\n")
}

// titleize converts snake_case enum values into display text, e.g.
// "lose_weight" -> "Lose Weight".
func titleize(s, fallback string) string {
	if s == "" {
		return fallback
	}
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
