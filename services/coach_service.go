package services

import (
	"context"
	"fmt"
	"log"

	"fitTrackAPI/internal/coach"
)

// CoachService answers chat messages with the hosted model when it is
// available and the deterministic responder otherwise. Callers always
// get a reply; delegation failures only log.
type CoachService struct {
	users    *UserService
	activity *ActivityService
	client   *InferenceClient
}

func NewCoachService(users *UserService, activity *ActivityService, client *InferenceClient) *CoachService {
	return &CoachService{
		users:    users,
		activity: activity,
		client:   client,
	}
}

func (s *CoachService) buildProfile(ctx context.Context, clerkID string) (*coach.Profile, *coach.RecentActivity) {
	profile := &coach.Profile{}

	u, err := s.users.GetUserByClerkID(ctx, clerkID)
	if err != nil {
		log.Printf("Coach: failed to load profile for %s: %v", clerkID, err)
		return profile, nil
	}

	profile.Name = u.FirstName
	profile.Username = u.Username
	if u.Age != nil {
		profile.Age = *u.Age
	}
	if u.Gender != nil {
		profile.Gender = *u.Gender
	}
	if u.HeightCm != nil {
		profile.HeightCm = *u.HeightCm
	}
	if u.WeightKg != nil {
		profile.WeightKg = *u.WeightKg
	}
	if u.Goal != nil {
		profile.Goal = *u.Goal
	}
	if u.ActivityLevel != nil {
		profile.ActivityLevel = *u.ActivityLevel
	}

	recent, err := s.activity.RecentActivity(ctx, u.ID)
	if err != nil {
		log.Printf("Coach: failed to load recent activity for %s: %v", clerkID, err)
		recent = nil
	}

	return profile, recent
}

// Chat produces the coach's reply. The hosted model is consulted first
// when configured; every failure path lands on the rule-based responder
// so the caller never sees an error.
func (s *CoachService) Chat(ctx context.Context, clerkID, message string, history []coach.Message) string {
	profile, recent := s.buildProfile(ctx, clerkID)

	if s.client != nil && s.client.Enabled() {
		messages := make([]coach.Message, 0, len(history)+3)
		messages = append(messages, coach.Message{Role: "system", Content: coach.SystemPrompt()})
		messages = append(messages, coach.Message{
			Role:    "system",
			Content: "Current user information:\n" + coach.BuildUserContext(profile, recent),
		})
		messages = append(messages, history...)
		messages = append(messages, coach.Message{Role: "user", Content: message})

		reply, err := s.client.Complete(ctx, messages)
		if err == nil {
			return reply
		}
		log.Printf("Coach: delegation failed, using fallback: %v", err)
	}

	return coach.Fallback(message, profile)
}

// DailyMotivation generates a short motivational message for the day.
func (s *CoachService) DailyMotivation(ctx context.Context, clerkID string) string {
	profile, _ := s.buildProfile(ctx, clerkID)

	prompt := fmt.Sprintf(
		"Give %s a brief motivational message to start their day. Consider their goal: %s. Keep it to 2-3 sentences and inspiring! 💪",
		profile.DisplayName(), profile.Goal)

	return s.Chat(ctx, clerkID, prompt, nil)
}

// AnalyzeProgress summarizes the trailing week and asks for feedback.
func (s *CoachService) AnalyzeProgress(ctx context.Context, clerkID string) (string, *WeeklySummary, error) {
	weekly, err := s.activity.GetWeeklySummary(ctx, clerkID)
	if err != nil {
		return "", nil, err
	}

	prompt := fmt.Sprintf(`Analyze this week's fitness progress:
- Workouts completed: %d
- Total calories burned: %.0f kcal
- Habits completed: %d
- Average daily water intake: %.0f ml

Provide brief feedback and suggestions for next week.`,
		weekly.Workouts, weekly.CaloriesBurned, weekly.HabitsCompleted, weekly.AvgWaterMl)

	return s.Chat(ctx, clerkID, prompt, nil), weekly, nil
}

// SuggestWorkout asks for a goal-appropriate routine for today.
func (s *CoachService) SuggestWorkout(ctx context.Context, clerkID, preferences string) string {
	prompt := "Suggest a workout routine for today based on my fitness goal and activity level. Include 3-4 exercises with sets/reps."
	if preferences != "" {
		prompt += " Preferences: " + preferences
	}

	return s.Chat(ctx, clerkID, prompt, nil)
}
