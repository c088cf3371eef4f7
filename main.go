package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitTrackAPI/handlers"
	"fitTrackAPI/internal/mirror"
	"fitTrackAPI/middleware"
	"fitTrackAPI/services"
)

var (
	dbPool           *pgxpool.Pool
	userService      *services.UserService
	socialService    *services.SocialService
	habitService     *services.HabitService
	workoutService   *services.WorkoutService
	foodService      *services.FoodService
	activityService  *services.ActivityService
	coachService     *services.CoachService
	catalogService   *services.CatalogService
	mirrorDispatcher *services.MirrorDispatcher
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	mirrorDispatcher = services.NewMirrorDispatcher()
	firestoreMirror, err := mirror.NewFirestoreMirror("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize Firestore mirror: %v", err)
	} else {
		mirrorDispatcher.SetProvider(firestoreMirror)
		log.Println("Firestore mirror initialized successfully")
	}

	userService = services.NewUserService(dbPool)
	socialService = services.NewSocialService(dbPool)
	habitService = services.NewHabitService(dbPool)
	workoutService = services.NewWorkoutService(dbPool, mirrorDispatcher)
	foodService = services.NewFoodService(dbPool)
	activityService = services.NewActivityService(dbPool, userService)
	coachService = services.NewCoachService(userService, activityService, services.NewInferenceClient())
	catalogService = services.NewCatalogService(dbPool)

	if os.Getenv("SEED_CATALOG") == "true" {
		if err := catalogService.Seed(ctx); err != nil {
			log.Printf("Warning: catalog seeding failed: %v", err)
		}
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	socialHandler := handlers.NewSocialHandler(socialService)
	habitHandler := handlers.NewHabitHandler(habitService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	foodHandler := handlers.NewFoodHandler(foodService)
	dashboardHandler := handlers.NewDashboardHandler(activityService)
	coachHandler := handlers.NewCoachHandler(coachService)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "fitTrack-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.ClerkAuthMiddleware)

	api.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	api.HandleFunc("/user/profile", userHandler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/user/stats", userHandler.GetProfileStats).Methods("GET")
	api.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")
	api.HandleFunc("/user/search", socialHandler.SearchUsers).Methods("GET")

	api.HandleFunc("/friends", socialHandler.GetFriends).Methods("GET")
	api.HandleFunc("/friends/requests", socialHandler.GetPendingRequests).Methods("GET")
	api.HandleFunc("/friends/requests", socialHandler.SendRequest).Methods("POST")
	api.HandleFunc("/friends/requests/{id}/accept", socialHandler.AcceptRequest).Methods("POST")
	api.HandleFunc("/friends/requests/{id}/decline", socialHandler.DeclineRequest).Methods("POST")
	api.HandleFunc("/friends/requests/{id}/cancel", socialHandler.CancelRequest).Methods("POST")
	api.HandleFunc("/friends/{userId}", socialHandler.RemoveFriend).Methods("DELETE")
	api.HandleFunc("/friends/{userId}/status", socialHandler.GetRelationshipStatus).Methods("GET")
	api.HandleFunc("/friends/invite-qr", socialHandler.GetInviteQr).Methods("GET")

	api.HandleFunc("/habits", habitHandler.GetHabits).Methods("GET")
	api.HandleFunc("/habits", habitHandler.CreateHabit).Methods("POST")
	api.HandleFunc("/habits/{id}", habitHandler.DeleteHabit).Methods("DELETE")
	api.HandleFunc("/habits/{id}/check-in", habitHandler.CheckIn).Methods("POST")

	api.HandleFunc("/exercises", workoutHandler.GetExercises).Methods("GET")
	api.HandleFunc("/exercises/{id}/video", workoutHandler.GetExerciseVideo).Methods("GET")

	api.HandleFunc("/workouts", workoutHandler.GetWorkouts).Methods("GET")
	api.HandleFunc("/workouts", workoutHandler.CreateWorkout).Methods("POST")
	api.HandleFunc("/workouts/{id}", workoutHandler.GetWorkoutDetail).Methods("GET")
	api.HandleFunc("/workouts/{id}", workoutHandler.DeleteWorkout).Methods("DELETE")
	api.HandleFunc("/workouts/{id}/exercises", workoutHandler.AddExercise).Methods("POST")
	api.HandleFunc("/workouts/{id}/complete", workoutHandler.CompleteWorkout).Methods("POST")
	api.HandleFunc("/workout-exercises/{exerciseId}/sets", workoutHandler.AddSet).Methods("POST")

	api.HandleFunc("/foods", foodHandler.GetFoods).Methods("GET")
	api.HandleFunc("/food-logs", foodHandler.GetFoodLogs).Methods("GET")
	api.HandleFunc("/food-logs", foodHandler.LogFood).Methods("POST")
	api.HandleFunc("/food-logs/{id}", foodHandler.DeleteFoodLog).Methods("DELETE")
	api.HandleFunc("/water-logs", foodHandler.GetWater).Methods("GET")
	api.HandleFunc("/water-logs", foodHandler.LogWater).Methods("POST")

	api.HandleFunc("/dashboard", dashboardHandler.GetDashboard).Methods("GET")
	api.HandleFunc("/dashboard/weekly", dashboardHandler.GetWeeklySummary).Methods("GET")

	api.HandleFunc("/coach/chat", coachHandler.Chat).Methods("POST")
	api.HandleFunc("/coach/motivation", coachHandler.DailyMotivation).Methods("GET")
	api.HandleFunc("/coach/progress", coachHandler.AnalyzeProgress).Methods("GET")
	api.HandleFunc("/coach/suggest-workout", coachHandler.SuggestWorkout).Methods("POST")

	// CORS configuration
	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:        port,
		Handler:     corsHandler(r),
		ReadTimeout: 5 * time.Second,
		// Coach replies can wait on the inference API, so writes get a
		// longer budget than the CRUD endpoints need.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	mirrorDispatcher.Stop()

	log.Println("Server shutdown complete")
}
