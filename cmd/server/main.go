package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/soberlog/soberlog/internal/config"
	"github.com/soberlog/soberlog/internal/handlers"
	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/schema"
	"github.com/soberlog/soberlog/internal/services"
	"github.com/soberlog/soberlog/internal/storage"
	"github.com/soberlog/soberlog/pkg/logger"
	"github.com/soberlog/soberlog/pkg/middleware"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	ctx := context.Background()

	// Open the record store (falls back transparently when the preferred
	// backend is unavailable)
	store := storage.New(cfg, schema.Default())
	if err := store.Open(ctx); err != nil {
		log.Fatalf("Storage initialization error: %v", err)
	}
	defer store.Close()

	runLegacyMigration(ctx, cfg, store)

	// --- Services ---
	fitnessService := services.NewFitnessService(store, cfg.FitnessTimeframeDays)
	activityService := services.NewActivityService(store, fitnessService)
	userService := services.NewUserService(store)
	meetingService := services.NewMeetingService(store)
	sponsorService := services.NewSponsorContactService(store)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	activityHandler := handlers.NewActivityHandler(activityService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)
	sponsorHandler := handlers.NewSponsorHandler(sponsorService)
	fitnessHandler := handlers.NewFitnessHandler(fitnessService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// User routes
	router.HandleFunc("/users", userHandler.CreateUserHandler).Methods("POST")
	router.HandleFunc("/users/current", userHandler.GetCurrentUserHandler).Methods("GET")
	router.HandleFunc("/users/nearby", userHandler.NearbyUsersHandler).Methods("GET")
	router.HandleFunc("/users/{id}", userHandler.GetUserHandler).Methods("GET")
	router.HandleFunc("/users/{id}", userHandler.UpdateUserHandler).Methods("PATCH")
	router.HandleFunc("/users/{id}/sobriety", userHandler.SobrietyHandler).Methods("GET")

	// Activity routes
	router.HandleFunc("/activities", activityHandler.LogActivityHandler).Methods("POST")
	router.HandleFunc("/activities", activityHandler.GetActivitiesHandler).Methods("GET")
	router.HandleFunc("/activities/{id}", activityHandler.GetActivityHandler).Methods("GET")
	router.HandleFunc("/activities/{id}", activityHandler.UpdateActivityHandler).Methods("PATCH")
	router.HandleFunc("/activities/{id}", activityHandler.DeleteActivityHandler).Methods("DELETE")

	// Meeting routes
	router.HandleFunc("/meetings", meetingHandler.CreateMeetingHandler).Methods("POST")
	router.HandleFunc("/meetings", meetingHandler.GetMeetingsHandler).Methods("GET")
	router.HandleFunc("/meetings/{id}", meetingHandler.GetMeetingHandler).Methods("GET")
	router.HandleFunc("/meetings/{id}", meetingHandler.UpdateMeetingHandler).Methods("PATCH")
	router.HandleFunc("/meetings/{id}", meetingHandler.DeleteMeetingHandler).Methods("DELETE")

	// Sponsor contact routes
	router.HandleFunc("/sponsor-contacts", sponsorHandler.LogContactHandler).Methods("POST")
	router.HandleFunc("/sponsor-contacts", sponsorHandler.GetContactsHandler).Methods("GET")
	router.HandleFunc("/sponsor-contacts/{id}", sponsorHandler.DeleteContactHandler).Methods("DELETE")
	router.HandleFunc("/sponsor-contacts/{id}/action-items", sponsorHandler.AddActionItemHandler).Methods("POST")
	router.HandleFunc("/sponsor-contacts/{id}/action-items", sponsorHandler.GetActionItemsHandler).Methods("GET")
	router.HandleFunc("/action-items/{id}/complete", sponsorHandler.CompleteActionItemHandler).Methods("POST")

	// Fitness routes
	router.HandleFunc("/fitness", fitnessHandler.GetFitnessHandler).Methods("GET")
	router.HandleFunc("/fitness/recompute", fitnessHandler.RecomputeFitnessHandler).Methods("POST")
	router.HandleFunc("/fitness/timeframe", fitnessHandler.SetTimeframeHandler).Methods("PUT")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // adjust to frontend origin
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

// runLegacyMigration copies a pre-record-store flat dump into the store
// exactly once, gated on a migration-complete preference.
func runLegacyMigration(ctx context.Context, cfg *config.Config, store *storage.Store) {
	done, err := store.Query(ctx, storage.Query{
		Collection: schema.Preferences,
		Eq:         map[string]any{"key": models.PrefMigrationComplete},
		Limit:      1,
	})
	if err == nil && len(done) > 0 {
		return
	}

	migrator := storage.NewMigrator(store, cfg.DataDir+"/legacy.json")
	if !migrator.HasLegacyData() {
		return
	}

	logger.Log.Info("Legacy data found, migrating")
	if migrator.Migrate(ctx) {
		if _, err := store.Add(ctx, schema.Preferences, storage.Record{
			"key":   models.PrefMigrationComplete,
			"value": true,
		}); err != nil {
			logger.Log.WithError(err).Warn("Could not record migration completion")
		}
	}
}
