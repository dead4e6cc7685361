package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"

	"github.com/pantrio/backend/config"
	"github.com/pantrio/backend/internal/api"
	"github.com/pantrio/backend/internal/gemini"
	"github.com/pantrio/backend/internal/metrics"
	"github.com/pantrio/backend/internal/router"
	"github.com/pantrio/backend/internal/server"
	"github.com/pantrio/backend/internal/service"
)

func main() {
	// Local development reads a .env file; production relies on real env vars
	// and Docker secrets.
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, err := gemini.NewClient(cfg.GeminiAPIKey,
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithTemperature(cfg.Temperature),
		gemini.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
	)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	sessions := service.NewSessionManager(service.NewGeminiSessionFactory(client,
		service.WithStrictNutrition(cfg.StrictNutrition),
	))
	tokens := service.NewSessionService(cfg.SessionSecret)

	metrics.RegisterSessionGauge(func() float64 {
		return float64(sessions.Count())
	})

	engine := router.SetupRouter(
		api.NewSessionHandler(sessions, tokens),
		api.NewRecipeHandler(sessions),
		api.NewRatingsHandler(sessions),
		api.NewMetaHandler(),
		tokens,
		cfg.AllowedOrigins,
	)

	srv := server.New(engine, cfg.ServerPort)

	log.Printf("Starting server on port %s (environment: %s, model: %s)",
		cfg.ServerPort, cfg.Environment, client.Model())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
