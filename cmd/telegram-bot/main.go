package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"day-planner/internal/app"
	"day-planner/internal/catalog"
	"day-planner/internal/config"
	"day-planner/internal/database"
	"day-planner/internal/llm"
	"day-planner/internal/metrics"
	"day-planner/internal/planner"
	"day-planner/internal/session"
	"day-planner/internal/telegram"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Storage
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	var src catalog.Source = catalog.EmbeddedSource{}
	switch cfg.CatalogSource {
	case config.CatalogFile:
		src = catalog.NewFileSource(cfg.CatalogPath)
	case config.CatalogSQLite:
		src = catalog.NewRepository(db.SQL)
	}
	cat, err := src.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// 3. Optional narration
	var narrator *planner.Narrator
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		narrator = planner.NewNarrator(geminiClient)
	}

	// 4. Services
	application := app.NewApp(
		planner.NewGenerator(cat, planner.NewRand(cfg.PlannerSeed)),
		session.NewManager(session.NewRepository(db.SQL, cfg.SessionTTL)),
		metrics.NewStore(db.SQL),
		narrator,
	)

	// 5. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	mux := http.NewServeMux()
	bot.RegisterHandlers(mux)

	// 6. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
