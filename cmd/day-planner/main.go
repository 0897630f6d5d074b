package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
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
	"day-planner/internal/web"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	args := os.Args[2:]

	switch os.Args[1] {
	case "serve":
		err = serve(ctx, cfg)
	case "plan":
		err = runPlan(ctx, cfg, args)
	case "import-catalog":
		err = importCatalog(ctx, cfg, args)
	case "sessions-cleanup":
		err = sessionsCleanup(ctx, cfg)
	case "metrics-cleanup":
		err = metricsCleanup(ctx, cfg, args)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

func printUsage() {
	fmt.Println("Usage: day-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve              Run the HTTP server")
	fmt.Println("  plan               Generate a plan and print it")
	fmt.Println("  import-catalog     Load activities and restaurants from HTML tables into the database")
	fmt.Println("  sessions-cleanup   Remove expired sessions")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}

func serve(ctx context.Context, cfg *config.Config) error {
	if err := cfg.RequireWeb(); err != nil {
		return err
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	cat, err := loadCatalog(ctx, cfg, db)
	if err != nil {
		return err
	}

	narrator, closeNarrator := newNarrator(ctx, cfg)
	defer closeNarrator()

	application := app.NewApp(
		planner.NewGenerator(cat, planner.NewRand(cfg.PlannerSeed)),
		session.NewManager(session.NewRepository(db.SQL, cfg.SessionTTL)),
		metrics.NewStore(db.SQL),
		narrator,
	)

	handler := web.NewHandler(application, web.NewSessionTokens(cfg.SessionSecret, cfg.SessionTTL), cfg.AdminAPIToken, cfg.DatabasePath)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: web.NewRouter(handler),
	}

	go func() {
		log.Printf("Day planner listening on port %s (%d activities, %d restaurants)",
			cfg.Port, len(cat.Activities), len(cat.Restaurants))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exiting")
	return nil
}

func runPlan(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	planType := fs.String("type", string(planner.PlanCombo), "Plan type: activity, food or combo")
	vibe := fs.String("vibe", string(planner.VibeAny), "Vibe: any, fun, relaxed, competitive, romantic")
	food := fs.String("food", string(planner.FoodAny), "Food preference: any, vegetarian, vegan, seafood, meat")
	avoid := fs.String("avoid", "", "Comma separated allergens to avoid")
	seed := fs.Uint64("seed", cfg.PlannerSeed, "Random seed (0 picks one)")
	fs.Parse(args)

	cat, err := loadCatalog(ctx, cfg, nil)
	if err != nil {
		return err
	}

	application := app.NewApp(planner.NewGenerator(cat, planner.NewRand(*seed)), nil, nil, nil)

	c := planner.Criteria{
		PlanType: planner.ParsePlanType(*planType),
		Vibe:     planner.ParseVibe(*vibe),
		FoodPref: planner.ParseFoodPref(*food),
	}
	for _, a := range strings.Split(*avoid, ",") {
		if a = strings.TrimSpace(a); a != "" {
			c.Allergens = append(c.Allergens, a)
		}
	}

	view, err := application.Plan(ctx, c)
	if err != nil {
		return err
	}
	printPlan(view)
	return nil
}

func printPlan(v app.PlanView) {
	if v.Featured == nil {
		fmt.Println(v.Message)
		return
	}

	featured := v.Cards[0]
	fmt.Printf("Featured: %s\n", featured.Title())
	fmt.Printf("  %d%% match, %s %.1f\n", featured.Match, featured.Stars, featured.Rating)
	fmt.Printf("  %s\n", strings.ReplaceAll(featured.Reasoning, "**", ""))

	if len(v.Cards) > 1 {
		fmt.Println("\nExplore more:")
		for i, card := range v.Cards[1:] {
			fmt.Printf("  %d. %s (%d%% match, %s)\n", i+1, card.Title(), card.Match, card.Stars)
		}
	}
}

func importCatalog(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("import-catalog", flag.ExitOnError)
	activitiesPath := fs.String("activities", "", "HTML file with the activities table")
	restaurantsPath := fs.String("restaurants", "", "HTML file with the restaurants table")
	fs.Parse(args)

	if *activitiesPath == "" || *restaurantsPath == "" {
		return fmt.Errorf("both -activities and -restaurants are required")
	}

	activities, err := parseFile(*activitiesPath, catalog.ParseActivitiesHTML)
	if err != nil {
		return err
	}
	restaurants, err := parseFile(*restaurantsPath, catalog.ParseRestaurantsHTML)
	if err != nil {
		return err
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	cat := &catalog.Catalog{
		Activities:  activities,
		Restaurants: restaurants,
		ComboImages: catalog.Default().ComboImages,
	}
	if err := catalog.NewRepository(db.SQL).Replace(ctx, cat); err != nil {
		return err
	}

	fmt.Printf("Imported %d activities and %d restaurants.\n", len(activities), len(restaurants))
	return nil
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	items, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return items, nil
}

func sessionsCleanup(ctx context.Context, cfg *config.Config) error {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	affected, err := session.NewRepository(db.SQL, cfg.SessionTTL).CleanupExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Successfully removed %d expired sessions.\n", affected)
	return nil
}

func metricsCleanup(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := fs.Int("days", 30, "Keep records for the last N days")
	fs.Parse(args)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	affected, err := metrics.NewStore(db.SQL).Cleanup(ctx, *days)
	if err != nil {
		return err
	}
	fmt.Printf("Successfully removed %d old metric records.\n", affected)
	return nil
}

// loadCatalog resolves CATALOG_SOURCE. db may be nil unless the source is sqlite.
func loadCatalog(ctx context.Context, cfg *config.Config, db *database.DB) (*catalog.Catalog, error) {
	var src catalog.Source
	switch cfg.CatalogSource {
	case config.CatalogFile:
		src = catalog.NewFileSource(cfg.CatalogPath)
	case config.CatalogSQLite:
		if db == nil {
			var err error
			if db, err = database.NewDB(cfg.DatabasePath); err != nil {
				return nil, err
			}
			defer db.Close()
		}
		src = catalog.NewRepository(db.SQL)
	default:
		src = catalog.EmbeddedSource{}
	}
	return src.Load(ctx)
}

// newNarrator returns a Gemini-backed narrator, or nil when no key is set.
func newNarrator(ctx context.Context, cfg *config.Config) (*planner.Narrator, func()) {
	if cfg.GeminiAPIKey == "" {
		return nil, func() {}
	}
	client, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Printf("Warning: narration disabled: %v", err)
		return nil, func() {}
	}
	return planner.NewNarrator(client), func() { client.Close() }
}
