package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Catalog source identifiers accepted by CATALOG_SOURCE.
const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogSQLite   = "sqlite"
)

// Config holds the configuration for the application.
type Config struct {
	Port          string
	DatabasePath  string
	SessionSecret string
	SessionTTL    time.Duration
	// AdminAPIToken guards the web admin routes. Empty disables them.
	AdminAPIToken string

	CatalogSource string
	CatalogPath   string

	// PlannerSeed fixes the random source when non-zero.
	PlannerSeed uint64

	GeminiAPIKey string
	GeminiModel  string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
// Binary-specific requirements are checked by RequireWeb and RequireTelegram.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		DatabasePath:  getEnvOrDefault("DATABASE_PATH", "data/day-planner.db"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminAPIToken: os.Getenv("ADMIN_API_TOKEN"),
		CatalogSource: getEnvOrDefault("CATALOG_SOURCE", CatalogEmbedded),
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),

		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	ttlMinutes, err := strconv.Atoi(getEnvOrDefault("SESSION_TTL_MINUTES", "120"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_MINUTES must be a positive integer")
	}
	cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute

	switch cfg.CatalogSource {
	case CatalogEmbedded, CatalogSQLite:
	case CatalogFile:
		if cfg.CatalogPath == "" {
			return nil, fmt.Errorf("CATALOG_PATH environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	if seed := os.Getenv("PLANNER_SEED"); seed != "" {
		cfg.PlannerSeed, err = strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("PLANNER_SEED must be an unsigned integer: %w", err)
		}
	}

	if ids := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); ids != "" {
		for _, raw := range strings.Split(ids, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", raw, err)
			}
			cfg.TelegramAllowedUserIDs = append(cfg.TelegramAllowedUserIDs, id)
		}
	}

	if admin := os.Getenv("ADMIN_TELEGRAM_ID"); admin != "" {
		fmt.Sscanf(admin, "%d", &cfg.AdminTelegramID)
	}

	return cfg, nil
}

// RequireWeb checks the settings the HTTP server cannot run without.
func (c *Config) RequireWeb() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET environment variable not set")
	}
	return nil
}

// RequireTelegram checks the settings the Telegram bot cannot run without.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	return nil
}

// IsUserAllowed reports whether a Telegram user may talk to the bot.
// An empty allow-list admits everyone.
func (c *Config) IsUserAllowed(id int64) bool {
	if len(c.TelegramAllowedUserIDs) == 0 {
		return true
	}
	for _, allowed := range c.TelegramAllowedUserIDs {
		if allowed == id {
			return true
		}
	}
	return false
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
