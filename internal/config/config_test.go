package config

import (
	"os"
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{"PORT", "DATABASE_PATH", "SESSION_TTL_MINUTES", "CATALOG_SOURCE", "PLANNER_SEED", "TELEGRAM_ALLOWED_USER_IDS"} {
			setEnv(key, "")
		}

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
		}
		if cfg.DatabasePath != "data/day-planner.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.SessionTTL != 120*time.Minute {
			t.Errorf("Expected SessionTTL of 2h, got %v", cfg.SessionTTL)
		}
		if cfg.CatalogSource != CatalogEmbedded {
			t.Errorf("Expected embedded catalog, got '%s'", cfg.CatalogSource)
		}
		if cfg.PlannerSeed != 0 {
			t.Errorf("Expected zero seed, got %d", cfg.PlannerSeed)
		}
	})

	t.Run("Success", func(t *testing.T) {
		setEnv("PORT", "9090")
		setEnv("SESSION_SECRET", "secret")
		setEnv("SESSION_TTL_MINUTES", "15")
		setEnv("CATALOG_SOURCE", "file")
		setEnv("CATALOG_PATH", "/tmp/catalog")
		setEnv("PLANNER_SEED", "42")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "1, 2,3")
		setEnv("ADMIN_TELEGRAM_ID", "7")
		setEnv("ADMIN_API_TOKEN", "admin-token")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Port != "9090" {
			t.Errorf("Expected Port to be '9090', got '%s'", cfg.Port)
		}
		if cfg.SessionTTL != 15*time.Minute {
			t.Errorf("Expected SessionTTL of 15m, got %v", cfg.SessionTTL)
		}
		if cfg.CatalogPath != "/tmp/catalog" {
			t.Errorf("Expected CatalogPath '/tmp/catalog', got '%s'", cfg.CatalogPath)
		}
		if cfg.PlannerSeed != 42 {
			t.Errorf("Expected seed 42, got %d", cfg.PlannerSeed)
		}
		if len(cfg.TelegramAllowedUserIDs) != 3 {
			t.Fatalf("Expected 3 allowed users, got %v", cfg.TelegramAllowedUserIDs)
		}
		if cfg.AdminTelegramID != 7 {
			t.Errorf("Expected admin 7, got %d", cfg.AdminTelegramID)
		}
		if cfg.AdminAPIToken != "admin-token" {
			t.Errorf("Expected admin token 'admin-token', got '%s'", cfg.AdminAPIToken)
		}
		if err := cfg.RequireWeb(); err != nil {
			t.Errorf("Expected web requirements to be met, got %v", err)
		}
	})

	t.Run("FileSourceWithoutPath", func(t *testing.T) {
		setEnv("CATALOG_SOURCE", "file")
		os.Unsetenv("CATALOG_PATH")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for missing CATALOG_PATH, got nil")
		}
		expectedError := "CATALOG_PATH environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("UnknownCatalogSource", func(t *testing.T) {
		setEnv("CATALOG_SOURCE", "neo4j")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for unknown catalog source, got nil")
		}
	})

	t.Run("InvalidTTL", func(t *testing.T) {
		setEnv("CATALOG_SOURCE", "")
		setEnv("SESSION_TTL_MINUTES", "-5")

		if _, err := NewFromEnv(); err == nil {
			t.Fatal("Expected an error for negative TTL, got nil")
		}
	})

	t.Run("MissingSessionSecret", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.RequireWeb()
		if err == nil {
			t.Fatal("Expected an error for missing SESSION_SECRET, got nil")
		}
		expectedError := "SESSION_SECRET environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("MissingTelegramToken", func(t *testing.T) {
		cfg := &Config{TelegramWebhookURL: "https://example.test/webhook"}
		err := cfg.RequireTelegram()
		if err == nil {
			t.Fatal("Expected an error for missing TELEGRAM_BOT_TOKEN, got nil")
		}
		expectedError := "TELEGRAM_BOT_TOKEN environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}

func TestIsUserAllowed(t *testing.T) {
	open := &Config{}
	if !open.IsUserAllowed(99) {
		t.Error("Expected empty allow-list to admit everyone")
	}

	restricted := &Config{TelegramAllowedUserIDs: []int64{1, 2}}
	if !restricted.IsUserAllowed(2) {
		t.Error("Expected user 2 to be allowed")
	}
	if restricted.IsUserAllowed(3) {
		t.Error("Expected user 3 to be rejected")
	}
}
