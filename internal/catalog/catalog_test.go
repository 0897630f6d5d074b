package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"day-planner/internal/database"
)

func TestEmbeddedSource(t *testing.T) {
	cat, err := EmbeddedSource{}.Load(context.Background())
	if err != nil {
		t.Fatalf("Failed to load embedded catalog: %v", err)
	}

	if len(cat.Activities) != 49 {
		t.Errorf("Expected 49 activities, got %d", len(cat.Activities))
	}
	if len(cat.Restaurants) != 78 {
		t.Errorf("Expected 78 restaurants, got %d", len(cat.Restaurants))
	}
	if len(cat.ComboImages) != 6 {
		t.Errorf("Expected 6 combo images, got %d", len(cat.ComboImages))
	}

	// Duplicate names are part of the demo data and must survive loading.
	seen := make(map[string]int)
	for _, r := range cat.Restaurants {
		seen[r.Name]++
	}
	if seen["Souvla"] < 2 {
		t.Errorf("Expected duplicate 'Souvla' entries to be preserved, got %d", seen["Souvla"])
	}

	for _, a := range cat.Activities {
		if a.Name == "" || a.Image == "" {
			t.Errorf("Activity with empty name or image: %+v", a)
		}
	}
}

func TestRestaurantHasAllergen(t *testing.T) {
	r := Restaurant{Name: "Test", Allergens: []string{"Dairy", "Tree Nuts"}}

	if !r.HasAllergen("dairy") {
		t.Error("Expected case-insensitive match for 'dairy'")
	}
	if !r.HasAllergen("TREE NUTS") {
		t.Error("Expected case-insensitive match for 'TREE NUTS'")
	}
	if r.HasAllergen("Nuts") {
		t.Error("Expected 'Nuts' not to match 'Tree Nuts'")
	}
	if (Restaurant{}).HasAllergen("Dairy") {
		t.Error("Expected restaurant without allergens to match nothing")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	write(activitiesFile, `[{"name": "Bowling", "image": "a.jpg", "is_competitive": true}]`)
	write(restaurantsFile, `[{"name": "Diner", "image": "r.jpg", "vegan_friendly": true, "allergens": ["Soy"]}]`)

	t.Run("FallbackComboImages", func(t *testing.T) {
		cat, err := NewFileSource(dir).Load(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(cat.Activities) != 1 || !cat.Activities[0].IsCompetitive {
			t.Errorf("Unexpected activities: %+v", cat.Activities)
		}
		if len(cat.Restaurants) != 1 || !cat.Restaurants[0].HasAllergen("soy") {
			t.Errorf("Unexpected restaurants: %+v", cat.Restaurants)
		}
		if len(cat.ComboImages) != 6 {
			t.Errorf("Expected embedded combo images as fallback, got %d", len(cat.ComboImages))
		}
	})

	t.Run("OwnComboImages", func(t *testing.T) {
		write(comboImagesFile, `["c.jpg"]`)
		cat, err := NewFileSource(dir).Load(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(cat.ComboImages) != 1 || cat.ComboImages[0] != "c.jpg" {
			t.Errorf("Expected own combo images, got %v", cat.ComboImages)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		write(restaurantsFile, `not json`)
		_, err := NewFileSource(dir).Load(context.Background())
		if err == nil {
			t.Fatal("Expected an error for invalid JSON, got nil")
		}
		if !strings.Contains(err.Error(), "failed to unmarshal restaurants.json") {
			t.Errorf("Expected unmarshal error, got: %v", err)
		}
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		if _, err := NewFileSource(filepath.Join(dir, "nope")).Load(context.Background()); err == nil {
			t.Fatal("Expected an error for missing directory, got nil")
		}
	})
}

func TestRepository(t *testing.T) {
	ctx := context.Background()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	repo := NewRepository(db.SQL)

	t.Run("EmptyLoad", func(t *testing.T) {
		cat, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(cat.Activities) != 0 || len(cat.Restaurants) != 0 {
			t.Errorf("Expected empty catalog, got %+v", cat)
		}
	})

	t.Run("ReplaceAndLoad", func(t *testing.T) {
		want := Default()
		if err := repo.Replace(ctx, want); err != nil {
			t.Fatalf("Failed to replace catalog: %v", err)
		}

		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Failed to load catalog: %v", err)
		}
		if len(got.Activities) != len(want.Activities) {
			t.Fatalf("Expected %d activities, got %d", len(want.Activities), len(got.Activities))
		}
		if len(got.Restaurants) != len(want.Restaurants) {
			t.Fatalf("Expected %d restaurants, got %d", len(want.Restaurants), len(got.Restaurants))
		}
		for i := range want.Activities {
			if got.Activities[i] != want.Activities[i] {
				t.Errorf("Activity %d mismatch: want %+v, got %+v", i, want.Activities[i], got.Activities[i])
			}
		}
		first := got.Restaurants[0]
		if first.Name != want.Restaurants[0].Name || len(first.Allergens) != len(want.Restaurants[0].Allergens) {
			t.Errorf("Restaurant mismatch: want %+v, got %+v", want.Restaurants[0], first)
		}
		if len(got.ComboImages) != len(want.ComboImages) {
			t.Errorf("Expected %d combo images, got %d", len(want.ComboImages), len(got.ComboImages))
		}
	})

	t.Run("ReplaceOverwrites", func(t *testing.T) {
		small := &Catalog{
			Activities:  []Activity{{Name: "Only"}},
			Restaurants: []Restaurant{{Name: "Solo"}},
		}
		if err := repo.Replace(ctx, small); err != nil {
			t.Fatalf("Failed to replace catalog: %v", err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("Failed to load catalog: %v", err)
		}
		if len(got.Activities) != 1 || len(got.Restaurants) != 1 || len(got.ComboImages) != 0 {
			t.Errorf("Expected replaced catalog, got %+v", got)
		}
		if got.Restaurants[0].Allergens == nil || len(got.Restaurants[0].Allergens) != 0 {
			t.Errorf("Expected empty allergen list, got %v", got.Restaurants[0].Allergens)
		}
	})
}
