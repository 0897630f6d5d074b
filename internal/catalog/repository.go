package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	catalogdb "day-planner/internal/catalog/catalog_db"
)

// Repository is a database-backed catalog source.
type Repository struct {
	queries *catalogdb.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: catalogdb.New(d),
		db:      d,
	}
}

// Load reads the stored catalog in insertion order.
func (r *Repository) Load(ctx context.Context) (*Catalog, error) {
	dbActivities, err := r.queries.ListActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	dbRestaurants, err := r.queries.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	comboImages, err := r.queries.ListComboImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list combo images: %w", err)
	}

	cat := &Catalog{ComboImages: comboImages}
	for _, a := range dbActivities {
		cat.Activities = append(cat.Activities, Activity{
			Name:             a.Name,
			Image:            a.Image,
			IsCompetitive:    a.IsCompetitive != 0,
			IsFamilyFriendly: a.IsFamilyFriendly != 0,
		})
	}
	for _, rr := range dbRestaurants {
		var allergens []string
		if err := json.Unmarshal([]byte(rr.Allergens), &allergens); err != nil {
			return nil, fmt.Errorf("failed to unmarshal allergens for restaurant %q: %w", rr.Name, err)
		}
		cat.Restaurants = append(cat.Restaurants, Restaurant{
			Name:               rr.Name,
			Image:              rr.Image,
			GlutenFreeFriendly: rr.GlutenFreeFriendly != 0,
			VeganFriendly:      rr.VeganFriendly != 0,
			VegetarianFriendly: rr.VegetarianFriendly != 0,
			MeatFriendly:       rr.MeatFriendly != 0,
			SeafoodFocused:     rr.SeafoodFocused != 0,
			Allergens:          allergens,
		})
	}
	return cat, nil
}

// Replace swaps the stored catalog for cat in a single transaction.
func (r *Repository) Replace(ctx context.Context, cat *Catalog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.DeleteAllActivities(ctx); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	if err := q.DeleteAllRestaurants(ctx); err != nil {
		return fmt.Errorf("failed to clear restaurants: %w", err)
	}
	if err := q.DeleteAllComboImages(ctx); err != nil {
		return fmt.Errorf("failed to clear combo images: %w", err)
	}

	for i, a := range cat.Activities {
		err := q.InsertActivity(ctx, catalogdb.InsertActivityParams{
			Position:         int64(i),
			Name:             a.Name,
			Image:            a.Image,
			IsCompetitive:    boolToInt(a.IsCompetitive),
			IsFamilyFriendly: boolToInt(a.IsFamilyFriendly),
		})
		if err != nil {
			return fmt.Errorf("failed to insert activity %q: %w", a.Name, err)
		}
	}

	for i, rr := range cat.Restaurants {
		allergens := rr.Allergens
		if allergens == nil {
			allergens = []string{}
		}
		allergensJSON, err := json.Marshal(allergens)
		if err != nil {
			return fmt.Errorf("failed to marshal allergens for %q: %w", rr.Name, err)
		}
		err = q.InsertRestaurant(ctx, catalogdb.InsertRestaurantParams{
			Position:           int64(i),
			Name:               rr.Name,
			Image:              rr.Image,
			GlutenFreeFriendly: boolToInt(rr.GlutenFreeFriendly),
			VeganFriendly:      boolToInt(rr.VeganFriendly),
			VegetarianFriendly: boolToInt(rr.VegetarianFriendly),
			MeatFriendly:       boolToInt(rr.MeatFriendly),
			SeafoodFocused:     boolToInt(rr.SeafoodFocused),
			Allergens:          string(allergensJSON),
		})
		if err != nil {
			return fmt.Errorf("failed to insert restaurant %q: %w", rr.Name, err)
		}
	}

	for i, img := range cat.ComboImages {
		if err := q.InsertComboImage(ctx, catalogdb.InsertComboImageParams{Position: int64(i), Image: img}); err != nil {
			return fmt.Errorf("failed to insert combo image %q: %w", img, err)
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
