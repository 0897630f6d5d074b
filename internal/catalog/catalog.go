package catalog

import (
	"context"
	"strings"
)

// Activity is a bookable experience. Names are not unique.
type Activity struct {
	Name             string `json:"name"`
	Image            string `json:"image"`
	IsCompetitive    bool   `json:"is_competitive"`
	IsFamilyFriendly bool   `json:"is_family_friendly"`
}

// Restaurant is a dining option with dietary flags and allergen tags.
type Restaurant struct {
	Name               string   `json:"name"`
	Image              string   `json:"image"`
	GlutenFreeFriendly bool     `json:"gluten_free_friendly"`
	VeganFriendly      bool     `json:"vegan_friendly"`
	VegetarianFriendly bool     `json:"vegetarian_friendly"`
	MeatFriendly       bool     `json:"meat_friendly"`
	SeafoodFocused     bool     `json:"seafood_focused"`
	Allergens          []string `json:"allergens"`
}

// HasAllergen reports whether the restaurant lists the tag, ignoring case.
func (r Restaurant) HasAllergen(tag string) bool {
	for _, a := range r.Allergens {
		if strings.EqualFold(a, tag) {
			return true
		}
	}
	return false
}

// Catalog is the read-only set of records plans are drawn from.
type Catalog struct {
	Activities  []Activity   `json:"activities"`
	Restaurants []Restaurant `json:"restaurants"`
	ComboImages []string     `json:"combo_images"`
}

// Source loads a catalog. Implementations: EmbeddedSource, FileSource, Repository.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}
