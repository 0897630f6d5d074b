package planner

import "day-planner/internal/catalog"

// FilterActivitiesByVibe narrows the pool only for VibeCompetitive. Every
// other vibe returns the whole catalog (loose matching). The result is a new
// slice; the input is never modified.
func FilterActivitiesByVibe(activities []catalog.Activity, vibe Vibe) []catalog.Activity {
	if vibe != VibeCompetitive {
		return append([]catalog.Activity{}, activities...)
	}

	pool := []catalog.Activity{}
	for _, a := range activities {
		if a.IsCompetitive {
			pool = append(pool, a)
		}
	}
	return pool
}

// FilterRestaurantsByPref applies the food preference predicate and then
// drops every restaurant listing one of the avoided allergens (case-insensitive).
// Vegetarian-friendly also admits vegan-friendly places. Unknown preferences do
// not filter.
func FilterRestaurantsByPref(restaurants []catalog.Restaurant, pref FoodPref, avoid []string) []catalog.Restaurant {
	keep := matchesPref(pref)

	pool := []catalog.Restaurant{}
	for _, r := range restaurants {
		if !keep(r) || listsAny(r, avoid) {
			continue
		}
		pool = append(pool, r)
	}
	return pool
}

func matchesPref(pref FoodPref) func(catalog.Restaurant) bool {
	switch pref {
	case FoodVegetarian:
		return func(r catalog.Restaurant) bool { return r.VegetarianFriendly || r.VeganFriendly }
	case FoodVegan:
		return func(r catalog.Restaurant) bool { return r.VeganFriendly }
	case FoodSeafood:
		return func(r catalog.Restaurant) bool { return r.SeafoodFocused }
	case FoodMeatLover:
		return func(r catalog.Restaurant) bool { return r.MeatFriendly }
	}
	return func(catalog.Restaurant) bool { return true }
}

func listsAny(r catalog.Restaurant, avoid []string) bool {
	for _, a := range avoid {
		if r.HasAllergen(a) {
			return true
		}
	}
	return false
}
