package planner

import (
	"fmt"
	"strings"
	"time"
)

// PlanType selects the shape of a generated plan.
type PlanType string

const (
	PlanActivity PlanType = "Activity"
	PlanFood     PlanType = "Food"
	PlanCombo    PlanType = "Activity + Food"
)

// Resolve maps unrecognized plan types to PlanCombo.
func (t PlanType) Resolve() PlanType {
	switch t {
	case PlanActivity, PlanFood:
		return t
	}
	return PlanCombo
}

// Vibe is the mood a user asks for.
type Vibe string

const (
	VibeAny         Vibe = "Any"
	VibeFun         Vibe = "Fun"
	VibeRelaxed     Vibe = "Relaxed"
	VibeCompetitive Vibe = "Competitive"
	VibeRomantic    Vibe = "Romantic"
)

// FoodPref is a dietary preference.
type FoodPref string

const (
	FoodAny        FoodPref = "Any"
	FoodVegetarian FoodPref = "Vegetarian-friendly"
	FoodVegan      FoodPref = "Vegan-friendly"
	FoodSeafood    FoodPref = "Seafood"
	FoodMeatLover  FoodPref = "Meat Lover"
)

// Option lists offered to the presentation layer.
var (
	Cities    = []string{"San Francisco", "Los Angeles", "New York"}
	PlanTypes = []PlanType{PlanCombo, PlanActivity, PlanFood}
	Occasions = []string{"Any", "Birthday", "Date Night", "Team Event"}
	Vibes     = []Vibe{VibeAny, VibeFun, VibeRelaxed, VibeCompetitive, VibeRomantic}
	FoodPrefs = []FoodPref{FoodAny, FoodVegetarian, FoodVegan, FoodSeafood, FoodMeatLover}
	Allergens = []string{"Gluten", "Dairy", "Nuts", "Shellfish", "Soy", "Eggs", "Sesame"}
)

// Bounds for the numeric filters.
const (
	MinPeople       = 1
	MaxPeople       = 20
	DefaultPeople   = 2
	MinWalkMinutes  = 1
	MaxWalkMinutes  = 15
	DefaultWalkDist = 5
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "15:04"
)

// Criteria is one submission of the search filters. City, occasion and
// walking distance are display-only and never narrow a pool.
type Criteria struct {
	City            string   `json:"city"`
	People          int      `json:"people"`
	Day             string   `json:"day"`
	Time            string   `json:"time,omitempty"`
	PlanType        PlanType `json:"type"`
	Occasion        string   `json:"occasion"`
	Vibe            Vibe     `json:"vibe"`
	FoodPref        FoodPref `json:"food_pref"`
	Allergens       []string `json:"allergens"`
	WalkDistMinutes int      `json:"walk_dist"`
}

// Normalize fills defaults and clamps numeric fields. The plan type is left
// untouched so that unknown values still reach the generator's default branch.
func (c Criteria) Normalize(now time.Time) Criteria {
	out := c.clone()
	if out.City == "" {
		out.City = Cities[0]
	}
	if out.People == 0 {
		out.People = DefaultPeople
	}
	out.People = clamp(out.People, MinPeople, MaxPeople)
	if out.Day == "" {
		out.Day = now.Format(dayLayout)
	}
	if out.PlanType == "" {
		out.PlanType = PlanCombo
	}
	if out.Occasion == "" {
		out.Occasion = Occasions[0]
	}
	if out.Vibe == "" {
		out.Vibe = VibeAny
	}
	if out.FoodPref == "" {
		out.FoodPref = FoodAny
	}
	if out.WalkDistMinutes == 0 {
		out.WalkDistMinutes = DefaultWalkDist
	}
	out.WalkDistMinutes = clamp(out.WalkDistMinutes, MinWalkMinutes, MaxWalkMinutes)
	if out.Allergens == nil {
		out.Allergens = []string{}
	}
	return out
}

// Validate checks the calendar fields.
func (c Criteria) Validate() error {
	if c.Day != "" {
		if _, err := time.Parse(dayLayout, c.Day); err != nil {
			return fmt.Errorf("invalid day %q: expected YYYY-MM-DD", c.Day)
		}
	}
	if c.Time != "" {
		if _, err := time.Parse(timeLayout, c.Time); err != nil {
			return fmt.Errorf("invalid time %q: expected HH:MM", c.Time)
		}
	}
	return nil
}

func (c Criteria) clone() Criteria {
	out := c
	if c.Allergens != nil {
		out.Allergens = append([]string(nil), c.Allergens...)
	}
	return out
}

// ParsePlanType accepts short user input such as "food" or "combo".
func ParsePlanType(s string) PlanType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activity", "activities":
		return PlanActivity
	case "food", "restaurant", "dining":
		return PlanFood
	}
	return PlanCombo
}

// ParseVibe matches a vibe case-insensitively, falling back to VibeAny.
func ParseVibe(s string) Vibe {
	for _, v := range Vibes {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v
		}
	}
	return VibeAny
}

// ParseFoodPref matches a food preference case-insensitively. Short forms
// like "vegan" or "meat" are accepted.
func ParseFoodPref(s string) FoodPref {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range FoodPrefs {
		if strings.ToLower(string(f)) == s {
			return f
		}
	}
	switch s {
	case "vegetarian", "veggie":
		return FoodVegetarian
	case "vegan":
		return FoodVegan
	case "fish":
		return FoodSeafood
	case "meat":
		return FoodMeatLover
	}
	return FoodAny
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
