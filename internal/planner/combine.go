package planner

import "fmt"

// FriendPreference holds the preferences attributed to one invited friend.
type FriendPreference struct {
	Contact  string     `json:"contact"`
	Vibe     Vibe       `json:"vibe"`
	FoodPref []FoodPref `json:"food_pref"`
}

// Describe renders the preference the way the invite list shows it.
func (f FriendPreference) Describe() string {
	food := FoodAny
	if len(f.FoodPref) > 0 {
		food = f.FoodPref[0]
	}
	return fmt.Sprintf("Demo: %s prefers %s vibes and %s food.", f.Contact, f.Vibe, food)
}

// CombinePreferences folds friend preferences into the user's criteria when
// optIn is set. Candidates are deduplicated keeping first occurrence, with the
// user's own choice first, and the first surviving candidate wins. The input is
// never modified.
func CombinePreferences(c Criteria, friends []FriendPreference, optIn bool) Criteria {
	out := c.clone()
	if !optIn || len(friends) == 0 {
		return out
	}

	vibes := CandidateVibes(c, friends)
	if len(vibes) > 0 {
		out.Vibe = vibes[0]
	}

	foods := CandidateFoodPrefs(c, friends)
	if len(foods) > 0 {
		out.FoodPref = foods[0]
	}

	return out
}

// CandidateVibes lists the user's vibe (unless Any) followed by each friend's,
// without duplicates.
func CandidateVibes(c Criteria, friends []FriendPreference) []Vibe {
	seen := map[Vibe]bool{}
	out := []Vibe{}
	add := func(v Vibe) {
		if v == "" || v == VibeAny || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	add(c.Vibe)
	for _, f := range friends {
		add(f.Vibe)
	}
	return out
}

// CandidateFoodPrefs is CandidateVibes for food preferences.
func CandidateFoodPrefs(c Criteria, friends []FriendPreference) []FoodPref {
	seen := map[FoodPref]bool{}
	out := []FoodPref{}
	add := func(p FoodPref) {
		if p == "" || p == FoodAny || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(c.FoodPref)
	for _, f := range friends {
		for _, p := range f.FoodPref {
			add(p)
		}
	}
	return out
}
