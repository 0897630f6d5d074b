package planner

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"day-planner/internal/catalog"
)

const exploreMoreSize = 4

// Walk times are decorative and drawn uniformly from this closed range.
const (
	MinWalkTime = 2
	MaxWalkTime = 12
)

const (
	activityReasoning = "You chose an activity-only plan, so here's **%s** - an exciting experience just for you!"
	foodReasoning     = "You chose a food-only plan, so enjoy dining at **%s**, a top restaurant pick!"
	comboReasoning    = "You told us you're looking for %s vibes for %s occasion - so we paired you with **%s**, " +
		"just %d minutes from the buzzing **%s**. Start your day with this exciting experience, then stroll over for a great meal."
	defaultOccasion = "a great day out"
)

var (
	demoVibes = []Vibe{VibeFun, VibeRelaxed, VibeCompetitive, VibeRomantic}
	demoFoods = []FoodPref{FoodVegetarian, FoodVegan, FoodSeafood, FoodMeatLover}
)

// Generator draws plans from a catalog. All randomness comes from the
// injected source, so a fixed seed reproduces the same plans.
type Generator struct {
	catalog *catalog.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator over cat using rng.
func NewGenerator(cat *catalog.Catalog, rng *rand.Rand) *Generator {
	return &Generator{catalog: cat, rng: rng}
}

// NewRand returns a seeded PCG source. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Catalog returns the catalog plans are drawn from.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

// GeneratePlan returns the featured plan (nil when a required pool is empty)
// and up to four explore-more cards.
func (g *Generator) GeneratePlan(c Criteria) (*Plan, []Plan) {
	res := g.Generate(c)
	return res.Featured, res.ExploreMore
}

// Generate is GeneratePlan with pool sizes attached for reporting.
func (g *Generator) Generate(c Criteria) Result {
	activities := FilterActivitiesByVibe(g.catalog.Activities, c.Vibe)
	restaurants := FilterRestaurantsByPref(g.catalog.Restaurants, c.FoodPref, c.Allergens)

	res := Result{
		ExploreMore:    []Plan{},
		ActivityPool:   len(activities),
		RestaurantPool: len(restaurants),
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	switch c.PlanType.Resolve() {
	case PlanActivity:
		if len(activities) == 0 {
			return res
		}
		act := activities[g.rng.IntN(len(activities))]
		res.Featured = &Plan{
			Kind:          PlanActivity,
			Activity:      act.Name,
			ActivityImage: act.Image,
			Image:         act.Image,
			Reasoning:     fmt.Sprintf(activityReasoning, act.Name),
		}
		for _, i := range g.sample(len(activities), exploreMoreSize) {
			res.ExploreMore = append(res.ExploreMore, Plan{
				Kind:     PlanActivity,
				Activity: activities[i].Name,
				Image:    activities[i].Image,
			})
		}

	case PlanFood:
		if len(restaurants) == 0 {
			return res
		}
		rest := restaurants[g.rng.IntN(len(restaurants))]
		res.Featured = &Plan{
			Kind:            PlanFood,
			Restaurant:      rest.Name,
			RestaurantImage: rest.Image,
			Image:           rest.Image,
			Reasoning:       fmt.Sprintf(foodReasoning, rest.Name),
		}
		for _, i := range g.sample(len(restaurants), exploreMoreSize) {
			res.ExploreMore = append(res.ExploreMore, Plan{
				Kind:       PlanFood,
				Restaurant: restaurants[i].Name,
				Image:      restaurants[i].Image,
			})
		}

	default:
		if len(activities) == 0 || len(restaurants) == 0 {
			return res
		}
		act := activities[g.rng.IntN(len(activities))]
		rest := restaurants[g.rng.IntN(len(restaurants))]
		walk := MinWalkTime + g.rng.IntN(MaxWalkTime-MinWalkTime+1)
		combo := g.comboImage()

		occasion := c.Occasion
		if occasion == "" {
			occasion = defaultOccasion
		}
		vibe := c.Vibe
		if vibe == "" {
			vibe = VibeAny
		}

		res.Featured = &Plan{
			Kind:            PlanCombo,
			Activity:        act.Name,
			Restaurant:      rest.Name,
			ActivityImage:   act.Image,
			RestaurantImage: rest.Image,
			ComboImage:      combo,
			Image:           combo,
			WalkMinutes:     walk,
			Reasoning:       fmt.Sprintf(comboReasoning, vibe, occasion, act.Name, walk, rest.Name),
		}

		// Cards draw with replacement, so repeats across cards are allowed.
		n := min(exploreMoreSize, len(activities), len(restaurants))
		for range n {
			a := activities[g.rng.IntN(len(activities))]
			r := restaurants[g.rng.IntN(len(restaurants))]
			res.ExploreMore = append(res.ExploreMore, Plan{
				Kind:       PlanCombo,
				Activity:   a.Name,
				Restaurant: r.Name,
				Image:      g.comboImage(),
			})
		}
	}

	return res
}

// BestMatch picks one activity and one restaurant from the full catalog for a
// group, ignoring every filter. It returns nil when either catalog is empty.
func (g *Generator) BestMatch() *Plan {
	if len(g.catalog.Activities) == 0 || len(g.catalog.Restaurants) == 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	combo := g.comboImage()
	act := g.catalog.Activities[g.rng.IntN(len(g.catalog.Activities))]
	rest := g.catalog.Restaurants[g.rng.IntN(len(g.catalog.Restaurants))]
	return &Plan{
		Kind:            PlanCombo,
		Activity:        act.Name,
		Restaurant:      rest.Name,
		ActivityImage:   act.Image,
		RestaurantImage: rest.Image,
		ComboImage:      combo,
		Image:           combo,
	}
}

// DemoFriendPreference invents preferences for an invited friend until a real
// invite-response flow exists.
func (g *Generator) DemoFriendPreference(contact string) FriendPreference {
	g.mu.Lock()
	defer g.mu.Unlock()

	return FriendPreference{
		Contact:  contact,
		Vibe:     demoVibes[g.rng.IntN(len(demoVibes))],
		FoodPref: []FoodPref{demoFoods[g.rng.IntN(len(demoFoods))]},
	}
}

// sample returns min(k, n) distinct indices in [0, n). Callers hold g.mu.
func (g *Generator) sample(n, k int) []int {
	return g.rng.Perm(n)[:min(k, n)]
}

// comboImage picks a combo picture or "" when the catalog has none. Callers hold g.mu.
func (g *Generator) comboImage() string {
	if len(g.catalog.ComboImages) == 0 {
		return ""
	}
	return g.catalog.ComboImages[g.rng.IntN(len(g.catalog.ComboImages))]
}
