package planner

// Plan is either a featured recommendation or an explore-more card.
// Featured plans carry the per-item images, walk time and reasoning; cards
// only carry names and a single Image.
type Plan struct {
	Kind            PlanType `json:"kind"`
	Activity        string   `json:"activity,omitempty"`
	Restaurant      string   `json:"restaurant,omitempty"`
	ActivityImage   string   `json:"activity_image,omitempty"`
	RestaurantImage string   `json:"restaurant_image,omitempty"`
	ComboImage      string   `json:"combo_image,omitempty"`
	Image           string   `json:"image,omitempty"`
	WalkMinutes     int      `json:"walk_minutes,omitempty"`
	Reasoning       string   `json:"reasoning,omitempty"`
}

// Title is the display name of the plan: the activity, the restaurant or
// "activity + restaurant".
func (p Plan) Title() string {
	switch p.Kind {
	case PlanActivity:
		return p.Activity
	case PlanFood:
		return p.Restaurant
	}
	return p.Activity + " + " + p.Restaurant
}

// Result is the output of one plan generation.
type Result struct {
	Featured    *Plan  `json:"featured"`
	ExploreMore []Plan `json:"explore_more"`

	ActivityPool   int `json:"-"`
	RestaurantPool int `json:"-"`
}

// Matched reports whether a featured plan was produced.
func (r Result) Matched() bool {
	return r.Featured != nil
}
