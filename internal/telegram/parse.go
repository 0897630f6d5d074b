package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"day-planner/internal/planner"
)

// ParseCriteria reads "/plan" arguments of the form key=value. Values may
// contain spaces ("occasion=Date Night") and run until the next key.
// avoid takes a comma separated allergen list.
func ParseCriteria(args string) (planner.Criteria, error) {
	var c planner.Criteria

	pairs, err := splitPairs(args)
	if err != nil {
		return c, err
	}

	for _, kv := range pairs {
		key, value := kv[0], kv[1]
		switch key {
		case "type":
			c.PlanType = planner.ParsePlanType(value)
		case "vibe":
			c.Vibe = planner.ParseVibe(value)
		case "food":
			c.FoodPref = planner.ParseFoodPref(value)
		case "avoid":
			for _, a := range strings.Split(value, ",") {
				if a = strings.TrimSpace(a); a != "" {
					c.Allergens = append(c.Allergens, a)
				}
			}
		case "people":
			n, err := strconv.Atoi(value)
			if err != nil {
				return c, fmt.Errorf("people must be a number, got %q", value)
			}
			c.People = n
		case "walk":
			n, err := strconv.Atoi(value)
			if err != nil {
				return c, fmt.Errorf("walk must be a number of minutes, got %q", value)
			}
			c.WalkDistMinutes = n
		case "day":
			c.Day = value
		case "time":
			c.Time = value
		case "occasion":
			c.Occasion = value
		case "city":
			c.City = value
		default:
			return c, fmt.Errorf("unknown option %q", key)
		}
	}
	return c, c.Validate()
}

func splitPairs(args string) ([][2]string, error) {
	var pairs [][2]string
	for _, tok := range strings.Fields(args) {
		key, value, ok := strings.Cut(tok, "=")
		if ok {
			pairs = append(pairs, [2]string{strings.ToLower(key), value})
			continue
		}
		if len(pairs) == 0 {
			return nil, fmt.Errorf("expected key=value, got %q", tok)
		}
		pairs[len(pairs)-1][1] += " " + tok
	}
	return pairs, nil
}
