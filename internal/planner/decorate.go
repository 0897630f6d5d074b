package planner

import (
	"math"
	"strings"
)

// Card is a plan dressed for display with a match percentage and a rating.
type Card struct {
	Plan
	Featured bool    `json:"featured"`
	Match    int     `json:"match"`
	Rating   float64 `json:"rating"`
	Stars    string  `json:"stars"`
}

const (
	fullStar  = "★"
	halfStar  = "⯨"
	emptyStar = "☆"
)

// Decorate turns a generation result into cards. The featured plan, when
// present, comes first with a match in [92,98]; the rest get [75,90].
func (g *Generator) Decorate(featured *Plan, exploreMore []Plan) []Card {
	g.mu.Lock()
	defer g.mu.Unlock()

	cards := make([]Card, 0, len(exploreMore)+1)
	if featured != nil {
		cards = append(cards, g.card(*featured, true))
	}
	for _, p := range exploreMore {
		cards = append(cards, g.card(p, false))
	}
	return cards
}

func (g *Generator) card(p Plan, featured bool) Card {
	match := 75 + g.rng.IntN(16)
	if featured {
		match = 92 + g.rng.IntN(7)
	}
	rating := math.Round((4.0+g.rng.Float64())*10) / 10
	if rating > 5 {
		rating = 5
	}
	return Card{
		Plan:     p,
		Featured: featured,
		Match:    match,
		Rating:   rating,
		Stars:    Stars(rating),
	}
}

// Stars renders a rating out of five as full, half and empty star glyphs.
func Stars(rating float64) string {
	rating = math.Max(0, math.Min(5, rating))
	full := int(rating)
	half := rating-float64(full) >= 0.5

	var b strings.Builder
	b.WriteString(strings.Repeat(fullStar, full))
	n := full
	if half {
		b.WriteString(halfStar)
		n++
	}
	b.WriteString(strings.Repeat(emptyStar, 5-n))
	return b.String()
}
