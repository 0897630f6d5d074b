package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseActivitiesHTML reads activities from the first <table> of an HTML export.
// Columns are matched by header text: name, image (or img), is_competitive,
// is_family_friendly.
func ParseActivitiesHTML(r io.Reader) ([]Activity, error) {
	rows, err := parseTable(r, "name")
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, Activity{
			Name:             row["name"],
			Image:            row["image"],
			IsCompetitive:    parseFlag(row["is_competitive"]),
			IsFamilyFriendly: parseFlag(row["is_family_friendly"]),
		})
	}
	return activities, nil
}

// ParseRestaurantsHTML reads restaurants from the first <table> of an HTML export.
// The allergens column holds a comma separated list.
func ParseRestaurantsHTML(r io.Reader) ([]Restaurant, error) {
	rows, err := parseTable(r, "name")
	if err != nil {
		return nil, err
	}

	restaurants := make([]Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurants = append(restaurants, Restaurant{
			Name:               row["name"],
			Image:              row["image"],
			GlutenFreeFriendly: parseFlag(row["gluten_free_friendly"]),
			VeganFriendly:      parseFlag(row["vegan_friendly"]),
			VegetarianFriendly: parseFlag(row["vegetarian_friendly"]),
			MeatFriendly:       parseFlag(row["meat_friendly"]),
			SeafoodFocused:     parseFlag(row["seafood_focused"]),
			Allergens:          splitList(row["allergens"]),
		})
	}
	return restaurants, nil
}

func parseTable(r io.Reader, required ...string) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table found in document")
	}

	var headers []string
	table.Find("th").Each(func(_ int, s *goquery.Selection) {
		headers = append(headers, normalizeHeader(s.Text()))
	})
	for _, col := range required {
		if !contains(headers, col) {
			return nil, fmt.Errorf("table is missing required column %q", col)
		}
	}

	var rows []map[string]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make(map[string]string, len(headers))
		cells.Each(func(i int, td *goquery.Selection) {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(td.Text())
			}
		})
		// Spacer rows carry no name and are skipped.
		if row["name"] == "" {
			return
		}
		rows = append(rows, row)
	})
	return rows, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	if h == "img" {
		return "image"
	}
	return h
}

func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "y", "1", "x", "✓":
		return true
	}
	return false
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
