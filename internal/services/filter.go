package services

import (
	"strings"

	"golang-restaurant-explorer/internal/models"
)

const (
	DefaultInitialPageSize = 8
	DefaultPageStep        = 4
)

// FilterRestaurants keeps the entries matching every active filter, in their original order.
// It never fails; no match or an empty input yields an empty slice.
func FilterRestaurants(all []models.RestaurantSummary, f models.FilterState) []models.RestaurantSummary {
	filtered := make([]models.RestaurantSummary, 0, len(all))

	for _, r := range all {
		if matchesOpenNow(r, f) && matchesPrice(r, f) && matchesCity(r, f) {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

func matchesOpenNow(r models.RestaurantSummary, f models.FilterState) bool {
	return !f.OpenNow || r.OpenNow
}

func matchesPrice(r models.RestaurantSummary, f models.FilterState) bool {
	rng, ok := f.Price.RatingRange()
	if !ok {
		return true
	}
	return rng.Contains(r.Rating)
}

// the "category" selector matches on city
func matchesCity(r models.RestaurantSummary, f models.FilterState) bool {
	return f.City == "" || strings.Contains(r.City, f.City)
}

// Paginate returns the first cursor entries, or all of them when cursor is past the end
func Paginate(all []models.RestaurantSummary, cursor int) []models.RestaurantSummary {
	if cursor <= 0 || len(all) == 0 {
		return []models.RestaurantSummary{}
	}
	if cursor > len(all) {
		cursor = len(all)
	}
	page := make([]models.RestaurantSummary, cursor)
	copy(page, all[:cursor])
	return page
}

// NextCursor grows the cursor by step, clamped to total
func NextCursor(cursor, total, step int) int {
	if cursor < 0 {
		cursor = 0
	}
	next := cursor + step
	if next > total {
		next = total
	}
	if next < 0 {
		next = 0
	}
	return next
}

// CityOptions merges the configured cities with those present in the list, keeping first-seen order
func CityOptions(configured []string, all []models.RestaurantSummary) []string {
	seen := make(map[string]bool)
	options := make([]string, 0, len(configured))

	add := func(city string) {
		if city == "" || seen[city] {
			return
		}
		seen[city] = true
		options = append(options, city)
	}

	for _, c := range configured {
		add(c)
	}
	for _, r := range all {
		add(r.City)
	}
	return options
}
