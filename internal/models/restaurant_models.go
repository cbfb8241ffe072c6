package models

import (
	"fmt"
	"math"
	"strings"
)

// Image sizes served by the restaurant API
const (
	PictureSmall  = "small"
	PictureMedium = "medium"
	PictureLarge  = "large"
)

// RestaurantSummary is one entry of the catalog list
type RestaurantSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	City        string  `json:"city"`
	Rating      float64 `json:"rating"`
	PictureID   string  `json:"pictureId"`
	OpenNow     bool    `json:"open_now"`
}

// RestaurantDetail is fetched on demand for the detail overlay
type RestaurantDetail struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Rating      float64    `json:"rating"`
	PictureID   string     `json:"pictureId"`
	Categories  []NamedRef `json:"categories"`
	Menus       Menus      `json:"menus"`
}

// NamedRef is the {name} object the API uses for categories and menu items
type NamedRef struct {
	Name string `json:"name"`
}

type Menus struct {
	Foods  []NamedRef `json:"foods"`
	Drinks []NamedRef `json:"drinks"`
}

// ListResponse is the envelope of GET /list
type ListResponse struct {
	Error       bool                `json:"error"`
	Message     string              `json:"message"`
	Count       int                 `json:"count"`
	Restaurants []RestaurantSummary `json:"restaurants"`
}

// DetailResponse is the envelope of GET /detail/{id}
type DetailResponse struct {
	Error      bool              `json:"error"`
	Message    string            `json:"message"`
	Restaurant *RestaurantDetail `json:"restaurant"`
}

func (d *RestaurantDetail) CategoryNames() string {
	return joinNames(d.Categories)
}

func (d *RestaurantDetail) FoodNames() string {
	return joinNames(d.Menus.Foods)
}

func (d *RestaurantDetail) DrinkNames() string {
	return joinNames(d.Menus.Drinks)
}

func joinNames(refs []NamedRef) string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// PictureURL builds the image location for a picture id.
// An unknown size falls back to small.
func PictureURL(baseURL, size, pictureID string) string {
	switch size {
	case PictureSmall, PictureMedium, PictureLarge:
	default:
		size = PictureSmall
	}
	return fmt.Sprintf("%s/images/%s/%s", strings.TrimRight(baseURL, "/"), size, pictureID)
}

// Stars renders one glyph per whole rating point
func Stars(rating float64) string {
	if rating <= 0 || math.IsNaN(rating) {
		return ""
	}
	return strings.Repeat("★", int(math.Floor(rating)))
}
