package store

import (
	"errors"
	"strings"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

var (
	ErrRestaurantClosed = errors.New("restaurant is closed")
	ErrAuthRequired     = errors.New("login required")
)

// CartItemCount is the number shown on the cart badge.
func CartItemCount(s State) int {
	return s.Cart.ItemCount()
}

// FilterRestaurants keeps restaurants whose name or description contains
// term (case-insensitive) and, when categoryName is set, whose category
// has that name.
func FilterRestaurants(list []models.Restaurant, term, categoryName string) []models.Restaurant {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Restaurant, 0, len(list))
	for _, r := range list {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Name), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) {
			continue
		}
		if categoryName != "" && (r.Category == nil || r.Category.Name != categoryName) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// CanOpenRestaurant reports why a restaurant's menu cannot be ordered
// from, or nil.
func CanOpenRestaurant(s State, r models.Restaurant) error {
	if !r.IsOnline {
		return ErrRestaurantClosed
	}
	if !s.IsAuthenticated {
		return ErrAuthRequired
	}
	return nil
}
