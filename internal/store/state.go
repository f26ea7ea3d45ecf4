package store

import "github.com/wbonfim/DeliveryApp/internal/models"

// State is the whole client-side application state. It is only ever
// replaced through Reduce; callers get copies from Store.Snapshot.
type State struct {
	User            *models.User
	IsAuthenticated bool
	Cart            *models.Cart
	Restaurants     []models.Restaurant
	Categories      []models.Category
	Loading         bool
	// Error is the last operation failure message; empty when absent.
	Error string
}

// InitialState is the state of a fresh session.
func InitialState() State {
	return State{
		Restaurants: []models.Restaurant{},
		Categories:  []models.Category{},
	}
}
