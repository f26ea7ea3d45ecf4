package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

func restaurantFixtures() []models.Restaurant {
	lanches := &models.Category{ID: 1, Name: "Lanches"}
	pizza := &models.Category{ID: 2, Name: "Pizza"}
	return []models.Restaurant{
		{ID: 1, Name: "Burger Palace", Description: "Os melhores hambúrgueres da cidade", Category: lanches, IsOnline: true},
		{ID: 2, Name: "Pizzaria Bella Napoli", Description: "Pizzas artesanais no forno a lenha", Category: pizza, IsOnline: true},
		{ID: 3, Name: "Sushi Zen", Description: "Culinária japonesa autêntica"},
	}
}

func names(list []models.Restaurant) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.Name)
	}
	return out
}

func TestFilterRestaurants(t *testing.T) {
	list := restaurantFixtures()

	tests := []struct {
		name     string
		term     string
		category string
		want     []string
	}{
		{"no filter", "", "", []string{"Burger Palace", "Pizzaria Bella Napoli", "Sushi Zen"}},
		{"name match ignores case", "BURGER", "", []string{"Burger Palace"}},
		{"description match", "forno", "", []string{"Pizzaria Bella Napoli"}},
		{"category only", "", "Pizza", []string{"Pizzaria Bella Napoli"}},
		{"term and category", "sushi", "Pizza", []string{}},
		{"uncategorized never matches a category", "", "Japonesa", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterRestaurants(list, tt.term, tt.category)))
		})
	}
}

func TestCanOpenRestaurant(t *testing.T) {
	list := restaurantFixtures()
	anon := InitialState()
	authed := Reduce(anon, SetUser(&models.User{ID: 1}))

	assert.ErrorIs(t, CanOpenRestaurant(authed, list[2]), ErrRestaurantClosed)
	assert.ErrorIs(t, CanOpenRestaurant(anon, list[0]), ErrAuthRequired)
	assert.NoError(t, CanOpenRestaurant(authed, list[0]))
}
