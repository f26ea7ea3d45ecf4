package handlers

import (
	"context"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/services"
)

// RestaurantServiceInterface defines the contract for restaurant service
type RestaurantServiceInterface interface {
	List(ctx context.Context, params services.RestaurantListParams) (*models.RestaurantsResponse, error)
	Get(ctx context.Context, id int64) (*models.RestaurantResponse, error)
	Categories(ctx context.Context) ([]models.Category, error)
}
