package handlers

import (
	"context"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

// CartServiceInterface defines the contract for cart service
type CartServiceInterface interface {
	GetCart(ctx context.Context, userID int64) (*models.Cart, error)
	AddToCart(ctx context.Context, userID int64, req *models.AddToCartRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}
