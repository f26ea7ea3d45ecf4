package store

import (
	"context"
	"net/url"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

// API is the subset of the delivery API client the store drives.
// *client.Client satisfies it.
type API interface {
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	GetCurrentUser(ctx context.Context) (*models.UserResponse, error)
	GetRestaurants(ctx context.Context, params url.Values) (*models.RestaurantsResponse, error)
	GetCategories(ctx context.Context) (*models.CategoriesResponse, error)
	GetCart(ctx context.Context) (*models.CartResponse, error)
	AddToCart(ctx context.Context, productID int64, quantity int, notes string) (*models.CartResponse, error)
	RemoveFromCart(ctx context.Context, itemID int64) (*models.MessageResponse, error)
	ClearCart(ctx context.Context) (*models.MessageResponse, error)
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error)

	SetCredential(ctx context.Context, token string) error
	ClearCredential(ctx context.Context) error
	HasCredential() bool
}
