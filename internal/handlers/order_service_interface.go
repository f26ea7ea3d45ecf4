package handlers

import (
	"context"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

// OrderServiceInterface defines the contract for order service
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, userID int64, req *models.CreateOrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context, userID int64, page, perPage int) (*models.OrdersResponse, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, user *models.User, orderID int64, status string) (*models.Order, error)
	ReviewOrder(ctx context.Context, userID, orderID int64, req *models.ReviewRequest) (*models.Review, error)
}
