package handlers

import (
	"context"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

// AuthServiceInterface defines the contract for auth service
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, login, password string) (string, *models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	RefreshToken(ctx context.Context, userID int64) (string, error)
}
