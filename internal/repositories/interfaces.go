package repositories

import (
	"context"
	"errors"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

var ErrNotFound = errors.New("record not found")

// UserRepository stores accounts of the reference API.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

// RestaurantFilter narrows a restaurant listing. Zero values disable a
// filter.
type RestaurantFilter struct {
	Search     string
	CategoryID int64
	Limit      int
	Offset     int
}

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id int64) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	// List returns one page of active restaurants and the total match count.
	List(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, int, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetByRestaurantID(ctx context.Context, restaurantID int64) ([]models.Product, error)
}

// CartRepository keeps at most one cart per user.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	DeleteByUserID(ctx context.Context, userID int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.Order, int, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByOrderID(ctx context.Context, orderID int64) (*models.Review, error)
}
