package services

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/repositories"
)

// CartService keeps one cart per user, holding products of a single
// restaurant. Every mutation returns the whole cart.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository

	// mu serializes read-modify-write cycles on carts.
	mu sync.Mutex
}

func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart, or nil when there is none.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.attachProducts(ctx, cart)
	return cart, nil
}

func (s *CartService) AddToCart(ctx context.Context, userID int64, req *models.AddToCartRequest) (*models.Cart, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	if !product.IsAvailable {
		return nil, ErrProductUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		cart = &models.Cart{UserID: userID, RestaurantID: product.RestaurantID}
	case err != nil:
		return nil, err
	case cart.RestaurantID != product.RestaurantID && len(cart.Items) > 0:
		return nil, ErrDifferentRestaurant
	default:
		cart.RestaurantID = product.RestaurantID
	}

	merged := false
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ProductID != product.ID {
			continue
		}
		item.Quantity += req.Quantity
		item.UnitPrice = product.Price
		if req.Notes != "" {
			item.Notes = req.Notes
		}
		merged = true
		break
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
			Notes:     req.Notes,
		})
	}

	recalculate(cart)
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	s.attachProducts(ctx, cart)
	return cart, nil
}

// RemoveItem deletes one line. A cart left without items is dropped.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrCartItemNotFound
	}
	if err != nil {
		return err
	}

	idx := -1
	for i, item := range cart.Items {
		if item.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCartItemNotFound
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	if len(cart.Items) == 0 {
		return s.cartRepo.DeleteByUserID(ctx, userID)
	}
	recalculate(cart)
	return s.cartRepo.Save(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartRepo.DeleteByUserID(ctx, userID)
}

// take removes and returns the user's cart in one step.
func (s *CartService) take(ctx context.Context, userID int64) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return cart, nil
}

// restore puts back a cart taken by an order that could not be placed.
func (s *CartService) restore(ctx context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartRepo.Save(ctx, cart)
}

func recalculate(cart *models.Cart) {
	total := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.TotalPrice)
	}
	cart.Total = total
}

func (s *CartService) attachProducts(ctx context.Context, cart *models.Cart) {
	for i := range cart.Items {
		if p, err := s.productRepo.GetByID(ctx, cart.Items[i].ProductID); err == nil {
			cart.Items[i].Product = p
		}
	}
}
