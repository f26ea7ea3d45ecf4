package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/wbonfim/DeliveryApp/internal/models"
)

// Auth

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, "auth.register", http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetCurrentUser(ctx context.Context) (*models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.do(ctx, "auth.me", http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Restaurants

// GetRestaurants forwards params verbatim as query filters
// (search, category_id, page, per_page).
func (c *Client) GetRestaurants(ctx context.Context, params url.Values) (*models.RestaurantsResponse, error) {
	var resp models.RestaurantsResponse
	if err := c.do(ctx, "restaurants.list", http.MethodGet, "/restaurants", nil, &resp, WithQuery(params)); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetRestaurant(ctx context.Context, id int64) (*models.RestaurantResponse, error) {
	var resp models.RestaurantResponse
	path := fmt.Sprintf("/restaurants/%d", id)
	if err := c.do(ctx, "restaurants.get", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetCategories(ctx context.Context) (*models.CategoriesResponse, error) {
	var resp models.CategoriesResponse
	if err := c.do(ctx, "restaurants.categories", http.MethodGet, "/restaurants/categories", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cart

func (c *Client) GetCart(ctx context.Context) (*models.CartResponse, error) {
	var resp models.CartResponse
	if err := c.do(ctx, "orders.cart", http.MethodGet, "/orders/cart", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int, notes string) (*models.CartResponse, error) {
	body := models.AddToCartRequest{ProductID: productID, Quantity: quantity, Notes: notes}
	var resp models.CartResponse
	if err := c.do(ctx, "orders.cart.add", http.MethodPost, "/orders/cart/add", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, itemID int64) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	path := fmt.Sprintf("/orders/cart/remove/%d", itemID)
	if err := c.do(ctx, "orders.cart.remove", http.MethodDelete, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ClearCart(ctx context.Context) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, "orders.cart.clear", http.MethodDelete, "/orders/cart/clear", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Orders

func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error) {
	var resp models.OrderResponse
	if err := c.do(ctx, "orders.create", http.MethodPost, "/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetOrders(ctx context.Context, params url.Values) (*models.OrdersResponse, error) {
	var resp models.OrdersResponse
	if err := c.do(ctx, "orders.list", http.MethodGet, "/orders", nil, &resp, WithQuery(params)); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*models.OrderResponse, error) {
	var resp models.OrderResponse
	path := fmt.Sprintf("/orders/%d", id)
	if err := c.do(ctx, "orders.get", http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.OrderResponse, error) {
	var resp models.OrderResponse
	path := fmt.Sprintf("/orders/%d/status", id)
	body := models.UpdateOrderStatusRequest{Status: status}
	if err := c.do(ctx, "orders.status", http.MethodPut, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reviews

func (c *Client) CreateReview(ctx context.Context, orderID int64, review models.ReviewRequest) (*models.ReviewResponse, error) {
	var resp models.ReviewResponse
	path := fmt.Sprintf("/orders/%d/review", orderID)
	if err := c.do(ctx, "orders.review", http.MethodPost, path, review, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) HealthCheck(ctx context.Context) (*models.HealthResponse, error) {
	var resp models.HealthResponse
	if err := c.do(ctx, "health", http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
