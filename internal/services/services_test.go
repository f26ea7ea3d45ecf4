package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/repositories"
	"github.com/wbonfim/DeliveryApp/pkg/auth"
	"github.com/wbonfim/DeliveryApp/pkg/logger"
)

type fixture struct {
	users       repositories.UserRepository
	restaurants repositories.RestaurantRepository
	products    repositories.ProductRepository
	carts       *CartService
	orders      *OrderService
	auth        *AuthService
	publisher   *stubPublisher

	restaurant *models.Restaurant
	burger     *models.Product
	fries      *models.Product
	other      *models.Product
}

type stubPublisher struct {
	topics []string
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, topic, _ string, _ any) error {
	p.topics = append(p.topics, topic)
	return p.err
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		users:       repositories.NewUserRepository(),
		restaurants: repositories.NewRestaurantRepository(),
		products:    repositories.NewProductRepository(),
		publisher:   &stubPublisher{},
	}
	cartRepo := repositories.NewCartRepository()
	f.carts = NewCartService(cartRepo, f.products)
	f.orders = NewOrderService(repositories.NewOrderRepository(), f.restaurants, repositories.NewReviewRepository(), f.carts, f.publisher, logger.Nop())
	f.auth = NewAuthService(f.users, auth.NewJWTManager("secret", 0))

	f.restaurant = &models.Restaurant{
		Name: "Burger Palace", IsActive: true, IsOnline: true,
		DeliveryFee:  decimal.RequireFromString("5.90"),
		MinimumOrder: decimal.RequireFromString("25.00"),
		Rating:       4.5, TotalReviews: 1,
	}
	require.NoError(t, f.restaurants.Create(ctx, f.restaurant))
	pizzeria := &models.Restaurant{Name: "Bella Napoli", IsActive: true, IsOnline: true}
	require.NoError(t, f.restaurants.Create(ctx, pizzeria))

	f.burger = &models.Product{RestaurantID: f.restaurant.ID, Name: "Big Burger", Price: decimal.RequireFromString("24.90"), IsActive: true, IsAvailable: true}
	f.fries = &models.Product{RestaurantID: f.restaurant.ID, Name: "Batata Frita", Price: decimal.RequireFromString("12.90"), IsActive: true, IsAvailable: true}
	f.other = &models.Product{RestaurantID: pizzeria.ID, Name: "Margherita", Price: decimal.RequireFromString("32.90"), IsActive: true, IsAvailable: true}
	for _, p := range []*models.Product{f.burger, f.fries, f.other} {
		require.NoError(t, f.products.Create(ctx, p))
	}
	return f
}

func (f *fixture) add(t *testing.T, userID int64, p *models.Product, qty int) *models.Cart {
	t.Helper()
	cart, err := f.carts.AddToCart(context.Background(), userID, &models.AddToCartRequest{ProductID: p.ID, Quantity: qty})
	require.NoError(t, err)
	return cart
}

func address() models.Address {
	return models.Address{Street: "Rua A", Number: "1", Neighborhood: "Centro", City: "São Paulo", State: "SP", ZipCode: "01000-000"}
}

func TestAuthService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, &models.RegisterRequest{Username: "ana"})
	assert.ErrorIs(t, err, ErrMissingRegistrationFields)

	user, err := f.auth.Register(ctx, &models.RegisterRequest{Username: "ana", Email: "ana@email.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "customer", user.UserType)
	assert.NotEqual(t, "123456", user.PasswordHash)

	_, err = f.auth.Register(ctx, &models.RegisterRequest{Username: "ana", Email: "b@email.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	_, err = f.auth.Register(ctx, &models.RegisterRequest{Username: "bia", Email: "ANA@email.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	token, logged, err := f.auth.Login(ctx, "ana@email.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = f.auth.Login(ctx, "ana", "bad")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.auth.Login(ctx, "", "123456")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	refreshed, err := f.auth.RefreshToken(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed)
}

func TestCartService_SingleRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, 1, f.burger, 1)
	cart := f.add(t, 1, f.burger, 2)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("74.70")))
	require.NotNil(t, cart.Items[0].Product)

	cart = f.add(t, 1, f.fries, 1)
	assert.Len(t, cart.Items, 2)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("87.60")))

	_, err := f.carts.AddToCart(ctx, 1, &models.AddToCartRequest{ProductID: f.other.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrDifferentRestaurant)

	_, err = f.carts.AddToCart(ctx, 1, &models.AddToCartRequest{ProductID: f.burger.ID, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = f.carts.AddToCart(ctx, 1, &models.AddToCartRequest{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Carts are per user.
	other := f.add(t, 2, f.other, 1)
	assert.Equal(t, f.other.RestaurantID, other.RestaurantID)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, 1, f.burger, 1)
	cart := f.add(t, 1, f.fries, 1)

	assert.ErrorIs(t, f.carts.RemoveItem(ctx, 1, 999), ErrCartItemNotFound)
	require.NoError(t, f.carts.RemoveItem(ctx, 1, cart.Items[0].ID))

	got, err := f.carts.GetCart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("12.90")))

	require.NoError(t, f.carts.RemoveItem(ctx, 1, got.Items[0].ID))
	got, err = f.carts.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	f.add(t, 1, f.burger, 1)
	require.NoError(t, f.carts.Clear(ctx, 1))
	got, err = f.carts.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orders.CreateOrder(ctx, 1, &models.CreateOrderRequest{DeliveryAddress: address(), PaymentMethod: models.PaymentPix})
	assert.ErrorIs(t, err, ErrEmptyCart)

	f.add(t, 1, f.fries, 1)
	_, err = f.orders.CreateOrder(ctx, 1, &models.CreateOrderRequest{DeliveryAddress: address(), PaymentMethod: models.PaymentPix})
	assert.ErrorIs(t, err, ErrBelowMinimumOrder)
	cart, err := f.carts.GetCart(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, cart, "a rejected order keeps the cart")

	f.add(t, 1, f.burger, 1)
	order, err := f.orders.CreateOrder(ctx, 1, &models.CreateOrderRequest{DeliveryAddress: address(), PaymentMethod: models.PaymentPix})
	require.NoError(t, err)
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("37.80")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("43.70")))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)

	cart, err = f.carts.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, cart)

	list, err := f.orders.ListOrders(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	_, err = f.orders.GetOrder(ctx, 2, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	assert.Equal(t, []string{"order_events"}, f.publisher.topics)
}

func TestOrderService_OfflineRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.add(t, 1, f.burger, 2)
	f.restaurant.IsOnline = false
	require.NoError(t, f.restaurants.Update(ctx, f.restaurant))

	_, err := f.orders.CreateOrder(ctx, 1, &models.CreateOrderRequest{DeliveryAddress: address(), PaymentMethod: models.PaymentPix})
	assert.ErrorIs(t, err, ErrRestaurantOffline)
}

func TestOrderService_StatusAndReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.publisher.err = errors.New("broker down")

	f.add(t, 1, f.burger, 2)
	order, err := f.orders.CreateOrder(ctx, 1, &models.CreateOrderRequest{DeliveryAddress: address(), PaymentMethod: models.PaymentCash})
	require.NoError(t, err, "publish failures do not fail the order")

	customer := &models.User{ID: 1, UserType: "customer"}
	stranger := &models.User{ID: 2, UserType: "customer"}
	admin := &models.User{ID: 3, UserType: "admin"}

	_, err = f.orders.UpdateStatus(ctx, admin, order.ID, "lost")
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
	_, err = f.orders.UpdateStatus(ctx, stranger, order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = f.orders.UpdateStatus(ctx, customer, order.ID, models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrStatusNotAllowed)

	_, err = f.orders.ReviewOrder(ctx, 1, order.ID, &models.ReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, ErrOrderNotDelivered)

	confirmed, err := f.orders.UpdateStatus(ctx, admin, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.NotNil(t, confirmed.ConfirmedAt)

	delivered, err := f.orders.UpdateStatus(ctx, admin, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, "paid", delivered.PaymentStatus)

	_, err = f.orders.ReviewOrder(ctx, 1, order.ID, &models.ReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	review, err := f.orders.ReviewOrder(ctx, 1, order.ID, &models.ReviewRequest{Rating: 3})
	require.NoError(t, err)
	assert.Equal(t, f.restaurant.ID, review.RestaurantID)

	_, err = f.orders.ReviewOrder(ctx, 1, order.ID, &models.ReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, ErrOrderAlreadyRated)

	restaurant, err := f.restaurants.GetByID(ctx, f.restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, restaurant.TotalReviews)
	assert.Equal(t, 3.8, restaurant.Rating)
}
