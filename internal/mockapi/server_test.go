package mockapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbonfim/DeliveryApp/internal/client"
	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/store"
	"github.com/wbonfim/DeliveryApp/pkg/logger"
	"github.com/wbonfim/DeliveryApp/pkg/messaging"
	"github.com/wbonfim/DeliveryApp/pkg/storage"
)

const (
	burgerPalaceID = 1
	bigBurgerID    = 1
	cocaColaID     = 6
	margheritaID   = 7
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic, _ string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if topic == messaging.TopicOrderEvents {
		p.events = append(p.events, value.(messaging.OrderEvent))
	}
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestServer(t *testing.T, publisher *recordingPublisher) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := Config{JWTSecret: "test-secret", Logger: logger.Nop()}
	if publisher != nil {
		cfg.Publisher = publisher
	}
	router, err := New(context.Background(), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newAPIClient(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	c, err := client.New(context.Background(), client.Config{BaseURL: srv.URL + DefaultPrefix}, storage.NewMemory(), logger.Nop())
	require.NoError(t, err)
	return c
}

func loginAs(t *testing.T, c *client.Client, username string) *models.User {
	t.Helper()
	return loginWith(t, c, username, SeedPassword)
}

func loginWith(t *testing.T, c *client.Client, username, password string) *models.User {
	t.Helper()
	ctx := context.Background()
	resp, err := c.Login(ctx, models.Credentials{Username: username, Password: password})
	require.NoError(t, err)
	require.NoError(t, c.SetCredential(ctx, resp.Token))
	return resp.User
}

func deliveryAddress() models.Address {
	return models.Address{
		Street:       "Rua das Flores",
		Number:       "123",
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "01000-000",
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/health", "/api/health"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)

		var body models.HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, ServiceName, body.Service)
	}
}

func TestRestaurants(t *testing.T) {
	srv := newTestServer(t, nil)
	c := newAPIClient(t, srv)
	ctx := context.Background()

	all, err := c.GetRestaurants(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all.Restaurants, 5)
	assert.Equal(t, 5, all.Total)
	assert.Equal(t, "Burger Palace", all.Restaurants[0].Name)
	assert.Equal(t, "5.9", all.Restaurants[0].DeliveryFee.String())
	require.NotNil(t, all.Restaurants[0].Category)
	assert.Equal(t, "Lanches", all.Restaurants[0].Category.Name)

	search, err := c.GetRestaurants(ctx, url.Values{"search": {"BURGER"}})
	require.NoError(t, err)
	require.Len(t, search.Restaurants, 1)
	assert.Equal(t, "Burger Palace", search.Restaurants[0].Name)

	pizza, err := c.GetRestaurants(ctx, url.Values{"category_id": {"2"}})
	require.NoError(t, err)
	require.Len(t, pizza.Restaurants, 1)
	assert.Equal(t, "Pizzaria Bella Napoli", pizza.Restaurants[0].Name)

	paged, err := c.GetRestaurants(ctx, url.Values{"page": {"2"}, "per_page": {"2"}})
	require.NoError(t, err)
	assert.Len(t, paged.Restaurants, 2)
	assert.Equal(t, 3, paged.Pages)
	assert.Equal(t, 2, paged.CurrentPage)

	detail, err := c.GetRestaurant(ctx, burgerPalaceID)
	require.NoError(t, err)
	assert.Equal(t, "Burger Palace", detail.Restaurant.Name)
	assert.Len(t, detail.Products, 6)

	_, err = c.GetRestaurant(ctx, 999)
	var reqErr *client.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "Restaurant not found", reqErr.Message)

	cats, err := c.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats.Categories, 7)
}

func TestAuth(t *testing.T) {
	srv := newTestServer(t, nil)
	c := newAPIClient(t, srv)
	ctx := context.Background()

	t.Run("login by email", func(t *testing.T) {
		resp, err := c.Login(ctx, models.Credentials{Email: "cliente1@email.com", Password: SeedPassword})
		require.NoError(t, err)
		assert.Equal(t, "Login successful", resp.Message)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "João Silva", resp.User.FullName)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.Login(ctx, models.Credentials{Username: "cliente1", Password: "nope"})
		var reqErr *client.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.True(t, reqErr.Unauthorized())
		assert.Equal(t, "Invalid credentials", reqErr.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := c.Login(ctx, models.Credentials{Username: "cliente1"})
		var reqErr *client.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
		assert.Equal(t, "Username and password are required", reqErr.Message)
	})

	t.Run("register then me", func(t *testing.T) {
		rc := newAPIClient(t, srv)
		resp, err := rc.Register(ctx, models.RegisterRequest{
			Username: "novo", Email: "novo@email.com", Password: "secret1", FullName: "Novo Cliente",
		})
		require.NoError(t, err)
		assert.Equal(t, "User created successfully", resp.Message)
		assert.Equal(t, "customer", resp.User.UserType)

		_, err = rc.Register(ctx, models.RegisterRequest{Username: "novo", Email: "x@email.com", Password: "secret1"})
		require.Error(t, err)
		assert.Equal(t, "Username already exists", err.Error())

		user := loginWith(t, rc, "novo", "secret1")
		assert.Equal(t, resp.User.ID, user.ID)
		me, err := rc.GetCurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, user.ID, me.User.ID)
		assert.Equal(t, "novo@email.com", me.User.Email)

		_, err = newAPIClient(t, srv).Login(ctx, models.Credentials{Username: "novo", Password: SeedPassword})
		require.Error(t, err)
		assert.Equal(t, "Invalid credentials", err.Error())
	})

	t.Run("me without token", func(t *testing.T) {
		anon := newAPIClient(t, srv)
		_, err := anon.GetCurrentUser(ctx)
		var reqErr *client.RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.True(t, reqErr.Unauthorized())
		assert.Equal(t, "Token is missing", reqErr.Message)
	})

	t.Run("me with garbage token", func(t *testing.T) {
		bad := newAPIClient(t, srv)
		require.NoError(t, bad.SetCredential(ctx, "garbage"))
		_, err := bad.GetCurrentUser(ctx)
		require.Error(t, err)
		assert.Equal(t, "Token is invalid", err.Error())
	})

	t.Run("refresh", func(t *testing.T) {
		rc := newAPIClient(t, srv)
		loginAs(t, rc, "cliente2")
		var out models.TokenResponse
		require.NoError(t, rc.Request(ctx, http.MethodPost, "/auth/refresh", nil, &out))
		assert.NotEmpty(t, out.Token)
	})
}

func TestCartRules(t *testing.T) {
	srv := newTestServer(t, nil)
	c := newAPIClient(t, srv)
	ctx := context.Background()
	loginAs(t, c, "cliente1")

	empty, err := c.GetCart(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty.Cart)

	first, err := c.AddToCart(ctx, bigBurgerID, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Item added to cart", first.Message)

	merged, err := c.AddToCart(ctx, bigBurgerID, 2, "sem cebola")
	require.NoError(t, err)
	require.Len(t, merged.Cart.Items, 1)
	assert.Equal(t, 3, merged.Cart.Items[0].Quantity)
	assert.Equal(t, "74.7", merged.Cart.Total.String())
	assert.Equal(t, "sem cebola", merged.Cart.Items[0].Notes)

	_, err = c.AddToCart(ctx, margheritaID, 1, "")
	var reqErr *client.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
	assert.Equal(t, "Cannot add products from different restaurants to the same cart", reqErr.Message)

	_, err = c.AddToCart(ctx, 999, 1, "")
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)

	_, err = c.RemoveFromCart(ctx, 999)
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Equal(t, "Item not found in cart", reqErr.Message)

	cleared, err := c.ClearCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cart cleared", cleared.Message)

	// An emptied cart accepts another restaurant.
	_, err = c.AddToCart(ctx, margheritaID, 1, "")
	require.NoError(t, err)
}

func TestOrders(t *testing.T) {
	publisher := &recordingPublisher{}
	srv := newTestServer(t, publisher)
	ctx := context.Background()

	customer := newAPIClient(t, srv)
	loginAs(t, customer, "cliente1")

	_, err := customer.CreateOrder(ctx, models.CreateOrderRequest{DeliveryAddress: deliveryAddress(), PaymentMethod: models.PaymentPix})
	require.Error(t, err)
	assert.Equal(t, "Cart is empty", err.Error())

	_, err = customer.AddToCart(ctx, cocaColaID, 1, "")
	require.NoError(t, err)
	_, err = customer.CreateOrder(ctx, models.CreateOrderRequest{DeliveryAddress: deliveryAddress(), PaymentMethod: models.PaymentPix})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Order is below the restaurant minimum"))

	// A rejected order leaves the cart intact.
	cart, err := customer.GetCart(ctx)
	require.NoError(t, err)
	require.NotNil(t, cart.Cart)

	_, err = customer.CreateOrder(ctx, models.CreateOrderRequest{DeliveryAddress: deliveryAddress(), PaymentMethod: "bitcoin"})
	var reqErr *client.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)

	_, err = customer.AddToCart(ctx, bigBurgerID, 1, "")
	require.NoError(t, err)
	created, err := customer.CreateOrder(ctx, models.CreateOrderRequest{
		DeliveryAddress: deliveryAddress(),
		PaymentMethod:   models.PaymentCash,
		Notes:           "portão azul",
	})
	require.NoError(t, err)
	order := created.Order
	assert.Equal(t, "Order created successfully", created.Message)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.Equal(t, "30.8", order.Subtotal.String())
	assert.Equal(t, "5.9", order.DeliveryFee.String())
	assert.Equal(t, "36.7", order.Total.String())
	assert.Len(t, order.Items, 2)

	after, err := customer.GetCart(ctx)
	require.NoError(t, err)
	assert.Nil(t, after.Cart)

	list, err := customer.GetOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, order.ID, list.Orders[0].ID)

	other := newAPIClient(t, srv)
	loginAs(t, other, "cliente2")
	_, err = other.GetOrder(ctx, order.ID)
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)

	_, err = customer.CreateReview(ctx, order.ID, models.ReviewRequest{Rating: 5})
	require.Error(t, err)
	assert.Equal(t, "Only delivered orders can be reviewed", err.Error())

	_, err = customer.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)

	admin := newAPIClient(t, srv)
	loginAs(t, admin, "admin")
	delivered, err := admin.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, delivered.Order.Status)
	assert.Equal(t, "paid", delivered.Order.PaymentStatus)
	assert.NotNil(t, delivered.Order.DeliveredAt)

	review, err := customer.CreateReview(ctx, order.ID, models.ReviewRequest{Rating: 5, Comment: "ótimo"})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Review.Rating)
	assert.Equal(t, int64(burgerPalaceID), review.Review.RestaurantID)

	_, err = customer.CreateReview(ctx, order.ID, models.ReviewRequest{Rating: 4})
	require.Error(t, err)
	assert.Equal(t, "Order already reviewed", err.Error())

	detail, err := customer.GetRestaurant(ctx, burgerPalaceID)
	require.NoError(t, err)
	assert.Equal(t, 151, detail.Restaurant.TotalReviews)

	assert.Equal(t, []string{
		messaging.EventOrderCreated,
		messaging.EventOrderStatusChanged,
		messaging.EventOrderReviewed,
	}, publisher.types())
}

func TestCustomerCancelsPendingOrder(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := context.Background()
	c := newAPIClient(t, srv)
	loginAs(t, c, "cliente2")

	_, err := c.AddToCart(ctx, bigBurgerID, 2, "")
	require.NoError(t, err)
	created, err := c.CreateOrder(ctx, models.CreateOrderRequest{DeliveryAddress: deliveryAddress(), PaymentMethod: models.PaymentCreditCard})
	require.NoError(t, err)

	cancelled, err := c.UpdateOrderStatus(ctx, created.Order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Order.Status)

	_, err = c.UpdateOrderStatus(ctx, created.Order.ID, models.OrderStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, "You are not allowed to change this order status", err.Error())
}

func TestStoreAgainstServer(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := context.Background()

	tokens := storage.NewMemory()
	c, err := client.New(ctx, client.Config{BaseURL: srv.URL + DefaultPrefix}, tokens, logger.Nop())
	require.NoError(t, err)
	s := store.New(c, logger.Nop())

	s.Bootstrap(ctx)
	state := s.Snapshot()
	assert.False(t, state.IsAuthenticated)
	assert.Len(t, state.Categories, 7)

	restaurants, err := s.LoadRestaurants(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, restaurants, 5)

	_, err = s.Login(ctx, models.Credentials{Username: "cliente1", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", s.Snapshot().Error)

	user, err := s.Login(ctx, models.Credentials{Username: "cliente1", Password: SeedPassword})
	require.NoError(t, err)
	assert.Equal(t, "cliente1", user.Username)
	state = s.Snapshot()
	assert.True(t, state.IsAuthenticated)
	assert.Empty(t, state.Error)
	assert.Nil(t, state.Cart)

	stored, err := tokens.Get(ctx, client.DefaultTokenKey)
	require.NoError(t, err)
	assert.NotEmpty(t, stored)

	cart, err := s.AddToCart(ctx, bigBurgerID, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 2, store.CartItemCount(s.Snapshot()))

	require.NoError(t, s.RemoveFromCart(ctx, cart.Items[0].ID))
	state = s.Snapshot()
	assert.Nil(t, state.Cart)
	assert.False(t, state.Loading)

	_, err = s.AddToCart(ctx, bigBurgerID, 2, "")
	require.NoError(t, err)
	_, err = s.AddToCart(ctx, margheritaID, 1, "")
	require.Error(t, err)
	assert.Equal(t, "Cannot add products from different restaurants to the same cart", s.Snapshot().Error)
	assert.Equal(t, 2, store.CartItemCount(s.Snapshot()))

	order, err := s.CreateOrder(ctx, models.CreateOrderRequest{DeliveryAddress: deliveryAddress(), PaymentMethod: models.PaymentPix})
	require.NoError(t, err)
	assert.Equal(t, "55.7", order.Total.String())
	assert.Nil(t, s.Snapshot().Cart)

	// A second session resumes from the stored credential.
	resumed, err := client.New(ctx, client.Config{BaseURL: srv.URL + DefaultPrefix}, tokens, logger.Nop())
	require.NoError(t, err)
	s2 := store.New(resumed, logger.Nop())
	s2.Bootstrap(ctx)
	require.NotNil(t, s2.Snapshot().User)
	assert.Equal(t, user.ID, s2.Snapshot().User.ID)

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.Snapshot().IsAuthenticated)
	_, err = tokens.Get(ctx, client.DefaultTokenKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
