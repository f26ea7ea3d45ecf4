package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/repositories"
	"github.com/wbonfim/DeliveryApp/pkg/messaging"
	"github.com/wbonfim/DeliveryApp/pkg/metrics"
)

// EventPublisher delivers order events; messaging.KafkaProducer and
// messaging.NopPublisher satisfy it.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

var validStatuses = map[string]bool{
	models.OrderStatusPending:    true,
	models.OrderStatusConfirmed:  true,
	models.OrderStatusPreparing:  true,
	models.OrderStatusReady:      true,
	models.OrderStatusDelivering: true,
	models.OrderStatusDelivered:  true,
	models.OrderStatusCancelled:  true,
}

type OrderService struct {
	orderRepo      repositories.OrderRepository
	restaurantRepo repositories.RestaurantRepository
	reviewRepo     repositories.ReviewRepository
	carts          *CartService
	publisher      EventPublisher
	log            zerolog.Logger

	// ratingMu serializes restaurant rating updates.
	ratingMu sync.Mutex
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	restaurantRepo repositories.RestaurantRepository,
	reviewRepo repositories.ReviewRepository,
	carts *CartService,
	publisher EventPublisher,
	log zerolog.Logger,
) *OrderService {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &OrderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		reviewRepo:     reviewRepo,
		carts:          carts,
		publisher:      publisher,
		log:            log,
	}
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CreateOrder turns the user's cart into a pending order and empties the
// cart.
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, req *models.CreateOrderRequest) (*models.Order, error) {
	cart, err := s.carts.take(ctx, userID)
	if err != nil {
		return nil, err
	}

	order, err := s.buildOrder(ctx, userID, cart, req)
	if err != nil {
		if rerr := s.carts.restore(ctx, cart); rerr != nil {
			s.log.Error().Err(rerr).Int64("user_id", userID).Msg("failed to restore cart")
		}
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		if rerr := s.carts.restore(ctx, cart); rerr != nil {
			s.log.Error().Err(rerr).Int64("user_id", userID).Msg("failed to restore cart")
		}
		return nil, err
	}

	metrics.MockOrdersCreatedTotal.WithLabelValues(order.PaymentMethod).Inc()
	s.publish(ctx, messaging.EventOrderCreated, order, map[string]any{
		"total":         order.Total,
		"restaurant_id": order.RestaurantID,
	})
	return order, nil
}

func (s *OrderService) buildOrder(ctx context.Context, userID int64, cart *models.Cart, req *models.CreateOrderRequest) (*models.Order, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, cart.RestaurantID)
	if err != nil || !restaurant.IsActive {
		return nil, ErrRestaurantNotFound
	}
	if !restaurant.IsOnline {
		return nil, ErrRestaurantOffline
	}

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		total := ci.UnitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity)))
		subtotal = subtotal.Add(total)
		items = append(items, models.OrderItem{
			ProductID:  ci.ProductID,
			Quantity:   ci.Quantity,
			UnitPrice:  ci.UnitPrice,
			TotalPrice: total,
			Notes:      ci.Notes,
		})
	}
	if subtotal.LessThan(restaurant.MinimumOrder) {
		return nil, fmt.Errorf("%w (%s)", ErrBelowMinimumOrder, restaurant.MinimumOrder.StringFixed(2))
	}

	return &models.Order{
		OrderNumber:     newOrderNumber(),
		UserID:          userID,
		RestaurantID:    restaurant.ID,
		Status:          models.OrderStatusPending,
		Subtotal:        subtotal,
		DeliveryFee:     restaurant.DeliveryFee,
		Total:           subtotal.Add(restaurant.DeliveryFee),
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   "pending",
		Items:           items,
	}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID int64, page, perPage int) (*models.OrdersResponse, error) {
	page, perPage = normalizePage(page, perPage)
	orders, total, err := s.orderRepo.GetByUserID(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	return &models.OrdersResponse{
		Orders:      orders,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
	}, nil
}

// GetOrder returns an order owned by the user. Other users' orders are
// reported as missing.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus moves an order to status. Admin and restaurant accounts may
// set any status; the customer who placed the order may only cancel it
// while it is still pending.
func (s *OrderService) UpdateStatus(ctx context.Context, user *models.User, orderID int64, status string) (*models.Order, error) {
	if !validStatuses[status] {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	switch user.UserType {
	case "admin", "restaurant":
	default:
		if order.UserID != user.ID {
			return nil, ErrOrderNotFound
		}
		if status != models.OrderStatusCancelled || order.Status != models.OrderStatusPending {
			return nil, ErrStatusNotAllowed
		}
	}

	order.Status = status
	stamp := time.Now().UTC()
	switch status {
	case models.OrderStatusConfirmed:
		order.ConfirmedAt = &stamp
	case models.OrderStatusDelivered:
		order.DeliveredAt = &stamp
		if order.PaymentMethod == models.PaymentCash {
			order.PaymentStatus = "paid"
		}
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, messaging.EventOrderStatusChanged, order, nil)
	return order, nil
}

// ReviewOrder records the single review of a delivered order and folds the
// rating into the restaurant average.
func (s *OrderService) ReviewOrder(ctx context.Context, userID, orderID int64, req *models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusDelivered {
		return nil, ErrOrderNotDelivered
	}

	s.ratingMu.Lock()
	defer s.ratingMu.Unlock()

	if _, err := s.reviewRepo.GetByOrderID(ctx, orderID); err == nil {
		return nil, ErrOrderAlreadyRated
	}

	review := &models.Review{
		UserID:       userID,
		RestaurantID: order.RestaurantID,
		OrderID:      &order.ID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if restaurant, err := s.restaurantRepo.GetByID(ctx, order.RestaurantID); err == nil {
		sum := restaurant.Rating*float64(restaurant.TotalReviews) + float64(req.Rating)
		restaurant.TotalReviews++
		restaurant.Rating = math.Round(sum/float64(restaurant.TotalReviews)*10) / 10
		if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
			s.log.Error().Err(err).Int64("restaurant_id", restaurant.ID).Msg("failed to update rating")
		}
	}

	s.publish(ctx, messaging.EventOrderReviewed, order, map[string]any{"rating": req.Rating})
	return review, nil
}

// publish is best effort; a broker outage never fails the request.
func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order, data any) {
	event := messaging.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
		Data:        data,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, messaging.TopicOrderEvents, order.OrderNumber, event); err != nil {
		s.log.Warn().Err(err).Str("event", eventType).Str("order_number", order.OrderNumber).Msg("failed to publish order event")
		return
	}
	s.log.Info().Str("event", eventType).Str("order_number", order.OrderNumber).Msg("order event published")
}
