package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wbonfim/DeliveryApp/internal/middleware"
	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/services"
)

type OrderHandler struct {
	orderService OrderServiceInterface
}

func NewOrderHandler(orderService OrderServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers the routes for orders and reviews
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	orders := router.Group("/orders", authMiddleware.AuthRequired())
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.POST("/:id/review", h.CreateReview)
	}
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, services.ErrOrderNotFound)
		return 0, false
	}
	return id, true
}

// @Summary Place an order from the cart
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "Delivery and payment"
// @Success 201 {object} models.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OrderResponse{Message: "Order created successfully", Order: order})
}

// @Summary List the user's orders, newest first
// @Tags orders
// @Produce json
// @Success 200 {object} models.OrdersResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	resp, err := h.orderService.ListOrders(c.Request.Context(), middleware.GetUserID(c), queryInt(c, "page"), queryInt(c, "per_page"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Order detail
// @Tags orders
// @Produce json
// @Success 200 {object} models.OrderResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{Order: order})
}

// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param body body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), middleware.CurrentUser(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OrderResponse{Message: "Order status updated", Order: order})
}

// @Summary Review a delivered order
// @Tags orders
// @Accept json
// @Produce json
// @Param review body models.ReviewRequest true "Rating 1 to 5"
// @Success 201 {object} models.ReviewResponse
// @Failure 400 {object} ErrorResponse
// @Router /orders/{id}/review [post]
func (h *OrderHandler) CreateReview(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.orderService.ReviewOrder(c.Request.Context(), middleware.GetUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.ReviewResponse{Message: "Review created successfully", Review: review})
}
