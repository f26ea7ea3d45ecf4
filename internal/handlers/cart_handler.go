package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wbonfim/DeliveryApp/internal/middleware"
	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/services"
)

type CartHandler struct {
	cartService CartServiceInterface
}

func NewCartHandler(cartService CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// RegisterRoutes registers the cart routes under /orders/cart
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup, authMiddleware *middleware.AuthMiddleware) {
	// All cart routes require authentication
	cart := router.Group("/orders/cart", authMiddleware.AuthRequired())
	{
		cart.GET("", h.GetCart)
		cart.POST("/add", h.AddToCart)
		cart.DELETE("/remove/:item_id", h.RemoveFromCart)
		cart.DELETE("/clear", h.ClearCart)
	}
}

// GetCart godoc
// @Summary Get user's cart
// @Tags cart
// @Produce json
// @Success 200 {object} models.CartResponse
// @Failure 401 {object} ErrorResponse
// @Router /orders/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CartResponse{Cart: cart})
}

// AddToCart godoc
// @Summary Add item to cart
// @Description Same product merges into the existing line
// @Tags cart
// @Accept json
// @Produce json
// @Param item body models.AddToCartRequest true "Cart item data"
// @Success 200 {object} models.CartResponse
// @Failure 400 {object} ErrorResponse
// @Router /orders/cart/add [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CartResponse{Message: "Item added to cart", Cart: cart})
}

// RemoveFromCart godoc
// @Summary Remove item from cart
// @Tags cart
// @Produce json
// @Param item_id path int true "Cart item ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/cart/remove/{item_id} [delete]
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		respondError(c, services.ErrCartItemNotFound)
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), middleware.GetUserID(c), itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Item removed from cart"})
}

// ClearCart godoc
// @Summary Clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /orders/cart/clear [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Cart cleared"})
}
