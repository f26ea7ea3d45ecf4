package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/services"
)

type RestaurantHandler struct {
	restaurantService RestaurantServiceInterface
}

func NewRestaurantHandler(restaurantService RestaurantServiceInterface) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
	}
}

// RegisterRoutes registers the public restaurant routes
func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	restaurants := router.Group("/restaurants")
	{
		restaurants.GET("", h.ListRestaurants)
		restaurants.GET("/categories", h.ListCategories)
		restaurants.GET("/:id", h.GetRestaurant)
	}
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Param search query string false "Name or description contains"
// @Param category_id query int false "Category"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} models.RestaurantsResponse
// @Router /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	categoryID, _ := strconv.ParseInt(c.Query("category_id"), 10, 64)

	resp, err := h.restaurantService.List(c.Request.Context(), services.RestaurantListParams{
		Search:     c.Query("search"),
		CategoryID: categoryID,
		Page:       queryInt(c, "page"),
		PerPage:    queryInt(c, "per_page"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Restaurant detail with its products
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} models.RestaurantResponse
// @Failure 404 {object} ErrorResponse
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, services.ErrRestaurantNotFound)
		return
	}

	resp, err := h.restaurantService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List categories
// @Tags restaurants
// @Produce json
// @Success 200 {object} models.CategoriesResponse
// @Router /restaurants/categories [get]
func (h *RestaurantHandler) ListCategories(c *gin.Context) {
	categories, err := h.restaurantService.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.CategoriesResponse{Categories: categories})
}
