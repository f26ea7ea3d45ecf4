package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wbonfim/DeliveryApp/internal/models"
	"github.com/wbonfim/DeliveryApp/internal/services"
)

// ErrorResponse is the error body of every endpoint. Clients display
// Message.
type ErrorResponse = models.ErrorResponse

var statusByError = []struct {
	err    error
	status int
}{
	{services.ErrMissingRegistrationFields, http.StatusBadRequest},
	{services.ErrUsernameTaken, http.StatusBadRequest},
	{services.ErrEmailTaken, http.StatusBadRequest},
	{services.ErrMissingCredentials, http.StatusBadRequest},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrAccountDeactivated, http.StatusUnauthorized},
	{services.ErrUserNotFound, http.StatusUnauthorized},
	{services.ErrRestaurantNotFound, http.StatusNotFound},
	{services.ErrProductNotFound, http.StatusNotFound},
	{services.ErrProductUnavailable, http.StatusBadRequest},
	{services.ErrInvalidQuantity, http.StatusBadRequest},
	{services.ErrDifferentRestaurant, http.StatusBadRequest},
	{services.ErrCartItemNotFound, http.StatusNotFound},
	{services.ErrEmptyCart, http.StatusBadRequest},
	{services.ErrRestaurantOffline, http.StatusBadRequest},
	{services.ErrBelowMinimumOrder, http.StatusBadRequest},
	{services.ErrOrderNotFound, http.StatusNotFound},
	{services.ErrStatusNotAllowed, http.StatusForbidden},
	{services.ErrOrderNotDelivered, http.StatusBadRequest},
	{services.ErrOrderAlreadyRated, http.StatusBadRequest},
	{services.ErrInvalidRating, http.StatusBadRequest},
	{services.ErrInvalidOrderStatus, http.StatusBadRequest},
}

func statusFor(err error) int {
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
	})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request body",
		Message: err.Error(),
	})
}
