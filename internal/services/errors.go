package services

import "errors"

// Errors returned by the reference API services. Handlers map them to
// HTTP statuses; the messages are what clients display.
var (
	ErrMissingRegistrationFields = errors.New("Username, email and password are required")
	ErrUsernameTaken             = errors.New("Username already exists")
	ErrEmailTaken                = errors.New("Email already exists")
	ErrMissingCredentials        = errors.New("Username and password are required")
	ErrInvalidCredentials        = errors.New("Invalid credentials")
	ErrAccountDeactivated        = errors.New("Account is deactivated")
	ErrUserNotFound              = errors.New("User not found")

	ErrRestaurantNotFound = errors.New("Restaurant not found")

	ErrProductNotFound     = errors.New("Product not found")
	ErrProductUnavailable  = errors.New("Product is not available")
	ErrInvalidQuantity     = errors.New("Quantity must be at least 1")
	ErrDifferentRestaurant = errors.New("Cannot add products from different restaurants to the same cart")
	ErrCartItemNotFound    = errors.New("Item not found in cart")

	ErrEmptyCart          = errors.New("Cart is empty")
	ErrRestaurantOffline  = errors.New("Restaurant is not accepting orders")
	ErrBelowMinimumOrder  = errors.New("Order is below the restaurant minimum")
	ErrOrderNotFound      = errors.New("Order not found")
	ErrStatusNotAllowed   = errors.New("You are not allowed to change this order status")
	ErrOrderNotDelivered  = errors.New("Only delivered orders can be reviewed")
	ErrOrderAlreadyRated  = errors.New("Order already reviewed")
	ErrInvalidRating      = errors.New("Rating must be between 1 and 5")
	ErrInvalidOrderStatus = errors.New("Invalid order status")
)
