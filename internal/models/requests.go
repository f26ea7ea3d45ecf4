package models

// Request and response envelopes of the delivery API. Field names follow
// the wire format exactly.

type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	FullName string `json:"full_name,omitempty"`
	UserType string `json:"user_type,omitempty"`
}

type TokenResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
}

type AuthResponse struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user"`
}

type UserResponse struct {
	User *User `json:"user"`
}

type RestaurantsResponse struct {
	Restaurants []Restaurant `json:"restaurants"`
	Total       int          `json:"total,omitempty"`
	Pages       int          `json:"pages,omitempty"`
	CurrentPage int          `json:"current_page,omitempty"`
}

type RestaurantResponse struct {
	Restaurant *Restaurant `json:"restaurant"`
	Products   []Product   `json:"products,omitempty"`
}

type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

type AddToCartRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

type CartResponse struct {
	Message string `json:"message,omitempty"`
	Cart    *Cart  `json:"cart"`
}

// MessageResponse is the body of endpoints that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

type CreateOrderRequest struct {
	DeliveryAddress Address `json:"delivery_address"`
	PaymentMethod   string  `json:"payment_method" binding:"required,oneof=credit_card debit_card pix cash"`
	Notes           string  `json:"notes,omitempty"`
}

type OrderResponse struct {
	Message string `json:"message,omitempty"`
	Order   *Order `json:"order"`
}

type OrdersResponse struct {
	Orders      []Order `json:"orders"`
	Total       int     `json:"total,omitempty"`
	Pages       int     `json:"pages,omitempty"`
	CurrentPage int     `json:"current_page,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed preparing ready delivering delivered cancelled"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

type ReviewResponse struct {
	Message string  `json:"message,omitempty"`
	Review  *Review `json:"review"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

// ErrorResponse is the error envelope; clients read Message.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}
