package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// The API speaks plain JSON numbers for money.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// User as returned by the auth endpoints. Replaced wholesale on every
// login/register/me response.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	UserType  string     `json:"user_type,omitempty"` // customer, restaurant, admin
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`

	PasswordHash string `json:"-"`
}

// Category is read-only reference data for restaurant filtering
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	IsActive    bool   `json:"is_active"`
}

type Address struct {
	Street       string   `json:"street" binding:"required"`
	Number       string   `json:"number" binding:"required"`
	Complement   string   `json:"complement,omitempty"`
	Neighborhood string   `json:"neighborhood" binding:"required"`
	City         string   `json:"city" binding:"required"`
	State        string   `json:"state" binding:"required"`
	ZipCode      string   `json:"zip_code" binding:"required"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// Restaurant listing entry. DeliveryTime is in minutes.
type Restaurant struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url,omitempty"`
	CoverImageURL string          `json:"cover_image_url,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Address       *Address        `json:"address,omitempty"`
	IsOnline      bool            `json:"is_online"`
	IsActive      bool            `json:"is_active"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	MinimumOrder  decimal.Decimal `json:"minimum_order"`
	DeliveryTime  int             `json:"delivery_time"`
	Rating        float64         `json:"rating"`
	TotalReviews  int             `json:"total_reviews"`
	CategoryID    *int64          `json:"category_id,omitempty"`
	Category      *Category       `json:"category,omitempty"`
}

type Product struct {
	ID              int64           `json:"id"`
	RestaurantID    int64           `json:"restaurant_id"`
	CategoryID      *int64          `json:"category_id,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"image_url,omitempty"`
	IsAvailable     bool            `json:"is_available"`
	IsActive        bool            `json:"is_active"`
	PreparationTime int             `json:"preparation_time"`
}

// Cart is server-authoritative; the client only ever replaces it wholesale.
type Cart struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	RestaurantID int64           `json:"restaurant_id"`
	Total        decimal.Decimal `json:"total"`
	Items        []CartItem      `json:"items"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

type CartItem struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Notes      string          `json:"notes"`
	Product    *Product        `json:"product,omitempty"`
}

// ItemCount is the displayed badge count: sum of quantities, 0 for a nil cart.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Order statuses accepted by PUT /orders/{id}/status
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusPreparing  = "preparing"
	OrderStatusReady      = "ready"
	OrderStatusDelivering = "delivering"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment methods accepted on order creation
const (
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentPix        = "pix"
	PaymentCash       = "cash"
)

type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          int64           `json:"user_id"`
	RestaurantID    int64           `json:"restaurant_id"`
	Status          string          `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Total           decimal.Decimal `json:"total"`
	DeliveryAddress Address         `json:"delivery_address"`
	Notes           string          `json:"notes,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentStatus   string          `json:"payment_status"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	ConfirmedAt     *time.Time      `json:"confirmed_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	Items           []OrderItem     `json:"items"`
}

type OrderItem struct {
	ID         int64           `json:"id"`
	ProductID  int64           `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Notes      string          `json:"notes,omitempty"`
	Product    *Product        `json:"product,omitempty"`
}

// Review rating is 1 to 5
type Review struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	RestaurantID int64      `json:"restaurant_id"`
	OrderID      *int64     `json:"order_id,omitempty"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
