package upstream

import (
	"time"

	"github.com/chickorder/web/pkg/enums"
)

// User is the authenticated identity returned by /auth/me.
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"is_admin"`
}

// Product is a catalogue entry. The web app treats it as an immutable
// reference value fetched at checkout start.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	IsAvailable bool    `json:"is_available"`
	Category    string  `json:"category,omitempty"`
}

// OrderItem is one line of a created order, priced at creation time.
type OrderItem struct {
	ID            int     `json:"id"`
	ProductID     int     `json:"product_id"`
	ProductName   string  `json:"product_name,omitempty"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Customization string  `json:"customization,omitempty"`
	Subtotal      float64 `json:"subtotal"`
}

// Order is the order service's record. The web app only reads and re-fetches
// it; total_amount is fixed at creation and never recomputed here.
type Order struct {
	ID               int                 `json:"id"`
	OrderNumber      string              `json:"order_number"`
	CustomerName     string              `json:"customer_name"`
	CustomerPhone    string              `json:"customer_phone"`
	CustomerEmail    string              `json:"customer_email,omitempty"`
	Status           enums.OrderStatus   `json:"status"`
	TotalAmount      float64             `json:"total_amount"`
	PaymentStatus    enums.PaymentStatus `json:"payment_status,omitempty"`
	PaymentMethod    enums.PaymentMethod `json:"payment_method,omitempty"`
	PaymentReference string              `json:"payment_reference,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	Items            []OrderItem         `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        *time.Time          `json:"updated_at,omitempty"`
	CompletedAt      *time.Time          `json:"completed_at,omitempty"`
}

// RegisterRequest creates a customer account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// LoginRequest authenticates by email or phone.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// TokenResponse carries the bearer credential issued on login/register.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// CreateOrderItem is one cart line in an order submission.
type CreateOrderItem struct {
	ProductID     int    `json:"product_id"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	Items         []CreateOrderItem   `json:"items"`
	PaymentMethod enums.PaymentMethod `json:"payment_method,omitempty"`
	Notes         string              `json:"notes,omitempty"`
}

// PaymentInitiation is the order service's response to an initiate-payment
// call. A non-empty PaymentURL means a gateway-hosted flow.
type PaymentInitiation struct {
	PaymentReference string `json:"payment_reference,omitempty"`
	PaymentURL       string `json:"payment_url,omitempty"`
	Status           string `json:"status,omitempty"`
	Message          string `json:"message,omitempty"`
}

// DashboardStats are the admin dashboard counters.
type DashboardStats struct {
	TotalOrders              int      `json:"total_orders"`
	PendingOrders            int      `json:"pending_orders"`
	CompletedOrders          int      `json:"completed_orders"`
	TotalRevenue             float64  `json:"total_revenue"`
	TodayRevenue             float64  `json:"today_revenue"`
	AverageWaitTime          *float64 `json:"average_wait_time,omitempty"`
	DigitalPaymentPercentage float64  `json:"digital_payment_percentage"`
}

// TodaySales summarises the day's sales for the admin view.
type TodaySales struct {
	TotalChickensSold int            `json:"total_chickens_sold"`
	TotalRevenue      float64        `json:"total_revenue"`
	Breakdown         map[string]int `json:"breakdown"`
}
