package models

import "time"

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusRank orders the happy path; cancelled sits outside it
var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusShipped:   2,
	OrderStatusDelivered: 3,
}

// IsValid checks if the status is a known status
func (s OrderStatus) IsValid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal
// transition: forward-only along pending, confirmed, shipped, delivered,
// with cancellation allowed from any state that is not yet delivered.
// Cancelled and delivered are absorbing.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	if s == OrderStatusCancelled || s == OrderStatusDelivered {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	from, okFrom := statusRank[s]
	to, okTo := statusRank[next]
	return okFrom && okTo && to > from
}

// PaymentStatus represents payment status, an axis independent from
// the order status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// OrderItem represents a line item snapshotted into an order
type OrderItem struct {
	ID            string          `json:"id" db:"id"`
	OrderID       string          `json:"orderId" db:"order_id"`
	ProductID     string          `json:"productId" db:"product_id"`
	Name          string          `json:"name" db:"name"`
	Price         float64         `json:"price" db:"price"`
	OriginalPrice float64         `json:"originalPrice" db:"original_price"`
	Image         string          `json:"image" db:"image"`
	Category      ProductCategory `json:"category" db:"category"`
	Quantity      int             `json:"quantity" db:"quantity"`
	FreeDelivery  bool            `json:"freeDelivery" db:"free_delivery"`
}

// Subtotal returns the line total for the item
func (oi *OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}

// Order represents a placed order
type Order struct {
	ID             string        `json:"id" db:"id"`
	Token          string        `json:"token" db:"token"`
	CustomerName   string        `json:"customerName" db:"customer_name"`
	Email          string        `json:"email" db:"email"`
	Phone          string        `json:"phone" db:"phone"`
	District       string        `json:"district" db:"district"`
	Address        string        `json:"address" db:"address"`
	DeliveryCharge float64       `json:"deliveryCharge" db:"delivery_charge"`
	Total          float64       `json:"total" db:"total"`
	Status         OrderStatus   `json:"status" db:"status"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" db:"payment_status"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// Subtotal returns the sum of line totals
func (o *Order) Subtotal() float64 {
	subtotal := 0.0
	for _, item := range o.Items {
		subtotal += item.Subtotal()
	}
	return subtotal
}

// OrderCreation represents checkout data
type OrderCreation struct {
	CustomerName string     `json:"customerName" validate:"required,min=2,max=100"`
	Email        string     `json:"email" validate:"required,email,max=100"`
	Phone        string     `json:"phone" validate:"required,phone"`
	District     string     `json:"district" validate:"required,max=100"`
	Address      string     `json:"address" validate:"required,max=500"`
	Items        []CartItem `json:"items" validate:"required,min=1"`
}

// OrderUpdate represents the fields an admin may change on an order.
// The total is never accepted from the caller; it is recomputed from the
// stored item subtotal whenever the delivery charge changes.
type OrderUpdate struct {
	Status         *OrderStatus   `json:"status,omitempty"`
	PaymentStatus  *PaymentStatus `json:"paymentStatus,omitempty"`
	DeliveryCharge *float64       `json:"deliveryCharge,omitempty"`
}
