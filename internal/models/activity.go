package models

import "time"

// Activity action codes recorded by the back-office services
const (
	ActivityProductCreated = "product_created"
	ActivityProductUpdated = "product_updated"
	ActivityProductDeleted = "product_deleted"
	ActivityOrderPlaced    = "order_placed"
	ActivityOrderUpdated   = "order_updated"
	ActivityOrderDeleted   = "order_deleted"
	ActivityReviewDeleted  = "review_deleted"
	ActivityImageUploaded  = "image_uploaded"
	ActivityImageDeleted   = "image_deleted"
)

// ActivityLog is an append-only record of back-office actions, listed
// read-only by admins.
type ActivityLog struct {
	ID        string    `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
