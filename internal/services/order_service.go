package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"amarthrift-backend/internal/models"
	"amarthrift-backend/internal/utils"
)

// ErrOrderNotFound is returned when no order matches the lookup
var ErrOrderNotFound = errors.New("order not found")

// ErrInvalidTransition is returned when an order status update would
// skip or reverse the fulfilment pipeline
var ErrInvalidTransition = errors.New("invalid status transition")

// tokenRetries bounds the regenerate-on-collision loop; with an
// 8-character token over a 32-symbol alphabet a single retry is already
// vanishingly rare.
const tokenRetries = 5

// FeedPublisher pushes back-office events to connected dashboards
type FeedPublisher interface {
	Publish(eventType string, data interface{})
}

// OrderService handles checkout, tracking and order administration
type OrderService struct {
	db                  *sql.DB
	activity            *ActivityService
	feed                FeedPublisher
	deliveryChargeMetro float64
	deliveryChargeOther float64
}

// NewOrderService creates a new order service. feed may be nil in tests.
func NewOrderService(db *sql.DB, activity *ActivityService, feed FeedPublisher, chargeMetro, chargeOther float64) *OrderService {
	return &OrderService{
		db:                  db,
		activity:            activity,
		feed:                feed,
		deliveryChargeMetro: chargeMetro,
		deliveryChargeOther: chargeOther,
	}
}

// DeliveryCharge returns the flat per-order charge for a district. The
// district table is the single source of the metro distinction; unknown
// districts get the remote rate. Free-delivery items do not change it;
// the charge applies per order.
func (s *OrderService) DeliveryCharge(district string) float64 {
	if d := models.FindDistrict(district); d != nil && d.IsMetro {
		return s.deliveryChargeMetro
	}
	return s.deliveryChargeOther
}

// PlaceOrder validates checkout data, snapshots the items and inserts
// the order and its items in one transaction.
func (s *OrderService) PlaceOrder(creation *models.OrderCreation) (*models.Order, error) {
	if err := utils.ValidateStruct(creation); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	for i, item := range creation.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item %d has invalid quantity", i)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("item %d has invalid price", i)
		}
	}

	deliveryCharge := s.DeliveryCharge(creation.District)
	now := time.Now()

	order := &models.Order{
		ID:             uuid.New().String(),
		CustomerName:   utils.SanitizeString(creation.CustomerName),
		Email:          creation.Email,
		Phone:          utils.FormatPhoneNumber(creation.Phone),
		District:       creation.District,
		Address:        utils.SanitizeString(creation.Address),
		DeliveryCharge: deliveryCharge,
		Status:         models.OrderStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	for _, item := range creation.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:            uuid.New().String(),
			OrderID:       order.ID,
			ProductID:     item.ProductID,
			Name:          item.Name,
			Price:         item.Price,
			OriginalPrice: item.OriginalPrice,
			Image:         item.Image,
			Category:      item.Category,
			Quantity:      item.Quantity,
			FreeDelivery:  item.FreeDelivery,
		})
	}
	order.Total = order.Subtotal() + deliveryCharge

	token, err := s.uniqueToken()
	if err != nil {
		return nil, err
	}
	order.Token = token

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (
			id, token, customer_name, email, phone, district, address,
			delivery_charge, total, status, payment_status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(orderQuery,
		order.ID, order.Token, order.CustomerName, order.Email, order.Phone,
		order.District, order.Address, order.DeliveryCharge, order.Total,
		order.Status, order.PaymentStatus, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (
			id, order_id, product_id, name, price, original_price,
			image, category, quantity, free_delivery
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, item := range order.Items {
		_, err = tx.Exec(itemQuery,
			item.ID, item.OrderID, item.ProductID, item.Name, item.Price,
			item.OriginalPrice, item.Image, item.Category, item.Quantity,
			item.FreeDelivery,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	s.activity.Record(models.ActivityOrderPlaced, fmt.Sprintf("order %s total %.2f (%s)", order.Token, order.Total, order.District))
	if s.feed != nil {
		s.feed.Publish("order_created", order)
	}
	return order, nil
}

// uniqueToken generates a tracking token, regenerating on the off
// chance it collides with an existing order.
func (s *OrderService) uniqueToken() (string, error) {
	for i := 0; i < tokenRetries; i++ {
		token, err := utils.GenerateOrderToken()
		if err != nil {
			return "", fmt.Errorf("failed to generate token: %w", err)
		}

		var exists int
		err = s.db.QueryRow("SELECT COUNT(*) FROM orders WHERE token = ?", token).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("failed to check token: %w", err)
		}
		if exists == 0 {
			return token, nil
		}
	}
	return "", errors.New("failed to generate a unique order token")
}

// TrackOrder looks up an order by tracking token and phone. The token
// is matched case-insensitively and the phone exactly (after
// normalization). Zero matches is a plain not-found; so is more than
// one, since an ambiguous result must never leak another customer's
// order.
func (s *OrderService) TrackOrder(token, phone string) (*models.Order, error) {
	token = utils.NormalizeToken(token)
	phone = utils.FormatPhoneNumber(phone)
	if token == "" || phone == "" {
		return nil, ErrOrderNotFound
	}

	query := `
		SELECT id, token, customer_name, email, phone, district, address,
		       delivery_charge, total, status, payment_status, created_at, updated_at
		FROM orders WHERE UPPER(token) = ? AND phone = ?
	`
	rows, err := s.db.Query(query, token, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to track order: %w", err)
	}
	defer rows.Close()

	var matches []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := scanOrder(rows, order); err != nil {
			return nil, err
		}
		matches = append(matches, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to track order: %w", err)
	}

	if len(matches) != 1 {
		return nil, ErrOrderNotFound
	}

	order := matches[0]
	if err := s.loadItems(order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(orderID string) (*models.Order, error) {
	query := `
		SELECT id, token, customer_name, email, phone, district, address,
		       delivery_charge, total, status, payment_status, created_at, updated_at
		FROM orders WHERE id = ?
	`
	order := &models.Order{}
	err := s.db.QueryRow(query, orderID).Scan(
		&order.ID, &order.Token, &order.CustomerName, &order.Email, &order.Phone,
		&order.District, &order.Address, &order.DeliveryCharge, &order.Total,
		&order.Status, &order.PaymentStatus, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := s.loadItems(order); err != nil {
		return nil, err
	}
	return order, nil
}

// List retrieves orders, newest first, optionally filtered by status.
// Items are not loaded; the admin list view only needs headers.
func (s *OrderService) List(status string, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, token, customer_name, email, phone, district, address,
		       delivery_charge, total, status, payment_status, created_at, updated_at
		FROM orders
	`
	var args []interface{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := scanOrder(rows, order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// Update applies an admin update to an order. Status changes must
// follow the fulfilment pipeline; when the delivery charge changes the
// total is recomputed from the stored item subtotal in the same
// transaction. Callers never supply a total.
func (s *OrderService) Update(orderID string, update *models.OrderUpdate) (*models.Order, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	order := &models.Order{}
	err = tx.QueryRow(`
		SELECT id, token, customer_name, email, phone, district, address,
		       delivery_charge, total, status, payment_status, created_at, updated_at
		FROM orders WHERE id = ?
	`, orderID).Scan(
		&order.ID, &order.Token, &order.CustomerName, &order.Email, &order.Phone,
		&order.District, &order.Address, &order.DeliveryCharge, &order.Total,
		&order.Status, &order.PaymentStatus, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, fmt.Errorf("unknown status: %s", *update.Status)
		}
		if !order.Status.CanTransitionTo(*update.Status) {
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, *update.Status)
		}
		order.Status = *update.Status
	}
	if update.PaymentStatus != nil {
		if !update.PaymentStatus.IsValid() {
			return nil, fmt.Errorf("unknown payment status: %s", *update.PaymentStatus)
		}
		order.PaymentStatus = *update.PaymentStatus
	}
	if update.DeliveryCharge != nil {
		if *update.DeliveryCharge < 0 {
			return nil, errors.New("delivery charge must be non-negative")
		}
		order.DeliveryCharge = *update.DeliveryCharge

		var subtotal float64
		err = tx.QueryRow(
			"SELECT COALESCE(SUM(price * quantity), 0) FROM order_items WHERE order_id = ?",
			orderID,
		).Scan(&subtotal)
		if err != nil {
			return nil, fmt.Errorf("failed to compute subtotal: %w", err)
		}
		order.Total = subtotal + order.DeliveryCharge
	}
	order.UpdatedAt = time.Now()

	_, err = tx.Exec(`
		UPDATE orders SET delivery_charge = ?, total = ?, status = ?,
		       payment_status = ?, updated_at = ?
		WHERE id = ?
	`, order.DeliveryCharge, order.Total, order.Status, order.PaymentStatus,
		order.UpdatedAt, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order update: %w", err)
	}

	if err := s.loadItems(order); err != nil {
		return nil, err
	}

	s.activity.Record(models.ActivityOrderUpdated, fmt.Sprintf("order %s status %s payment %s", order.Token, order.Status, order.PaymentStatus))
	if s.feed != nil {
		s.feed.Publish("order_updated", order)
	}
	return order, nil
}

// Delete removes an order; its items cascade
func (s *OrderService) Delete(orderID string) error {
	result, err := s.db.Exec("DELETE FROM orders WHERE id = ?", orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	s.activity.Record(models.ActivityOrderDeleted, fmt.Sprintf("order %s", orderID))
	return nil
}

// Stats summarizes orders for the admin dashboard
type Stats struct {
	TotalOrders    int            `json:"totalOrders"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
	Revenue        float64        `json:"revenue"`
	ProductCount   int            `json:"productCount"`
}

// Stats returns order counts by status, revenue over delivered orders
// and the catalog size.
func (s *OrderService) Stats() (*Stats, error) {
	stats := &Stats{OrdersByStatus: make(map[string]int)}

	rows, err := s.db.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to query order stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan order stats: %w", err)
		}
		stats.OrdersByStatus[status] = count
		stats.TotalOrders += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order stats: %w", err)
	}

	err = s.db.QueryRow(
		"SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = ?",
		models.OrderStatusDelivered,
	).Scan(&stats.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to compute revenue: %w", err)
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&stats.ProductCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	return stats, nil
}

func (s *OrderService) loadItems(order *models.Order) error {
	query := `
		SELECT id, order_id, product_id, name, price, original_price,
		       image, category, quantity, free_delivery
		FROM order_items WHERE order_id = ?
	`
	rows, err := s.db.Query(query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price,
			&item.OriginalPrice, &item.Image, &item.Category, &item.Quantity,
			&item.FreeDelivery,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func scanOrder(rows *sql.Rows, order *models.Order) error {
	err := rows.Scan(
		&order.ID, &order.Token, &order.CustomerName, &order.Email, &order.Phone,
		&order.District, &order.Address, &order.DeliveryCharge, &order.Total,
		&order.Status, &order.PaymentStatus, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to scan order: %w", err)
	}
	return nil
}
