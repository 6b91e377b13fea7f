package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusDelivered, true},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},

		// No going backwards
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusConfirmed, false},
		{OrderStatusDelivered, OrderStatusShipped, false},

		// Cancellation from any state that is not yet delivered
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusCancelled, false},

		// Absorbing states
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
		{OrderStatusDelivered, OrderStatusPending, false},

		// Same status is a no-op update
		{OrderStatusPending, OrderStatusPending, true},
		{OrderStatusCancelled, OrderStatusCancelled, true},
		{OrderStatusDelivered, OrderStatusDelivered, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, status.IsValid(), string(status))
	}
	assert.False(t, OrderStatus("returned").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestPaymentStatusIsValid(t *testing.T) {
	assert.True(t, PaymentStatusPending.IsValid())
	assert.True(t, PaymentStatusPaid.IsValid())
	assert.True(t, PaymentStatusRefunded.IsValid())
	assert.False(t, PaymentStatus("chargeback").IsValid())
}

func TestOrderSubtotal(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Price: 2400, Quantity: 2},
			{Price: 4500, Quantity: 1},
		},
	}
	assert.Equal(t, 9300.0, order.Subtotal())
}
