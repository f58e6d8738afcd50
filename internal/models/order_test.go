// internal/models/order_test.go
package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionToForwardPath(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	path := []OrderStatus{
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
	}

	for _, next := range path {
		require.True(t, order.CanTransitionTo(next), "expected %s -> %s to be allowed", order.Status, next)
		order.ApplyStatus(next, "", time.Now())
	}
}

func TestCanTransitionToRejectsSkips(t *testing.T) {
	order := &Order{Status: OrderStatusPending}

	assert.False(t, order.CanTransitionTo(OrderStatusProcessing))
	assert.False(t, order.CanTransitionTo(OrderStatusShipped))
	assert.False(t, order.CanTransitionTo(OrderStatusDelivered))
}

func TestCanTransitionToRejectsBackwards(t *testing.T) {
	order := &Order{Status: OrderStatusShipped}

	assert.False(t, order.CanTransitionTo(OrderStatusPending))
	assert.False(t, order.CanTransitionTo(OrderStatusConfirmed))
	assert.False(t, order.CanTransitionTo(OrderStatusProcessing))
}

func TestCancelAndReturnReachableFromNonTerminal(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped} {
		order := &Order{Status: status}
		assert.True(t, order.CanTransitionTo(OrderStatusCancelled), "cancel from %s", status)
		assert.True(t, order.CanTransitionTo(OrderStatusReturned), "return from %s", status)
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned} {
		order := &Order{Status: status}
		for _, next := range []OrderStatus{
			OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
			OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned,
		} {
			assert.False(t, order.CanTransitionTo(next), "%s -> %s", status, next)
		}
	}
}

func TestApplyStatusAppendsHistory(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	at := time.Now()

	order.ApplyStatus(OrderStatusConfirmed, "payment received", at)

	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, OrderStatusConfirmed, order.StatusHistory[0].Status)
	assert.Equal(t, "payment received", order.StatusHistory[0].Notes)
	assert.Equal(t, at, order.StatusHistory[0].Timestamp)
	assert.Equal(t, OrderStatusConfirmed, order.Status)
}

func TestApplyStatusStampsTimestampsOnce(t *testing.T) {
	order := &Order{Status: OrderStatusPending}
	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	order.ApplyStatus(OrderStatusConfirmed, "", first)
	require.NotNil(t, order.ConfirmedAt)
	assert.Equal(t, first, *order.ConfirmedAt)

	// A second confirmation never moves the original stamp
	order.ApplyStatus(OrderStatusConfirmed, "", later)
	assert.Equal(t, first, *order.ConfirmedAt)
	assert.Len(t, order.StatusHistory, 2)
}

func TestApplyStatusStampsShippedAndDelivered(t *testing.T) {
	order := &Order{Status: OrderStatusProcessing}
	shipped := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)
	delivered := shipped.Add(72 * time.Hour)

	order.ApplyStatus(OrderStatusShipped, "", shipped)
	order.ApplyStatus(OrderStatusDelivered, "", delivered)

	require.NotNil(t, order.ShippedAt)
	require.NotNil(t, order.DeliveredAt)
	assert.Equal(t, shipped, *order.ShippedAt)
	assert.Equal(t, delivered, *order.DeliveredAt)
	assert.Nil(t, order.ConfirmedAt)
}

func TestNewOrderNumber(t *testing.T) {
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	number := NewOrderNumber(at)

	assert.True(t, strings.HasPrefix(number, "ORD"))
	assert.Equal(t, "ORD1736942400000", number)
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusReturned.Valid())
	assert.False(t, OrderStatus("lost").Valid())
}
