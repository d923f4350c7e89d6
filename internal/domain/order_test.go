package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderStatusQuotation, OrderStatusRentalOrder},
		{OrderStatusQuotation, OrderStatusCancelled},
		{OrderStatusRentalOrder, OrderStatusConfirmed},
		{OrderStatusRentalOrder, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusPickedUp},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusPickedUp, OrderStatusReturned},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	denied := []struct{ from, to OrderStatus }{
		{OrderStatusQuotation, OrderStatusConfirmed},
		{OrderStatusRentalOrder, OrderStatusPickedUp},
		{OrderStatusPickedUp, OrderStatusCancelled},
		{OrderStatusReturned, OrderStatusPickedUp},
		{OrderStatusCancelled, OrderStatusRentalOrder},
		{OrderStatusConfirmed, OrderStatusRentalOrder},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderStatusReturned.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusQuotation.Terminal())
	assert.False(t, OrderStatusPickedUp.Terminal())
}

func TestOrderStatus_CountsAsReserved(t *testing.T) {
	assert.True(t, OrderStatusQuotation.CountsAsReserved())
	assert.True(t, OrderStatusReturned.CountsAsReserved())
	assert.False(t, OrderStatusCancelled.CountsAsReserved())
}

func TestOrderAction_TargetStatus(t *testing.T) {
	target, ok := OrderActionPickup.TargetStatus()
	assert.True(t, ok)
	assert.Equal(t, OrderStatusPickedUp, target)

	_, ok = OrderAction("teleport").TargetStatus()
	assert.False(t, ok)
}

func TestOrder_LatestItemEnd(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{Interval: RentalInterval{Start: day(1), End: day(3)}},
		{Interval: RentalInterval{Start: day(2), End: day(8)}},
		{Interval: RentalInterval{Start: day(4), End: day(6)}},
	}}
	assert.Equal(t, day(8), o.LatestItemEnd())

	empty := &Order{}
	assert.True(t, empty.LatestItemEnd().IsZero())
}
