package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusProcessing, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
		{StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equal(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestDeliveredAndCancelledAreTerminal(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

	for _, next := range all {
		assert.False(t, StatusDelivered.CanTransitionTo(next), "delivered -> %s", next)
		assert.False(t, StatusCancelled.CanTransitionTo(next), "cancelled -> %s", next)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("shipped")
	assert.NoError(t, err)
	assert.Equal(t, StatusShipped, status)

	_, err = ParseOrderStatus("refunded")
	assert.Error(t, err)

	_, err = ParseOrderStatus("")
	assert.Error(t, err)
}

func TestParsePaymentStatus(t *testing.T) {
	for _, raw := range []string{"pending", "paid", "failed"} {
		_, err := ParsePaymentStatus(raw)
		assert.NoError(t, err, raw)
	}

	_, err := ParsePaymentStatus("refunded")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"cash", "card", "bkash", "nagad"} {
		_, err := ParsePaymentMethod(raw)
		assert.NoError(t, err, raw)
	}

	_, err := ParsePaymentMethod("paypal")
	assert.Error(t, err)
}
