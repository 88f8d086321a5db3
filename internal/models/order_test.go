package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatusValid(t *testing.T) {
	known := []DeliveryStatus{
		StatusPending, StatusPreparing, StatusShipped, StatusInTransit,
		StatusOutForDelivery, StatusDelivered, StatusDeliveryFailed,
		StatusReturned, StatusCancelled,
	}
	for _, s := range known {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, DeliveryStatus("").Valid())
	assert.False(t, DeliveryStatus("lost").Valid())
	assert.False(t, DeliveryStatus("Pending").Valid())
}
