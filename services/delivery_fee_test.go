package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryFeeMinimum(t *testing.T) {
	assert.Equal(t, 50.0, DeliveryFee(0))
	assert.Equal(t, 50.0, DeliveryFee(1))
	// 1.17 km * 42.5 = 49.725, still under the floor
	assert.Equal(t, 50.0, DeliveryFee(1.17))
}

func TestDeliveryFeePerKm(t *testing.T) {
	assert.InDelta(t, 85.0, DeliveryFee(2), 0.001)
	assert.InDelta(t, 425.0, DeliveryFee(10), 0.001)
	// Madurai at 160 km
	assert.InDelta(t, 6800.0, DeliveryFee(160), 0.001)
}
