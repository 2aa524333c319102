package services

// Delivery pricing in rupees.
const (
	DeliveryRatePerKm  = 42.5
	MinimumDeliveryFee = 50.0
)

// DeliveryFee converts a delivery distance into a fee with a floor.
func DeliveryFee(distanceKm float64) float64 {
	fee := distanceKm * DeliveryRatePerKm
	if fee < MinimumDeliveryFee {
		return MinimumDeliveryFee
	}
	return fee
}
