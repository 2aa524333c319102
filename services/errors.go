package services

import (
	"errors"
	"fmt"
)

// Business-rule failures surfaced to the HTTP layer with a stable identity.
// Upstream network failures (geocoder, router, SMTP) are never in this list:
// they degrade to a fallback tier or the offline queue instead.
var (
	ErrLocationRequired = errors.New("user location (city/village name) is required")
	ErrLocationNotFound = errors.New("location not found")
	ErrOutOfRegion      = errors.New("location is outside the delivery region")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoChefsAvailable = errors.New("no chefs available")
	ErrNotAuthorized    = errors.New("not authorized")
	ErrOrderNotPending  = errors.New("order is not pending")
)

// InsufficientStockError aborts a checkout whose requested quantity exceeds
// the live stock of a food item.
type InsufficientStockError struct {
	FoodName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity available for %s", e.FoodName)
}
