package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/events"
	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/utils"
)

// Order lifecycle. Payment is out of scope: every order is created with its
// payment already marked completed.
const (
	OrderStatusPending        = "pending"
	OrderStatusOutForDelivery = "out_for_delivery"
	PaymentStatusCompleted    = "completed"
)

// LoyaltyPointDivisor: one loyalty point per whole ₹100 of the order total.
const LoyaltyPointDivisor = 100

// CheckoutService turns a user's cart into an order: location resolution,
// delivery fee, chef assignment, stock decrement, cart clearing, loyalty
// points and the confirmation email. All persistent mutations run in one
// transaction, so an abort leaves no partial state behind.
type CheckoutService struct {
	DB       *gorm.DB
	Resolver *LocationResolver
	Mailer   *Mailer
}

func NewCheckoutService(db *gorm.DB, resolver *LocationResolver, mailer *Mailer) *CheckoutService {
	return &CheckoutService{DB: db, Resolver: resolver, Mailer: mailer}
}

// CheckoutResult is what the HTTP layer returns from a successful checkout.
type CheckoutResult struct {
	Order       models.Order     `json:"order"`
	DeliveryFee float64          `json:"delivery_fee"`
	UserCoords  ResolvedLocation `json:"user_coords"`
}

// Checkout runs the full checkout sequence for one user.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, userLocation string) (*CheckoutResult, error) {
	if strings.TrimSpace(userLocation) == "" {
		return nil, ErrLocationRequired
	}

	resolved, err := s.Resolver.Resolve(ctx, userLocation)
	if err != nil {
		return nil, err
	}
	fee := DeliveryFee(resolved.DistanceKm)

	var (
		order     models.Order
		user      models.User
		emailData OrderEmailData
	)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items.Food").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		foodTotal := 0.0
		totalQuantity := 0
		for _, item := range cart.Items {
			foodTotal += item.Food.Price * float64(item.Quantity)
			totalQuantity += item.Quantity
		}
		total := foodTotal + fee

		chef, err := PickLeastLoaded(tx)
		if err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			items = append(items, models.OrderItem{
				FoodID:      item.FoodID,
				Name:        item.Food.Name,
				Price:       item.Food.Price,
				Quantity:    item.Quantity,
				BespokeNote: item.BespokeNote,
			})
		}

		order = models.Order{
			OrderNumber:   uuid.NewString(),
			UserID:        userID,
			ChefID:        chef.ID,
			Items:         items,
			Total:         total,
			DeliveryFee:   fee,
			Status:        OrderStatusPending,
			PaymentStatus: PaymentStatusCompleted,
			UserLocation:  strings.TrimSpace(userLocation),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Stock check against the live rows, not the preloaded snapshot.
		for _, item := range cart.Items {
			var food models.Food
			if err := tx.First(&food, item.FoodID).Error; err != nil {
				return fmt.Errorf("food item %d not found", item.FoodID)
			}
			if food.QuantityAvailable < item.Quantity {
				return &InsufficientStockError{FoodName: food.Name}
			}
			food.QuantityAvailable -= item.Quantity
			if err := tx.Save(&food).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&cart).Error; err != nil {
			return err
		}

		if err := ApplyAssignment(tx, chef, totalQuantity); err != nil {
			return err
		}

		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		user.LoyaltyPoints += int(math.Floor(total / LoyaltyPointDivisor))
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		emailData = OrderEmailData{
			UserName:    user.Name,
			OrderNumber: order.OrderNumber,
			Location:    order.UserLocation,
			FoodTotal:   foodTotal,
			DeliveryFee: fee,
			Total:       total,
		}
		for _, item := range cart.Items {
			emailData.Lines = append(emailData.Lines, OrderEmailLine{
				Name:     item.Food.Name,
				Quantity: item.Quantity,
				Price:    item.Food.Price,
				Subtotal: item.Food.Price * float64(item.Quantity),
				ImageSrc: template.URL(models.ImageDataURI(item.Food.Image, item.Food.ImageContentType)),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s created for user %d (total %.2f, fee %.2f)", order.OrderNumber, userID, order.Total, fee)

	// Notification is best-effort and must never fail the checkout.
	if html, err := RenderOrderConfirmation(emailData); err != nil {
		utils.ErrorLogger.Printf("Failed to render confirmation email: %v", err)
	} else {
		subject := fmt.Sprintf("Spoke: Payment Confirmation for Order #%s", order.OrderNumber)
		s.Mailer.SendOrQueue(user.Email, subject, html)
	}

	events.BroadcastOrderCreated(order)

	return &CheckoutResult{Order: order, DeliveryFee: fee, UserCoords: *resolved}, nil
}
