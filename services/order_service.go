package services

import (
	"context"
	"fmt"
	"html/template"

	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/events"
	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/utils"
)

// OrderService owns order status transitions after checkout.
type OrderService struct {
	DB     *gorm.DB
	Mailer *Mailer
}

func NewOrderService(db *gorm.DB, mailer *Mailer) *OrderService {
	return &OrderService{DB: db, Mailer: mailer}
}

// CompleteOrder moves a pending order to out_for_delivery. Only the assigned
// chef may complete it, and only once: a second call fails ErrOrderNotPending
// and leaves the load counter untouched.
func (s *OrderService) CompleteOrder(ctx context.Context, chefID, orderID uint) (*models.Order, error) {
	var order models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").Preload("User").First(&order, orderID).Error; err != nil {
			return err
		}
		if order.ChefID != chefID {
			return ErrNotAuthorized
		}
		if order.Status != OrderStatusPending {
			return ErrOrderNotPending
		}

		order.Status = OrderStatusOutForDelivery
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", OrderStatusOutForDelivery).Error; err != nil {
			return err
		}

		totalQuantity := 0
		for _, item := range order.Items {
			totalQuantity += item.Quantity
		}

		var chef models.Chef
		if err := tx.First(&chef, chefID).Error; err != nil {
			return err
		}
		return ApplyCompletion(tx, &chef, totalQuantity)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s marked out_for_delivery by chef %d", order.OrderNumber, chefID)

	emailData := OrderEmailData{
		UserName:    order.User.Name,
		OrderNumber: order.OrderNumber,
		Location:    order.UserLocation,
		Total:       order.Total,
	}
	for _, item := range order.Items {
		emailData.Lines = append(emailData.Lines, OrderEmailLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Price * float64(item.Quantity),
			ImageSrc: template.URL(s.foodImage(item.FoodID)),
		})
	}

	if html, err := RenderOutForDelivery(emailData); err != nil {
		utils.ErrorLogger.Printf("Failed to render delivery email: %v", err)
	} else {
		subject := fmt.Sprintf("Spoke: Order #%s Out for Delivery", order.OrderNumber)
		s.Mailer.SendOrQueue(order.User.Email, subject, html)
	}

	events.BroadcastOrderUpdate(order)

	return &order, nil
}

// foodImage looks up the live catalog image for an order line. Snapshots do
// not carry image bytes, and the food may have been deleted since checkout.
func (s *OrderService) foodImage(foodID uint) string {
	var food models.Food
	if err := s.DB.First(&food, foodID).Error; err != nil {
		return models.PlaceholderImage
	}
	return models.ImageDataURI(food.Image, food.ImageContentType)
}
