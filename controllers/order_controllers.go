package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/services"
	"github.com/spokefoods/spoke-backend/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Checkout *services.CheckoutService
}

func NewOrderController(db *gorm.DB, checkout *services.CheckoutService) *OrderController {
	return &OrderController{DB: db, Checkout: checkout}
}

// CheckoutOrder turns the caller's cart into an order delivered to the named
// place.
func (oc *OrderController) CheckoutOrder(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		UserLocation string `json:"user_location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := oc.Checkout.Checkout(c.Request.Context(), userID, req.UserLocation)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Checkout successful", result)
}

type orderItemResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	BespokeNote string  `json:"bespoke_note"`
	FoodImage   string  `json:"food_image"`
}

// newOrderItemResponse renders a snapshot line, pulling the live catalog
// image when the food still exists.
func newOrderItemResponse(db *gorm.DB, item models.OrderItem) orderItemResponse {
	resp := orderItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Quantity:    item.Quantity,
		BespokeNote: item.BespokeNote,
		FoodImage:   models.PlaceholderImage,
	}
	var food models.Food
	if err := db.First(&food, item.FoodID).Error; err == nil {
		resp.FoodImage = models.ImageDataURI(food.Image, food.ImageContentType)
	}
	return resp
}

// GetOrderHistory lists the caller's orders, newest first.
func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	userID := c.GetUint("user_id")

	var orders []models.Order
	if err := oc.DB.Preload("Items").Where("user_id = ?", userID).
		Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type orderResponse struct {
		models.Order
		Items []orderItemResponse `json:"items"`
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		entry := orderResponse{Order: order, Items: []orderItemResponse{}}
		for _, item := range order.Items {
			entry.Items = append(entry.Items, newOrderItemResponse(oc.DB, item))
		}
		resp = append(resp, entry)
	}

	utils.RespondJSON(c, http.StatusOK, "Order history", resp)
}
