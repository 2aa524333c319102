package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/utils"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

type cartItemResponse struct {
	ID          uint                `json:"id"`
	Quantity    int                 `json:"quantity"`
	BespokeNote string              `json:"bespoke_note"`
	Food        models.FoodResponse `json:"food"`
}

type cartResponse struct {
	ID     uint               `json:"id"`
	UserID uint               `json:"user_id"`
	Items  []cartItemResponse `json:"items"`
}

func newCartResponse(cart models.Cart) cartResponse {
	resp := cartResponse{ID: cart.ID, UserID: cart.UserID, Items: []cartItemResponse{}}
	for _, item := range cart.Items {
		resp.Items = append(resp.Items, cartItemResponse{
			ID:          item.ID,
			Quantity:    item.Quantity,
			BespokeNote: item.BespokeNote,
			Food:        models.NewFoodResponse(item.Food),
		})
	}
	return resp
}

// GetCart returns the caller's cart; an absent cart reads as empty.
func (cc *CartController) GetCart(c *gin.Context) {
	userID := c.GetUint("user_id")

	var cart models.Cart
	err := cc.DB.Preload("Items.Food").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondJSON(c, http.StatusOK, "Cart is empty", cartResponse{UserID: userID, Items: []cartItemResponse{}})
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart retrieved", newCartResponse(cart))
}

// AddToCart appends a line, merging with an existing line that has the same
// food and bespoke note.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		FoodID      uint   `json:"food_id" binding:"required"`
		Quantity    int    `json:"quantity"`
		BespokeNote string `json:"bespoke_note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	var food models.Food
	if err := cc.DB.First(&food, req.FoodID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return
	}

	var cart models.Cart
	err := cc.DB.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := cc.DB.Create(&cart).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	} else if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var item models.CartItem
	err = cc.DB.Where("cart_id = ? AND food_id = ? AND bespoke_note = ?", cart.ID, req.FoodID, req.BespokeNote).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:      cart.ID,
			FoodID:      req.FoodID,
			Quantity:    req.Quantity,
			BespokeNote: req.BespokeNote,
		}
		if err := cc.DB.Create(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	} else if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	} else {
		item.Quantity += req.Quantity
		if err := cc.DB.Save(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	cc.respondWithCart(c, http.StatusOK, "Item added to cart", cart.ID)
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req struct {
		FoodID      uint   `json:"food_id" binding:"required"`
		Quantity    int    `json:"quantity"`
		BespokeNote string `json:"bespoke_note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var cart models.Cart
	if err := cc.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart not found"))
		return
	}

	var item models.CartItem
	err := cc.DB.Where("cart_id = ? AND food_id = ? AND bespoke_note = ?", cart.ID, req.FoodID, req.BespokeNote).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("item not found in cart"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.Quantity <= 0 {
		if err := cc.DB.Delete(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	} else {
		item.Quantity = req.Quantity
		if err := cc.DB.Save(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	cc.respondWithCart(c, http.StatusOK, "Cart updated", cart.ID)
}

func (cc *CartController) respondWithCart(c *gin.Context, code int, message string, cartID uint) {
	var cart models.Cart
	if err := cc.DB.Preload("Items.Food").First(&cart, cartID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, code, message, newCartResponse(cart))
}
