package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/services"
	"github.com/spokefoods/spoke-backend/utils"
)

type ChefController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewChefController(db *gorm.DB, orders *services.OrderService) *ChefController {
	return &ChefController{DB: db, Orders: orders}
}

// Login authenticates a chef and returns a chef-scoped token.
func (cc *ChefController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var chef models.Chef
	if err := cc.DB.Where("email = ?", input.Email).First(&chef).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(chef.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(chef.ID, utils.ScopeChef)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

// GetProfile returns the authenticated chef.
func (cc *ChefController) GetProfile(c *gin.Context) {
	chefID := c.GetUint("chef_id")

	var chef models.Chef
	if err := cc.DB.First(&chef, chefID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("chef not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Chef profile", models.NewChefResponse(chef))
}

// GetOrders lists the orders assigned to the authenticated chef, newest
// first.
func (cc *ChefController) GetOrders(c *gin.Context) {
	chefID := c.GetUint("chef_id")

	var orders []models.Order
	if err := cc.DB.Preload("Items").Preload("User").Where("chef_id = ?", chefID).
		Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Assigned orders", orders)
}

// CompleteOrder marks an assigned pending order out for delivery.
func (cc *ChefController) CompleteOrder(c *gin.Context) {
	chefID := c.GetUint("chef_id")
	orderID, _ := strconv.Atoi(c.Param("order_id"))

	order, err := cc.Orders.CompleteOrder(c.Request.Context(), chefID, uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order out for delivery", order)
}

// GetAllChefs is the public roster with image data URIs.
func (cc *ChefController) GetAllChefs(c *gin.Context) {
	var chefs []models.Chef
	if err := cc.DB.Find(&chefs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	resp := make([]models.ChefResponse, 0, len(chefs))
	for _, ch := range chefs {
		resp = append(resp, models.NewChefResponse(ch))
	}
	utils.RespondJSON(c, http.StatusOK, "List of chefs", resp)
}
