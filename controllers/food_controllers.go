package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/models"
	"github.com/spokefoods/spoke-backend/utils"
)

type FoodController struct {
	DB *gorm.DB
}

func NewFoodController(db *gorm.DB) *FoodController {
	return &FoodController{DB: db}
}

// GetAllFoods lists the catalog with inline image data URIs.
func (fc *FoodController) GetAllFoods(c *gin.Context) {
	var foods []models.Food
	if err := fc.DB.Find(&foods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	resp := make([]models.FoodResponse, 0, len(foods))
	for _, f := range foods {
		resp = append(resp, models.NewFoodResponse(f))
	}
	utils.RespondJSON(c, http.StatusOK, "List of foods", resp)
}

// CreateFood adds a catalog entry with a multipart image upload.
func (fc *FoodController) CreateFood(c *gin.Context) {
	name := c.PostForm("name")
	priceStr := c.PostForm("price")
	quantityStr := c.PostForm("quantity_available")
	if name == "" || priceStr == "" || quantityStr == "" {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("missing required fields: name, price and quantity_available are required"))
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be a non-negative number"))
		return
	}
	quantity, err := strconv.Atoi(quantityStr)
	if err != nil || quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity available must be a non-negative number"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("image is required"))
		return
	}
	image, contentType, err := readImageUpload(fileHeader)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	food := models.Food{
		Name:              name,
		Price:             price,
		QuantityAvailable: quantity,
		Image:             image,
		ImageContentType:  contentType,
		BespokeOption:     c.PostForm("bespoke_option"),
		Tags:              c.PostForm("tags"),
	}
	if err := fc.DB.Create(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Food created", models.NewFoodResponse(food))
}

// UpdateFood replaces a catalog entry's fields; the image only when a new
// one is uploaded.
func (fc *FoodController) UpdateFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("food_id"))

	var food models.Food
	if err := fc.DB.First(&food, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return
	}

	name := c.PostForm("name")
	priceStr := c.PostForm("price")
	quantityStr := c.PostForm("quantity_available")
	if name == "" || priceStr == "" || quantityStr == "" {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("missing required fields: name, price and quantity_available are required"))
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be a non-negative number"))
		return
	}
	quantity, err := strconv.Atoi(quantityStr)
	if err != nil || quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity available must be a non-negative number"))
		return
	}

	food.Name = name
	food.Price = price
	food.QuantityAvailable = quantity
	food.BespokeOption = c.PostForm("bespoke_option")
	food.Tags = c.PostForm("tags")

	if fileHeader, err := c.FormFile("image"); err == nil {
		image, contentType, err := readImageUpload(fileHeader)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		food.Image = image
		food.ImageContentType = contentType
	}

	if err := fc.DB.Save(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Food updated", models.NewFoodResponse(food))
}

// DeleteFood removes a catalog entry. Past orders keep their snapshots.
func (fc *FoodController) DeleteFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("food_id"))

	result := fc.DB.Delete(&models.Food{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Food deleted", gin.H{"food_id": id})
}
