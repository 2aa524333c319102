package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/spokefoods/spoke-backend/models"
)

func setupFoodRouter(db *gorm.DB) *gin.Engine {
	fc := NewFoodController(db)
	r := gin.New()
	r.GET("/food", fc.GetAllFoods)
	r.POST("/food", fc.CreateFood)
	r.PUT("/food/:food_id", fc.UpdateFood)
	r.DELETE("/food/:food_id", fc.DeleteFood)
	return r
}

func TestCreateFood(t *testing.T) {
	db := setupTestDB(t)
	r := setupFoodRouter(db)

	w := doMultipart(t, r, "POST", "/food", map[string]string{
		"name":               "Masala Dosa",
		"price":              "120.50",
		"quantity_available": "15",
		"bespoke_option":     "spice level",
		"tags":               "breakfast, south indian",
	}, "image")
	require.Equal(t, http.StatusCreated, w.Code)

	var food models.Food
	require.NoError(t, db.Where("name = ?", "Masala Dosa").First(&food).Error)
	assert.Equal(t, 120.50, food.Price)
	assert.Equal(t, 15, food.QuantityAvailable)
	assert.Equal(t, "image/png", food.ImageContentType)
	assert.NotEmpty(t, food.Image)
}

func TestCreateFoodMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := setupFoodRouter(db)

	w := doMultipart(t, r, "POST", "/food", map[string]string{"name": "Dosa"}, "image")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFoodRejectsNegativePrice(t *testing.T) {
	db := setupTestDB(t)
	r := setupFoodRouter(db)

	w := doMultipart(t, r, "POST", "/food", map[string]string{
		"name":               "Dosa",
		"price":              "-5",
		"quantity_available": "10",
	}, "image")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFoodRequiresImage(t *testing.T) {
	db := setupTestDB(t)
	r := setupFoodRouter(db)

	w := doMultipart(t, r, "POST", "/food", map[string]string{
		"name":               "Dosa",
		"price":              "100",
		"quantity_available": "10",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllFoodsRendersDataURI(t *testing.T) {
	db := setupTestDB(t)
	r := setupFoodRouter(db)

	require.NoError(t, db.Create(&models.Food{
		Name: "Idli", Price: 50, QuantityAvailable: 5,
		Image: []byte{1, 2, 3}, ImageContentType: "image/png",
		Tags: "breakfast,steamed",
	}).Error)
	require.NoError(t, db.Create(&models.Food{
		Name: "Vada", Price: 40, QuantityAvailable: 5,
	}).Error)

	w := doJSON(t, r, "GET", "/food", nil)
	require.Equal(t, http.StatusOK, w.Code)

	raw, err := json.Marshal(parseEnvelope(t, w).Data)
	require.NoError(t, err)
	var foods []models.FoodResponse
	require.NoError(t, json.Unmarshal(raw, &foods))
	require.Len(t, foods, 2)

	assert.True(t, strings.HasPrefix(foods[0].Image, "data:image/png;base64,"))
	assert.Equal(t, []string{"breakfast", "steamed"}, foods[0].Tags)
	// No stored image falls back to the placeholder.
	assert.Equal(t, models.PlaceholderImage, foods[1].Image)
}

func TestUpdateFoodKeepsImageWithoutUpload(t *testing.T) {
	db := setupTestDB(t)
	r := setupFoodRouter(db)

	food := models.Food{
		Name: "Idli", Price: 50, QuantityAvailable: 5,
		Image: []byte{1, 2, 3}, ImageContentType: "image/png",
	}
	require.NoError(t, db.Create(&food).Error)

	w := doMultipart(t, r, "PUT", fmt.Sprintf("/food/%d", food.ID), map[string]string{
		"name":               "Idli",
		"price":              "55",
		"quantity_available": "8",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Food
	require.NoError(t, db.First(&stored, food.ID).Error)
	assert.Equal(t, 55.0, stored.Price)
	assert.Equal(t, 8, stored.QuantityAvailable)
	assert.Equal(t, []byte{1, 2, 3}, stored.Image)
}

func TestDeleteFood(t *testing.T) {
	db := setupTestDB(t)
	r := setupFoodRouter(db)

	food := models.Food{Name: "Idli", Price: 50, QuantityAvailable: 5}
	require.NoError(t, db.Create(&food).Error)

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/food/%d", food.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/food/%d", food.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
