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

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetAllOrders lists every order with user and chef populated.
func (ac *AdminController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := ac.DB.Preload("Items").Preload("User").Preload("Chef").
		Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All orders", orders)
}

// AddChef registers a chef with a multipart image upload.
func (ac *AdminController) AddChef(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	specialty := c.PostForm("specialty")

	fileHeader, fileErr := c.FormFile("image")
	if fileErr != nil || name == "" || email == "" || password == "" || specialty == "" {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("missing required fields: name, email, password, specialty and image are required"))
		return
	}

	var existing models.Chef
	if err := ac.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("chef with this email already exists"))
		return
	}

	image, contentType, err := readImageUpload(fileHeader)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rating, _ := strconv.ParseFloat(c.PostForm("rating"), 64)
	alloted, _ := strconv.Atoi(c.PostForm("alloted"))

	chef := models.Chef{
		Name:             name,
		Email:            email,
		Password:         string(hashed),
		Specialty:        specialty,
		Rating:           rating,
		Alloted:          alloted,
		Image:            image,
		ImageContentType: contentType,
	}
	if err := ac.DB.Create(&chef).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Chef added: %s (%s)", chef.Name, chef.Specialty)
	utils.RespondJSON(c, http.StatusCreated, "Chef added successfully", models.NewChefResponse(chef))
}

// DeleteChef removes a chef after reassigning their orders across the
// remaining chefs.
func (ac *AdminController) DeleteChef(c *gin.Context) {
	chefID, _ := strconv.Atoi(c.Param("chef_id"))

	reassigned, err := services.RemoveChef(ac.DB, uint(chefID))
	if err != nil {
		if errors.Is(err, services.ErrNoChefsAvailable) {
			utils.RespondError(c, http.StatusBadRequest,
				errors.New("cannot delete chef: no other chefs available to reassign orders"))
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Chef %d deleted, %d orders reassigned", chefID, reassigned)
	utils.RespondJSON(c, http.StatusOK, "Chef deleted and orders reassigned", gin.H{
		"chef_id":           chefID,
		"orders_reassigned": reassigned,
	})
}

// GetChefs is the lightweight roster (id and name only) for admin pickers.
func (ac *AdminController) GetChefs(c *gin.Context) {
	var chefs []models.Chef
	if err := ac.DB.Select("id", "name").Find(&chefs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type chefSummary struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	resp := make([]chefSummary, 0, len(chefs))
	for _, ch := range chefs {
		resp = append(resp, chefSummary{ID: ch.ID, Name: ch.Name})
	}
	utils.RespondJSON(c, http.StatusOK, "All chefs", resp)
}

// FlushEmailQueue lets an admin force a drain of the offline email queue.
func (ac *AdminController) FlushEmailQueue(mailer *services.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		sent, err := mailer.FlushQueue()
		if err != nil {
			utils.RespondError(c, http.StatusBadGateway, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Email queue flushed", gin.H{"sent": sent})
	}
}
