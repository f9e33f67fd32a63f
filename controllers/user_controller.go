package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officina-stampa/fulfillment-api/config"
	"github.com/officina-stampa/fulfillment-api/middleware"
	"github.com/officina-stampa/fulfillment-api/models"
)

// CreateProfileRequest represents the request body for completing an
// office profile after the first Auth0 login
type CreateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// GetCurrentUser handles GET /api/v1/users/me
func GetCurrentUser(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Profile not found, complete registration first",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// CreateCurrentUser handles POST /api/v1/users/me - first-login profile
// creation. New profiles get the office role; admins are promoted directly
// in the database.
func CreateCurrentUser(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var existing models.User
	err = db.Where("auth0_id = ?", auth0ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": existing})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServiceError(c, err)
		return
	}

	user := models.User{
		Auth0ID: auth0ID,
		Name:    req.Name,
		Email:   req.Email,
		Role:    "office",
	}
	if err := db.Create(&user).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": user})
}
