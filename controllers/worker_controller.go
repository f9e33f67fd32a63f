package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/officina-stampa/fulfillment-api/config"
	"github.com/officina-stampa/fulfillment-api/models"
)

// CreateWorkerRequest represents the request body for a new shop-floor worker
type CreateWorkerRequest struct {
	Username   string `json:"username" binding:"required"`
	AccessCode string `json:"access_code" binding:"required"`
}

// WorkerLoginRequest represents the shop-floor access-code login body
type WorkerLoginRequest struct {
	Username   string `json:"username" binding:"required"`
	AccessCode string `json:"access_code" binding:"required"`
}

// ListWorkers handles GET /api/v1/workers (admin)
func ListWorkers(c *gin.Context) {
	db := config.GetDB()

	var workers []models.Worker
	if err := db.Order("username").Find(&workers).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": workers})
}

// CreateWorker handles POST /api/v1/workers (admin)
func CreateWorker(c *gin.Context) {
	var req CreateWorkerRequest
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
	worker := models.Worker{Username: req.Username, AccessCode: req.AccessCode}
	if err := db.Create(&worker).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "A worker with this username already exists",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": worker})
}

// DeleteWorker handles DELETE /api/v1/workers/:id (admin). Orders assigned
// to the worker keep their assignment history.
func DeleteWorker(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	db := config.GetDB()
	res := db.Delete(&models.Worker{}, id)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Worker not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": id}})
}

// WorkerLogin handles POST /api/v1/worker-login - the public shop-floor
// login used by the scan page to attribute status changes to an operator.
func WorkerLogin(c *gin.Context) {
	var req WorkerLoginRequest
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

	var worker models.Worker
	err := db.Where("username = ? AND access_code = ?", req.Username, req.AccessCode).
		First(&worker).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid username or access code",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":       worker.ID,
			"username": worker.Username,
		},
	})
}
