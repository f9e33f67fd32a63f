package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/officina-stampa/fulfillment-api/config"
	"github.com/officina-stampa/fulfillment-api/models"
	"github.com/officina-stampa/fulfillment-api/services"
)

// CustomerRequest represents the request body for creating or updating a customer
type CustomerRequest struct {
	Name        string  `json:"name" binding:"required"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

// ListCustomers handles GET /api/v1/customers?q=
func ListCustomers(c *gin.Context) {
	db := config.GetDB()

	q := db.Order("name")
	if search := c.Query("q"); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+search+"%")
	}

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": customers})
}

// CreateCustomer handles POST /api/v1/customers
func CreateCustomer(c *gin.Context) {
	var req CustomerRequest
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
	customer := models.Customer{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}
	if err := db.Create(&customer).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": customer})
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req CustomerRequest
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

	var customer models.Customer
	if err := db.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	customer.Name = req.Name
	customer.PhoneNumber = req.PhoneNumber
	customer.Address = req.Address
	if err := db.Save(&customer).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
}

// DeleteCustomer handles DELETE /api/v1/customers/:id. Orders keep their
// customer_name snapshot, so deleting a customer never touches orders.
func DeleteCustomer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	db := config.GetDB()
	res := db.Delete(&models.Customer{}, id)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": id}})
}

// SuggestCustomers handles GET /api/v1/customers/suggest?q=&limit= - the
// intake form autocomplete. Debouncing is the caller's concern.
func SuggestCustomers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []services.CustomerSuggestion{}})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	engine := services.GetEngine()
	suggestions, err := engine.Store.SuggestCustomers(c.Request.Context(), query, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": suggestions})
}
