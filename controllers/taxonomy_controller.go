package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/officina-stampa/fulfillment-api/config"
	"github.com/officina-stampa/fulfillment-api/models"
)

// CreateProductTypeRequest represents the request body for a new product type
type CreateProductTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateSubCategoryRequest represents the request body for a new subcategory
type CreateSubCategoryRequest struct {
	ProductTypeID uint   `json:"product_type_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
}

// CreateColorIncrementRequest represents a percent surcharge for a color
type CreateColorIncrementRequest struct {
	Color            string          `json:"color" binding:"required"`
	PercentIncrement decimal.Decimal `json:"percent_increment"`
}

// CreatePriceListRequest represents a per-square-metre rate row. A nil
// customer_id makes the row the generic rate for the classification.
type CreatePriceListRequest struct {
	CustomerID    *uint           `json:"customer_id"`
	ProductTypeID uint            `json:"product_type_id" binding:"required"`
	SubCategoryID *uint           `json:"sub_category_id"`
	PricePerSqm   decimal.Decimal `json:"price_per_sqm" binding:"required"`
}

// ListProductTypes handles GET /api/v1/product-types
func ListProductTypes(c *gin.Context) {
	db := config.GetDB()

	var types []models.ProductType
	if err := db.Order("name").Find(&types).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": types})
}

// CreateProductType handles POST /api/v1/product-types (admin)
func CreateProductType(c *gin.Context) {
	var req CreateProductTypeRequest
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
	productType := models.ProductType{Name: req.Name}
	if err := db.Create(&productType).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "A product type with this name already exists",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": productType})
}

// DeleteProductType handles DELETE /api/v1/product-types/:id (admin).
// Refused while orders or subcategories still reference the type.
func DeleteProductType(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	db := config.GetDB()

	var orders int64
	db.Model(&models.Order{}).Where("product_type_id = ?", id).Count(&orders)
	var subs int64
	db.Model(&models.SubCategory{}).Where("product_type_id = ?", id).Count(&subs)
	if orders > 0 || subs > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "Product type is still referenced by orders or subcategories",
			},
		})
		return
	}

	res := db.Delete(&models.ProductType{}, id)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Product type not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": id}})
}

// ListSubCategories handles GET /api/v1/sub-categories?product_type_id=
func ListSubCategories(c *gin.Context) {
	db := config.GetDB()

	q := db.Order("name")
	if raw := c.Query("product_type_id"); raw != "" {
		q = q.Where("product_type_id = ?", raw)
	}

	var subs []models.SubCategory
	if err := q.Find(&subs).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": subs})
}

// CreateSubCategory handles POST /api/v1/sub-categories (admin)
func CreateSubCategory(c *gin.Context) {
	var req CreateSubCategoryRequest
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

	var productType models.ProductType
	if err := db.First(&productType, req.ProductTypeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Product type not found",
			},
		})
		return
	}

	sub := models.SubCategory{ProductTypeID: req.ProductTypeID, Name: req.Name}
	if err := db.Create(&sub).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sub})
}

// DeleteSubCategory handles DELETE /api/v1/sub-categories/:id (admin).
// Refused while orders still reference the subcategory.
func DeleteSubCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	db := config.GetDB()

	var orders int64
	db.Model(&models.Order{}).Where("sub_category_id = ?", id).Count(&orders)
	if orders > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONFLICT",
				"message": "Subcategory is still referenced by orders",
			},
		})
		return
	}

	res := db.Delete(&models.SubCategory{}, id)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Subcategory not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": id}})
}

// ListColorIncrements handles GET /api/v1/color-increments
func ListColorIncrements(c *gin.Context) {
	db := config.GetDB()

	var increments []models.ColorIncrement
	if err := db.Order("color").Find(&increments).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": increments})
}

// CreateColorIncrement handles POST /api/v1/color-increments (admin).
// Posting an existing color replaces its surcharge.
func CreateColorIncrement(c *gin.Context) {
	var req CreateColorIncrementRequest
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

	var inc models.ColorIncrement
	err := db.Where("color = ?", req.Color).First(&inc).Error
	if err == nil {
		inc.PercentIncrement = req.PercentIncrement
		if err := db.Save(&inc).Error; err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": inc})
		return
	}

	inc = models.ColorIncrement{Color: req.Color, PercentIncrement: req.PercentIncrement}
	if err := db.Create(&inc).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": inc})
}

// DeleteColorIncrement handles DELETE /api/v1/color-increments/:id (admin)
func DeleteColorIncrement(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	db := config.GetDB()
	res := db.Delete(&models.ColorIncrement{}, id)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Color increment not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": id}})
}

// ListPriceLists handles GET /api/v1/price-lists
func ListPriceLists(c *gin.Context) {
	db := config.GetDB()

	var lists []models.PriceList
	if err := db.Order("id").Find(&lists).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": lists})
}

// CreatePriceList handles POST /api/v1/price-lists (admin)
func CreatePriceList(c *gin.Context) {
	var req CreatePriceListRequest
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

	if req.PricePerSqm.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "price_per_sqm cannot be negative",
			},
		})
		return
	}

	db := config.GetDB()
	list := models.PriceList{
		CustomerID:    req.CustomerID,
		ProductTypeID: req.ProductTypeID,
		SubCategoryID: req.SubCategoryID,
		PricePerSqm:   req.PricePerSqm,
	}
	if err := db.Create(&list).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": list})
}

// DeletePriceList handles DELETE /api/v1/price-lists/:id (admin)
func DeletePriceList(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	db := config.GetDB()
	res := db.Delete(&models.PriceList{}, id)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Price list not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"id": id}})
}
