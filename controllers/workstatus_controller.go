package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/officina-stampa/fulfillment-api/services"
)

// SaveWorkStatusesRequest carries a replacement vocabulary for one
// product type / subcategory pair.
type SaveWorkStatusesRequest struct {
	ProductTypeID uint     `json:"product_type_id" binding:"required"`
	SubCategoryID *uint    `json:"sub_category_id"`
	StatusList    []string `json:"status_list" binding:"required"`
}

// GetWorkStatuses handles GET /api/v1/work-statuses?product_type_id=&sub_category_id=
// Always answers with a usable vocabulary: unconfigured pairs get the default.
func GetWorkStatuses(c *gin.Context) {
	productTypeID, err := strconv.ParseUint(c.Query("product_type_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "product_type_id is required",
			},
		})
		return
	}

	var subCategoryID *uint
	if raw := c.Query("sub_category_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "sub_category_id must be numeric",
				},
			})
			return
		}
		id := uint(v)
		subCategoryID = &id
	}

	engine := services.GetEngine()
	statuses := engine.Registry.Resolve(c.Request.Context(), uint(productTypeID), subCategoryID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"product_type_id": productTypeID,
			"sub_category_id": subCategoryID,
			"status_list":     statuses,
		},
	})
}

// SaveWorkStatuses handles POST /api/v1/work-statuses (admin).
// Saves the vocabulary and invalidates the registry so the next resolve
// refetches.
func SaveWorkStatuses(c *gin.Context) {
	var req SaveWorkStatusesRequest
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

	if len(req.StatusList) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "status_list must contain at least one status",
			},
		})
		return
	}
	for _, label := range req.StatusList {
		if label == "" || label == services.StatusDownloaded {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "status labels must be non-empty and must not use the reserved download marker",
					"details": label,
				},
			})
			return
		}
	}

	engine := services.GetEngine()
	ctx := c.Request.Context()

	if err := engine.Store.SaveWorkStatuses(ctx, req.ProductTypeID, req.SubCategoryID, req.StatusList); err != nil {
		respondServiceError(c, err)
		return
	}
	engine.Registry.Invalidate(req.ProductTypeID, req.SubCategoryID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"product_type_id": req.ProductTypeID,
			"sub_category_id": req.SubCategoryID,
			"status_list":     req.StatusList,
		},
	})
}
