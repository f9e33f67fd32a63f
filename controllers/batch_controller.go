package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/officina-stampa/fulfillment-api/services"
)

// BatchRequest carries the selected order IDs for a batch operation.
type BatchRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// loadBatch materializes the selected orders into a cache and selection so
// the coordinator can patch and report against them.
func loadBatch(c *gin.Context) (*services.OrderCache, *services.Selection, bool) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return nil, nil, false
	}

	engine := services.GetEngine()
	ctx := c.Request.Context()

	cache := services.NewOrderCache()
	sel := services.NewSelection()
	for _, id := range req.IDs {
		order, err := engine.Store.GetOrder(ctx, id)
		if err == nil {
			cache.Put(*order)
		}
		// Missing orders stay selected: the coordinator reports them as failed
		sel.Toggle(id)
	}
	return cache, sel, true
}

func respondBatch(c *gin.Context, cache *services.OrderCache, result *services.BatchResult) {
	failed := gin.H{}
	for id, reason := range result.Failed {
		failed[fmt.Sprintf("%d", id)] = reason
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"processed": result.Processed,
			"failed":    failed,
			"orders":    toOrderResponses(cache.Snapshot()),
		},
	})
}

// BatchPrint handles POST /api/v1/orders/batch/print
func BatchPrint(c *gin.Context) {
	cache, sel, ok := loadBatch(c)
	if !ok {
		return
	}

	engine := services.GetEngine()
	result, err := engine.Batch.PrintSelection(c.Request.Context(), cache, sel)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondBatch(c, cache, result)
}

// BatchExport handles POST /api/v1/orders/batch/export
func BatchExport(c *gin.Context) {
	cache, sel, ok := loadBatch(c)
	if !ok {
		return
	}

	engine := services.GetEngine()
	result, err := engine.Batch.ExportSelection(c.Request.Context(), cache, sel)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondBatch(c, cache, result)
}

// BatchDelete handles POST /api/v1/orders/batch/delete
func BatchDelete(c *gin.Context) {
	cache, sel, ok := loadBatch(c)
	if !ok {
		return
	}

	engine := services.GetEngine()
	result, err := engine.Batch.DeleteSelection(c.Request.Context(), cache, sel)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondBatch(c, cache, result)
}

// BatchCSV handles POST /api/v1/orders/batch/csv - exports the selected
// rows of the current filtered view as a text/csv attachment.
func BatchCSV(c *gin.Context) {
	var req BatchRequest
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

	engine := services.GetEngine()

	filtered, err := engine.Store.ListOrders(c.Request.Context(), parseOrderFilter(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sel := services.NewSelection()
	sel.SelectAllVisible(req.IDs)

	data, err := engine.Batch.ExportCSV(filtered, sel)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ordini.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
