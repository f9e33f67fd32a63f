package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/officina-stampa/fulfillment-api/middleware"
	"github.com/officina-stampa/fulfillment-api/models"
	"github.com/officina-stampa/fulfillment-api/services"
)

// CreateOrderRequest represents the request body for order intake
type CreateOrderRequest struct {
	CustomerName  string           `json:"customer_name" binding:"required"`
	CustomerID    *uint            `json:"customer_id"`
	ProductTypeID uint             `json:"product_type_id" binding:"required"`
	SubCategoryID *uint            `json:"sub_category_id"`
	Quantity      int              `json:"quantity" binding:"required,gt=0"`
	Dimensions    string           `json:"dimensions" binding:"required"`
	Color         string           `json:"color"`
	CustomNotes   string           `json:"custom_notes"`
	PhoneNumber   *string          `json:"phone_number"`
	Address       *string          `json:"address"`
	ManualPrice   *decimal.Decimal `json:"manual_price"` // admin only
}

// UpdateStatusRequest represents the request body for a status transition
type UpdateStatusRequest struct {
	Status      string  `json:"status" binding:"required"`
	CustomNotes *string `json:"custom_notes"`
	WorkerID    *uint   `json:"worker_id"`
}

// UpdateManualPriceRequest represents the request body for a price override.
// A null manual_price clears the override.
type UpdateManualPriceRequest struct {
	ManualPrice *decimal.Decimal `json:"manual_price"`
}

// orderResponse enriches an order with its derived effective price for list
// and detail payloads. Intake responses deliberately omit it: the caller
// derives it, matching the store contract.
type orderResponse struct {
	models.Order
	EffectivePrice decimal.Decimal `json:"effective_price"`
}

func toOrderResponse(o models.Order) orderResponse {
	return orderResponse{Order: o, EffectivePrice: o.EffectivePrice()}
}

func toOrderResponses(orders []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

// parseOrderFilter reads the list view's filter from the query string.
func parseOrderFilter(c *gin.Context) services.OrderFilter {
	filter := services.OrderFilter{
		Customer:    c.Query("customer"),
		ProductType: c.Query("type"),
		Color:       c.Query("color"),
		Dimensions:  c.Query("dim"),
	}
	if v := c.Query("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := c.Query("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &t
		}
	}
	return filter
}

// ListOrders handles GET /api/v1/orders - the filtered order snapshot
func ListOrders(c *gin.Context) {
	engine := services.GetEngine()

	orders, err := engine.Store.ListOrders(c.Request.Context(), parseOrderFilter(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toOrderResponses(orders),
	})
}

// CreateOrder handles POST /api/v1/orders - order intake (office flow)
func CreateOrder(c *gin.Context) {
	role, err := middleware.CurrentRole(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req CreateOrderRequest
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

	// A manual price at intake is an admin-only override
	if req.ManualPrice != nil && !role.CanOverridePrice() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only administrators can set a manual price",
			},
		})
		return
	}

	engine := services.GetEngine()
	ctx := c.Request.Context()

	priceTotal, err := engine.Pricing.ComputePrice(ctx, services.PriceInput{
		CustomerID:    req.CustomerID,
		ProductTypeID: req.ProductTypeID,
		SubCategoryID: req.SubCategoryID,
		Dimensions:    req.Dimensions,
		Color:         req.Color,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	order := models.Order{
		Barcode:       services.NewBarcode(),
		CustomerName:  req.CustomerName,
		CustomerID:    req.CustomerID,
		ProductTypeID: req.ProductTypeID,
		SubCategoryID: req.SubCategoryID,
		Quantity:      req.Quantity,
		Dimensions:    req.Dimensions,
		Color:         req.Color,
		CustomNotes:   req.CustomNotes,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		PriceTotal:    priceTotal,
		ManualPrice:   req.ManualPrice,
		Status:        engine.Statuses.InitialStatus(ctx, req.ProductTypeID, req.SubCategoryID),
	}

	if err := engine.Store.CreateOrder(ctx, &order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	// No effective_price here: the intake caller derives it
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderByBarcode handles GET /api/v1/orders/barcode/:code - the scan flow.
// The response carries the order and its status vocabulary together, so the
// scan view is actionable as soon as it loads.
func GetOrderByBarcode(c *gin.Context) {
	engine := services.GetEngine()

	result, err := engine.Lookup.Lookup(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"order":      toOrderResponse(result.Order),
			"vocabulary": result.Vocabulary,
		},
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req UpdateStatusRequest
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
	ctx := c.Request.Context()

	update := services.StatusUpdate{
		Status:      req.Status,
		CustomNotes: req.CustomNotes,
		WorkerID:    req.WorkerID,
	}
	if err := engine.Statuses.Apply(ctx, nil, id, update); err != nil {
		respondServiceError(c, err)
		return
	}

	order, err := engine.Store.GetOrder(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toOrderResponse(*order),
	})
}

// UpdateManualPrice handles PATCH /api/v1/orders/:id/price (admin only)
func UpdateManualPrice(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	role, err := middleware.CurrentRole(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req UpdateManualPriceRequest
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
	ctx := c.Request.Context()

	if err := engine.Prices.SetManualPrice(ctx, role, nil, id, req.ManualPrice); err != nil {
		respondServiceError(c, err)
		return
	}

	order, err := engine.Store.GetOrder(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    toOrderResponse(*order),
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - hard delete
func DeleteOrder(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	engine := services.GetEngine()
	if err := engine.Store.DeleteOrder(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"id": id},
	})
}

// parseID reads the :id route parameter, responding on failure.
func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order ID",
				"details": raw,
			},
		})
		return 0, err
	}
	return uint(id), nil
}
