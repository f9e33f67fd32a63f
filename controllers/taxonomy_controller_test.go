package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officina-stampa/fulfillment-api/models"
)

func TestDeleteProductType_RefusedWhileReferenced(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)
	productType, sub := seedTaxonomy(t, db)

	router := newTestRouter("auth0|admin")
	router.DELETE("/api/v1/product-types/:id", DeleteProductType)
	router.DELETE("/api/v1/sub-categories/:id", DeleteSubCategory)

	// Referenced by its subcategory
	w := performRequest(router, http.MethodDelete, "/api/v1/product-types/"+itoa(productType.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Free the subcategory, then the type can go
	w = performRequest(router, http.MethodDelete, "/api/v1/sub-categories/"+itoa(sub.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodDelete, "/api/v1/product-types/"+itoa(productType.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteSubCategory_RefusedWhileOrdersReference(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)
	productType, sub := seedTaxonomy(t, db)

	order := seedOrder(t, db, productType, "TAXON0000001")
	require.NoError(t, db.Model(&order).Update("sub_category_id", sub.ID).Error)

	router := newTestRouter("auth0|admin")
	router.DELETE("/api/v1/sub-categories/:id", DeleteSubCategory)

	w := performRequest(router, http.MethodDelete, "/api/v1/sub-categories/"+itoa(sub.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateProductType_DuplicateNameConflicts(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)

	router := newTestRouter("auth0|admin")
	router.POST("/api/v1/product-types", CreateProductType)

	body := map[string]interface{}{"name": "Striscione"}

	w := performRequest(router, http.MethodPost, "/api/v1/product-types", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/product-types", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateColorIncrement_UpsertsByColor(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)

	router := newTestRouter("auth0|admin")
	router.POST("/api/v1/color-increments", CreateColorIncrement)

	w := performRequest(router, http.MethodPost, "/api/v1/color-increments",
		map[string]interface{}{"color": "Oro", "percent_increment": "10"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/color-increments",
		map[string]interface{}{"color": "Oro", "percent_increment": "15"})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.ColorIncrement{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var inc models.ColorIncrement
	require.NoError(t, db.First(&inc).Error)
	assert.Equal(t, "15", inc.PercentIncrement.String())
}

func TestCreatePriceList_NegativeRateRejected(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)
	productType, _ := seedTaxonomy(t, db)

	router := newTestRouter("auth0|admin")
	router.POST("/api/v1/price-lists", CreatePriceList)

	w := performRequest(router, http.MethodPost, "/api/v1/price-lists",
		map[string]interface{}{
			"product_type_id": productType.ID,
			"price_per_sqm":   "-5",
		})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerSpecificPriceListWinsOverGeneric(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)
	productType, _ := seedTaxonomy(t, db)

	customer := models.Customer{Name: "Rossi"}
	require.NoError(t, db.Create(&customer).Error)

	router := newTestRouter("auth0|admin")
	router.POST("/api/v1/price-lists", CreatePriceList)
	router.POST("/api/v1/orders", CreateOrder)

	w := performRequest(router, http.MethodPost, "/api/v1/price-lists",
		map[string]interface{}{"product_type_id": productType.ID, "price_per_sqm": "10"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = performRequest(router, http.MethodPost, "/api/v1/price-lists",
		map[string]interface{}{
			"customer_id":     customer.ID,
			"product_type_id": productType.ID,
			"price_per_sqm":   "8",
		})
	require.Equal(t, http.StatusCreated, w.Code)

	// 1 m2 x 8/m2 for the customer-specific rate
	w = performRequest(router, http.MethodPost, "/api/v1/orders",
		map[string]interface{}{
			"customer_name":   "Rossi",
			"customer_id":     customer.ID,
			"product_type_id": productType.ID,
			"quantity":        1,
			"dimensions":      "100x100",
		})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "8", data["price_total"])
}
