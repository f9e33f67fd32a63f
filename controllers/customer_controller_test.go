package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officina-stampa/fulfillment-api/models"
)

func TestCustomerLifecycle(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)

	router := newTestRouter("auth0|office")
	router.POST("/api/v1/customers", CreateCustomer)
	router.GET("/api/v1/customers", ListCustomers)
	router.PUT("/api/v1/customers/:id", UpdateCustomer)
	router.DELETE("/api/v1/customers/:id", DeleteCustomer)

	w := performRequest(router, http.MethodPost, "/api/v1/customers",
		map[string]interface{}{"name": "Rossi Mario", "phone_number": "333 1234567"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeEnvelope(t, w)["data"].(map[string]interface{})
	id := itoa(uint(created["id"].(float64)))

	w = performRequest(router, http.MethodGet, "/api/v1/customers?q=rossi", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeEnvelope(t, w)["data"].([]interface{}), 1)

	w = performRequest(router, http.MethodPut, "/api/v1/customers/"+id,
		map[string]interface{}{"name": "Rossi Maria", "address": "Via Roma 1"})
	require.Equal(t, http.StatusOK, w.Code)

	var customer models.Customer
	require.NoError(t, db.First(&customer).Error)
	assert.Equal(t, "Rossi Maria", customer.Name)
	require.NotNil(t, customer.Address)
	assert.Equal(t, "Via Roma 1", *customer.Address)

	w = performRequest(router, http.MethodDelete, "/api/v1/customers/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSuggestCustomers(t *testing.T) {
	db := setupTestDB(t)
	setupEngine(db)

	for _, name := range []string{"Rossi Mario", "Rossini Paolo", "Bianchi Anna"} {
		require.NoError(t, db.Create(&models.Customer{Name: name}).Error)
	}

	router := newTestRouter("auth0|office")
	router.GET("/api/v1/customers/suggest", SuggestCustomers)

	w := performRequest(router, http.MethodGet, "/api/v1/customers/suggest?q=ross", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeEnvelope(t, w)["data"].([]interface{}), 2)

	// Blank query suggests nothing instead of everything
	w = performRequest(router, http.MethodGet, "/api/v1/customers/suggest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeEnvelope(t, w)["data"].([]interface{}))
}
