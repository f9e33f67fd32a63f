package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/officina-stampa/fulfillment-api/config"
	"github.com/officina-stampa/fulfillment-api/models"
	"github.com/officina-stampa/fulfillment-api/services"
)

// setupTestDB creates an in-memory database with the full schema and two
// office users (one admin).
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Worker{},
		&models.ProductType{},
		&models.SubCategory{},
		&models.PriceList{},
		&models.ColorIncrement{},
		&models.WorkStatusConfig{},
		&models.Order{},
	))
	config.SetDB(db)

	require.NoError(t, db.Create(&models.User{
		Auth0ID: "auth0|admin",
		Name:    "Admin",
		Email:   "admin@example.com",
		Role:    "admin",
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Auth0ID: "auth0|office",
		Name:    "Office",
		Email:   "office@example.com",
		Role:    "office",
	}).Error)

	return db
}

// setupEngine wires the engine over the test database with mock printer and
// label storage, returning the mocks for assertions.
func setupEngine(db *gorm.DB) (*services.MockPrinter, *services.MockLabelStorage) {
	printer := services.NewMockPrinter()
	labels := services.NewMockLabelStorage()
	services.InitEngine(services.NewGormOrderStore(db), printer, labels, 0)
	return printer, labels
}

// mockAuthMiddleware impersonates a validated JWT for the given subject.
func mockAuthMiddleware(auth0ID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", auth0ID)
		c.Next()
	}
}

// seedTaxonomy creates a product type with one subcategory.
func seedTaxonomy(t *testing.T, db *gorm.DB) (models.ProductType, models.SubCategory) {
	productType := models.ProductType{Name: "Striscione"}
	require.NoError(t, db.Create(&productType).Error)
	sub := models.SubCategory{ProductTypeID: productType.ID, Name: "PVC"}
	require.NoError(t, db.Create(&sub).Error)
	return productType, sub
}

// seedOrder inserts an order ready for batch and status tests.
func seedOrder(t *testing.T, db *gorm.DB, productType models.ProductType, barcode string) models.Order {
	order := models.Order{
		Barcode:       barcode,
		CustomerName:  "Rossi",
		ProductTypeID: productType.ID,
		Quantity:      1,
		Dimensions:    "100x100",
		Color:         "Bianco",
		PriceTotal:    decimal.RequireFromString("25.00"),
		Status:        "In attesa",
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func newTestRouter(auth0ID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(mockAuthMiddleware(auth0ID))
	return router
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
