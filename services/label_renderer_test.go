package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officina-stampa/fulfillment-api/models"
)

func labelOrder() models.Order {
	phone := "333 1234567"
	return models.Order{
		ID:            12,
		Barcode:       "A1B2C3D4E5F6",
		CustomerName:  "Bianchi",
		PhoneNumber:   &phone,
		ProductTypeID: 1,
		ProductType:   models.ProductType{ID: 1, Name: "Adesivo"},
		Color:         "Rosso",
		Dimensions:    "50x70",
		Quantity:      3,
		PriceTotal:    decimal.RequireFromString("12.00"),
	}
}

func TestRender_BaseGeometry(t *testing.T) {
	img, err := LabelRenderer{}.Render(labelOrder(), 1)

	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, LabelWidth, bounds.Dx())
	assert.Equal(t, LabelHeight, bounds.Dy())
}

func TestRender_ExportScaleDoublesGeometry(t *testing.T) {
	img, err := LabelRenderer{}.Render(labelOrder(), ExportScale)

	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, LabelWidth*ExportScale, bounds.Dx())
	assert.Equal(t, LabelHeight*ExportScale, bounds.Dy())
}

func TestRenderPNG_DeterministicForSameSnapshot(t *testing.T) {
	order := labelOrder()

	first, err := LabelRenderer{}.RenderPNG(order, 1)
	require.NoError(t, err)
	second, err := LabelRenderer{}.RenderPNG(order, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderPNG_DiffersWhenOrderDiffers(t *testing.T) {
	first, err := LabelRenderer{}.RenderPNG(labelOrder(), 1)
	require.NoError(t, err)

	other := labelOrder()
	other.Barcode = "F6E5D4C3B2A1"
	second, err := LabelRenderer{}.RenderPNG(other, 1)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLabelFileName(t *testing.T) {
	assert.Equal(t, "etichetta-12.png", LabelFileName(12))
}
