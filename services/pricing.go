package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/officina-stampa/fulfillment-api/utils"
)

var oneHundred = decimal.NewFromInt(100)

// PriceInput is everything the computed price depends on.
type PriceInput struct {
	CustomerID    *uint
	ProductTypeID uint
	SubCategoryID *uint
	Dimensions    string
	Color         string
	Quantity      int
}

// PricingService derives the computed order price from the configured
// per-square-metre price lists and color surcharges.
type PricingService struct {
	store OrderStore
}

// NewPricingService builds a pricing service over the given store.
func NewPricingService(store OrderStore) *PricingService {
	return &PricingService{store: store}
}

// ComputePrice returns price_per_sqm x area x quantity, increased by the
// color surcharge when one is configured, rounded to cents. Orders whose
// classification has no price list price at zero; the admin is expected to
// set a manual price for those.
func (p *PricingService) ComputePrice(ctx context.Context, in PriceInput) (decimal.Decimal, error) {
	area, err := utils.ParseDimensions(in.Dimensions)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "dimensions", Message: err.Error()}
	}
	if in.Quantity < 1 {
		return decimal.Zero, &ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	list, err := p.store.FindPriceList(ctx, in.CustomerID, in.ProductTypeID, in.SubCategoryID)
	if errors.Is(err, ErrNotFound) {
		return decimal.Zero.Round(2), nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("price computation failed: %w", err)
	}

	price := list.PricePerSqm.Mul(area).Mul(decimal.NewFromInt(int64(in.Quantity)))

	if in.Color != "" {
		inc, err := p.store.FindColorIncrement(ctx, in.Color)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return decimal.Zero, fmt.Errorf("price computation failed: %w", err)
		}
		if inc != nil {
			factor := decimal.NewFromInt(1).Add(inc.PercentIncrement.Div(oneHundred))
			price = price.Mul(factor)
		}
	}

	return price.Round(2), nil
}
