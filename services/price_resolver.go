package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/officina-stampa/fulfillment-api/models"
)

// EffectivePrice resolves the price actually charged for an order: the
// manual override when present, otherwise the computed total.
func EffectivePrice(o models.Order) decimal.Decimal {
	return o.EffectivePrice()
}

// PriceResolver applies manual price overrides with explicit capability
// gating and keeps the local cache in step with the store.
type PriceResolver struct {
	store OrderStore
}

// NewPriceResolver builds a resolver over the given store.
func NewPriceResolver(store OrderStore) *PriceResolver {
	return &PriceResolver{store: store}
}

// SetManualPrice sets (or clears, with nil) the manual override. Non-admin
// callers are refused before any store call. On success the cached order is
// patched; on failure it is left untouched.
func (r *PriceResolver) SetManualPrice(ctx context.Context, role Role, cache *OrderCache, orderID uint, value *decimal.Decimal) error {
	if !role.CanOverridePrice() {
		return ErrPermissionDenied
	}
	if value != nil && value.IsNegative() {
		return &ValidationError{Field: "manual_price", Message: "must not be negative"}
	}

	if err := r.store.UpdateManualPrice(ctx, orderID, value); err != nil {
		return err
	}
	if cache != nil {
		cache.PatchManualPrice(orderID, value)
	}
	return nil
}
