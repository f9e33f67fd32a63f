package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officina-stampa/fulfillment-api/models"
)

func TestEffectivePrice_ManualOverridesComputed(t *testing.T) {
	order := models.Order{PriceTotal: decimal.RequireFromString("100.00")}
	assert.Equal(t, "100.00", EffectivePrice(order).StringFixed(2))

	manual := decimal.RequireFromString("75.50")
	order.ManualPrice = &manual
	assert.Equal(t, "75.50", EffectivePrice(order).StringFixed(2))

	order.ManualPrice = nil
	assert.Equal(t, "100.00", EffectivePrice(order).StringFixed(2))
}

func TestSetManualPrice_OverrideAndClearScenario(t *testing.T) {
	store := &stubStore{}
	resolver := NewPriceResolver(store)
	cache := NewOrderCache(models.Order{
		ID:         7,
		PriceTotal: decimal.RequireFromString("100.00"),
	})

	// Override to 75.50
	manual := decimal.RequireFromString("75.50")
	require.NoError(t, resolver.SetManualPrice(context.Background(), RoleAdmin, cache, 7, &manual))
	order, ok := cache.Get(7)
	require.True(t, ok)
	assert.Equal(t, "75.50", order.EffectivePrice().StringFixed(2))

	// Clear: back to the computed total
	require.NoError(t, resolver.SetManualPrice(context.Background(), RoleAdmin, cache, 7, nil))
	order, _ = cache.Get(7)
	assert.Equal(t, "100.00", order.EffectivePrice().StringFixed(2))
}

func TestSetManualPrice_NonAdminRefusedBeforeStore(t *testing.T) {
	storeCalled := false
	store := &stubStore{
		updateManualPriceFn: func(ctx context.Context, id uint, price *decimal.Decimal) error {
			storeCalled = true
			return nil
		},
	}
	resolver := NewPriceResolver(store)

	manual := decimal.RequireFromString("50")
	for _, role := range []Role{RoleOffice, RoleWorker} {
		err := resolver.SetManualPrice(context.Background(), role, nil, 1, &manual)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	}
	assert.False(t, storeCalled, "permission check must run before any store call")
}

func TestSetManualPrice_NegativeIsValidationError(t *testing.T) {
	resolver := NewPriceResolver(&stubStore{})

	negative := decimal.RequireFromString("-1")
	err := resolver.SetManualPrice(context.Background(), RoleAdmin, nil, 1, &negative)

	assert.True(t, IsValidation(err))
}

func TestSetManualPrice_StoreFailureLeavesCacheUntouched(t *testing.T) {
	store := &stubStore{
		updateManualPriceFn: func(ctx context.Context, id uint, price *decimal.Decimal) error {
			return errors.New("connection refused")
		},
	}
	resolver := NewPriceResolver(store)
	cache := NewOrderCache(models.Order{ID: 7, PriceTotal: decimal.RequireFromString("100.00")})

	manual := decimal.RequireFromString("75.50")
	err := resolver.SetManualPrice(context.Background(), RoleAdmin, cache, 7, &manual)

	assert.Error(t, err)
	order, _ := cache.Get(7)
	assert.Nil(t, order.ManualPrice)
}
