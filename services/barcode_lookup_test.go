package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officina-stampa/fulfillment-api/models"
)

func TestLookup_FoundReturnsOrderAndVocabulary(t *testing.T) {
	store := &stubStore{
		findByBarcodeFn: func(ctx context.Context, code string) (*models.Order, error) {
			return &models.Order{ID: 9, Barcode: code, ProductTypeID: 1}, nil
		},
		getWorkStatusesFn: func(ctx context.Context, productTypeID uint, subCategoryID *uint) (*models.WorkStatusConfig, error) {
			return &models.WorkStatusConfig{StatusList: `["Ricevuto","Spedito"]`}, nil
		},
	}
	lookup := NewBarcodeLookup(store, NewWorkStatusRegistry(store))

	result, err := lookup.Lookup(context.Background(), "ABC123DEF456")

	require.NoError(t, err)
	assert.Equal(t, uint(9), result.Order.ID)
	assert.Equal(t, []string{"Ricevuto", "Spedito"}, result.Vocabulary)
}

func TestLookup_UnknownCodeIsNotFound(t *testing.T) {
	store := &stubStore{}
	lookup := NewBarcodeLookup(store, NewWorkStatusRegistry(store))

	_, err := lookup.Lookup(context.Background(), "UNKNOWN")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_TransportFailureIsNotNotFound(t *testing.T) {
	store := &stubStore{
		findByBarcodeFn: func(ctx context.Context, code string) (*models.Order, error) {
			return nil, errors.New("connection refused")
		},
	}
	lookup := NewBarcodeLookup(store, NewWorkStatusRegistry(store))

	_, err := lookup.Lookup(context.Background(), "ABC123DEF456")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLookup_BlankCodeIsValidationError(t *testing.T) {
	store := &stubStore{}
	lookup := NewBarcodeLookup(store, NewWorkStatusRegistry(store))

	_, err := lookup.Lookup(context.Background(), "   ")

	assert.True(t, IsValidation(err))
}
