package services

import (
	"context"
	"strings"

	"github.com/officina-stampa/fulfillment-api/models"
)

// LookupResult is everything the scan view needs before workflow actions are
// enabled: the order and its resolved status vocabulary.
type LookupResult struct {
	Order      models.Order `json:"order"`
	Vocabulary []string     `json:"vocabulary"`
}

// BarcodeLookup maps a decoded barcode string to exactly one order.
type BarcodeLookup struct {
	store    OrderStore
	registry *WorkStatusRegistry
}

// NewBarcodeLookup builds a lookup service over the store and registry.
func NewBarcodeLookup(store OrderStore, registry *WorkStatusRegistry) *BarcodeLookup {
	return &BarcodeLookup{store: store, registry: registry}
}

// Lookup resolves a decoded barcode to its order and status vocabulary.
// Three outcomes: the result, ErrNotFound (terminal, not worth retrying), or
// a transport error (retry is appropriate). The vocabulary is resolved
// before the result is returned so the caller is immediately actionable;
// vocabulary resolution itself never fails.
func (l *BarcodeLookup) Lookup(ctx context.Context, code string) (*LookupResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &ValidationError{Field: "barcode", Message: "barcode is required"}
	}

	order, err := l.store.FindByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}

	vocabulary := l.registry.Resolve(ctx, order.ProductTypeID, order.SubCategoryID)
	return &LookupResult{Order: *order, Vocabulary: vocabulary}, nil
}
