package services

import (
	"context"
	"log"

	"github.com/officina-stampa/fulfillment-api/models"
)

// StatusMachine validates and applies status transitions for single orders.
// The valid states are whatever the registry resolves for the order's
// classification; any state may move to any other, forward or backward.
type StatusMachine struct {
	store    OrderStore
	registry *WorkStatusRegistry
}

// NewStatusMachine builds a status machine over the store and registry.
func NewStatusMachine(store OrderStore, registry *WorkStatusRegistry) *StatusMachine {
	return &StatusMachine{store: store, registry: registry}
}

// InitialStatus is the first element of the resolved vocabulary for a
// classification, assigned to newly created orders.
func (m *StatusMachine) InitialStatus(ctx context.Context, productTypeID uint, subCategoryID *uint) string {
	vocabulary := m.registry.Resolve(ctx, productTypeID, subCategoryID)
	return vocabulary[0]
}

// Apply validates the target softly against the order's vocabulary (an
// unknown label is logged, never rejected), writes the update to the store
// and patches the cache only on success. Failures leave local state
// untouched; the caller may retry immediately.
func (m *StatusMachine) Apply(ctx context.Context, cache *OrderCache, orderID uint, update StatusUpdate) error {
	if update.Status != StatusDownloaded {
		if order, ok := m.lookupOrder(ctx, cache, orderID); ok {
			vocabulary := m.registry.Resolve(ctx, order.ProductTypeID, order.SubCategoryID)
			if !containsStatus(vocabulary, update.Status) {
				log.Printf("Status %q is not in the vocabulary for order %d, applying anyway", update.Status, orderID)
			}
		}
	}

	if err := m.store.UpdateStatus(ctx, orderID, update); err != nil {
		return err
	}
	if cache != nil {
		cache.PatchStatus(orderID, update.Status, update.CustomNotes, update.WorkerID)
	}
	statusUpdatesTotal.Inc()
	return nil
}

// MarkDownloaded overlays the synthetic "Scaricato" status after a
// successful label print or export, regardless of the prior workflow status.
func (m *StatusMachine) MarkDownloaded(ctx context.Context, cache *OrderCache, orderID uint) error {
	return m.Apply(ctx, cache, orderID, StatusUpdate{Status: StatusDownloaded})
}

func (m *StatusMachine) lookupOrder(ctx context.Context, cache *OrderCache, orderID uint) (models.Order, bool) {
	if cache != nil {
		if order, ok := cache.Get(orderID); ok {
			return order, true
		}
	}
	order, err := m.store.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, false
	}
	return *order, true
}

func containsStatus(vocabulary []string, status string) bool {
	for _, s := range vocabulary {
		if s == status {
			return true
		}
	}
	return false
}
