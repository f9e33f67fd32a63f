package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Engine bundles the fulfillment coordination components over a single
// store boundary.
type Engine struct {
	Store    OrderStore
	Registry *WorkStatusRegistry
	Pricing  *PricingService
	Prices   *PriceResolver
	Statuses *StatusMachine
	Lookup   *BarcodeLookup
	Batch    *BatchCoordinator
}

var engineInstance *Engine

// InitEngine wires the engine components over their collaborators and
// registers the instance.
func InitEngine(store OrderStore, printer Printer, labels LabelStorage, settle time.Duration) *Engine {
	registry := NewWorkStatusRegistry(store)
	statuses := NewStatusMachine(store, registry)

	engineInstance = &Engine{
		Store:    store,
		Registry: registry,
		Pricing:  NewPricingService(store),
		Prices:   NewPriceResolver(store),
		Statuses: statuses,
		Lookup:   NewBarcodeLookup(store, registry),
		Batch:    NewBatchCoordinator(store, statuses, printer, labels, settle),
	}
	return engineInstance
}

// GetEngine returns the initialized engine instance
func GetEngine() *Engine {
	return engineInstance
}

// SetEngine sets the engine instance (primarily for testing)
func SetEngine(e *Engine) {
	engineInstance = e
}

// NewBarcode returns a fresh order barcode: 12 uppercase characters derived
// from a UUID, safe for both QR and CODE128 encoding.
func NewBarcode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:12])
}
