package services

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/officina-stampa/fulfillment-api/models"
)

// OrderCache is the local keyed view of the order list. Every mutation goes
// through an explicit patch keyed by order ID, never by position, so the
// cache stays correct while filters and deletes reorder the visible list.
type OrderCache struct {
	mu     sync.RWMutex
	orders map[uint]*models.Order
}

// NewOrderCache builds a cache seeded with the given orders.
func NewOrderCache(orders ...models.Order) *OrderCache {
	c := &OrderCache{orders: make(map[uint]*models.Order, len(orders))}
	for i := range orders {
		o := orders[i]
		c.orders[o.ID] = &o
	}
	return c
}

// Put inserts or replaces an order.
func (c *OrderCache) Put(o models.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders[o.ID] = &o
}

// Get returns a copy of the cached order, if present.
func (c *OrderCache) Get(id uint) (models.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.orders[id]
	if !ok {
		return models.Order{}, false
	}
	return *o, true
}

// PatchStatus updates status and, when provided, notes and assigned worker.
func (c *OrderCache) PatchStatus(id uint, status string, notes *string, workerID *uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.orders[id]
	if !ok {
		return
	}
	o.Status = status
	if notes != nil {
		o.CustomNotes = *notes
	}
	if workerID != nil {
		o.AssignedWorkerID = workerID
	}
}

// PatchManualPrice updates the manual override; nil clears it.
func (c *OrderCache) PatchManualPrice(id uint, price *decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.orders[id]
	if !ok {
		return
	}
	o.ManualPrice = price
}

// Remove drops a single order.
func (c *OrderCache) Remove(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.orders, id)
}

// RemoveAll drops every given ID, present or not.
func (c *OrderCache) RemoveAll(ids []uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.orders, id)
	}
}

// Snapshot returns the cached orders sorted by ID.
func (c *OrderCache) Snapshot() []models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Order, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of cached orders.
func (c *OrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.orders)
}
