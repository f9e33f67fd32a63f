package services

import (
	"context"
	"fmt"
	"sync"
)

// MockPrinter records print requests for testing
type MockPrinter struct {
	printed []uint
	failIDs map[uint]bool
	mu      sync.Mutex
}

// NewMockPrinter creates a new mock printer
func NewMockPrinter() *MockPrinter {
	return &MockPrinter{failIDs: make(map[uint]bool)}
}

// FailFor makes printing the given order fail (for testing assertions)
func (m *MockPrinter) FailFor(orderID uint) {
	m.mu.Lock()
	m.failIDs[orderID] = true
	m.mu.Unlock()
}

// Print records the print request
func (m *MockPrinter) Print(ctx context.Context, orderID uint, label []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failIDs[orderID] {
		return fmt.Errorf("simulated print failure for order %d", orderID)
	}
	m.printed = append(m.printed, orderID)
	return nil
}

// Printed returns the order IDs printed, in order
func (m *MockPrinter) Printed() []uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]uint, len(m.printed))
	copy(out, m.printed)
	return out
}
