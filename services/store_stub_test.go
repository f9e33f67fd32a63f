package services

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/officina-stampa/fulfillment-api/models"
)

// stubStore is a function-field OrderStore for unit tests. Unset fields
// answer ErrNotFound (lookups) or succeed silently (writes).
type stubStore struct {
	mu sync.Mutex

	listOrdersFn        func(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	getOrderFn          func(ctx context.Context, id uint) (*models.Order, error)
	findByBarcodeFn     func(ctx context.Context, code string) (*models.Order, error)
	createOrderFn       func(ctx context.Context, order *models.Order) error
	updateStatusFn      func(ctx context.Context, id uint, update StatusUpdate) error
	updateManualPriceFn func(ctx context.Context, id uint, price *decimal.Decimal) error
	deleteOrderFn       func(ctx context.Context, id uint) error
	getWorkStatusesFn   func(ctx context.Context, productTypeID uint, subCategoryID *uint) (*models.WorkStatusConfig, error)
	saveWorkStatusesFn  func(ctx context.Context, productTypeID uint, subCategoryID *uint, statuses []string) error
	suggestCustomersFn  func(ctx context.Context, query string, limit int) ([]CustomerSuggestion, error)
	findPriceListFn     func(ctx context.Context, customerID *uint, productTypeID uint, subCategoryID *uint) (*models.PriceList, error)
	findColorIncFn      func(ctx context.Context, color string) (*models.ColorIncrement, error)

	workStatusFetches int
	statusWrites      []StatusUpdate
	priceWrites       []*decimal.Decimal
	deleted           []uint
}

func (s *stubStore) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	if s.listOrdersFn != nil {
		return s.listOrdersFn(ctx, filter)
	}
	return nil, nil
}

func (s *stubStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	if s.getOrderFn != nil {
		return s.getOrderFn(ctx, id)
	}
	return nil, ErrNotFound
}

func (s *stubStore) FindByBarcode(ctx context.Context, code string) (*models.Order, error) {
	if s.findByBarcodeFn != nil {
		return s.findByBarcodeFn(ctx, code)
	}
	return nil, ErrNotFound
}

func (s *stubStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if s.createOrderFn != nil {
		return s.createOrderFn(ctx, order)
	}
	return nil
}

func (s *stubStore) UpdateStatus(ctx context.Context, id uint, update StatusUpdate) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, update)
	}
	s.mu.Lock()
	s.statusWrites = append(s.statusWrites, update)
	s.mu.Unlock()
	return nil
}

func (s *stubStore) UpdateManualPrice(ctx context.Context, id uint, price *decimal.Decimal) error {
	if s.updateManualPriceFn != nil {
		return s.updateManualPriceFn(ctx, id, price)
	}
	s.mu.Lock()
	s.priceWrites = append(s.priceWrites, price)
	s.mu.Unlock()
	return nil
}

func (s *stubStore) DeleteOrder(ctx context.Context, id uint) error {
	if s.deleteOrderFn != nil {
		return s.deleteOrderFn(ctx, id)
	}
	s.mu.Lock()
	s.deleted = append(s.deleted, id)
	s.mu.Unlock()
	return nil
}

func (s *stubStore) GetWorkStatuses(ctx context.Context, productTypeID uint, subCategoryID *uint) (*models.WorkStatusConfig, error) {
	s.mu.Lock()
	s.workStatusFetches++
	s.mu.Unlock()
	if s.getWorkStatusesFn != nil {
		return s.getWorkStatusesFn(ctx, productTypeID, subCategoryID)
	}
	return nil, ErrNotFound
}

func (s *stubStore) SaveWorkStatuses(ctx context.Context, productTypeID uint, subCategoryID *uint, statuses []string) error {
	if s.saveWorkStatusesFn != nil {
		return s.saveWorkStatusesFn(ctx, productTypeID, subCategoryID, statuses)
	}
	return nil
}

func (s *stubStore) SuggestCustomers(ctx context.Context, query string, limit int) ([]CustomerSuggestion, error) {
	if s.suggestCustomersFn != nil {
		return s.suggestCustomersFn(ctx, query, limit)
	}
	return nil, nil
}

func (s *stubStore) FindPriceList(ctx context.Context, customerID *uint, productTypeID uint, subCategoryID *uint) (*models.PriceList, error) {
	if s.findPriceListFn != nil {
		return s.findPriceListFn(ctx, customerID, productTypeID, subCategoryID)
	}
	return nil, ErrNotFound
}

func (s *stubStore) FindColorIncrement(ctx context.Context, color string) (*models.ColorIncrement, error) {
	if s.findColorIncFn != nil {
		return s.findColorIncFn(ctx, color)
	}
	return nil, ErrNotFound
}

func (s *stubStore) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workStatusFetches
}

func uintPtr(v uint) *uint { return &v }
