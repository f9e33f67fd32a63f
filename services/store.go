package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/officina-stampa/fulfillment-api/models"
)

// StatusUpdate carries a status write together with its optional metadata.
type StatusUpdate struct {
	Status      string
	CustomNotes *string
	WorkerID    *uint
}

// OrderFilter narrows the order list the way the list view does.
type OrderFilter struct {
	Customer    string
	ProductType string
	Color       string
	Dimensions  string
	StartDate   *time.Time
	EndDate     *time.Time
}

// CustomerSuggestion is one autocomplete hit for the intake form.
type CustomerSuggestion struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
}

// OrderStore is the external order store boundary. The engine components all
// talk to the store through this interface; the GORM implementation below is
// the production collaborator.
type OrderStore interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	FindByBarcode(ctx context.Context, code string) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uint, update StatusUpdate) error
	UpdateManualPrice(ctx context.Context, id uint, price *decimal.Decimal) error
	DeleteOrder(ctx context.Context, id uint) error

	GetWorkStatuses(ctx context.Context, productTypeID uint, subCategoryID *uint) (*models.WorkStatusConfig, error)
	SaveWorkStatuses(ctx context.Context, productTypeID uint, subCategoryID *uint, statuses []string) error

	SuggestCustomers(ctx context.Context, query string, limit int) ([]CustomerSuggestion, error)

	FindPriceList(ctx context.Context, customerID *uint, productTypeID uint, subCategoryID *uint) (*models.PriceList, error)
	FindColorIncrement(ctx context.Context, color string) (*models.ColorIncrement, error)
}

// GormOrderStore implements OrderStore on the application database.
type GormOrderStore struct {
	db *gorm.DB
}

// NewGormOrderStore wraps a gorm handle in the store boundary.
func NewGormOrderStore(db *gorm.DB) *GormOrderStore {
	return &GormOrderStore{db: db}
}

// ListOrders returns the full order snapshot matching the filter, newest first.
func (s *GormOrderStore) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := s.db.WithContext(ctx).
		Preload("ProductType").
		Preload("SubCategory").
		Preload("AssignedWorker").
		Order("orders.id DESC")

	if filter.Customer != "" {
		q = q.Where("LOWER(customer_name) LIKE ?", "%"+lower(filter.Customer)+"%")
	}
	if filter.ProductType != "" {
		q = q.Joins("JOIN product_types ON product_types.id = orders.product_type_id").
			Where("LOWER(product_types.name) LIKE ?", "%"+lower(filter.ProductType)+"%")
	}
	if filter.Color != "" {
		q = q.Where("LOWER(color) LIKE ?", "%"+lower(filter.Color)+"%")
	}
	if filter.Dimensions != "" {
		q = q.Where("LOWER(dimensions) LIKE ?", "%"+lower(filter.Dimensions)+"%")
	}
	if filter.StartDate != nil {
		q = q.Where("orders.created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("orders.created_at < ?", filter.EndDate.AddDate(0, 0, 1))
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder loads a single order by ID.
func (s *GormOrderStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("ProductType").
		Preload("SubCategory").
		Preload("AssignedWorker").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", id, err)
	}
	return &order, nil
}

// FindByBarcode resolves a decoded barcode string to exactly one order.
func (s *GormOrderStore) FindByBarcode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("ProductType").
		Preload("SubCategory").
		Preload("AssignedWorker").
		Where("barcode = ?", code).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up barcode %s: %w", code, err)
	}
	return &order, nil
}

// CreateOrder persists a new order and reloads its relationships.
func (s *GormOrderStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return s.db.WithContext(ctx).
		Preload("ProductType").
		Preload("SubCategory").
		First(order, order.ID).Error
}

// UpdateStatus writes the status and, when present, notes and worker.
func (s *GormOrderStore) UpdateStatus(ctx context.Context, id uint, update StatusUpdate) error {
	values := map[string]interface{}{"status": update.Status}
	if update.CustomNotes != nil {
		values["custom_notes"] = *update.CustomNotes
	}
	if update.WorkerID != nil {
		values["assigned_worker_id"] = *update.WorkerID
	}
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateManualPrice sets or clears (nil) the manual price override.
func (s *GormOrderStore) UpdateManualPrice(ctx context.Context, id uint, price *decimal.Decimal) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("manual_price", price)
	if res.Error != nil {
		return fmt.Errorf("failed to update manual price for order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrder removes the order permanently.
func (s *GormOrderStore) DeleteOrder(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Order{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetWorkStatuses loads the configured vocabulary row for a classification.
// Absence is reported as ErrNotFound, not an empty row.
func (s *GormOrderStore) GetWorkStatuses(ctx context.Context, productTypeID uint, subCategoryID *uint) (*models.WorkStatusConfig, error) {
	q := s.db.WithContext(ctx).Where("product_type_id = ?", productTypeID)
	if subCategoryID != nil {
		q = q.Where("sub_category_id = ?", *subCategoryID)
	} else {
		q = q.Where("sub_category_id IS NULL")
	}

	var cfg models.WorkStatusConfig
	err := q.First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load work statuses: %w", err)
	}
	return &cfg, nil
}

// SaveWorkStatuses upserts the vocabulary row for a classification.
func (s *GormOrderStore) SaveWorkStatuses(ctx context.Context, productTypeID uint, subCategoryID *uint, statuses []string) error {
	encoded, err := json.Marshal(statuses)
	if err != nil {
		return fmt.Errorf("failed to encode status list: %w", err)
	}

	existing, err := s.GetWorkStatuses(ctx, productTypeID, subCategoryID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		existing.StatusList = string(encoded)
		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return fmt.Errorf("failed to save work statuses: %w", err)
		}
		return nil
	}

	cfg := models.WorkStatusConfig{
		ProductTypeID: productTypeID,
		SubCategoryID: subCategoryID,
		StatusList:    string(encoded),
	}
	if err := s.db.WithContext(ctx).Create(&cfg).Error; err != nil {
		return fmt.Errorf("failed to save work statuses: %w", err)
	}
	return nil
}

// SuggestCustomers returns up to limit customers whose name contains the
// query. Debouncing is the caller's concern.
func (s *GormOrderStore) SuggestCustomers(ctx context.Context, query string, limit int) ([]CustomerSuggestion, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+lower(query)+"%").
		Order("name").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to suggest customers: %w", err)
	}

	suggestions := make([]CustomerSuggestion, 0, len(customers))
	for _, c := range customers {
		suggestions = append(suggestions, CustomerSuggestion{
			ID:          c.ID,
			Name:        c.Name,
			PhoneNumber: c.PhoneNumber,
			Address:     c.Address,
		})
	}
	return suggestions, nil
}

// FindPriceList resolves the applicable rate: a customer-specific row wins
// over the generic row for the same classification.
func (s *GormOrderStore) FindPriceList(ctx context.Context, customerID *uint, productTypeID uint, subCategoryID *uint) (*models.PriceList, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		q = q.Where("product_type_id = ?", productTypeID)
		if subCategoryID != nil {
			return q.Where("sub_category_id = ?", *subCategoryID)
		}
		return q.Where("sub_category_id IS NULL")
	}

	var list models.PriceList
	if customerID != nil {
		err := scope(s.db.WithContext(ctx).Where("customer_id = ?", *customerID)).First(&list).Error
		if err == nil {
			return &list, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load price list: %w", err)
		}
	}

	err := scope(s.db.WithContext(ctx).Where("customer_id IS NULL")).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load price list: %w", err)
	}
	return &list, nil
}

// FindColorIncrement loads the percent surcharge for a color, if configured.
func (s *GormOrderStore) FindColorIncrement(ctx context.Context, color string) (*models.ColorIncrement, error) {
	var inc models.ColorIncrement
	err := s.db.WithContext(ctx).Where("LOWER(color) = ?", lower(color)).First(&inc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load color increment: %w", err)
	}
	return &inc, nil
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
