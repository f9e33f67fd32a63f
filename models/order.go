package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents one customer's custom product request, tracked from
// intake to delivery. Deletion is hard: no soft-delete column.
type Order struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	Barcode          string           `gorm:"uniqueIndex;not null" json:"barcode"`
	CustomerID       *uint            `gorm:"index" json:"customer_id,omitempty"`
	CustomerName     string           `gorm:"not null" json:"customer_name"`
	ProductTypeID    uint             `gorm:"not null;index" json:"product_type_id"`
	ProductType      ProductType      `gorm:"foreignKey:ProductTypeID" json:"product_type"`
	SubCategoryID    *uint            `gorm:"index" json:"sub_category_id"`
	SubCategory      *SubCategory     `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`
	Quantity         int              `gorm:"not null;check:quantity > 0" json:"quantity"`
	Dimensions       string           `gorm:"not null" json:"dimensions"` // "WxH" in cm, e.g. "120x240"
	Color            string           `json:"color"`
	CustomNotes      string           `json:"custom_notes"`
	PhoneNumber      *string          `json:"phone_number"`
	Address          *string          `json:"address"`
	PriceTotal       decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price_total"`
	ManualPrice      *decimal.Decimal `gorm:"type:decimal(10,2)" json:"manual_price"` // nullable admin override
	Status           string           `gorm:"not null" json:"status"`
	AssignedWorkerID *uint            `gorm:"index" json:"assigned_worker_id"`
	AssignedWorker   *Worker          `gorm:"foreignKey:AssignedWorkerID" json:"assigned_worker,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// EffectivePrice is the price actually charged: the manual override when
// present, otherwise the computed total.
func (o *Order) EffectivePrice() decimal.Decimal {
	if o.ManualPrice != nil {
		return *o.ManualPrice
	}
	return o.PriceTotal
}
