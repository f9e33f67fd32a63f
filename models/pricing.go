package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceList holds a per-square-metre rate. A row with a CustomerID is a
// customer-specific agreement and wins over the generic row for the same
// classification.
type PriceList struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerID    *uint           `gorm:"index" json:"customer_id"`
	ProductTypeID uint            `gorm:"not null;index" json:"product_type_id"`
	SubCategoryID *uint           `gorm:"index" json:"sub_category_id"`
	PricePerSqm   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_sqm"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TableName specifies the table name for the PriceList model
func (PriceList) TableName() string {
	return "price_lists"
}

// ColorIncrement is a percent surcharge applied when an order uses the color.
type ColorIncrement struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Color            string          `gorm:"uniqueIndex;not null" json:"color"`
	PercentIncrement decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"percent_increment"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TableName specifies the table name for the ColorIncrement model
func (ColorIncrement) TableName() string {
	return "color_increments"
}
