package models

import "time"

// ProductType is the top level of the product classification taxonomy.
type ProductType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the ProductType model
func (ProductType) TableName() string {
	return "product_types"
}

// SubCategory optionally narrows a ProductType.
type SubCategory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductTypeID uint      `gorm:"not null;index" json:"product_type_id"`
	Name          string    `gorm:"not null" json:"name"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for the SubCategory model
func (SubCategory) TableName() string {
	return "sub_categories"
}
