package models

import "time"

// WorkStatusConfig stores the ordered status vocabulary for a
// (product type, sub-category) pair. StatusList is a JSON-encoded array of
// labels; the first element is the initial status for new orders.
type WorkStatusConfig struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductTypeID uint      `gorm:"not null;index:idx_work_status_key,unique" json:"product_type_id"`
	SubCategoryID *uint     `gorm:"index:idx_work_status_key,unique" json:"sub_category_id"`
	StatusList    string    `gorm:"not null" json:"status_list"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the WorkStatusConfig model
func (WorkStatusConfig) TableName() string {
	return "work_status_configs"
}
