package models

import "time"

// Worker is a shop-floor operator. Workers authenticate with a short access
// code at the scan station; their ID is attached to status updates.
type Worker struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null" json:"username"`
	AccessCode string    `gorm:"not null" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the Worker model
func (Worker) TableName() string {
	return "workers"
}
