package models

import "time"

// ProductModel is the persistence model for the counting sheet.
type ProductModel struct {
	ID        uint   `gorm:"primarykey"`
	Code      string `gorm:"uniqueIndex;not null;size:100"`
	Name      string `gorm:"not null;size:255;index"`
	Quantity  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}
