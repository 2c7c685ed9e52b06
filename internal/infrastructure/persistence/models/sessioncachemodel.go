package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionCacheModel is the single shared cache row (id fixed to 1). The two
// timestamps are managed explicitly; gorm's automatic timestamping is
// disabled so a stock update never touches the session timestamp.
type SessionCacheModel struct {
	ID             uint           `gorm:"primarykey"`
	SessionID      string         `gorm:"column:session_id;size:255;not null;default:'none'"`
	UpdatedAt      *time.Time     `gorm:"column:updated_at;autoUpdateTime:false;autoCreateTime:false"`
	StockData      datatypes.JSON `gorm:"column:stock_data"`
	StockUpdatedAt *time.Time     `gorm:"column:stock_updated_at"`
}

// TableName specifies the table name for GORM
func (SessionCacheModel) TableName() string {
	return "session_cache"
}
