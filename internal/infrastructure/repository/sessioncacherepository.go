package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stocktake/internal/domain/stock"
	"stocktake/internal/infrastructure/persistence/models"
)

// cacheRowID pins the shared cache to a single well-known row.
const cacheRowID = 1

// GormSessionCacheRepository implements stock.CacheRepository using GORM.
// Both save paths are upserts against the fixed row so the repository works
// whether or not the migration seeded it.
type GormSessionCacheRepository struct {
	db *gorm.DB
}

// NewGormSessionCacheRepository creates a new GORM session cache repository
func NewGormSessionCacheRepository(db *gorm.DB) *GormSessionCacheRepository {
	return &GormSessionCacheRepository{db: db}
}

// Get retrieves the shared cache record, or (nil, nil) when it does not exist.
func (r *GormSessionCacheRepository) Get(ctx context.Context) (*stock.CacheRecord, error) {
	var model models.SessionCacheModel
	err := r.db.WithContext(ctx).First(&model, cacheRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toCacheRecord(&model), nil
}

// SaveSession stores a session token and its timestamp, leaving the stock
// fields untouched.
func (r *GormSessionCacheRepository) SaveSession(ctx context.Context, sessionID string, updatedAt time.Time) error {
	model := models.SessionCacheModel{
		ID:        cacheRowID,
		SessionID: sessionID,
		UpdatedAt: &updatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"session_id", "updated_at"}),
	}).Create(&model).Error
}

// SaveStock stores a stock payload and its timestamp, leaving the session
// fields untouched.
func (r *GormSessionCacheRepository) SaveStock(ctx context.Context, payload json.RawMessage, updatedAt time.Time) error {
	model := models.SessionCacheModel{
		ID:             cacheRowID,
		SessionID:      stock.SessionUnset,
		StockData:      datatypes.JSON(payload),
		StockUpdatedAt: &updatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock_data", "stock_updated_at"}),
	}).Create(&model).Error
}

func toCacheRecord(m *models.SessionCacheModel) *stock.CacheRecord {
	rec := &stock.CacheRecord{
		SessionID: m.SessionID,
		StockData: json.RawMessage(m.StockData),
	}
	if m.UpdatedAt != nil {
		rec.SessionUpdatedAt = *m.UpdatedAt
	}
	if m.StockUpdatedAt != nil {
		rec.StockUpdatedAt = *m.StockUpdatedAt
	}
	return rec
}
