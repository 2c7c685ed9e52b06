package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"stocktake/internal/domain/product"
	"stocktake/internal/infrastructure/persistence/models"
	apperrors "stocktake/internal/shared/errors"
)

// GormProductRepository implements product.Repository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List returns a page of products ordered by code, optionally filtered by a
// case-insensitive substring match on code or name.
func (r *GormProductRepository) List(ctx context.Context, search string, offset, limit int) ([]*product.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	if err := query.Order("code ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*product.Product, len(rows))
	for i := range rows {
		products[i] = toProduct(&rows[i])
	}
	return products, total, nil
}

// GetByCode retrieves a product by its unique code.
func (r *GormProductRepository) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	var model models.ProductModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, err
	}
	return toProduct(&model), nil
}

// UpdateQuantity sets (or clears, when quantity is nil) the counted quantity
// of a product and returns the updated entity.
func (r *GormProductRepository) UpdateQuantity(ctx context.Context, code string, quantity *int64) (*product.Product, error) {
	var model models.ProductModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&model).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}

	model.Quantity = quantity
	return toProduct(&model), nil
}

// CountingStats returns the total number of products and how many have a
// counted quantity recorded.
func (r *GormProductRepository) CountingStats(ctx context.Context) (total, counted int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.ProductModel{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("quantity IS NOT NULL").Count(&counted).Error; err != nil {
		return 0, 0, err
	}
	return total, counted, nil
}

func toProduct(m *models.ProductModel) *product.Product {
	return &product.Product{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
