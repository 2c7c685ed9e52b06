package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stocktake/internal/infrastructure/persistence/models"
	apperrors "stocktake/internal/shared/errors"
)

func seedProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	qty := int64(12)
	rows := []models.ProductModel{
		{Code: "A-100", Name: "Bolt M6"},
		{Code: "A-200", Name: "Bolt M8", Quantity: &qty},
		{Code: "B-100", Name: "Washer"},
		{Code: "C-300", Name: "Nut m6"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func TestProductRepository_List(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	products, total, err := repo.List(ctx, "", 0, 10)

	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, products, 4)
	// Ordered by code.
	assert.Equal(t, "A-100", products[0].Code)
	assert.Equal(t, "C-300", products[3].Code)
}

func TestProductRepository_List_Pagination(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewGormProductRepository(db)

	products, total, err := repo.List(context.Background(), "", 2, 2)

	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, products, 2)
	assert.Equal(t, "B-100", products[0].Code)
}

func TestProductRepository_List_SearchCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewGormProductRepository(db)

	products, total, err := repo.List(context.Background(), "M6", 0, 10)

	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, products, 2)
	assert.Equal(t, "Bolt M6", products[0].Name)
	assert.Equal(t, "Nut m6", products[1].Name)
}

func TestProductRepository_List_SearchByCode(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewGormProductRepository(db)

	products, total, err := repo.List(context.Background(), "a-", 0, 10)

	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, products, 2)
}

func TestProductRepository_GetByCode(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewGormProductRepository(db)

	p, err := repo.GetByCode(context.Background(), "A-200")

	require.NoError(t, err)
	assert.Equal(t, "Bolt M8", p.Name)
	require.NotNil(t, p.Quantity)
	assert.EqualValues(t, 12, *p.Quantity)
	assert.True(t, p.Counted())
}

func TestProductRepository_GetByCode_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	_, err := repo.GetByCode(context.Background(), "missing")

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestProductRepository_UpdateQuantity(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	qty := int64(99)
	updated, err := repo.UpdateQuantity(ctx, "A-100", &qty)

	require.NoError(t, err)
	require.NotNil(t, updated.Quantity)
	assert.EqualValues(t, 99, *updated.Quantity)

	got, err := repo.GetByCode(ctx, "A-100")
	require.NoError(t, err)
	require.NotNil(t, got.Quantity)
	assert.EqualValues(t, 99, *got.Quantity)
}

func TestProductRepository_UpdateQuantity_Clear(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	updated, err := repo.UpdateQuantity(ctx, "A-200", nil)

	require.NoError(t, err)
	assert.Nil(t, updated.Quantity)
	assert.False(t, updated.Counted())

	got, err := repo.GetByCode(ctx, "A-200")
	require.NoError(t, err)
	assert.Nil(t, got.Quantity)
}

func TestProductRepository_UpdateQuantity_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)

	qty := int64(1)
	_, err := repo.UpdateQuantity(context.Background(), "missing", &qty)

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestProductRepository_CountingStats(t *testing.T) {
	db := setupTestDB(t)
	seedProducts(t, db)
	repo := NewGormProductRepository(db)

	total, counted, err := repo.CountingStats(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.EqualValues(t, 1, counted)
}
