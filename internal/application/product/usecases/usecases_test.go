package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktake/internal/domain/product"
	"stocktake/internal/shared/errors"
	"stocktake/internal/shared/logger"
)

type noopLogger struct{}

func (noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l noopLogger) With(args ...any) logger.Interface             { return l }

type fakeProductRepo struct {
	products []*product.Product
	total    int64
	err      error

	gotSearch string
	gotOffset int
	gotLimit  int

	updated *product.Product

	statsTotal   int64
	statsCounted int64
}

func (f *fakeProductRepo) List(ctx context.Context, search string, offset, limit int) ([]*product.Product, int64, error) {
	f.gotSearch = search
	f.gotOffset = offset
	f.gotLimit = limit
	return f.products, f.total, f.err
}

func (f *fakeProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.updated, nil
}

func (f *fakeProductRepo) UpdateQuantity(ctx context.Context, code string, quantity *int64) (*product.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &product.Product{Code: code, Quantity: quantity}
	return f.updated, nil
}

func (f *fakeProductRepo) CountingStats(ctx context.Context) (int64, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.statsTotal, f.statsCounted, nil
}

func TestListProducts_DefaultsAndClamping(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := NewListProductsUseCase(repo, noopLogger{})

	_, _, err := uc.Execute(context.Background(), ListProductsQuery{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, repo.gotOffset)
	assert.Equal(t, defaultPageSize, repo.gotLimit)

	_, _, err = uc.Execute(context.Background(), ListProductsQuery{Page: 3, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, repo.gotLimit)
	assert.Equal(t, 2*maxPageSize, repo.gotOffset)
}

func TestListProducts_PassesSearch(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := NewListProductsUseCase(repo, noopLogger{})

	_, _, err := uc.Execute(context.Background(), ListProductsQuery{Search: "bolt", Page: 1, PageSize: 10})

	require.NoError(t, err)
	assert.Equal(t, "bolt", repo.gotSearch)
}

func TestUpdateQuantity_Success(t *testing.T) {
	repo := &fakeProductRepo{}
	uc := NewUpdateQuantityUseCase(repo, noopLogger{})

	qty := int64(7)
	result, err := uc.Execute(context.Background(), UpdateQuantityCommand{Code: "A-100", Quantity: &qty})

	require.NoError(t, err)
	assert.Equal(t, "A-100", result.Code)
	require.NotNil(t, result.Quantity)
	assert.EqualValues(t, 7, *result.Quantity)
	assert.True(t, result.Counted)
}

func TestUpdateQuantity_EmptyCode(t *testing.T) {
	uc := NewUpdateQuantityUseCase(&fakeProductRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), UpdateQuantityCommand{Code: ""})

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func TestUpdateQuantity_Negative(t *testing.T) {
	uc := NewUpdateQuantityUseCase(&fakeProductRepo{}, noopLogger{})

	qty := int64(-1)
	_, err := uc.Execute(context.Background(), UpdateQuantityCommand{Code: "A-100", Quantity: &qty})

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func TestUpdateQuantity_NotFoundPassesThrough(t *testing.T) {
	repo := &fakeProductRepo{err: errors.NewNotFoundError("product not found")}
	uc := NewUpdateQuantityUseCase(repo, noopLogger{})

	qty := int64(1)
	_, err := uc.Execute(context.Background(), UpdateQuantityCommand{Code: "missing", Quantity: &qty})

	assert.True(t, errors.IsNotFoundError(err))
}

func TestCountingStats(t *testing.T) {
	repo := &fakeProductRepo{statsTotal: 200, statsCounted: 50}
	uc := NewCountingStatsUseCase(repo, noopLogger{})

	stats, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 200, stats.Total)
	assert.EqualValues(t, 50, stats.Counted)
	assert.EqualValues(t, 150, stats.Remaining)
	assert.InDelta(t, 0.25, stats.Progress, 0.0001)
}

func TestCountingStats_EmptySheet(t *testing.T) {
	uc := NewCountingStatsUseCase(&fakeProductRepo{}, noopLogger{})

	stats, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.Progress)
}
