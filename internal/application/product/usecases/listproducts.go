// Package usecases contains the counting sheet operations.
package usecases

import (
	"context"
	"fmt"

	"stocktake/internal/application/product/dto"
	"stocktake/internal/domain/product"
	"stocktake/internal/shared/logger"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type ListProductsQuery struct {
	Search   string
	Page     int
	PageSize int
}

type ListProductsUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewListProductsUseCase(productRepo product.Repository, logger logger.Interface) *ListProductsUseCase {
	return &ListProductsUseCase{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, query ListProductsQuery) ([]*dto.ProductDTO, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}

	offset := (query.Page - 1) * query.PageSize
	products, total, err := uc.productRepo.List(ctx, query.Search, offset, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list products", "error", err, "search", query.Search)
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return dto.ToProductDTOs(products), total, nil
}
