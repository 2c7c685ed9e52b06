package usecases

import (
	"context"
	"fmt"

	"stocktake/internal/application/product/dto"
	"stocktake/internal/domain/product"
	"stocktake/internal/shared/logger"
)

type CountingStatsUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewCountingStatsUseCase(productRepo product.Repository, logger logger.Interface) *CountingStatsUseCase {
	return &CountingStatsUseCase{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (uc *CountingStatsUseCase) Execute(ctx context.Context) (*dto.CountingStatsDTO, error) {
	total, counted, err := uc.productRepo.CountingStats(ctx)
	if err != nil {
		uc.logger.Errorw("failed to get counting stats", "error", err)
		return nil, fmt.Errorf("failed to get counting stats: %w", err)
	}

	stats := &dto.CountingStatsDTO{
		Total:     total,
		Counted:   counted,
		Remaining: total - counted,
	}
	if total > 0 {
		stats.Progress = float64(counted) / float64(total)
	}
	return stats, nil
}
