package usecases

import (
	"context"
	"fmt"

	"stocktake/internal/application/product/dto"
	"stocktake/internal/domain/product"
	"stocktake/internal/shared/errors"
	"stocktake/internal/shared/logger"
)

type UpdateQuantityCommand struct {
	Code string
	// Quantity is the counted amount; nil clears the count.
	Quantity *int64
}

type UpdateQuantityUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewUpdateQuantityUseCase(productRepo product.Repository, logger logger.Interface) *UpdateQuantityUseCase {
	return &UpdateQuantityUseCase{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (uc *UpdateQuantityUseCase) Execute(ctx context.Context, cmd UpdateQuantityCommand) (*dto.ProductDTO, error) {
	if cmd.Code == "" {
		return nil, errors.NewValidationError("product code is required")
	}
	if cmd.Quantity != nil && *cmd.Quantity < 0 {
		return nil, errors.NewValidationError("quantity cannot be negative")
	}

	updated, err := uc.productRepo.UpdateQuantity(ctx, cmd.Code, cmd.Quantity)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update quantity", "error", err, "code", cmd.Code)
		return nil, fmt.Errorf("failed to update quantity: %w", err)
	}

	uc.logger.Debugw("quantity updated", "code", cmd.Code, "quantity", cmd.Quantity)
	return dto.ToProductDTO(updated), nil
}
