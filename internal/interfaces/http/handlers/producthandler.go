package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocktake/internal/application/product/dto"
	"stocktake/internal/application/product/usecases"
	"stocktake/internal/shared/logger"
	"stocktake/internal/shared/utils"
)

// Narrow use case surfaces so tests can stub each operation independently.
type (
	ProductLister interface {
		Execute(ctx context.Context, query usecases.ListProductsQuery) ([]*dto.ProductDTO, int64, error)
	}
	QuantityUpdater interface {
		Execute(ctx context.Context, cmd usecases.UpdateQuantityCommand) (*dto.ProductDTO, error)
	}
	StatsProvider interface {
		Execute(ctx context.Context) (*dto.CountingStatsDTO, error)
	}
)

// ProductHandler serves the counting sheet CRUD endpoints.
type ProductHandler struct {
	listProducts   ProductLister
	updateQuantity QuantityUpdater
	countingStats  StatsProvider
	logger         logger.Interface
}

func NewProductHandler(
	listProducts ProductLister,
	updateQuantity QuantityUpdater,
	countingStats StatsProvider,
	logger logger.Interface,
) *ProductHandler {
	return &ProductHandler{
		listProducts:   listProducts,
		updateQuantity: updateQuantity,
		countingStats:  countingStats,
		logger:         logger,
	}
}

type listProductsRequest struct {
	Search   string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ListProducts returns a paginated, searchable page of the counting sheet.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var req listProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	query := usecases.ListProductsQuery{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	products, total, err := h.listProducts.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 50
	}
	utils.ListSuccessResponse(c, products, total, query.Page, query.PageSize)
}

type updateQuantityRequest struct {
	Quantity *int64 `json:"quantity" binding:"omitempty,gte=0"`
}

// UpdateQuantity records (or clears) the counted quantity for one product.
func (h *ProductHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid quantity update body", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.updateQuantity.Execute(c.Request.Context(), usecases.UpdateQuantityCommand{
		Code:     c.Param("code"),
		Quantity: req.Quantity,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "quantity updated", result)
}

// CountingStats reports stocktake progress.
func (h *ProductHandler) CountingStats(c *gin.Context) {
	stats, err := h.countingStats.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}
