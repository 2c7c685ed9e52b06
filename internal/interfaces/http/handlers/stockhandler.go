package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	stockusecases "stocktake/internal/application/stock/usecases"
	"stocktake/internal/infrastructure/ecount"
	"stocktake/internal/shared/biztime"
	"stocktake/internal/shared/logger"
)

// StockBalanceExecutor is the use case surface the handler needs.
type StockBalanceExecutor interface {
	Execute(ctx context.Context, query ecount.BalanceQuery) (*stockusecases.StockBalanceDTO, error)
}

type stockBalanceRequest struct {
	ProdCode string `json:"prod_cd"`
	BaseDate string `json:"base_date" binding:"omitempty,len=8,numeric"`
}

// StockHandler serves the stock balance proxy endpoint consumed by the
// counting sheet.
type StockHandler struct {
	getStockBalance StockBalanceExecutor
	logger          logger.Interface
}

func NewStockHandler(getStockBalance StockBalanceExecutor, logger logger.Interface) *StockHandler {
	return &StockHandler{
		getStockBalance: getStockBalance,
		logger:          logger,
	}
}

// GetStockBalance proxies an inventory balance query to the ERP. The upstream
// payload is relayed verbatim so the sheet sees exactly what the ERP said. An
// upstream login rejection is a business outcome, not a server fault: it is
// reported inside a 200 response. Only transport-level failures become 5xx.
func (h *StockHandler) GetStockBalance(c *gin.Context) {
	var req stockBalanceRequest
	// The sheet may POST an empty body; only reject bodies that are present
	// but malformed.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warnw("invalid stock query body", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	result, err := h.getStockBalance.Execute(c.Request.Context(), ecount.BalanceQuery{
		ProdCode: req.ProdCode,
		BaseDate: req.BaseDate,
	})
	if err != nil {
		var loginErr *ecount.LoginFailedError
		if errors.As(err, &loginErr) {
			h.logger.Warnw("ecount login failed", "reason", loginErr.Reason)
			c.JSON(http.StatusOK, gin.H{
				"error":     "ECOUNT login failed",
				"details":   loginErr.Details(),
				"timestamp": biztime.NowUTC().Format(time.RFC3339),
			})
			return
		}

		h.logger.Errorw("stock query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "failed to query stock balance",
			"timestamp": biztime.NowUTC().Format(time.RFC3339),
		})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", result.Payload)
}
