package handler

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retail-bank-ledger/internal/processor"
)

// BatchHandler handles HTTP requests for concurrent operation batches
type BatchHandler struct {
	batchService BatchService
	logger       *slog.Logger
}

// NewBatchHandler creates a new batch handler
func NewBatchHandler(logger *slog.Logger, batchService BatchService) *BatchHandler {
	return &BatchHandler{
		batchService: batchService,
		logger:       logger,
	}
}

// Apply runs a batch of operations over the worker pool and reports each
// outcome in request order. A failed operation fails alone; the rest of the
// batch still commits.
func (h *BatchHandler) Apply(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ops := make([]processor.OperationRequest, 0, len(req.Operations))
	for i, op := range req.Operations {
		amount, err := decimal.NewFromString(op.Amount)
		if err != nil {
			RespondBadRequest(c, "Invalid amount at operation index "+strconv.Itoa(i)+": "+op.Amount)
			return
		}
		ops = append(ops, processor.OperationRequest{
			ID:          uuid.New(),
			Type:        processor.OperationType(op.Type),
			Username:    op.Username,
			AccountType: op.AccountType,
			FromUser:    op.FromUser,
			ToUser:      op.ToUser,
			Amount:      amount,
		})
	}

	results := h.batchService.Apply(c.Request.Context(), ops)

	resp := BatchResponse{Results: make([]BatchOperationResult, 0, len(results))}
	for _, res := range results {
		out := BatchOperationResult{ID: res.ID.String()}
		if res.Err != nil {
			out.Status = "FAILED"
			out.Error = res.Err.Error()
		} else {
			out.Status = "COMMITTED"
			out.Message = res.Confirmation.Message
			out.CommittedAt = res.Confirmation.CommittedAt.Format(time.RFC3339Nano)
		}
		resp.Results = append(resp.Results, out)
	}

	RespondOK(c, resp)
}
