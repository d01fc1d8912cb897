package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/dto"
	"github.com/SscSPs/escrow_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// withdrawalHandler handles HTTP requests related to withdrawal requests and their audit.
type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
	orderService      portssvc.OrderReaderSvc
	settlementService portssvc.SettlementCalculatorSvc
}

func newWithdrawalHandler(ws portssvc.WithdrawalSvcFacade, orders portssvc.OrderReaderSvc, ss portssvc.SettlementCalculatorSvc) *withdrawalHandler {
	return &withdrawalHandler{
		withdrawalService: ws,
		orderService:      orders,
		settlementService: ss,
	}
}

// registerWithdrawalRoutes registers routes related to withdrawals.
func registerWithdrawalRoutes(rg *gin.RouterGroup, ws portssvc.WithdrawalSvcFacade, orders portssvc.OrderReaderSvc, ss portssvc.SettlementCalculatorSvc) {
	h := newWithdrawalHandler(ws, orders, ss)

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.POST("", h.createRequest)
		withdrawals.GET("", h.listRequests)
		withdrawals.GET("/history", h.listHistory)
		withdrawals.POST("/batch/approve", h.batchApprove)
		withdrawals.POST("/batch/reject", h.batchReject)
		withdrawals.GET("/:requestID", h.getRequest)
		withdrawals.POST("/:requestID/approve", h.approve)
		withdrawals.POST("/:requestID/reject", h.reject)
	}
}

// createRequest godoc
// @Summary Request a withdrawal
// @Description Bundles every unwithdrawn order with a positive settled share into a pending request
// @Tags withdrawals
// @Produce  json
// @Success 201 {object} dto.WithdrawalRequestResponse
// @Failure 422 {object} map[string]string "No eligible orders"
// @Failure 500 {object} map[string]string "Failed to create withdrawal request"
// @Router /withdrawals [post]
func (h *withdrawalHandler) createRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create withdrawal request")

	req, err := h.withdrawalService.CreateRequest(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to create withdrawal request")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWithdrawalRequestResponse(req))
}

// listRequests godoc
// @Summary List withdrawal requests
// @Description Lists withdrawal requests in creation order, optionally by status
// @Tags withdrawals
// @Produce  json
// @Param   status query string false "Request status" Enums(pending, approved, rejected)
// @Success 200 {array} dto.WithdrawalRequestResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list withdrawal requests"
// @Router /withdrawals [get]
func (h *withdrawalHandler) listRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	reqs, err := h.withdrawalService.ListRequests(c.Request.Context(), domain.RequestStatus(params.Status))
	if err != nil {
		respondWithError(c, logger, err, "Failed to list withdrawal requests")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWithdrawalRequestResponse(reqs))
}

// getRequest godoc
// @Summary Get a withdrawal request
// @Description Retrieves a request with each of its orders and their current settled share
// @Tags withdrawals
// @Produce  json
// @Param   requestID path string true "Withdrawal request ID"
// @Success 200 {object} dto.WithdrawalRequestResponse
// @Failure 404 {object} map[string]string "Withdrawal request not found"
// @Failure 500 {object} map[string]string "Failed to retrieve withdrawal request"
// @Router /withdrawals/{requestID} [get]
func (h *withdrawalHandler) getRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")
	logger = logger.With(slog.String("request_id", requestID))

	req, err := h.withdrawalService.GetRequest(c.Request.Context(), requestID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve withdrawal request")
		return
	}
	orders, err := h.orderService.GetOrdersByIDs(c.Request.Context(), req.OrderIDs)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve withdrawal request")
		return
	}

	resp := dto.ToWithdrawalRequestResponse(req)
	resp.Orders = make([]dto.RequestOrderLine, 0, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		o := orders[id]
		resp.Orders = append(resp.Orders, dto.RequestOrderLine{
			OrderID:          o.OrderID,
			StudentName:      o.StudentName,
			CourseName:       o.CourseName,
			Amount:           o.Amount,
			SettledAmount:    h.settlementService.AffiliateAmount(o),
			WithdrawalStatus: o.WithdrawalStatus,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// approve godoc
// @Summary Approve a withdrawal request
// @Description Pays out a pending request and appends a history record
// @Tags withdrawals
// @Produce  json
// @Param   requestID path string true "Withdrawal request ID"
// @Success 200 {object} dto.WithdrawalRecordResponse
// @Failure 404 {object} map[string]string "Withdrawal request not found"
// @Failure 409 {object} map[string]string "Withdrawal request is not pending"
// @Failure 500 {object} map[string]string "Failed to approve withdrawal request"
// @Router /withdrawals/{requestID}/approve [post]
func (h *withdrawalHandler) approve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	record, err := h.withdrawalService.Approve(c.Request.Context(), requestID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("request_id", requestID)), err, "Failed to approve withdrawal request")
		return
	}

	c.JSON(http.StatusOK, dto.ToWithdrawalRecordResponse(record))
}

// reject godoc
// @Summary Reject a withdrawal request
// @Description Returns a pending request's orders to UNWITHDRAWN
// @Tags withdrawals
// @Param   requestID path string true "Withdrawal request ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Withdrawal request not found"
// @Failure 409 {object} map[string]string "Withdrawal request is not pending"
// @Failure 500 {object} map[string]string "Failed to reject withdrawal request"
// @Router /withdrawals/{requestID}/reject [post]
func (h *withdrawalHandler) reject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	requestID := c.Param("requestID")

	if err := h.withdrawalService.Reject(c.Request.Context(), requestID); err != nil {
		respondWithError(c, logger.With(slog.String("request_id", requestID)), err, "Failed to reject withdrawal request")
		return
	}

	c.Status(http.StatusNoContent)
}

// batchApprove godoc
// @Summary Approve several withdrawal requests
// @Description Approves each request independently; failures do not stop the batch
// @Tags withdrawals
// @Accept  json
// @Produce  json
// @Param   batch body dto.BatchRequest true "Request IDs"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Router /withdrawals/batch/approve [post]
func (h *withdrawalHandler) batchApprove(c *gin.Context) {
	h.runBatch(c, "approve", h.withdrawalService.BatchApprove)
}

// batchReject godoc
// @Summary Reject several withdrawal requests
// @Description Rejects each request independently; failures do not stop the batch
// @Tags withdrawals
// @Accept  json
// @Produce  json
// @Param   batch body dto.BatchRequest true "Request IDs"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Router /withdrawals/batch/reject [post]
func (h *withdrawalHandler) batchReject(c *gin.Context) {
	h.runBatch(c, "reject", h.withdrawalService.BatchReject)
}

func (h *withdrawalHandler) runBatch(c *gin.Context, action string, run func(ctx context.Context, ids []string) []domain.BatchResult) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for batch "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp := dto.ToBatchResponse(run(c.Request.Context(), req.RequestIDs))
	logger.Info("Batch "+action+" processed", slog.Int("succeeded", resp.Succeeded), slog.Int("failed", resp.Failed))
	c.JSON(http.StatusOK, resp)
}

// listHistory godoc
// @Summary List withdrawal history
// @Description Lists approval records in the order they were written
// @Tags withdrawals
// @Produce  json
// @Success 200 {array} dto.WithdrawalRecordResponse
// @Failure 500 {object} map[string]string "Failed to list withdrawal history"
// @Router /withdrawals/history [get]
func (h *withdrawalHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := h.withdrawalService.ListHistory(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list withdrawal history")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWithdrawalRecordResponse(records))
}
