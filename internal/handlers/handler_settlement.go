package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/dto"
	"github.com/SscSPs/escrow_settlement_app/internal/middleware"
	"github.com/SscSPs/escrow_settlement_app/internal/utils/accounting"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles HTTP requests related to the settlement engine.
type settlementHandler struct {
	settlementService portssvc.SettlementCalculatorSvc
}

func newSettlementHandler(svc portssvc.SettlementCalculatorSvc) *settlementHandler {
	return &settlementHandler{settlementService: svc}
}

// registerSettlementRoutes registers routes related to settlement simulation.
func registerSettlementRoutes(rg *gin.RouterGroup, svc portssvc.SettlementCalculatorSvc) {
	h := newSettlementHandler(svc)

	settlements := rg.Group("/settlements")
	{
		settlements.GET("/policy", h.getPolicy)
		settlements.POST("/simulate", h.simulate)
	}
}

// getPolicy godoc
// @Summary Get the settlement policy
// @Description Returns the commission rate and protocol refund amount orders are settled with
// @Tags settlements
// @Produce  json
// @Success 200 {object} dto.SettlementPolicyResponse
// @Router /settlements/policy [get]
func (h *settlementHandler) getPolicy(c *gin.Context) {
	policy := h.settlementService.Policy()
	c.JSON(http.StatusOK, dto.SettlementPolicyResponse{
		CommissionRate:       policy.CommissionRate,
		ProtocolRefundAmount: policy.ProtocolRefundAmount,
	})
}

// simulate godoc
// @Summary Simulate a settlement
// @Description Runs the ledger script for arbitrary parameters and returns every step
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   params body dto.SimulateSettlementRequest true "Simulation parameters"
// @Success 200 {object} dto.SimulateSettlementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to simulate settlement"
// @Router /settlements/simulate [post]
func (h *settlementHandler) simulate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SimulateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SimulateSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	params := req.ToParams(h.settlementService.Policy())
	steps, err := h.settlementService.Simulate(params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to simulate settlement")
		return
	}

	logger.Debug("Settlement simulated", slog.String("scenario", string(params.Scenario)), slog.Int("steps", len(steps)))
	c.JSON(http.StatusOK, dto.SimulateSettlementResponse{
		Params: params,
		Steps:  dto.ToFinancialStateResponses(steps),
		Final:  dto.ToFinancialStateResponse(accounting.FinalState(steps)),
	})
}
