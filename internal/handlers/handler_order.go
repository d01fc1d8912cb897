package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/dto"
	"github.com/SscSPs/escrow_settlement_app/internal/middleware"
	"github.com/SscSPs/escrow_settlement_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests related to orders.
type orderHandler struct {
	orderService      portssvc.OrderSvcFacade
	settlementService portssvc.SettlementCalculatorSvc
}

// newOrderHandler creates a new orderHandler.
func newOrderHandler(orderSvc portssvc.OrderSvcFacade, settlementSvc portssvc.SettlementCalculatorSvc) *orderHandler {
	return &orderHandler{
		orderService:      orderSvc,
		settlementService: settlementSvc,
	}
}

// registerOrderRoutes registers routes related to orders.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, settlementService portssvc.SettlementCalculatorSvc) {
	h := newOrderHandler(orderService, settlementService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/summary", h.getSummary)
		orders.GET("/:orderID", h.getOrder)
		orders.GET("/:orderID/trail", h.getOrderTrail)
	}
}

// createOrder godoc
// @Summary Register a new order
// @Description Registers an order with its exam outcome; it starts UNWITHDRAWN
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Order ID already exists"
// @Failure 500 {object} map[string]string "Failed to create order"
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create order", slog.String("order_id", req.OrderID), slog.String("scenario", string(req.Scenario)))

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(order))
}

// getOrder godoc
// @Summary Get an order by ID
// @Description Retrieves an order together with its current settled share
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("order_id", orderID)), err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, h.toResponse(order))
}

// getOrderTrail godoc
// @Summary Get the ledger trail of an order
// @Description Returns every ledger step of the order under the current policy
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderTrailResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 500 {object} map[string]string "Failed to retrieve order"
// @Router /orders/{orderID}/trail [get]
func (h *orderHandler) getOrderTrail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("order_id", orderID)), err, "Failed to retrieve order")
		return
	}

	c.JSON(http.StatusOK, dto.OrderTrailResponse{
		OrderID: order.OrderID,
		Steps:   dto.ToFinancialStateResponses(h.settlementService.FullTrail(*order)),
	})
}

// listOrders godoc
// @Summary List orders
// @Description Lists orders matching the filters, oldest first, with cursor-based pagination
// @Tags orders
// @Produce  json
// @Param   search query string false "Matches order ID, student or course name"
// @Param   status query string false "Withdrawal status" Enums(UNWITHDRAWN, PENDING, WITHDRAWN)
// @Param   settledFrom query string false "Settlement date from (YYYY-MM-DD)"
// @Param   settledTo query string false "Settlement date to (YYYY-MM-DD)"
// @Param   withdrawnFrom query string false "Withdrawal date from (YYYY-MM-DD)"
// @Param   withdrawnTo query string false "Withdrawal date to (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list orders"
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListOrders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list orders")
		return
	}

	page, nextToken, err := pagination.Page(orders, func(o domain.Order) string { return o.OrderID }, params.NextToken, params.Limit)
	if err != nil {
		logger.Warn("Invalid pagination token for ListOrders", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := dto.ListOrdersResponse{
		Orders:    make([]dto.OrderResponse, len(page)),
		NextToken: nextToken,
	}
	for i := range page {
		resp.Orders[i] = h.toResponse(&page[i])
	}

	logger.Info("Orders listed successfully", slog.Int("count", len(resp.Orders)), slog.Int("matched", len(orders)))
	c.JSON(http.StatusOK, resp)
}

// getSummary godoc
// @Summary Summarize the affiliate's withdrawals
// @Description Totals settled, available, pending and withdrawn amounts over the filtered orders
// @Tags orders
// @Produce  json
// @Param   search query string false "Matches order ID, student or course name"
// @Param   status query string false "Withdrawal status" Enums(UNWITHDRAWN, PENDING, WITHDRAWN)
// @Param   settledFrom query string false "Settlement date from (YYYY-MM-DD)"
// @Param   settledTo query string false "Settlement date to (YYYY-MM-DD)"
// @Param   withdrawnFrom query string false "Withdrawal date from (YYYY-MM-DD)"
// @Param   withdrawnTo query string false "Withdrawal date to (YYYY-MM-DD)"
// @Success 200 {object} dto.OrderSummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to summarize orders"
// @Router /orders/summary [get]
func (h *orderHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for OrderSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.orderService.Summary(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondWithError(c, logger, err, "Failed to summarize orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderSummaryResponse(summary))
}

func (h *orderHandler) toResponse(o *domain.Order) dto.OrderResponse {
	return dto.ToOrderResponse(o, h.settlementService.AffiliateAmount(*o))
}
