package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/escrow_settlement_app/internal/adapters/database/memory"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/core/services"
	"github.com/SscSPs/escrow_settlement_app/internal/dto"
	"github.com/SscSPs/escrow_settlement_app/internal/handlers"
	"github.com/SscSPs/escrow_settlement_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type unhealthyStore struct{}

func (unhealthyStore) HealthCheck(context.Context) error { return assert.AnError }

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router   *gin.Engine
	services *portssvc.ServiceContainer
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()
}

func (suite *HandlersTestSuite) SetupTest() {
	cfg := &config.Config{
		IsProduction:         true,
		CommissionRate:       decimal.RequireFromString("0.1"),
		ProtocolRefundAmount: decimal.NewFromInt(6000),
	}
	store := memory.NewStore()
	container, err := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(store))
	suite.Require().NoError(err)
	suite.services = container

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container, store)
}

func (suite *HandlersTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (suite *HandlersTestSuite) createOrder(id, amount string, scenario domain.Scenario) {
	w := suite.do(http.MethodPost, "/api/v1/orders", map[string]string{
		"orderID":     id,
		"studentName": "Wang Wu",
		"courseName":  "Interview class",
		"amount":      amount,
		"scenario":    string(scenario),
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s got %s", want, got)
}

// --- Test Cases ---

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	router := gin.New()
	handlers.RegisterRoutes(router, nil, suite.services, unhealthyStore{})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlersTestSuite) TestSimulate_ProtocolRefund() {
	w := suite.do(http.MethodPost, "/api/v1/settlements/simulate", map[string]string{
		"orderAmount": "10000",
		"scenario":    "PROTOCOL_REFUND",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.SimulateSettlementResponse
	suite.decode(w, &resp)
	suite.Len(resp.Steps, 8)
	assertDecimal(suite.T(), "6000", resp.Params.ProtocolRefundAmount)
	assertDecimal(suite.T(), "400", resp.Final.Balances.Main)
	assertDecimal(suite.T(), "3600", resp.Final.Balances.Affiliate)
	assertDecimal(suite.T(), "6000", resp.Final.Balances.Student)
	assertDecimal(suite.T(), "0", resp.Final.Balances.Joint)
	assertDecimal(suite.T(), "10000", resp.Final.Balances.Total)
}

func (suite *HandlersTestSuite) TestSimulate_PolicyOverride() {
	w := suite.do(http.MethodPost, "/api/v1/settlements/simulate", map[string]string{
		"orderAmount":          "10000",
		"commissionRate":       "0.2",
		"protocolRefundAmount": "2000",
		"scenario":             "PROTOCOL_REFUND",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.SimulateSettlementResponse
	suite.decode(w, &resp)
	// 10000 - 2000 commission - 2000 refund + 400 clawback
	assertDecimal(suite.T(), "6400", resp.Final.Balances.Affiliate)
	assertDecimal(suite.T(), "1600", resp.Final.Balances.Main)
}

func (suite *HandlersTestSuite) TestSimulate_InvalidInput() {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"refund larger than order", map[string]string{"orderAmount": "5000", "scenario": "PROTOCOL_REFUND"}},
		{"zero amount", map[string]string{"orderAmount": "0", "scenario": "PASS"}},
		{"rate above one", map[string]string{"orderAmount": "100", "commissionRate": "1.5", "scenario": "PASS"}},
		{"unknown scenario", map[string]string{"orderAmount": "100", "scenario": "RETAKE"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/settlements/simulate", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func (suite *HandlersTestSuite) TestGetPolicy() {
	w := suite.do(http.MethodGet, "/api/v1/settlements/policy", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.SettlementPolicyResponse
	suite.decode(w, &resp)
	assertDecimal(suite.T(), "0.1", resp.CommissionRate)
	assertDecimal(suite.T(), "6000", resp.ProtocolRefundAmount)
}

func (suite *HandlersTestSuite) TestOrders_CreateGetAndTrail() {
	suite.createOrder("ORD-1", "10000", domain.ScenarioPass)

	w := suite.do(http.MethodGet, "/api/v1/orders/ORD-1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var order dto.OrderResponse
	suite.decode(w, &order)
	suite.Equal(domain.WithdrawalUnwithdrawn, order.WithdrawalStatus)
	assertDecimal(suite.T(), "9000", order.SettledAmount)

	w = suite.do(http.MethodGet, "/api/v1/orders/ORD-1/trail", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var trail dto.OrderTrailResponse
	suite.decode(w, &trail)
	suite.Equal("ORD-1", trail.OrderID)
	suite.Len(trail.Steps, 6)

	w = suite.do(http.MethodGet, "/api/v1/orders/ORD-404", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestOrders_CreateRejectsBadInput() {
	suite.createOrder("ORD-1", "10000", domain.ScenarioPass)

	w := suite.do(http.MethodPost, "/api/v1/orders", map[string]string{
		"orderID": "ORD-1", "studentName": "A", "courseName": "B", "amount": "100", "scenario": "PASS",
	})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/orders", map[string]string{
		"orderID": "ORD-2", "studentName": "A", "courseName": "B", "amount": "100", "scenario": "LOST",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/orders", map[string]string{
		"orderID": "ORD-3", "studentName": "A", "courseName": "B", "amount": "5000", "scenario": "PROTOCOL_REFUND",
	})
	suite.Equal(http.StatusBadRequest, w.Code, "a protocol refund larger than the order is not settleable")
}

func (suite *HandlersTestSuite) TestOrders_ListPaginates() {
	for _, id := range []string{"ORD-1", "ORD-2", "ORD-3"} {
		suite.createOrder(id, "1000", domain.ScenarioPass)
	}

	w := suite.do(http.MethodGet, "/api/v1/orders?limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var first dto.ListOrdersResponse
	suite.decode(w, &first)
	suite.Require().Len(first.Orders, 2)
	suite.Equal("ORD-1", first.Orders[0].OrderID)
	suite.Require().NotNil(first.NextToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	q := req.URL.Query()
	q.Set("limit", "2")
	q.Set("nextToken", *first.NextToken)
	req.URL.RawQuery = q.Encode()
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusOK, w.Code)
	var second dto.ListOrdersResponse
	suite.decode(w, &second)
	suite.Require().Len(second.Orders, 1)
	suite.Equal("ORD-3", second.Orders[0].OrderID)
	suite.Nil(second.NextToken)

	w = suite.do(http.MethodGet, "/api/v1/orders?nextToken=not-a-token", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/orders?status=PAID", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestWithdrawals_CreateApproveAndHistory() {
	suite.createOrder("ORD-1", "10000", domain.ScenarioPass)
	suite.createOrder("ORD-2", "10000", domain.ScenarioProtocolRefund)
	suite.createOrder("ORD-3", "10000", domain.ScenarioFullRefund)

	w := suite.do(http.MethodPost, "/api/v1/withdrawals", nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.WithdrawalRequestResponse
	suite.decode(w, &created)
	suite.Equal([]string{"ORD-1", "ORD-2"}, created.OrderIDs)
	assertDecimal(suite.T(), "12600", created.TotalAmount)
	suite.Equal(domain.RequestPending, created.Status)

	w = suite.do(http.MethodGet, "/api/v1/withdrawals/"+created.RequestID, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var detail dto.WithdrawalRequestResponse
	suite.decode(w, &detail)
	suite.Require().Len(detail.Orders, 2)
	assertDecimal(suite.T(), "3600", detail.Orders[1].SettledAmount)
	suite.Equal(domain.WithdrawalPending, detail.Orders[0].WithdrawalStatus)

	w = suite.do(http.MethodGet, "/api/v1/orders/summary", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var summary dto.OrderSummaryResponse
	suite.decode(w, &summary)
	assertDecimal(suite.T(), "12600", summary.PendingAudit)
	assertDecimal(suite.T(), "0", summary.AvailableToWithdraw)

	w = suite.do(http.MethodPost, "/api/v1/withdrawals", nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code, "nothing left to request")

	w = suite.do(http.MethodPost, "/api/v1/withdrawals/"+created.RequestID+"/approve", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var record dto.WithdrawalRecordResponse
	suite.decode(w, &record)
	suite.Equal(created.RequestID, record.RecordID)
	suite.Equal(2, record.OrderCount)
	assertDecimal(suite.T(), "12600", record.TotalAmount)

	w = suite.do(http.MethodPost, "/api/v1/withdrawals/"+created.RequestID+"/approve", nil)
	suite.Equal(http.StatusConflict, w.Code)
	w = suite.do(http.MethodPost, "/api/v1/withdrawals/WDR-404/reject", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/withdrawals/history", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var history []dto.WithdrawalRecordResponse
	suite.decode(w, &history)
	suite.Len(history, 1)

	w = suite.do(http.MethodGet, "/api/v1/withdrawals?status=approved", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var approved []dto.WithdrawalRequestResponse
	suite.decode(w, &approved)
	suite.Require().Len(approved, 1)
	suite.Equal(created.RequestID, approved[0].RequestID)
}

func (suite *HandlersTestSuite) TestWithdrawals_RejectAndBatch() {
	suite.createOrder("ORD-1", "10000", domain.ScenarioPass)
	w := suite.do(http.MethodPost, "/api/v1/withdrawals", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var first dto.WithdrawalRequestResponse
	suite.decode(w, &first)

	w = suite.do(http.MethodPost, "/api/v1/withdrawals/"+first.RequestID+"/reject", nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/orders/ORD-1", nil)
	var order dto.OrderResponse
	suite.decode(w, &order)
	suite.Equal(domain.WithdrawalUnwithdrawn, order.WithdrawalStatus)
	suite.Nil(order.WithdrawalTime)

	w = suite.do(http.MethodPost, "/api/v1/withdrawals", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var second dto.WithdrawalRequestResponse
	suite.decode(w, &second)

	w = suite.do(http.MethodPost, "/api/v1/withdrawals/batch/approve", dto.BatchRequest{
		RequestIDs: []string{first.RequestID, second.RequestID},
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var batch dto.BatchResponse
	suite.decode(w, &batch)
	suite.Equal(1, batch.Succeeded)
	suite.Equal(1, batch.Failed)
	suite.Require().Len(batch.Results, 2)
	suite.False(batch.Results[0].Success)
	suite.NotEmpty(batch.Results[0].Error)
	suite.True(batch.Results[1].Success)
	suite.Require().NotNil(batch.Results[1].Record)
	assertDecimal(suite.T(), "9000", batch.Results[1].Record.TotalAmount)

	w = suite.do(http.MethodPost, "/api/v1/withdrawals/batch/reject", dto.BatchRequest{})
	suite.Equal(http.StatusBadRequest, w.Code, "an empty batch is rejected at the boundary")
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
