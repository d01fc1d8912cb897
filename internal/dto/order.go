package dto

import (
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest defines the data needed to register a new order.
type CreateOrderRequest struct {
	OrderID        string          `json:"orderID" binding:"required,max=64" example:"ORD-2404-001"`
	StudentName    string          `json:"studentName" binding:"required,max=128"`
	CourseName     string          `json:"courseName" binding:"required,max=128"`
	Amount         decimal.Decimal `json:"amount" binding:"required,gt=0" swaggertype:"string" example:"15000"`
	Scenario       domain.Scenario `json:"scenario" binding:"required,oneof=PAID_ONLY PASS PROTOCOL_REFUND FULL_REFUND"`
	OrderDate      *time.Time      `json:"orderDate,omitempty"`      // Defaults to now
	SettlementTime *time.Time      `json:"settlementTime,omitempty"` // When the exam outcome settled the order
}

// ListOrdersParams defines the query parameters for listing orders.
type ListOrdersParams struct {
	Search        string     `form:"search"`
	Status        string     `form:"status" binding:"omitempty,oneof=UNWITHDRAWN PENDING WITHDRAWN"`
	SettledFrom   *time.Time `form:"settledFrom" time_format:"2006-01-02" time_utc:"1"`
	SettledTo     *time.Time `form:"settledTo" time_format:"2006-01-02" time_utc:"1"`
	WithdrawnFrom *time.Time `form:"withdrawnFrom" time_format:"2006-01-02" time_utc:"1"`
	WithdrawnTo   *time.Time `form:"withdrawnTo" time_format:"2006-01-02" time_utc:"1"`
	Limit         int        `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken     string     `form:"nextToken"`
}

// ToFilter converts the query parameters to a domain filter.
func (p ListOrdersParams) ToFilter() domain.OrderFilter {
	return domain.OrderFilter{
		Search:        p.Search,
		Status:        domain.WithdrawalStatus(p.Status),
		SettledFrom:   p.SettledFrom,
		SettledTo:     p.SettledTo,
		WithdrawnFrom: p.WithdrawnFrom,
		WithdrawnTo:   p.WithdrawnTo,
	}
}

// OrderResponse defines the data returned for an order.
type OrderResponse struct {
	OrderID          string                  `json:"orderID"`
	StudentName      string                  `json:"studentName"`
	CourseName       string                  `json:"courseName"`
	Amount           decimal.Decimal         `json:"amount" swaggertype:"string"`
	Scenario         domain.Scenario         `json:"scenario"`
	OrderDate        time.Time               `json:"orderDate"`
	SettlementTime   *time.Time              `json:"settlementTime,omitempty"`
	WithdrawalStatus domain.WithdrawalStatus `json:"withdrawalStatus"`
	WithdrawnAmount  decimal.Decimal         `json:"withdrawnAmount" swaggertype:"string"`
	WithdrawalTime   *time.Time              `json:"withdrawalTime,omitempty"`
	SettledAmount    decimal.Decimal         `json:"settledAmount" swaggertype:"string"` // Affiliate share under the current policy
}

// ListOrdersResponse wraps a page of orders.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// OrderTrailResponse is the audit trail of one order.
type OrderTrailResponse struct {
	OrderID string                   `json:"orderID"`
	Steps   []FinancialStateResponse `json:"steps"`
}

// ToOrderResponse converts a domain.Order and its settled share to OrderResponse DTO
func ToOrderResponse(o *domain.Order, settled decimal.Decimal) OrderResponse {
	return OrderResponse{
		OrderID:          o.OrderID,
		StudentName:      o.StudentName,
		CourseName:       o.CourseName,
		Amount:           o.Amount,
		Scenario:         o.Scenario,
		OrderDate:        o.OrderDate,
		SettlementTime:   o.SettlementTime,
		WithdrawalStatus: o.WithdrawalStatus,
		WithdrawnAmount:  o.WithdrawnAmount,
		WithdrawalTime:   o.WithdrawalTime,
		SettledAmount:    settled,
	}
}

// OrderSummaryResponse aggregates the affiliate's position over the filtered orders.
type OrderSummaryResponse struct {
	TotalSettled        decimal.Decimal `json:"totalSettled" swaggertype:"string"`
	AvailableToWithdraw decimal.Decimal `json:"availableToWithdraw" swaggertype:"string"`
	PendingAudit        decimal.Decimal `json:"pendingAudit" swaggertype:"string"`
	TotalWithdrawn      decimal.Decimal `json:"totalWithdrawn" swaggertype:"string"`
	OrderCount          int             `json:"orderCount"`
}

// ToOrderSummaryResponse converts a domain.WithdrawalSummary to its DTO.
func ToOrderSummaryResponse(s *domain.WithdrawalSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		TotalSettled:        s.TotalSettled,
		AvailableToWithdraw: s.AvailableToWithdraw,
		PendingAudit:        s.PendingAudit,
		TotalWithdrawn:      s.TotalWithdrawn,
		OrderCount:          s.OrderCount,
	}
}
