package services

import (
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementCalculatorSvc answers settlement questions for orders under one
// settlement policy. Every method is pure and safe for concurrent use.
type SettlementCalculatorSvc interface {
	// Policy returns the policy the calculator was built with.
	Policy() domain.SettlementPolicy

	// Settle returns the final ledger state of the order.
	Settle(order domain.Order) domain.FinancialState

	// FullTrail returns every ledger step of the order, for audit display.
	FullTrail(order domain.Order) []domain.FinancialState

	// AffiliateAmount returns the affiliate's settled share of the order.
	AffiliateAmount(order domain.Order) decimal.Decimal

	// Simulate validates arbitrary params and returns their ledger trail.
	Simulate(params domain.SimulationParams) ([]domain.FinancialState, error)
}
