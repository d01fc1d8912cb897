package services

import (
	"fmt"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// settlementCalculator applies one settlement policy to orders. It holds no
// mutable state, so a single instance is shared by every caller.
type settlementCalculator struct {
	policy domain.SettlementPolicy
}

// NewSettlementCalculator creates a calculator bound to policy.
func NewSettlementCalculator(policy domain.SettlementPolicy) (portssvc.SettlementCalculatorSvc, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settlement policy: %w", err)
	}
	return &settlementCalculator{policy: policy}, nil
}

var _ portssvc.SettlementCalculatorSvc = (*settlementCalculator)(nil)

func (s *settlementCalculator) Policy() domain.SettlementPolicy {
	return s.policy
}

func (s *settlementCalculator) FullTrail(order domain.Order) []domain.FinancialState {
	return accounting.GenerateSteps(s.policy.ParamsFor(order.Amount, order.Scenario))
}

func (s *settlementCalculator) Settle(order domain.Order) domain.FinancialState {
	return accounting.FinalState(s.FullTrail(order))
}

func (s *settlementCalculator) AffiliateAmount(order domain.Order) decimal.Decimal {
	return s.Settle(order).Balances.Affiliate
}

func (s *settlementCalculator) Simulate(params domain.SimulationParams) ([]domain.FinancialState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	steps := accounting.GenerateSteps(params)
	if err := accounting.VerifyConservation(steps, params.OrderAmount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return steps, nil
}
