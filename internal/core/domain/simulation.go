package domain

import (
	"fmt"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// SimulationParams is the full input of the settlement engine.
type SimulationParams struct {
	OrderAmount          decimal.Decimal `json:"orderAmount"`
	ProtocolRefundAmount decimal.Decimal `json:"protocolRefundAmount"`
	CommissionRate       decimal.Decimal `json:"commissionRate"` // Ratio in [0,1], e.g. 0.1 for 10%
	Scenario             Scenario        `json:"scenario"`
}

// Validate checks the params before they reach the (unchecked) step generator.
// A protocol refund larger than the order would drive the escrow account
// negative, so it is rejected here.
func (p SimulationParams) Validate() error {
	if p.OrderAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: order amount must be positive", apperrors.ErrInvalidInput)
	}
	if p.ProtocolRefundAmount.IsNegative() {
		return fmt.Errorf("%w: protocol refund amount must not be negative", apperrors.ErrInvalidInput)
	}
	if err := validateRate(p.CommissionRate); err != nil {
		return err
	}
	if !p.Scenario.IsValid() {
		return fmt.Errorf("%w: unknown scenario '%s'", apperrors.ErrInvalidInput, p.Scenario)
	}
	if p.Scenario == ScenarioProtocolRefund && p.ProtocolRefundAmount.GreaterThan(p.OrderAmount) {
		return fmt.Errorf("%w: protocol refund %s exceeds order amount %s",
			apperrors.ErrInvalidInput, p.ProtocolRefundAmount.String(), p.OrderAmount.String())
	}
	return nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: commission rate %s must be within [0,1]", apperrors.ErrInvalidInput, rate.String())
	}
	return nil
}

// SettlementPolicy holds the policy constants applied to every order when it
// is settled. Several policies can coexist, one per calculator.
type SettlementPolicy struct {
	CommissionRate       decimal.Decimal `json:"commissionRate"`
	ProtocolRefundAmount decimal.Decimal `json:"protocolRefundAmount"`
}

// DefaultSettlementPolicy returns the head office's standard terms: a 10%
// commission and a 6000 protocol refund.
func DefaultSettlementPolicy() SettlementPolicy {
	return SettlementPolicy{
		CommissionRate:       decimal.RequireFromString("0.1"),
		ProtocolRefundAmount: decimal.NewFromInt(6000),
	}
}

// Validate checks the policy constants.
func (p SettlementPolicy) Validate() error {
	if err := validateRate(p.CommissionRate); err != nil {
		return err
	}
	if p.ProtocolRefundAmount.IsNegative() {
		return fmt.Errorf("%w: protocol refund amount must not be negative", apperrors.ErrInvalidInput)
	}
	return nil
}

// ParamsFor builds the engine input for an order amount and scenario under this policy.
func (p SettlementPolicy) ParamsFor(amount decimal.Decimal, scenario Scenario) SimulationParams {
	return SimulationParams{
		OrderAmount:          amount,
		ProtocolRefundAmount: p.ProtocolRefundAmount,
		CommissionRate:       p.CommissionRate,
		Scenario:             scenario,
	}
}
