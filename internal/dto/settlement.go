package dto

import (
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SimulateSettlementRequest asks for the ledger trail of arbitrary params.
// Omitted policy fields fall back to the server's configured policy.
type SimulateSettlementRequest struct {
	OrderAmount          decimal.Decimal  `json:"orderAmount" binding:"required,gt=0" swaggertype:"string" example:"10000"`
	ProtocolRefundAmount *decimal.Decimal `json:"protocolRefundAmount,omitempty" binding:"omitempty,gte=0" swaggertype:"string" example:"6000"`
	CommissionRate       *decimal.Decimal `json:"commissionRate,omitempty" binding:"omitempty,gte=0,lte=1" swaggertype:"string" example:"0.1"`
	Scenario             domain.Scenario  `json:"scenario" binding:"required,oneof=PAID_ONLY PASS PROTOCOL_REFUND FULL_REFUND" example:"PROTOCOL_REFUND"`
}

// ToParams fills in missing fields from policy.
func (r SimulateSettlementRequest) ToParams(policy domain.SettlementPolicy) domain.SimulationParams {
	params := policy.ParamsFor(r.OrderAmount, r.Scenario)
	if r.ProtocolRefundAmount != nil {
		params.ProtocolRefundAmount = *r.ProtocolRefundAmount
	}
	if r.CommissionRate != nil {
		params.CommissionRate = *r.CommissionRate
	}
	return params
}

// LedgerTransactionResponse is one money movement between accounts.
type LedgerTransactionResponse struct {
	From   domain.Account  `json:"from"`
	To     domain.Account  `json:"to"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
	Reason string          `json:"reason"`
}

// FinancialStateResponse is one step of a ledger trail.
type FinancialStateResponse struct {
	StepIndex       int                        `json:"stepIndex"`
	Label           string                     `json:"label"`
	Description     string                     `json:"description"`
	Balances        BalancesResponse           `json:"balances"`
	LastTransaction *LedgerTransactionResponse `json:"lastTransaction,omitempty"`
}

// BalancesResponse lists the four account balances.
type BalancesResponse struct {
	Joint     decimal.Decimal `json:"joint" swaggertype:"string"`
	Affiliate decimal.Decimal `json:"affiliate" swaggertype:"string"`
	Student   decimal.Decimal `json:"student" swaggertype:"string"`
	Main      decimal.Decimal `json:"main" swaggertype:"string"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
}

// SimulateSettlementResponse is the result of a simulation.
type SimulateSettlementResponse struct {
	Params domain.SimulationParams  `json:"params"`
	Steps  []FinancialStateResponse `json:"steps"`
	Final  FinancialStateResponse   `json:"final"`
}

// ToBalancesResponse converts domain balances.
func ToBalancesResponse(b domain.Balances) BalancesResponse {
	return BalancesResponse{
		Joint:     b.Joint,
		Affiliate: b.Affiliate,
		Student:   b.Student,
		Main:      b.Main,
		Total:     b.Total(),
	}
}

// ToFinancialStateResponse converts a single step.
func ToFinancialStateResponse(s domain.FinancialState) FinancialStateResponse {
	res := FinancialStateResponse{
		StepIndex:   s.StepIndex,
		Label:       s.Label,
		Description: s.Description,
		Balances:    ToBalancesResponse(s.Balances),
	}
	if s.LastTransaction != nil {
		res.LastTransaction = &LedgerTransactionResponse{
			From:   s.LastTransaction.From,
			To:     s.LastTransaction.To,
			Amount: s.LastTransaction.Amount,
			Reason: s.LastTransaction.Reason,
		}
	}
	return res
}

// ToFinancialStateResponses converts a whole trail.
func ToFinancialStateResponses(steps []domain.FinancialState) []FinancialStateResponse {
	res := make([]FinancialStateResponse, len(steps))
	for i, s := range steps {
		res[i] = ToFinancialStateResponse(s)
	}
	return res
}

// SettlementPolicyResponse describes the policy the server settles orders with.
type SettlementPolicyResponse struct {
	CommissionRate       decimal.Decimal `json:"commissionRate" swaggertype:"string"`
	ProtocolRefundAmount decimal.Decimal `json:"protocolRefundAmount" swaggertype:"string"`
}
