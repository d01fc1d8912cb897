package services_test

import (
	"testing"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCalculator(t *testing.T, policy domain.SettlementPolicy) portssvc.SettlementCalculatorSvc {
	t.Helper()
	calc, err := services.NewSettlementCalculator(policy)
	require.NoError(t, err)
	return calc
}

func TestSettlementCalculator_AffiliateAmount(t *testing.T) {
	calc := mustCalculator(t, domain.DefaultSettlementPolicy())

	tests := []struct {
		scenario domain.Scenario
		amount   int64
		want     string
	}{
		{domain.ScenarioPass, 10000, "9000"},
		{domain.ScenarioProtocolRefund, 10000, "3600"},
		{domain.ScenarioFullRefund, 10000, "0"},
		{domain.ScenarioPaidOnly, 10000, "0"},
		{domain.ScenarioPass, 8000, "7200"},
		{domain.ScenarioProtocolRefund, 15000, "8100"},
	}
	for _, tt := range tests {
		t.Run(string(tt.scenario), func(t *testing.T) {
			order := domain.Order{OrderID: "ORD", Amount: decimal.NewFromInt(tt.amount), Scenario: tt.scenario}
			got := calc.AffiliateAmount(order)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s got %s", tt.want, got)

			trail := calc.FullTrail(order)
			require.NotEmpty(t, trail)
			assert.True(t, trail[len(trail)-1].Equal(calc.Settle(order)))
		})
	}
}

func TestSettlementCalculator_PoliciesCoexist(t *testing.T) {
	standard := mustCalculator(t, domain.DefaultSettlementPolicy())
	generous := mustCalculator(t, domain.SettlementPolicy{
		CommissionRate:       decimal.RequireFromString("0.05"),
		ProtocolRefundAmount: decimal.NewFromInt(2000),
	})
	order := domain.Order{OrderID: "ORD", Amount: decimal.NewFromInt(10000), Scenario: domain.ScenarioProtocolRefund}

	// 10000 - 500 - 2000 + 100 = 7600
	assert.True(t, decimal.NewFromInt(7600).Equal(generous.AffiliateAmount(order)))
	assert.True(t, decimal.NewFromInt(3600).Equal(standard.AffiliateAmount(order)))
}

func TestNewSettlementCalculator_RejectsInvalidPolicy(t *testing.T) {
	_, err := services.NewSettlementCalculator(domain.SettlementPolicy{
		CommissionRate:       decimal.NewFromInt(2),
		ProtocolRefundAmount: decimal.Zero,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSettlementCalculator_Simulate(t *testing.T) {
	calc := mustCalculator(t, domain.DefaultSettlementPolicy())

	steps, err := calc.Simulate(domain.SimulationParams{
		OrderAmount:          decimal.NewFromInt(10000),
		ProtocolRefundAmount: decimal.NewFromInt(6000),
		CommissionRate:       decimal.RequireFromString("0.1"),
		Scenario:             domain.ScenarioProtocolRefund,
	})
	require.NoError(t, err)
	final := steps[len(steps)-1].Balances
	assert.True(t, decimal.NewFromInt(400).Equal(final.Main))
	assert.True(t, decimal.NewFromInt(6000).Equal(final.Student))

	_, err = calc.Simulate(domain.SimulationParams{
		OrderAmount:          decimal.NewFromInt(-5),
		ProtocolRefundAmount: decimal.Zero,
		CommissionRate:       decimal.RequireFromString("0.1"),
		Scenario:             domain.ScenarioPass,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
