package accounting

import (
	"fmt"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/SscSPs/escrow_settlement_app/internal/utils"
	"github.com/shopspring/decimal"
)

// Commission computes the head office share of an amount, rounded to minor units.
// The same helper serves the upfront commission and the refund clawback so the
// two always agree to the cent.
func Commission(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(utils.MoneyPrecision)
}

// VerifyConservation checks that every step of a trail still holds exactly the
// order amount across the four accounts.
func VerifyConservation(steps []domain.FinancialState, orderAmount decimal.Decimal) error {
	if len(steps) == 0 {
		return fmt.Errorf("ledger trail is empty")
	}
	for _, step := range steps {
		if total := step.Balances.Total(); !total.Equal(orderAmount) {
			return fmt.Errorf("ledger step %d (%s) holds %s, expected %s",
				step.StepIndex, step.Label, total.String(), orderAmount.String())
		}
	}
	return nil
}

// FinalState returns the last step of a trail; the trail must not be empty.
func FinalState(steps []domain.FinancialState) domain.FinancialState {
	return steps[len(steps)-1]
}
