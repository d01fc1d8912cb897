package domain

// FinancialState is one step of an order's ledger trail. A trail is ordered;
// its order is the audit trail itself.
type FinancialState struct {
	StepIndex       int                `json:"stepIndex"`
	Label           string             `json:"label"`
	Description     string             `json:"description"`
	Balances        Balances           `json:"balances"`
	LastTransaction *LedgerTransaction `json:"lastTransaction,omitempty"` // Nil for informational steps
}

// Equal compares two steps field by field, using decimal equality for money.
func (s FinancialState) Equal(other FinancialState) bool {
	if s.StepIndex != other.StepIndex || s.Label != other.Label || s.Description != other.Description {
		return false
	}
	if !s.Balances.Equal(other.Balances) {
		return false
	}
	if (s.LastTransaction == nil) != (other.LastTransaction == nil) {
		return false
	}
	return s.LastTransaction == nil || s.LastTransaction.Equal(*other.LastTransaction)
}
