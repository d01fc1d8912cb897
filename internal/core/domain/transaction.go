package domain

import "github.com/shopspring/decimal"

// LedgerTransaction is a single movement of money between two ledger accounts.
type LedgerTransaction struct {
	From   Account         `json:"from"`
	To     Account         `json:"to"`
	Amount decimal.Decimal `json:"amount"` // Positive value; precise decimal type
	Reason string          `json:"reason"`
}

// Equal reports whether two transactions move the same amount between the same accounts for the same reason.
func (t LedgerTransaction) Equal(other LedgerTransaction) bool {
	return t.From == other.From && t.To == other.To && t.Amount.Equal(other.Amount) && t.Reason == other.Reason
}
