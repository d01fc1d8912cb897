package domain

import (
	"github.com/shopspring/decimal"
)

// Account identifies one of the four ledger accounts an order's funds move between.
type Account string

const (
	AccountJoint     Account = "JOINT"     // Escrow account co-managed by head office and affiliate
	AccountAffiliate Account = "AFFILIATE" // Franchisee (branch school) account
	AccountStudent   Account = "STUDENT"
	AccountMain      Account = "MAIN" // Head office account
)

// Accounts lists every ledger account in display order.
var Accounts = []Account{AccountJoint, AccountAffiliate, AccountStudent, AccountMain}

// IsValid reports whether a is one of the four known accounts.
func (a Account) IsValid() bool {
	switch a {
	case AccountJoint, AccountAffiliate, AccountStudent, AccountMain:
		return true
	}
	return false
}

// Balances holds the balance of every ledger account at one step of a trail.
type Balances struct {
	Joint     decimal.Decimal `json:"joint"`
	Affiliate decimal.Decimal `json:"affiliate"`
	Student   decimal.Decimal `json:"student"`
	Main      decimal.Decimal `json:"main"`
}

// Total returns the sum of all four balances. Money never leaves the four
// accounts, so for a well-formed trail this always equals the order amount.
func (b Balances) Total() decimal.Decimal {
	return b.Joint.Add(b.Affiliate).Add(b.Student).Add(b.Main)
}

// Get returns the balance of a single account.
func (b Balances) Get(a Account) decimal.Decimal {
	switch a {
	case AccountJoint:
		return b.Joint
	case AccountAffiliate:
		return b.Affiliate
	case AccountStudent:
		return b.Student
	case AccountMain:
		return b.Main
	}
	return decimal.Zero
}

// Transfer returns a copy of b with amount moved from one account to another.
func (b Balances) Transfer(from, to Account, amount decimal.Decimal) Balances {
	next := b
	next.set(from, b.Get(from).Sub(amount))
	next.set(to, next.Get(to).Add(amount))
	return next
}

func (b *Balances) set(a Account, v decimal.Decimal) {
	switch a {
	case AccountJoint:
		b.Joint = v
	case AccountAffiliate:
		b.Affiliate = v
	case AccountStudent:
		b.Student = v
	case AccountMain:
		b.Main = v
	}
}

// Equal reports whether every balance in b equals the one in other.
func (b Balances) Equal(other Balances) bool {
	return b.Joint.Equal(other.Joint) &&
		b.Affiliate.Equal(other.Affiliate) &&
		b.Student.Equal(other.Student) &&
		b.Main.Equal(other.Main)
}
