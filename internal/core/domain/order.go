package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// WithdrawalStatus tracks how far an order's settled affiliate share has been paid out.
type WithdrawalStatus string

const (
	WithdrawalUnwithdrawn WithdrawalStatus = "UNWITHDRAWN"
	WithdrawalPending     WithdrawalStatus = "PENDING" // Part of a pending withdrawal request
	WithdrawalWithdrawn   WithdrawalStatus = "WITHDRAWN"
)

// IsValid reports whether s is a known withdrawal status.
func (s WithdrawalStatus) IsValid() bool {
	switch s {
	case WithdrawalUnwithdrawn, WithdrawalPending, WithdrawalWithdrawn:
		return true
	}
	return false
}

// CanTransition reports whether the withdrawal state machine allows moving from one status to another.
func CanTransition(from, to WithdrawalStatus) bool {
	switch from {
	case WithdrawalUnwithdrawn:
		return to == WithdrawalPending
	case WithdrawalPending:
		return to == WithdrawalWithdrawn || to == WithdrawalUnwithdrawn
	}
	return false
}

// Order is a tuition order. Amount and Scenario are fixed at creation; only
// the withdrawal fields change afterwards.
type Order struct {
	OrderID          string           `json:"orderID"`
	StudentName      string           `json:"studentName"`
	CourseName       string           `json:"courseName"`
	Amount           decimal.Decimal  `json:"amount"`
	Scenario         Scenario         `json:"scenario"`
	OrderDate        time.Time        `json:"orderDate"`
	SettlementTime   *time.Time       `json:"settlementTime,omitempty"`
	WithdrawalStatus WithdrawalStatus `json:"withdrawalStatus"`
	WithdrawnAmount  decimal.Decimal  `json:"withdrawnAmount"`
	WithdrawalTime   *time.Time       `json:"withdrawalTime,omitempty"`
}

// Validate checks the static facts of an order.
func (o Order) Validate() error {
	if strings.TrimSpace(o.OrderID) == "" {
		return fmt.Errorf("%w: order id is required", apperrors.ErrInvalidInput)
	}
	if o.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: order %s amount must be positive", apperrors.ErrInvalidInput, o.OrderID)
	}
	if !o.Scenario.IsValid() {
		return fmt.Errorf("%w: order %s has unknown scenario '%s'", apperrors.ErrInvalidInput, o.OrderID, o.Scenario)
	}
	if !o.WithdrawalStatus.IsValid() {
		return fmt.Errorf("%w: order %s has unknown withdrawal status '%s'", apperrors.ErrInvalidInput, o.OrderID, o.WithdrawalStatus)
	}
	if o.WithdrawnAmount.IsNegative() {
		return fmt.Errorf("%w: order %s withdrawn amount must not be negative", apperrors.ErrInvalidInput, o.OrderID)
	}
	return nil
}

// WithdrawalTransition describes a withdrawal status change applied to a set of orders at once.
type WithdrawalTransition struct {
	OrderIDs []string
	Status   WithdrawalStatus
	// At is required when moving to WITHDRAWN.
	At *time.Time
	// Amounts holds the withdrawn amount per order id; required when moving to WITHDRAWN.
	Amounts map[string]decimal.Decimal
}

// Apply returns o with the transition applied, or an error if the state
// machine forbids it. o itself is not modified.
func (t WithdrawalTransition) Apply(o Order) (Order, error) {
	if !CanTransition(o.WithdrawalStatus, t.Status) {
		return o, fmt.Errorf("%w: order %s cannot move from %s to %s",
			apperrors.ErrInvalidTransition, o.OrderID, o.WithdrawalStatus, t.Status)
	}
	next := o
	next.WithdrawalStatus = t.Status
	switch t.Status {
	case WithdrawalWithdrawn:
		amount, ok := t.Amounts[o.OrderID]
		if !ok || t.At == nil {
			return o, fmt.Errorf("%w: withdrawal of order %s needs an amount and a time", apperrors.ErrInvalidInput, o.OrderID)
		}
		at := *t.At
		next.WithdrawnAmount = amount
		next.WithdrawalTime = &at
	case WithdrawalUnwithdrawn:
		next.WithdrawalTime = nil
	}
	return next, nil
}

// OrderFilter selects orders for listing. Zero-valued fields match everything.
type OrderFilter struct {
	Search        string           // Case-insensitive match on order id, student or course name
	Status        WithdrawalStatus // Empty matches every status
	SettledFrom   *time.Time       // Date-only, inclusive
	SettledTo     *time.Time
	WithdrawnFrom *time.Time
	WithdrawnTo   *time.Time
}

// Matches reports whether o passes every criterion of the filter.
func (f OrderFilter) Matches(o Order) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(o.OrderID), term) &&
			!strings.Contains(strings.ToLower(o.StudentName), term) &&
			!strings.Contains(strings.ToLower(o.CourseName), term) {
			return false
		}
	}
	if f.Status != "" && o.WithdrawalStatus != f.Status {
		return false
	}
	if !withinDates(o.SettlementTime, f.SettledFrom, f.SettledTo) {
		return false
	}
	return withinDates(o.WithdrawalTime, f.WithdrawnFrom, f.WithdrawnTo)
}

// withinDates compares calendar dates only. A missing value never matches an active range.
func withinDates(value, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if value == nil {
		return false
	}
	day := dateOnly(*value)
	if from != nil && day.Before(dateOnly(*from)) {
		return false
	}
	if to != nil && day.After(dateOnly(*to)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
