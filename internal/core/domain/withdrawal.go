package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the audit state of a withdrawal request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// IsValid reports whether s is a known request status.
func (s RequestStatus) IsValid() bool {
	return s == RequestPending || s == RequestApproved || s == RequestRejected
}

// WithdrawalRequest is a franchisee's claim on the settled share of a fixed set of orders.
type WithdrawalRequest struct {
	RequestID   string          `json:"requestID"`
	RequestDate time.Time       `json:"requestDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"` // Snapshot at creation, for display only
	OrderIDs    []string        `json:"orderIDs"`
	Status      RequestStatus   `json:"status"`
}

// IsPending reports whether the request still awaits audit.
func (r WithdrawalRequest) IsPending() bool {
	return r.Status == RequestPending
}

// WithdrawalRecord is an append-only history entry written once per approved request.
type WithdrawalRecord struct {
	RecordID     string          `json:"recordID"` // Same as the approved request's id
	ApprovedTime time.Time       `json:"approvedTime"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	OrderCount   int             `json:"orderCount"`
}

// BatchResult is the outcome of one request inside a batch approve/reject.
type BatchResult struct {
	RequestID string
	Record    *WithdrawalRecord // Set on successful approval
	Err       error
}

// OK reports whether the request was processed.
func (r BatchResult) OK() bool {
	return r.Err == nil
}

// WithdrawalSummary aggregates the affiliate's position over a set of orders.
type WithdrawalSummary struct {
	TotalSettled        decimal.Decimal `json:"totalSettled"`        // Affiliate share of every settled order
	AvailableToWithdraw decimal.Decimal `json:"availableToWithdraw"` // Settled and not yet requested
	PendingAudit        decimal.Decimal `json:"pendingAudit"`
	TotalWithdrawn      decimal.Decimal `json:"totalWithdrawn"`
	OrderCount          int             `json:"orderCount"`
}
