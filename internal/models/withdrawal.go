package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalRequest is the database row of a withdrawal request.
type WithdrawalRequest struct {
	RequestID   string          `db:"request_id"` // Primary Key
	RequestDate time.Time       `db:"request_date"`
	TotalAmount decimal.Decimal `db:"total_amount"` // Snapshot at creation
	OrderIDs    []string        `db:"order_ids"`    // TEXT[]
	Status      string          `db:"status"`
}

// WithdrawalRecord is the database row of a history entry.
type WithdrawalRecord struct {
	RecordID     string          `db:"record_id"` // FK -> withdrawal_requests.request_id
	ApprovedTime time.Time       `db:"approved_time"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	OrderCount   int             `db:"order_count"`
}
