package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the database row of an order.
type Order struct {
	OrderID          string          `db:"order_id"` // Primary Key
	StudentName      string          `db:"student_name"`
	CourseName       string          `db:"course_name"`
	Amount           decimal.Decimal `db:"amount"`
	Scenario         string          `db:"scenario"`
	OrderDate        time.Time       `db:"order_date"`
	SettlementTime   *time.Time      `db:"settlement_time"` // Nullable
	WithdrawalStatus string          `db:"withdrawal_status"`
	WithdrawnAmount  decimal.Decimal `db:"withdrawn_amount"`
	WithdrawalTime   *time.Time      `db:"withdrawal_time"` // Nullable
}
