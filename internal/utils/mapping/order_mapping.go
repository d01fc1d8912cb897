package mapping

import (
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/SscSPs/escrow_settlement_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:          d.OrderID,
		StudentName:      d.StudentName,
		CourseName:       d.CourseName,
		Amount:           d.Amount,
		Scenario:         string(d.Scenario),
		OrderDate:        d.OrderDate,
		SettlementTime:   d.SettlementTime,
		WithdrawalStatus: string(d.WithdrawalStatus),
		WithdrawnAmount:  d.WithdrawnAmount,
		WithdrawalTime:   d.WithdrawalTime,
	}
}

// ToDomainOrder converts a model Order to a domain Order
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:          m.OrderID,
		StudentName:      m.StudentName,
		CourseName:       m.CourseName,
		Amount:           m.Amount,
		Scenario:         domain.Scenario(m.Scenario),
		OrderDate:        m.OrderDate,
		SettlementTime:   m.SettlementTime,
		WithdrawalStatus: domain.WithdrawalStatus(m.WithdrawalStatus),
		WithdrawnAmount:  m.WithdrawnAmount,
		WithdrawalTime:   m.WithdrawalTime,
	}
}

// ToDomainOrderSlice converts a slice of model Orders to a slice of domain Orders
func ToDomainOrderSlice(ms []models.Order) []domain.Order {
	ds := make([]domain.Order, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrder(m)
	}
	return ds
}
