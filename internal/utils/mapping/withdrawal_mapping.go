package mapping

import (
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/SscSPs/escrow_settlement_app/internal/models"
)

// ToModelWithdrawalRequest converts a domain WithdrawalRequest to a model WithdrawalRequest
func ToModelWithdrawalRequest(d domain.WithdrawalRequest) models.WithdrawalRequest {
	ids := make([]string, len(d.OrderIDs))
	copy(ids, d.OrderIDs)
	return models.WithdrawalRequest{
		RequestID:   d.RequestID,
		RequestDate: d.RequestDate,
		TotalAmount: d.TotalAmount,
		OrderIDs:    ids,
		Status:      string(d.Status),
	}
}

// ToDomainWithdrawalRequest converts a model WithdrawalRequest to a domain WithdrawalRequest
func ToDomainWithdrawalRequest(m models.WithdrawalRequest) domain.WithdrawalRequest {
	ids := m.OrderIDs
	if ids == nil {
		ids = []string{}
	}
	return domain.WithdrawalRequest{
		RequestID:   m.RequestID,
		RequestDate: m.RequestDate,
		TotalAmount: m.TotalAmount,
		OrderIDs:    ids,
		Status:      domain.RequestStatus(m.Status),
	}
}

// ToModelWithdrawalRecord converts a domain WithdrawalRecord to a model WithdrawalRecord
func ToModelWithdrawalRecord(d domain.WithdrawalRecord) models.WithdrawalRecord {
	return models.WithdrawalRecord{
		RecordID:     d.RecordID,
		ApprovedTime: d.ApprovedTime,
		TotalAmount:  d.TotalAmount,
		OrderCount:   d.OrderCount,
	}
}

// ToDomainWithdrawalRecord converts a model WithdrawalRecord to a domain WithdrawalRecord
func ToDomainWithdrawalRecord(m models.WithdrawalRecord) domain.WithdrawalRecord {
	return domain.WithdrawalRecord{
		RecordID:     m.RecordID,
		ApprovedTime: m.ApprovedTime,
		TotalAmount:  m.TotalAmount,
		OrderCount:   m.OrderCount,
	}
}
