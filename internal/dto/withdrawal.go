package dto

import (
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BatchRequest lists the withdrawal requests to approve or reject.
type BatchRequest struct {
	RequestIDs []string `json:"requestIDs" binding:"required,min=1,dive,required"`
}

// ListRequestsParams defines the query parameters for listing requests.
type ListRequestsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// RequestOrderLine is one order inside a withdrawal request, with its current settled share.
type RequestOrderLine struct {
	OrderID          string                  `json:"orderID"`
	StudentName      string                  `json:"studentName"`
	CourseName       string                  `json:"courseName"`
	Amount           decimal.Decimal         `json:"amount" swaggertype:"string"`
	SettledAmount    decimal.Decimal         `json:"settledAmount" swaggertype:"string"`
	WithdrawalStatus domain.WithdrawalStatus `json:"withdrawalStatus"`
}

// WithdrawalRequestResponse defines the data returned for a withdrawal request.
type WithdrawalRequestResponse struct {
	RequestID   string               `json:"requestID"`
	RequestDate time.Time            `json:"requestDate"`
	TotalAmount decimal.Decimal      `json:"totalAmount" swaggertype:"string"`
	Status      domain.RequestStatus `json:"status"`
	OrderIDs    []string             `json:"orderIDs"`
	Orders      []RequestOrderLine   `json:"orders,omitempty"`
}

// WithdrawalRecordResponse defines the data returned for a history record.
type WithdrawalRecordResponse struct {
	RecordID     string          `json:"recordID"`
	ApprovedTime time.Time       `json:"approvedTime"`
	TotalAmount  decimal.Decimal `json:"totalAmount" swaggertype:"string"`
	OrderCount   int             `json:"orderCount"`
}

// BatchItemResponse is the outcome for one request of a batch.
type BatchItemResponse struct {
	RequestID string                    `json:"requestID"`
	Success   bool                      `json:"success"`
	Error     string                    `json:"error,omitempty"`
	Record    *WithdrawalRecordResponse `json:"record,omitempty"`
}

// BatchResponse reports per-request outcomes of a batch operation.
type BatchResponse struct {
	Results   []BatchItemResponse `json:"results"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
}

// ToWithdrawalRequestResponse converts a domain.WithdrawalRequest to its DTO.
func ToWithdrawalRequestResponse(r *domain.WithdrawalRequest) WithdrawalRequestResponse {
	ids := make([]string, len(r.OrderIDs))
	copy(ids, r.OrderIDs)
	return WithdrawalRequestResponse{
		RequestID:   r.RequestID,
		RequestDate: r.RequestDate,
		TotalAmount: r.TotalAmount,
		Status:      r.Status,
		OrderIDs:    ids,
	}
}

// ToListWithdrawalRequestResponse converts a slice of requests.
func ToListWithdrawalRequestResponse(reqs []domain.WithdrawalRequest) []WithdrawalRequestResponse {
	res := make([]WithdrawalRequestResponse, len(reqs))
	for i := range reqs {
		res[i] = ToWithdrawalRequestResponse(&reqs[i])
	}
	return res
}

// ToWithdrawalRecordResponse converts a history record.
func ToWithdrawalRecordResponse(r *domain.WithdrawalRecord) WithdrawalRecordResponse {
	return WithdrawalRecordResponse{
		RecordID:     r.RecordID,
		ApprovedTime: r.ApprovedTime,
		TotalAmount:  r.TotalAmount,
		OrderCount:   r.OrderCount,
	}
}

// ToListWithdrawalRecordResponse converts the history.
func ToListWithdrawalRecordResponse(records []domain.WithdrawalRecord) []WithdrawalRecordResponse {
	res := make([]WithdrawalRecordResponse, len(records))
	for i := range records {
		res[i] = ToWithdrawalRecordResponse(&records[i])
	}
	return res
}

// ToBatchResponse converts batch results, keeping the input order.
func ToBatchResponse(results []domain.BatchResult) BatchResponse {
	res := BatchResponse{Results: make([]BatchItemResponse, len(results))}
	for i, r := range results {
		item := BatchItemResponse{RequestID: r.RequestID, Success: r.OK()}
		if r.Err != nil {
			item.Error = r.Err.Error()
			res.Failed++
		} else {
			res.Succeeded++
		}
		if r.Record != nil {
			rec := ToWithdrawalRecordResponse(r.Record)
			item.Record = &rec
		}
		res.Results[i] = item
	}
	return res
}
