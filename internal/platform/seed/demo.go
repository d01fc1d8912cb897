package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

func at(layout string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", layout)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(t time.Time) *time.Time {
	return &t
}

// demoOrders is the franchisee's sample book of orders.
func demoOrders() []domain.Order {
	order := func(id, student, course string, amount int64, scenario domain.Scenario, date string, settled *time.Time) domain.Order {
		return domain.Order{
			OrderID:          id,
			StudentName:      student,
			CourseName:       course,
			Amount:           decimal.NewFromInt(amount),
			Scenario:         scenario,
			OrderDate:        at(date),
			SettlementTime:   settled,
			WithdrawalStatus: domain.WithdrawalUnwithdrawn,
			WithdrawnAmount:  decimal.Zero,
		}
	}
	return []domain.Order{
		order("ORD-2403-001", "Zhang San", "Civil service long-term class", 10000, domain.ScenarioPass, "2024-03-01 10:23", ptr(at("2024-03-08 10:00"))),
		order("ORD-2403-005", "Li Si", "Selection written exam VIP", 10000, domain.ScenarioProtocolRefund, "2024-03-02 14:15", ptr(at("2024-03-09 11:30"))),
		order("ORD-2403-012", "Wang Wu", "Municipal selection interview class", 10000, domain.ScenarioFullRefund, "2024-03-03 09:30", nil),
		order("ORD-2403-021", "Sun Qi", "Provincial interview bootcamp", 8000, domain.ScenarioPass, "2024-03-05 11:20", ptr(at("2024-03-12 14:00"))),
		order("ORD-2403-025", "Zhou Ba", "Public institution written exam", 10000, domain.ScenarioPass, "2024-03-06 09:10", ptr(at("2024-03-13 09:00"))),
		order("ORD-2404-001", "Zhao Jiu", "National exam essay workshop", 5000, domain.ScenarioPass, "2024-04-01 10:00", ptr(at("2024-04-08 10:00"))),
		order("ORD-2404-002", "Qian Shi", "Police interview training", 12000, domain.ScenarioPass, "2024-04-02 11:00", ptr(at("2024-04-09 11:00"))),
		order("ORD-2404-003", "Wu Shiyi", "Teacher recruitment agreement class", 15000, domain.ScenarioProtocolRefund, "2024-04-03 12:00", ptr(at("2024-04-10 12:00"))),
	}
}

type demoRequest struct {
	id       string
	date     string
	orderIDs []string
	status   domain.RequestStatus
}

var demoRequests = []demoRequest{
	{id: "WDR-20240309-99", date: "2024-03-09 16:20", orderIDs: []string{"ORD-2403-005"}, status: domain.RequestApproved},
	{id: "WDR-20240315-01", date: "2024-03-15 09:00", orderIDs: []string{"ORD-2403-021"}, status: domain.RequestPending},
	{id: "WDR-20240410-01", date: "2024-04-10 15:00", orderIDs: []string{"ORD-2404-003"}, status: domain.RequestPending},
}

// LoadDemoData fills an empty store with sample orders, two pending
// withdrawal requests and one approved request with its history record.
// All amounts come from settlement, so approving a seeded request pays out
// exactly what its snapshot shows. A store that already holds orders is left alone.
func LoadDemoData(ctx context.Context, repos portsrepo.RepositoryProvider, settlement portssvc.SettlementCalculatorSvc, logger *slog.Logger) error {
	existing, err := repos.OrderRepo.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing orders: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Store already holds orders, skipping demo data", slog.Int("order_count", len(existing)))
		return nil
	}

	orders := demoOrders()
	byID := make(map[string]*domain.Order, len(orders))
	for i := range orders {
		byID[orders[i].OrderID] = &orders[i]
	}

	return repos.TxManager.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, o := range orders {
			if err := repos.OrderRepo.SaveOrder(ctx, o); err != nil {
				return err
			}
		}

		for _, dr := range demoRequests {
			requestDate := at(dr.date)
			total := decimal.Zero
			updated := make([]domain.Order, 0, len(dr.orderIDs))
			for _, id := range dr.orderIDs {
				o := byID[id]
				amount := settlement.AffiliateAmount(*o)
				total = total.Add(amount)
				switch dr.status {
				case domain.RequestPending:
					o.WithdrawalStatus = domain.WithdrawalPending
				case domain.RequestApproved:
					o.WithdrawalStatus = domain.WithdrawalWithdrawn
					o.WithdrawnAmount = amount
					o.WithdrawalTime = ptr(requestDate)
				}
				updated = append(updated, *o)
			}

			if err := repos.OrderRepo.UpdateWithdrawalState(ctx, updated); err != nil {
				return err
			}
			if err := repos.WithdrawalRepo.SaveRequest(ctx, domain.WithdrawalRequest{
				RequestID:   dr.id,
				RequestDate: requestDate,
				TotalAmount: total,
				OrderIDs:    dr.orderIDs,
				Status:      dr.status,
			}); err != nil {
				return err
			}
			if dr.status == domain.RequestApproved {
				if err := repos.WithdrawalRepo.AppendRecord(ctx, domain.WithdrawalRecord{
					RecordID:     dr.id,
					ApprovedTime: requestDate,
					TotalAmount:  total,
					OrderCount:   len(dr.orderIDs),
				}); err != nil {
					return err
				}
			}
		}

		logger.Info("Demo data loaded",
			slog.Int("orders", len(orders)),
			slog.Int("requests", len(demoRequests)))
		return nil
	})
}
