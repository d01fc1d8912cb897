package services

import (
	"fmt"

	portsrepo "github.com/SscSPs/escrow_settlement_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
// Options are applied to the withdrawal workflow.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, withdrawalOpts ...WithdrawalServiceOption) (*portssvc.ServiceContainer, error) {
	settlement, err := NewSettlementCalculator(cfg.SettlementPolicy())
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement calculator: %w", err)
	}

	container := &portssvc.ServiceContainer{Settlement: settlement}
	container.Orders = NewOrderService(repos.OrderRepo, settlement)
	container.Withdrawals = NewWithdrawalService(repos.TxManager, repos.WithdrawalRepo, container.Orders, settlement, withdrawalOpts...)

	return container, nil
}
