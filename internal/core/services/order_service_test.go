package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/escrow_settlement_app/internal/apperrors"
	"github.com/SscSPs/escrow_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/escrow_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/escrow_settlement_app/internal/core/services"
	"github.com/SscSPs/escrow_settlement_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 4, 20, 8, 30, 0, 0, time.UTC)

// --- Test Suite ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockRepo *MockOrderRepository
	service  portssvc.OrderSvcFacade
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockOrderRepository)
	calc, err := services.NewSettlementCalculator(domain.DefaultSettlementPolicy())
	suite.Require().NoError(err)
	suite.service = services.NewOrderService(suite.mockRepo, calc,
		services.WithOrderClock(func() time.Time { return fixedNow }))
}

func order(id string, amount int64, scenario domain.Scenario, status domain.WithdrawalStatus) domain.Order {
	return domain.Order{
		OrderID:          id,
		StudentName:      "Student " + id,
		CourseName:       "Course",
		Amount:           decimal.NewFromInt(amount),
		Scenario:         scenario,
		OrderDate:        fixedNow.AddDate(0, -1, 0),
		WithdrawalStatus: status,
		WithdrawnAmount:  decimal.Zero,
	}
}

// --- Test Cases ---

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		OrderID:     " ORD-1 ",
		StudentName: "Zhang San",
		CourseName:  "Long-term class",
		Amount:      decimal.NewFromInt(10000),
		Scenario:    domain.ScenarioPass,
	}

	suite.mockRepo.On("SaveOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		return o.OrderID == "ORD-1" && o.WithdrawalStatus == domain.WithdrawalUnwithdrawn &&
			o.OrderDate.Equal(fixedNow) && o.WithdrawnAmount.IsZero()
	})).Return(nil).Once()

	created, err := suite.service.CreateOrder(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("ORD-1", created.OrderID)
	suite.Equal(domain.WithdrawalUnwithdrawn, created.WithdrawalStatus)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RefundLargerThanOrder() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		OrderID:     "ORD-SMALL",
		StudentName: "Li Si",
		CourseName:  "Short class",
		Amount:      decimal.NewFromInt(5000),
		Scenario:    domain.ScenarioProtocolRefund,
	}

	created, err := suite.service.CreateOrder(ctx, req)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_Duplicate() {
	ctx := context.Background()
	req := dto.CreateOrderRequest{
		OrderID: "ORD-1", StudentName: "A", CourseName: "B",
		Amount: decimal.NewFromInt(100), Scenario: domain.ScenarioPaidOnly,
	}
	suite.mockRepo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateOrder(ctx, req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *OrderServiceTestSuite) TestGetOrder_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindOrderByID", ctx, "nope").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetOrder(ctx, "nope")

	suite.ErrorIs(err, apperrors.ErrUnknownOrderID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestApplyWithdrawalTransition_UnknownIDIsNoOp() {
	ctx := context.Background()
	ids := []string{"ORD-1", "ORD-404"}
	suite.mockRepo.On("FindOrdersByIDs", ctx, ids).Return(map[string]domain.Order{
		"ORD-1": order("ORD-1", 10000, domain.ScenarioPass, domain.WithdrawalUnwithdrawn),
	}, nil).Once()

	err := suite.service.ApplyWithdrawalTransition(ctx, domain.WithdrawalTransition{OrderIDs: ids, Status: domain.WithdrawalPending})

	suite.ErrorIs(err, apperrors.ErrUnknownOrderID)
	suite.Contains(err.Error(), "ORD-404")
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateWithdrawalState", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestApplyWithdrawalTransition_ForbiddenMoveIsNoOp() {
	ctx := context.Background()
	ids := []string{"ORD-1", "ORD-2"}
	suite.mockRepo.On("FindOrdersByIDs", ctx, ids).Return(map[string]domain.Order{
		"ORD-1": order("ORD-1", 10000, domain.ScenarioPass, domain.WithdrawalUnwithdrawn),
		"ORD-2": order("ORD-2", 10000, domain.ScenarioPass, domain.WithdrawalPending),
	}, nil).Once()

	err := suite.service.ApplyWithdrawalTransition(ctx, domain.WithdrawalTransition{OrderIDs: ids, Status: domain.WithdrawalPending})

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateWithdrawalState", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestApplyWithdrawalTransition_Success() {
	ctx := context.Background()
	ids := []string{"ORD-1", "ORD-2", "ORD-1"}
	suite.mockRepo.On("FindOrdersByIDs", ctx, ids).Return(map[string]domain.Order{
		"ORD-1": order("ORD-1", 10000, domain.ScenarioPass, domain.WithdrawalUnwithdrawn),
		"ORD-2": order("ORD-2", 8000, domain.ScenarioPass, domain.WithdrawalUnwithdrawn),
	}, nil).Once()
	suite.mockRepo.On("UpdateWithdrawalState", ctx, mock.MatchedBy(func(orders []domain.Order) bool {
		if len(orders) != 2 {
			return false
		}
		for _, o := range orders {
			if o.WithdrawalStatus != domain.WithdrawalPending {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	err := suite.service.ApplyWithdrawalTransition(ctx, domain.WithdrawalTransition{OrderIDs: ids, Status: domain.WithdrawalPending})

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestApplyWithdrawalTransition_EmptySet() {
	err := suite.service.ApplyWithdrawalTransition(context.Background(), domain.WithdrawalTransition{Status: domain.WithdrawalPending})
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
}

func (suite *OrderServiceTestSuite) TestListOrdersAndSummary() {
	ctx := context.Background()
	withdrawn := order("ORD-3", 10000, domain.ScenarioProtocolRefund, domain.WithdrawalWithdrawn)
	withdrawn.WithdrawnAmount = decimal.NewFromInt(3600)
	all := []domain.Order{
		order("ORD-1", 10000, domain.ScenarioPass, domain.WithdrawalUnwithdrawn),
		order("ORD-2", 8000, domain.ScenarioPass, domain.WithdrawalPending),
		withdrawn,
		order("ORD-4", 10000, domain.ScenarioPaidOnly, domain.WithdrawalUnwithdrawn),
	}
	suite.mockRepo.On("ListOrders", ctx).Return(all, nil)

	pending, err := suite.service.ListOrders(ctx, domain.OrderFilter{Status: domain.WithdrawalPending})
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("ORD-2", pending[0].OrderID)

	summary, err := suite.service.Summary(ctx, domain.OrderFilter{})
	suite.Require().NoError(err)
	suite.Equal(4, summary.OrderCount)
	suite.True(decimal.NewFromInt(9000+7200+3600).Equal(summary.TotalSettled), summary.TotalSettled.String())
	suite.True(decimal.NewFromInt(9000).Equal(summary.AvailableToWithdraw))
	suite.True(decimal.NewFromInt(7200).Equal(summary.PendingAudit))
	suite.True(decimal.NewFromInt(3600).Equal(summary.TotalWithdrawn))
}

func (suite *OrderServiceTestSuite) TestListOrders_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListOrders", ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListOrders(ctx, domain.OrderFilter{})
	suite.ErrorIs(err, assert.AnError)
}

// --- Run Test Suite ---
func TestOrderService(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
