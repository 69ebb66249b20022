package commands_test

import (
	"errors"
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/suborder"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcileOrderStatusesCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewReconcileOrderStatusesCommand()

	// The first order drifted: its sibling left pending but the stored status
	// is still processing. The second order is already in sync.
	drifted := orderFixture(t)
	driftedSibling := subOrderFixture(t, drifted, suborder.Confirmed)

	inSync := orderFixture(t)
	inSyncSibling := subOrderFixture(t, inSync, suborder.Pending)

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	uow := new(MockStatusUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("SubOrderRepository").Return(subOrderRepo).Once()
	orderRepo.On("GetAllUncompleted", mock.Anything).
		Return([]*order.Order{drifted, inSync}, nil).Once()
	subOrderRepo.On("GetByOrderID", mock.Anything, drifted.ID()).
		Return([]*suborder.SubOrder{driftedSibling}, nil).Once()
	orderRepo.On("Update", mock.Anything, drifted).Return(nil).Once()
	subOrderRepo.On("GetByOrderID", mock.Anything, inSync.ID()).
		Return([]*suborder.SubOrder{inSyncSibling}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileOrderStatusesCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.FullyScheduled, drifted.Status())
	require.Equal(t, order.Processing, inSync.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, inSync)
	orderRepo.AssertExpectations(t)
	subOrderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestReconcileOrderStatusesCommandHandler_Handle_NothingToReconcile(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewReconcileOrderStatusesCommand()

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	uow := new(MockStatusUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		orderRepo.On("GetAllUncompleted", mock.Anything).Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileOrderStatusesCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	uow.AssertExpectations(t)
}

func TestReconcileOrderStatusesCommandHandler_Handle_ReadErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewReconcileOrderStatusesCommand()

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	uow := new(MockStatusUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		orderRepo.On("GetAllUncompleted", mock.Anything).
			Return(nil, errors.New("read failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStatusUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcileOrderStatusesCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
}
