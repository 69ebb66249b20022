package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/core/domain/model/warehouse"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllUncompleted(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockSubOrderRepository struct{ mock.Mock }

func (m *MockSubOrderRepository) Add(ctx context.Context, so *suborder.SubOrder) error {
	args := m.Called(ctx, so)
	return args.Error(0)
}
func (m *MockSubOrderRepository) Update(ctx context.Context, so *suborder.SubOrder) error {
	args := m.Called(ctx, so)
	return args.Error(0)
}
func (m *MockSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*suborder.SubOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*suborder.SubOrder), args.Error(1)
}
func (m *MockSubOrderRepository) GetByOrderID(
	ctx context.Context, orderID kernel.UUID,
) ([]*suborder.SubOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*suborder.SubOrder), args.Error(1)
}

type MockNumberSequence struct{ mock.Mock }

func (m *MockNumberSequence) Next(ctx context.Context, scope string, day time.Time) (int, error) {
	args := m.Called(ctx, scope, day)
	return args.Int(0), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) SubOrderRepository() ports.SubOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SubOrderRepository)
}
func (m *MockUoW) NumberSequence() ports.NumberSequence {
	args := m.Called()
	return args.Get(0).(ports.NumberSequence)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type stubCatalog struct {
	materials map[kernel.UUID]ports.Material
}

func (c stubCatalog) Resolve(_ context.Context, materialID kernel.UUID) (ports.Material, error) {
	material, ok := c.materials[materialID]
	if !ok {
		return ports.Material{}, errs.NewObjectNotFoundError("materialID", materialID)
	}
	return material, nil
}

type stubStockIndex struct {
	stocks map[kernel.UUID][]ports.WarehouseStock
}

func (s stubStockIndex) StockFor(_ context.Context, materialID kernel.UUID) ([]ports.WarehouseStock, error) {
	return s.stocks[materialID], nil
}

func plannerFixture(t *testing.T) (services.AllocationPlanner, kernel.UUID) {
	t.Helper()

	materialID := kernel.NewUUID()
	wh, err := warehouse.NewWarehouse(kernel.NewUUID(), "Central", "")
	require.NoError(t, err)

	catalog := stubCatalog{materials: map[kernel.UUID]ports.Material{
		materialID: {
			ID:        materialID,
			Name:      "OPC Cement 53 Grade",
			SKU:       "CEM-53",
			Unit:      "bag",
			UnitPrice: decimal.NewFromInt(420),
		},
	}}
	stocks := stubStockIndex{stocks: map[kernel.UUID][]ports.WarehouseStock{
		materialID: {{Warehouse: wh, AvailableQuantity: 1000}},
	}}

	return services.NewAllocationPlanner(catalog, stocks), materialID
}

func placeOrderCommandFixture(t *testing.T, materialID kernel.UUID) commands.PlaceOrderCommand {
	t.Helper()

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		"CUST-001",
		[]commands.PlaceOrderLine{{MaterialID: materialID, Quantity: 10}},
		decimal.NewFromInt(100),
		decimal.NewFromInt(50),
		decimal.Zero,
		"INR",
		order.PriorityNormal,
	)
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	planner, materialID := plannerFixture(t)
	cmd := placeOrderCommandFixture(t, materialID)

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	sequence := new(MockNumberSequence)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NumberSequence").Return(sequence).Once(),
		sequence.On("Next", mock.Anything, ports.SequenceScopeOrders, mock.AnythingOfType("time.Time")).
			Return(7, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		sequence.On("Next", mock.Anything, ports.SequenceScopeSubOrders, mock.AnythingOfType("time.Time")).
			Return(12, nil).Once(),
		subOrderRepo.On("Add", mock.Anything, mock.AnythingOfType("*suborder.SubOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, planner)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	subOrderRepo.AssertExpectations(t)
	sequence.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_PersistsNumberedDocuments(t *testing.T) {
	ctx := t.Context()
	planner, materialID := plannerFixture(t)
	cmd := placeOrderCommandFixture(t, materialID)

	var persistedOrder *order.Order
	var persistedSubOrder *suborder.SubOrder

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			persistedOrder = args.Get(1).(*order.Order)
		}).Return(nil).Once()

	subOrderRepo := new(MockSubOrderRepository)
	subOrderRepo.On("Add", mock.Anything, mock.AnythingOfType("*suborder.SubOrder")).
		Run(func(args mock.Arguments) {
			persistedSubOrder = args.Get(1).(*suborder.SubOrder)
		}).Return(nil).Once()

	sequence := new(MockNumberSequence)
	sequence.On("Next", mock.Anything, ports.SequenceScopeOrders, mock.AnythingOfType("time.Time")).
		Return(1, nil).Once()
	sequence.On("Next", mock.Anything, ports.SequenceScopeSubOrders, mock.AnythingOfType("time.Time")).
		Return(1, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NumberSequence").Return(sequence).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("SubOrderRepository").Return(subOrderRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, planner)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, persistedOrder)
	require.NotNil(t, persistedSubOrder)
	day := time.Now().UTC()
	require.Equal(t, order.FormatNumber(day, 1), persistedOrder.Number())
	require.Equal(t, suborder.FormatNumber(day, 1), persistedSubOrder.Number())
	require.Equal(t, order.Processing, persistedOrder.Status())
	require.Equal(t, suborder.Pending, persistedSubOrder.Status())
	require.True(t, persistedSubOrder.OrderID().IsEqual(persistedOrder.ID()))
	require.Equal(t, persistedOrder.Number(), persistedSubOrder.OrderNumber())
	// 10 bags at the 420 list price, plus the full tax and delivery shares for
	// the single group. The discount stays on the parent.
	require.True(t, persistedOrder.Pricing().Subtotal().Equal(decimal.NewFromInt(4200)))
	require.True(t, persistedSubOrder.Pricing().Subtotal().Equal(decimal.NewFromInt(4200)))
	require.True(t, persistedSubOrder.Pricing().Tax().Equal(decimal.NewFromInt(100)))
	require.True(t, persistedSubOrder.Pricing().DeliveryCharges().Equal(decimal.NewFromInt(50)))
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	planner, _ := plannerFixture(t)
	cmd := commands.PlaceOrderCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory, planner)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestPlaceOrderCommandHandler_Handle_UnallocatableItem(t *testing.T) {
	ctx := t.Context()
	planner, _ := plannerFixture(t)

	orphanID := kernel.NewUUID()
	catalog := stubCatalog{materials: map[kernel.UUID]ports.Material{
		orphanID: {ID: orphanID, Name: "Rare Alloy", SKU: "RA-1", Unit: "kg", UnitPrice: decimal.NewFromInt(9000)},
	}}
	planner = services.NewAllocationPlanner(catalog, stubStockIndex{})

	cmd := placeOrderCommandFixture(t, orphanID)

	// The plan fails before any transaction is opened.
	factory := new(MockUoWFactory)
	h := commands.NewPlaceOrderCommandHandler(factory, planner)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, services.ErrUnallocatableItem)
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceOrderCommandHandler_Handle_SubOrderAddErrorRollsBack(t *testing.T) {
	ctx := t.Context()
	planner, materialID := plannerFixture(t)
	cmd := placeOrderCommandFixture(t, materialID)

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	sequence := new(MockNumberSequence)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NumberSequence").Return(sequence).Once(),
		sequence.On("Next", mock.Anything, ports.SequenceScopeOrders, mock.AnythingOfType("time.Time")).
			Return(1, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		sequence.On("Next", mock.Anything, ports.SequenceScopeSubOrders, mock.AnythingOfType("time.Time")).
			Return(1, nil).Once(),
		subOrderRepo.On("Add", mock.Anything, mock.AnythingOfType("*suborder.SubOrder")).
			Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, planner)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", ctx)
	orderRepo.AssertExpectations(t)
	subOrderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	planner, materialID := plannerFixture(t)
	cmd := placeOrderCommandFixture(t, materialID)

	orderRepo := new(MockOrderRepository)
	subOrderRepo := new(MockSubOrderRepository)
	sequence := new(MockNumberSequence)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NumberSequence").Return(sequence).Once(),
		sequence.On("Next", mock.Anything, ports.SequenceScopeOrders, mock.AnythingOfType("time.Time")).
			Return(1, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("SubOrderRepository").Return(subOrderRepo).Once(),
		sequence.On("Next", mock.Anything, ports.SequenceScopeSubOrders, mock.AnythingOfType("time.Time")).
			Return(1, nil).Once(),
		subOrderRepo.On("Add", mock.Anything, mock.AnythingOfType("*suborder.SubOrder")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(factory, planner)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}
