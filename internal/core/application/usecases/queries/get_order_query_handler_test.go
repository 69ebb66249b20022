package queries_test

import (
	"context"
	"testing"
	"time"

	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/adapters/out/postgres/suborderrepo"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/suborder"
	"warehouse/internal/core/domain/model/warehouse"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// buildOrder creates a persisted-ready order with one cement line of the given
// quantity at 420.00 per bag.
func buildOrder(
	s *suite.Suite,
	sequence int,
	priority order.Priority,
	quantity int,
) *order.Order {
	unitPrice := decimal.NewFromInt(420)
	item, err := order.NewItem(
		kernel.NewUUID(), "Portland Cement", "CEM-53", "bag", quantity, unitPrice,
	)
	s.Require().NoError(err)

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	pricing, err := order.NewPricing(
		subtotal,
		decimal.NewFromInt(100),
		decimal.NewFromInt(50),
		decimal.Zero,
		"INR",
	)
	s.Require().NoError(err)

	now := time.Now().UTC()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.FormatNumber(now, sequence),
		"CUST-1001",
		[]order.Item{item},
		pricing,
		priority,
		now,
	)
	s.Require().NoError(err)
	return o
}

// buildSubOrder creates a sub-order covering the whole of the parent's single
// line, routed to the given warehouse.
func buildSubOrder(
	s *suite.Suite,
	parent *order.Order,
	wh warehouse.Warehouse,
	sequence int,
) *suborder.SubOrder {
	items := make([]suborder.Item, 0, len(parent.Items()))
	for _, orderItem := range parent.Items() {
		item, err := suborder.NewItemFromOrderItem(orderItem)
		s.Require().NoError(err)
		items = append(items, item)
	}

	parentPricing := parent.Pricing()
	pricing, err := suborder.NewPricing(
		parentPricing.Subtotal(),
		parentPricing.Tax(),
		parentPricing.DeliveryCharges(),
		parentPricing.Currency(),
	)
	s.Require().NoError(err)

	now := time.Now().UTC()
	so, err := suborder.NewSubOrder(
		kernel.NewUUID(),
		suborder.FormatNumber(now, sequence),
		parent.ID(),
		parent.Number(),
		wh,
		items,
		pricing,
		now,
	)
	s.Require().NoError(err)
	return so
}

func mustWarehouse(s *suite.Suite, name string) warehouse.Warehouse {
	wh, err := warehouse.NewWarehouse(kernel.NewUUID(), name, "Pune")
	s.Require().NoError(err)
	return wh
}

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetOrderQueryHandler
	orderRepo    *orderrepo.GormOrderRepository
	subOrderRepo *suborderrepo.GormSubOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{},
		&suborderrepo.SubOrderDTO{}, &suborderrepo.ItemDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.subOrderRepo = suborderrepo.NewGormSubOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, suborders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ReturnsOrderWithItemsAndSubOrders() {
	ctx := context.Background()

	o := buildOrder(&suite.Suite, 1, order.PriorityNormal, 10)
	err := suite.orderRepo.Add(ctx, o)
	suite.Require().NoError(err)

	central := mustWarehouse(&suite.Suite, "Central")
	north := mustWarehouse(&suite.Suite, "North")
	so1 := buildSubOrder(&suite.Suite, o, central, 1)
	so2 := buildSubOrder(&suite.Suite, o, north, 2)
	suite.Require().NoError(suite.subOrderRepo.Add(ctx, so1))
	suite.Require().NoError(suite.subOrderRepo.Add(ctx, so2))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(result.ID))
	suite.Equal(o.Number(), result.Number)
	suite.Equal("CUST-1001", result.CustomerRef)
	suite.Equal("processing", result.Status)
	suite.Equal("normal", result.Priority)
	suite.True(result.Subtotal.Equal(decimal.NewFromInt(4200)))
	suite.True(result.Total.Equal(decimal.NewFromInt(4350)))
	suite.Equal("INR", result.Currency)

	suite.Require().Len(result.Items, 1)
	suite.Equal("Portland Cement", result.Items[0].Name)
	suite.Equal("CEM-53", result.Items[0].SKU)
	suite.Equal(10, result.Items[0].Quantity)
	suite.True(result.Items[0].LineTotal.Equal(decimal.NewFromInt(4200)))

	suite.Require().Len(result.SubOrders, 2)
	suite.Equal(so1.Number(), result.SubOrders[0].Number)
	suite.Equal("Central", result.SubOrders[0].WarehouseName)
	suite.Equal("pending", result.SubOrders[0].Status)
	suite.Equal(so2.Number(), result.SubOrders[1].Number)
	suite.Equal("North", result.SubOrders[1].WarehouseName)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_OrderWithoutSubOrders_ReturnsEmptySummaries() {
	ctx := context.Background()

	o := buildOrder(&suite.Suite, 1, order.PriorityNormal, 5)
	err := suite.orderRepo.Add(ctx, o)
	suite.Require().NoError(err)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.NotNil(result.SubOrders)
	suite.Empty(result.SubOrders)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalidQuery queries.GetOrderQuery

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
