package cmd

import (
	"log/slog"
	"time"

	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/catalogrepo"
	"warehouse/internal/adapters/out/postgres/stockindex"
	"warehouse/internal/adapters/out/redis/catalogcache"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const defaultCatalogCacheTTL = 15 * time.Minute

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	cacheTTL := defaultCatalogCacheTTL
	if parsed, err := time.ParseDuration(config.CatalogCacheTTL); err == nil && parsed > 0 {
		cacheTTL = parsed
	}

	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateAllocationPlanner() services.AllocationPlanner {
	var catalog ports.CatalogLookup = catalogrepo.NewGormCatalogLookup(c.gormDB)
	if c.redisClient != nil {
		catalog = catalogcache.NewCachedCatalogLookup(catalog, c.redisClient, c.cacheTTL, c.logger)
	}
	return services.NewAllocationPlanner(catalog, stockindex.NewGormStockIndex(c.gormDB))
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, c.CreateAllocationPlanner())
}

func (c *CompositionRoot) CreateTransitionSubOrderCommandHandler() commands.TransitionSubOrderCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionSubOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileOrderStatusesCommandHandler() commands.ReconcileOrderStatusesCommandHandler {
	var f commands.StatusUoWFactory = FuncStatusUoWFactory(func() commands.StatusUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileOrderStatusesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWarehouseSubOrdersQueryHandler() queries.GetWarehouseSubOrdersQueryHandler {
	return queries.NewGetWarehouseSubOrdersQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncStatusUoWFactory func() commands.StatusUoW

func (f FuncStatusUoWFactory) Create() commands.StatusUoW {
	return f()
}
