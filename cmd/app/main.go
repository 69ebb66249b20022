package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"warehouse/cmd"
	httpserver "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/catalogrepo"
	"warehouse/internal/adapters/out/postgres/orderrepo"
	"warehouse/internal/adapters/out/postgres/stockindex"
	"warehouse/internal/adapters/out/postgres/suborderrepo"
	"warehouse/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)
	migrateDatabase(gormDB)

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	jobManager := jobs.NewJobManager(app.CreateReconcileOrderStatusesCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		RedisAddr:       goDotEnvVariable("REDIS_ADDR"),
		CatalogCacheTTL: goDotEnvVariable("CATALOG_CACHE_TTL"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func migrateDatabase(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{},
		&suborderrepo.SubOrderDTO{}, &suborderrepo.ItemDTO{},
		&catalogrepo.MaterialDTO{},
		&stockindex.WarehouseDTO{}, &stockindex.WarehouseStockDTO{},
		&postgres.DailyNumberSequenceDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpserver.NewServer(
		app.CreatePlaceOrderCommandHandler(),
		app.CreateTransitionSubOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetWarehouseSubOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
