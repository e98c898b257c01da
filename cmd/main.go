package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pako24/pako24-backend/internal/app"
	"github.com/pako24/pako24-backend/internal/config"
	"github.com/pako24/pako24-backend/internal/events"
	"github.com/pako24/pako24-backend/internal/handler"
	"github.com/pako24/pako24-backend/internal/postgres"
	"github.com/pako24/pako24-backend/internal/repo"
	"github.com/pako24/pako24-backend/internal/service"
	"github.com/pako24/pako24-backend/pkg/cache"
	"github.com/pako24/pako24-backend/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           PAKO24 API
// @version         1.0
// @description     Документация HTTP API
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	panicIfErr("failed to apply migrations", postgres.Migrate(db))

	storage := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)

	configCache := cache.New(conf.Cache.Capacity, conf.Cache.TTL)
	configCache.StartJanitor(ctx)

	publisher := events.NewPublisher(logger, conf.Kafka)

	configService := service.NewConfigService(logger, storage, configCache)
	orderService := service.NewOrderService(logger, txManager, storage, configService, publisher)
	analyticsService := service.NewAnalyticsService(logger, storage)
	accountService := service.NewAccountService(logger, storage)
	catalogService := service.NewCatalogService(logger, txManager, storage)

	if conf.Seed.AdminEmail != "" {
		panicIfErr("failed to seed admin", accountService.EnsureSeedAdmin(ctx, conf.Seed.AdminEmail, conf.Seed.AdminPassword))
	}

	publicHandler := handler.NewPublicHandler(logger, orderService, accountService, catalogService)
	adminHandler := handler.NewAdminHandler(logger, orderService, accountService, catalogService, configService, analyticsService)

	app := app.New(logger, conf)
	app.SetHTTPHandlers(publicHandler, adminHandler)
	app.SetClosers(publisher)

	app.Start()
	<-ctx.Done()
	app.Stop()
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
