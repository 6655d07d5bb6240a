package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/bizdesk/go-business-records/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/bizdesk/go-business-records/internal/domains/catalog/adapters/persistence/postgres"
	orderscatalog "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/memory"
	ordersobs "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/bizdesk/go-business-records/internal/domains/orders/application"
	ordersports "github.com/bizdesk/go-business-records/internal/domains/orders/ports"
	orderactivities "github.com/bizdesk/go-business-records/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/bizdesk/go-business-records/internal/durable/temporal/workflows/orders"
	"github.com/bizdesk/go-business-records/internal/platform/migrations"
	platformobservability "github.com/bizdesk/go-business-records/internal/platform/observability"
	platformpostgres "github.com/bizdesk/go-business-records/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "business-records-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderService, cleanup := buildOrderService(ctx, logger, instruments)
	defer cleanup()
	orderActivities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderService(ctx context.Context, logger *slog.Logger, instruments *platformobservability.Instruments) (ordersports.Service, func()) {
	var core *ordersapp.Service
	cleanup := func() {}

	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, worker falling back to in-memory repositories")
		core = memoryOrderService()
	} else if db, err := platformpostgres.Connect(ctx, dsn); err != nil {
		logger.Warn("worker failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		core = memoryOrderService()
	} else {
		if err := migrations.Run(db); err != nil {
			logger.Error("worker failed to run migrations", slog.String("error", err.Error()))
		}
		if sqlDB, err := db.DB(); err == nil {
			cleanup = func() { _ = sqlDB.Close() }
		}
		logger.Info("worker repositories configured with postgres")
		core = ordersapp.NewService(
			orderscatalog.NewReader(catalogpostgres.NewRepository(db)),
			orderspostgres.NewRepository(db),
			orderspostgres.NewCommitter(db),
			ordersapp.WithIdempotencyStore(orderspostgres.NewIdempotencyStore(db)),
		)
	}

	service := ordersobs.New(
		core,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	return service, cleanup
}

func memoryOrderService() *ordersapp.Service {
	products := catalogmemory.NewRepository()
	orders := ordersmemory.NewRepository()
	return ordersapp.NewService(
		orderscatalog.NewReader(products),
		orders,
		ordersmemory.NewCommitter(products, orders),
		ordersapp.WithIdempotencyStore(ordersmemory.NewIdempotencyStore()),
	)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
