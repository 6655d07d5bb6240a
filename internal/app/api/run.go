// Package api boots the business-records HTTP API: observability,
// repositories, services, workflows, and the router.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	cataloghttp "github.com/bizdesk/go-business-records/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/bizdesk/go-business-records/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/bizdesk/go-business-records/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/bizdesk/go-business-records/internal/domains/catalog/application"
	catalogports "github.com/bizdesk/go-business-records/internal/domains/catalog/ports"
	companieshttp "github.com/bizdesk/go-business-records/internal/domains/companies/adapters/http"
	companiesmemory "github.com/bizdesk/go-business-records/internal/domains/companies/adapters/memory"
	companiespostgres "github.com/bizdesk/go-business-records/internal/domains/companies/adapters/persistence/postgres"
	companiesapp "github.com/bizdesk/go-business-records/internal/domains/companies/application"
	companiesports "github.com/bizdesk/go-business-records/internal/domains/companies/ports"
	messageshttp "github.com/bizdesk/go-business-records/internal/domains/messages/adapters/http"
	messagesmemory "github.com/bizdesk/go-business-records/internal/domains/messages/adapters/memory"
	messagespostgres "github.com/bizdesk/go-business-records/internal/domains/messages/adapters/persistence/postgres"
	messagesapp "github.com/bizdesk/go-business-records/internal/domains/messages/application"
	messagesports "github.com/bizdesk/go-business-records/internal/domains/messages/ports"
	orderscatalog "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/catalog"
	ordershttp "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/http"
	ordersmemory "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/memory"
	ordersobs "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/bizdesk/go-business-records/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/bizdesk/go-business-records/internal/domains/orders/application"
	ordersports "github.com/bizdesk/go-business-records/internal/domains/orders/ports"
	"github.com/bizdesk/go-business-records/internal/platform/migrations"
	platformobservability "github.com/bizdesk/go-business-records/internal/platform/observability"
	platformpostgres "github.com/bizdesk/go-business-records/internal/platform/postgres"
)

// Run boots the HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "business-records-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	companyService := companiesapp.NewService(repos.companies)
	productService := catalogapp.NewService(repos.products)
	messageService := messagesapp.NewService(repos.messages)

	coreOrderService := ordersapp.NewService(
		orderscatalog.NewReader(repos.products),
		repos.orders,
		repos.committer,
		ordersapp.WithIdempotencyStore(repos.idempotency),
	)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.Orchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running PlaceOrder inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := router.Group("/v1")
	companieshttp.NewHandler(companyService).Register(v1)
	cataloghttp.NewHandler(productService).Register(v1)
	messageshttp.NewHandler(messageService).Register(v1)
	ordershttp.NewHandler(orderService, orderWorkflows).Register(v1)

	addr := ":" + cfg.Port
	logger.Info("business records API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("business records API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	companies   companiesports.Repository
	products    catalogports.Repository
	messages    messagesports.Repository
	orders      ordersports.Repository
	committer   ordersports.Committer
	idempotency ordersports.IdempotencyStore
}

// buildRepositories wires all persistence against one backend. Either every
// store runs on PostgreSQL, or everything falls back to memory; mixing would
// break the cross-table atomicity of order commits.
func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryRepositories(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return memoryRepositories(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return repositories{
		companies:   companiespostgres.NewRepository(db),
		products:    catalogpostgres.NewRepository(db),
		messages:    messagespostgres.NewRepository(db),
		orders:      orderspostgres.NewRepository(db),
		committer:   orderspostgres.NewCommitter(db),
		idempotency: orderspostgres.NewIdempotencyStore(db),
	}, func() { _ = sqlDB.Close() }
}

func memoryRepositories() repositories {
	products := catalogmemory.NewRepository()
	orders := ordersmemory.NewRepository()
	return repositories{
		companies:   companiesmemory.NewRepository(),
		products:    products,
		messages:    messagesmemory.NewRepository(),
		orders:      orders,
		committer:   ordersmemory.NewCommitter(products, orders),
		idempotency: ordersmemory.NewIdempotencyStore(),
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
