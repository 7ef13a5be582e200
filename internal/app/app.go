package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okuafopa/order-core/internal/dal/credentials"
	"github.com/okuafopa/order-core/internal/dal/orderapi"
	"github.com/okuafopa/order-core/internal/dal/postgres"
	"github.com/okuafopa/order-core/internal/dal/rabbitmq"
	kvrepo "github.com/okuafopa/order-core/internal/dal/repositories/kv/postgres"
	"github.com/okuafopa/order-core/internal/otel"
	"github.com/okuafopa/order-core/internal/service/services/cartsvc"
	"github.com/okuafopa/order-core/internal/service/services/syncsvc"
	httptransport "github.com/okuafopa/order-core/internal/transport/http"
	realtimeworker "github.com/okuafopa/order-core/internal/worker/realtime"
)

// App represents the application.
type App struct {
	cartSvc        *cartsvc.CartService
	syncSvc        *syncsvc.SyncService
	transport      *httptransport.HTTPTransport
	realtimeWorker *realtimeworker.Worker
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	postgresClient := postgres.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	kvRepository := kvrepo.NewPostgresKVRepository(postgresClient.Pool())
	creds := credentials.NewProvider(kvRepository)
	orderAPI := orderapi.MustNewClient(creds)

	cartSvc := cartsvc.MustNewCartService(
		cartsvc.WithKVRepository(kvRepository),
	)
	cartSvc.Load(context.Background())

	syncSvc := syncsvc.MustNewSyncService(
		syncsvc.WithOrderAPI(orderAPI),
	)

	realtimeWorker := realtimeworker.NewWorker(rabbitMqClient, syncSvc)

	transport := httptransport.NewHTTPTransport(cartSvc, syncSvc, orderAPI, creds)
	transport.RegisterRoutes()

	return &App{
		cartSvc:        cartSvc,
		syncSvc:        syncSvc,
		transport:      transport,
		realtimeWorker: realtimeWorker,
		rabbitMqClient: rabbitMqClient,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting realtime worker")
		if err := a.realtimeWorker.Run(ctx); err != nil {
			slog.Error("Realtime worker error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown performs graceful shutdown of all application components.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.realtimeWorker.Shutdown(); err != nil {
		slog.Error("Realtime worker shutdown error", "error", err)
	} else {
		slog.Info("Realtime worker stopped gracefully")
	}

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
