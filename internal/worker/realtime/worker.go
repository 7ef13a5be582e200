package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/okuafopa/order-core/internal/dal/rabbitmq"
	"github.com/okuafopa/order-core/internal/service/models/order"
	rtmodel "github.com/okuafopa/order-core/internal/service/models/realtime"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
)

// engine is the slice of the sync engine the worker drives.
type engine interface {
	ApplyRemotePatch(orderID, subOrderID string, patch order.SubOrderPatch)
	LoadAll(ctx context.Context, query order.QueryOrdersModel) ([]order.Order, error)
}

// Worker consumes realtime order events and feeds them into the sync
// engine: sub-order updates become granular patches, order updates trigger
// a full reload.
type Worker struct {
	client *rabbitmq.Client
	engine engine
	queue  amqp.Queue
	role   string
	stop   chan struct{}
	done   chan struct{}
}

// NewWorker creates a new realtime worker.
func NewWorker(client *rabbitmq.Client, engine engine) *Worker {
	queueName := viper.GetString("rabbitmq.queue")
	if queueName == "" {
		panic("rabbitmq.queue is not set in config")
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    false,
		AutoDelete: false,
		Exclusive:  false,
		NoWait:     false,
	})
	if err != nil {
		panic(err)
	}

	return &Worker{
		client: client,
		engine: engine,
		queue:  queue,
		role:   viper.GetString("order_service.role"),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Run starts consuming realtime events.
func (w *Worker) Run(ctx context.Context) error {
	consumerTag := viper.GetString("rabbitmq.consumer_tag")
	if consumerTag == "" {
		consumerTag = "order-core"
	}

	msgs, err := w.client.Consume(rabbitmq.ConsumeConfig{
		Queue:     w.queue.Name,
		Consumer:  consumerTag,
		AutoAck:   viper.GetBool("rabbitmq.auto_ack"),
		Exclusive: viper.GetBool("rabbitmq.exclusive"),
		NoLocal:   viper.GetBool("rabbitmq.no_local"),
		NoWait:    viper.GetBool("rabbitmq.no_wait"),
	})
	if err != nil {
		return err
	}

	slog.Info("Realtime worker started", "queue", w.queue.Name, "consumer_tag", consumerTag)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(10)

	go func() {
		for {
			select {
			case <-w.stop:
				slog.Info("Stopping realtime worker")
				close(w.done)

				return
			case msg, ok := <-msgs:
				if !ok {
					slog.Info("Realtime channel closed")
					close(w.done)

					return
				}

				g.Go(func() error {
					return w.processMessage(gctx, msg)
				})
			}
		}
	}()

	<-w.done
	if err := g.Wait(); err != nil {
		slog.Error("Error processing realtime events", "error", err)
	}

	return nil
}

// processMessage handles a single realtime event.
func (w *Worker) processMessage(ctx context.Context, msg amqp.Delivery) error {
	ctx, span := otel.Tracer("realtime").Start(ctx, "Worker.processMessage")
	defer span.End()

	var event rtmodel.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		slog.Error("Failed to unmarshal realtime event", "error", err)
		// Reject the message without requeuing
		if err := msg.Nack(false, false); err != nil {
			slog.Error("Failed to nack message", "error", err)
		}

		return err
	}

	switch event.Type {
	case rtmodel.EventSubOrderUpdate:
		if event.SubOrder != nil {
			w.engine.ApplyRemotePatch(event.OrderID, event.SubOrderID, *event.SubOrder)
		}
	case rtmodel.EventOrderUpdate:
		if _, err := w.engine.LoadAll(ctx, order.QueryOrdersModel{Role: w.role}); err != nil {
			slog.Error("Failed to reload orders after order:update", "error", err)
			// Requeue so the reload is retried
			if err := msg.Nack(false, true); err != nil {
				slog.Error("Failed to nack message", "error", err)
			}

			return err
		}
	default:
		slog.Warn("Unknown realtime event type", "type", event.Type)
	}

	if err := msg.Ack(false); err != nil {
		slog.Error("Failed to ack message", "error", err)

		return err
	}

	return nil
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown() error {
	slog.Info("Shutting down realtime worker")
	close(w.stop)

	select {
	case <-w.done:
		slog.Info("Realtime worker stopped successfully")
	case <-time.After(10 * time.Second):
		slog.Warn("Realtime worker shutdown timeout")
	}

	return nil
}
