package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/refdata/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// User event types published by the auth service
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserEvent is the payload carried on the user events topic
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	CompanyID  string    `json:"company_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserEventHandler processes a single user event
type UserEventHandler interface {
	HandleUserEvent(ctx context.Context, event UserEvent) error
}

// Consumer reads user events from Kafka and dispatches them to a
// handler. The consume loop survives broker hiccups by waiting a fixed
// backoff and retrying; it only exits when the context is cancelled.
type Consumer struct {
	reader  *kafka.Reader
	handler UserEventHandler
	backoff time.Duration
	logger  *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConsumer creates a consumer for the configured topic and group
func NewConsumer(cfg config.EventsConfig, handler UserEventHandler, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       1 << 20, // 1MB
		MaxWait:        time.Second,
		CommitInterval: 0, // explicit commits
	})

	return &Consumer{
		reader:  reader,
		handler: handler,
		backoff: cfg.RestartBackoff,
		logger:  logger.Named("user-events"),
	}
}

// Start launches the background consume loop
func (c *Consumer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.consumeLoop(ctx)

	c.logger.Info("user event consumer started",
		zap.String("topic", c.reader.Config().Topic),
		zap.String("group_id", c.reader.Config().GroupID),
	)
}

// Stop gracefully stops the consumer
func (c *Consumer) Stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("failed to close kafka reader: %w", err)
	}
	c.logger.Info("user event consumer stopped")
	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		message, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			c.logger.Warn("fetch failed, backing off",
				zap.Duration("backoff", c.backoff),
				zap.Error(err),
			)
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.backoff):
			}
			continue
		}

		if err := c.dispatch(ctx, message.Value); err != nil {
			// A poison message must not wedge the partition; log and move on.
			c.logger.Error("user event handling failed",
				zap.Int64("offset", message.Offset),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, message); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Warn("commit failed", zap.Int64("offset", message.Offset), zap.Error(err))
		}
	}
}

// dispatch decodes a raw message and hands it to the handler. Unknown
// event types are skipped.
func (c *Consumer) dispatch(ctx context.Context, payload []byte) error {
	var event UserEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("malformed user event: %w", err)
	}

	switch event.Type {
	case EventUserCreated, EventUserUpdated, EventUserDeleted:
		return c.handler.HandleUserEvent(ctx, event)
	default:
		c.logger.Debug("skipping unknown event type", zap.String("type", event.Type))
		return nil
	}
}
