package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/maxskaink/EventManager-sub001/internal/config"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

// Client enqueues background tasks
type Client struct {
	client *asynq.Client
}

// NewClient creates a queue client from the Redis configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
	}
}

// EnqueueFanout queues notification fanout for a publication
func (c *Client) EnqueueFanout(ctx context.Context, publicationID int64) error {
	task, err := NewFanoutTask(publicationID)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("error enqueueing fanout task: %w", err)
	}

	logger.Debug().
		Str("task_id", info.ID).
		Int64("publication_id", publicationID).
		Msg("Fanout task enqueued")

	return nil
}

// Close closes the underlying queue connection
func (c *Client) Close() error {
	return c.client.Close()
}
