package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/maxskaink/EventManager-sub001/internal/config"
	"github.com/maxskaink/EventManager-sub001/internal/pkg/logger"
)

// dispatcher runs the fanout for one publication
type dispatcher interface {
	Dispatch(ctx context.Context, publicationID int64) (int, error)
}

// Server processes background tasks
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewServer creates a queue worker bound to the notification dispatcher
func NewServer(cfg *config.Config, notifications dispatcher) *Server {
	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotificationFanout, func(ctx context.Context, task *asynq.Task) error {
		var payload FanoutPayload
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("error unmarshaling fanout payload: %v: %w", err, asynq.SkipRetry)
		}

		created, err := notifications.Dispatch(ctx, payload.PublicationID)
		if err != nil {
			return err
		}

		logger.Info().
			Int64("publication_id", payload.PublicationID).
			Int("created", created).
			Msg("Fanout task processed")

		return nil
	})

	return &Server{server: server, mux: mux}
}

// Start begins processing tasks in the background
func (s *Server) Start() error {
	return s.server.Start(s.mux)
}

// Shutdown stops the worker, waiting for in-flight tasks
func (s *Server) Shutdown() {
	s.server.Shutdown()
}
