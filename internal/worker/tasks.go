package worker

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeNotificationFanout is the task type for publication notification fanout
const TypeNotificationFanout = "notification:fanout"

// FanoutPayload is the JSON payload of a fanout task
type FanoutPayload struct {
	PublicationID int64 `json:"publicationId"`
}

// NewFanoutTask builds a fanout task for a publication. Processing is
// idempotent, so a task being queued twice is harmless.
func NewFanoutTask(publicationID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(FanoutPayload{PublicationID: publicationID})
	if err != nil {
		return nil, fmt.Errorf("error marshaling fanout payload: %w", err)
	}
	return asynq.NewTask(TypeNotificationFanout, payload), nil
}
