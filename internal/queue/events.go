package queue

import (
	"time"

	"github.com/agentbridge/portal/internal/util"
	"github.com/agentbridge/portal/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// Workflow event types.
const (
	EventWorkflowCreated = "workflow.created"
	EventWorkflowUpdated = "workflow.updated"
	EventWorkflowDeleted = "workflow.deleted"
	EventWorkflowTested  = "workflow.tested"
)

// WorkflowEvent is the payload published to the workflow_events queue.
type WorkflowEvent struct {
	Type       string    `json:"type"`
	WorkflowID string    `json:"workflow_id"`
	AgentID    string    `json:"agent_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PublishWorkflowEvent publishes a lifecycle event with a few retries.
// Failures are logged and swallowed; event delivery never fails the
// request that triggered it.
func PublishWorkflowEvent(ch *amqp091.Channel, event WorkflowEvent) {
	if ch == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data := []byte(util.ConvertStructToJson(event))
	err := util.RetryErr(3, func() error {
		return PublishFIFO(ch, WorkflowEventsQueue, data)
	})
	if err != nil {
		logger.Error("Failed to publish workflow event", "type", event.Type, "workflow_id", event.WorkflowID, "err", err)
	}
}
