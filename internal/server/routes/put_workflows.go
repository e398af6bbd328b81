package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/agentbridge/portal/internal/queue"
	"github.com/agentbridge/portal/internal/server/middleware"
	"github.com/agentbridge/portal/internal/store"
	"github.com/agentbridge/portal/internal/util"
	"github.com/agentbridge/portal/pkg/leaselock"
	"github.com/agentbridge/portal/pkg/logger"
	"github.com/agentbridge/portal/pkg/workflow"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// UpdateWorkflowHandler replaces a workflow document wholesale. Saving
// under an id that does not exist yet (including the "default" working
// id) creates the workflow instead; the response carries the stored
// document with its durable public id.
func UpdateWorkflowHandler(c echo.Context) error {
	type updateWorkflowData struct {
		ID          string          `param:"id" json:"-" validate:"required"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		AgentID     string          `json:"agent_id"`
		Status      string          `json:"status"`
		Nodes       []workflow.Node `json:"nodes"`
		Edges       []workflow.Edge `json:"edges"`
	}

	type updateWorkflowResponse struct {
		Message  string             `json:"message"`
		Workflow *workflow.Document `json:"data,omitempty"`
	}

	data := new(updateWorkflowData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, updateWorkflowResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, updateWorkflowResponse{
			Message: "Invalid request params",
		})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, updateWorkflowResponse{
			Message: "Unauthorized",
		})
	}

	doc := &workflow.Document{
		Name:        data.Name,
		Description: data.Description,
		AgentID:     data.AgentID,
		Status:      data.Status,
		Nodes:       data.Nodes,
		Edges:       data.Edges,
	}
	if doc.Name == "" {
		doc.Name = "Untitled Workflow"
	}
	if doc.Status == "" {
		doc.Status = workflow.StatusDraft
	}

	if res := workflow.ValidateDocument(doc); !res.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, updateWorkflowResponse{
			Message: res.Err().Error(),
		})
	}

	nodes, edges, err := graphColumns(doc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, updateWorkflowResponse{
			Message: "Invalid workflow graph",
		})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := store.New(conn)
	locks := leaselock.New(conn)

	var row store.Workflow
	eventType := queue.EventWorkflowUpdated
	err = locks.WithLease(ctx, leaselock.WorkflowKey(data.ID), leaselock.Options{Wait: true}, func(ctx context.Context) error {
		var err error
		row, err = q.UpdateWorkflow(ctx, store.UpdateWorkflowParams{
			PublicID:    data.ID,
			Name:        util.SanitizePostgresText(doc.Name),
			Description: util.SanitizePostgresText(doc.Description),
			Status:      doc.Status,
			Nodes:       nodes,
			Edges:       edges,
		})
		if errors.Is(err, pgx.ErrNoRows) {
			publicID := data.ID
			if publicID == workflow.DefaultWorkflowID {
				publicID, err = gonanoid.New()
				if err != nil {
					return err
				}
			}

			var agentID *string
			if doc.AgentID != "" {
				agentID = &doc.AgentID
			}

			eventType = queue.EventWorkflowCreated
			row, err = q.CreateWorkflow(ctx, store.CreateWorkflowParams{
				PublicID:    publicID,
				AgentID:     agentID,
				Name:        util.SanitizePostgresText(doc.Name),
				Description: util.SanitizePostgresText(doc.Description),
				Status:      doc.Status,
				Nodes:       nodes,
				Edges:       edges,
			})
		}
		return err
	})
	if err != nil {
		logger.Error("Failed to save workflow", "workflow_id", data.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, updateWorkflowResponse{
			Message: "Internal server error",
		})
	}

	saved, err := documentFromRow(row)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, updateWorkflowResponse{
			Message: "Internal server error",
		})
	}

	queue.PublishWorkflowEvent(c.(*middleware.AppContext).App.Queue, queue.WorkflowEvent{
		Type:       eventType,
		WorkflowID: saved.ID,
		AgentID:    saved.AgentID,
		Name:       saved.Name,
		Status:     saved.Status,
	})

	return c.JSON(http.StatusOK, updateWorkflowResponse{
		Message:  "Workflow saved",
		Workflow: saved,
	})
}
