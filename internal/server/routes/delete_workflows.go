package routes

import (
	"net/http"

	"github.com/agentbridge/portal/internal/queue"
	"github.com/agentbridge/portal/internal/server/middleware"
	"github.com/agentbridge/portal/internal/store"
	"github.com/agentbridge/portal/pkg/logger"

	"github.com/labstack/echo/v4"
)

func DeleteWorkflowHandler(c echo.Context) error {
	type deleteWorkflowParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(deleteWorkflowParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := store.New(conn)

	affected, err := q.DeleteWorkflow(ctx, params.ID)
	if err != nil {
		logger.Error("Failed to delete workflow", "workflow_id", params.ID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if affected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Workflow not found"})
	}

	queue.PublishWorkflowEvent(c.(*middleware.AppContext).App.Queue, queue.WorkflowEvent{
		Type:       queue.EventWorkflowDeleted,
		WorkflowID: params.ID,
	})

	return c.JSON(http.StatusOK, map[string]string{"message": "Workflow deleted"})
}
