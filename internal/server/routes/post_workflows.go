package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/agentbridge/portal/internal/queue"
	"github.com/agentbridge/portal/internal/server/middleware"
	"github.com/agentbridge/portal/internal/store"
	"github.com/agentbridge/portal/internal/util"
	"github.com/agentbridge/portal/pkg/logger"
	"github.com/agentbridge/portal/pkg/workflow"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/labstack/echo/v4"
)

func CreateWorkflowHandler(c echo.Context) error {
	type createWorkflowResponse struct {
		Message  string             `json:"message"`
		Workflow *workflow.Document `json:"data,omitempty"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, createWorkflowResponse{
			Message: "Unauthorized",
		})
	}

	doc := new(workflow.Document)
	if err := c.Bind(doc); err != nil {
		return c.JSON(http.StatusBadRequest, createWorkflowResponse{
			Message: "Invalid request body",
		})
	}
	if doc.Name == "" {
		doc.Name = "Untitled Workflow"
	}
	if doc.Status == "" {
		doc.Status = workflow.StatusDraft
	}

	if res := workflow.ValidateDocument(doc); !res.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, createWorkflowResponse{
			Message: res.Err().Error(),
		})
	}

	publicID, err := gonanoid.New()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createWorkflowResponse{
			Message: "Internal server error",
		})
	}

	nodes, edges, err := graphColumns(doc)
	if err != nil {
		return c.JSON(http.StatusBadRequest, createWorkflowResponse{
			Message: "Invalid workflow graph",
		})
	}

	var agentID *string
	if doc.AgentID != "" {
		agentID = &doc.AgentID
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := store.New(conn)

	row, err := q.CreateWorkflow(ctx, store.CreateWorkflowParams{
		PublicID:    publicID,
		AgentID:     agentID,
		Name:        util.SanitizePostgresText(doc.Name),
		Description: util.SanitizePostgresText(doc.Description),
		Status:      doc.Status,
		Nodes:       nodes,
		Edges:       edges,
	})
	if err != nil {
		logger.Error("Failed to create workflow", "err", err)
		return c.JSON(http.StatusInternalServerError, createWorkflowResponse{
			Message: "Internal server error",
		})
	}

	created, err := documentFromRow(row)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, createWorkflowResponse{
			Message: "Internal server error",
		})
	}

	queue.PublishWorkflowEvent(c.(*middleware.AppContext).App.Queue, queue.WorkflowEvent{
		Type:       queue.EventWorkflowCreated,
		WorkflowID: created.ID,
		AgentID:    created.AgentID,
		Name:       created.Name,
		Status:     created.Status,
	})

	return c.JSON(http.StatusCreated, createWorkflowResponse{
		Message:  "Workflow created",
		Workflow: created,
	})
}

// TestWorkflowHandler proxies a test run to the agent runtime and relays
// its verdict. The graph itself is not read or modified here.
func TestWorkflowHandler(c echo.Context) error {
	type testWorkflowParams struct {
		AgentID string `param:"agent_id" validate:"required"`
	}

	params := new(testWorkflowParams)
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

	app := c.(*middleware.AppContext).App
	if app.AgentAPIURL == "" {
		return c.JSON(http.StatusBadGateway, workflow.TestRunResult{
			Success: false,
			Message: "Agent runtime is not configured",
		})
	}

	ctx := c.Request().Context()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		app.AgentAPIURL+"/agents/"+params.AgentID+"/test", bytes.NewReader(nil))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: 30 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Error("Failed to reach agent runtime", "agent_id", params.AgentID, "err", err)
		return c.JSON(http.StatusBadGateway, workflow.TestRunResult{
			Success: false,
			Message: "Agent runtime is unreachable",
		})
	}
	defer resp.Body.Close()

	var result workflow.TestRunResult
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(body, &result); err != nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("Agent runtime test failed", "agent_id", params.AgentID, "status", resp.StatusCode)
		return c.JSON(http.StatusBadGateway, workflow.TestRunResult{
			Success: false,
			Message: "Agent runtime returned an invalid response",
		})
	}

	queue.PublishWorkflowEvent(app.Queue, queue.WorkflowEvent{
		Type:       queue.EventWorkflowTested,
		WorkflowID: params.AgentID,
		AgentID:    params.AgentID,
	})

	return c.JSON(http.StatusOK, result)
}
