package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/agentbridge/portal/internal/server/middleware"
	"github.com/agentbridge/portal/internal/store"
	"github.com/agentbridge/portal/pkg/logger"
	"github.com/agentbridge/portal/pkg/workflow"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

func GetWorkflowsHandler(c echo.Context) error {
	type workflowSummary struct {
		ID          string `json:"id"`
		AgentID     string `json:"agent_id,omitempty"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Status      string `json:"status"`
		NodeCount   int    `json:"node_count"`
		UpdatedAt   string `json:"updated_at"`
	}

	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn
	q := store.New(conn)

	rows, err := q.GetWorkflows(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	summaries := make([]workflowSummary, 0, len(rows))
	for _, row := range rows {
		doc, err := documentFromRow(row)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		}
		summaries = append(summaries, workflowSummary{
			ID:          doc.ID,
			AgentID:     doc.AgentID,
			Name:        doc.Name,
			Description: doc.Description,
			Status:      doc.Status,
			NodeCount:   len(doc.Nodes),
			UpdatedAt:   row.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, summaries)
}

// GetWorkflowHandler resolves a workflow by public id first and by owning
// agent id second, matching how editor sessions address documents.
func GetWorkflowHandler(c echo.Context) error {
	type getWorkflowParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(getWorkflowParams)
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

	row, err := q.GetWorkflowByPublicId(ctx, params.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		row, err = q.GetWorkflowByAgentId(ctx, params.ID)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Workflow not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	doc, err := documentFromRow(row)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, doc)
}

// optionQueries is the slice of the store the option lists come from.
type optionQueries interface {
	GetEnabledLLMs(ctx context.Context) ([]store.LLM, error)
	GetEnabledMCPTools(ctx context.Context) ([]store.MCPTool, error)
	GetConfiguredRAGConnectors(ctx context.Context) ([]store.RAGConnector, error)
}

// GetNodeOptionsHandler aggregates the external resources selectable from
// node configuration forms: enabled LLMs, enabled MCP tools, and RAG
// connectors that are both enabled and configured.
func GetNodeOptionsHandler(c echo.Context) error {
	user := c.(*middleware.AppContext).User
	if user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx := c.Request().Context()
	conn := c.(*middleware.AppContext).App.DBConn

	return c.JSON(http.StatusOK, collectNodeOptions(ctx, store.New(conn)))
}

// collectNodeOptions fetches the three option lists independently. A
// failing list is logged and left empty so configuration forms keep
// working with whatever sources are still reachable.
func collectNodeOptions(ctx context.Context, q optionQueries) workflow.NodeOptions {
	llms, err := q.GetEnabledLLMs(ctx)
	if err != nil {
		logger.Error("Failed to load LLM options", "err", err)
		llms = nil
	}
	tools, err := q.GetEnabledMCPTools(ctx)
	if err != nil {
		logger.Error("Failed to load MCP tool options", "err", err)
		tools = nil
	}
	connectors, err := q.GetConfiguredRAGConnectors(ctx)
	if err != nil {
		logger.Error("Failed to load RAG connector options", "err", err)
		connectors = nil
	}

	options := workflow.NodeOptions{
		LLMs:          make([]workflow.LLMOption, 0, len(llms)),
		MCPTools:      make([]workflow.MCPToolOption, 0, len(tools)),
		RAGConnectors: make([]workflow.RAGConnectorOption, 0, len(connectors)),
	}
	for _, l := range llms {
		options.LLMs = append(options.LLMs, workflow.LLMOption{
			ID:        l.PublicID,
			Name:      l.Name,
			ModelName: l.ModelName,
			Provider:  l.Provider,
			Enabled:   l.Enabled,
		})
	}
	for _, t := range tools {
		options.MCPTools = append(options.MCPTools, workflow.MCPToolOption{
			ID:          t.PublicID,
			Name:        t.Name,
			Description: t.Description,
			EndpointURL: t.EndpointURL,
			Enabled:     t.Enabled,
		})
	}
	for _, r := range connectors {
		options.RAGConnectors = append(options.RAGConnectors, workflow.RAGConnectorOption{
			ID:         r.PublicID,
			Name:       r.Name,
			Type:       r.Type,
			Configured: r.Configured,
			Enabled:    r.Enabled,
		})
	}

	return options
}
