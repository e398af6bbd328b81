package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx usable both with a pool and inside a
// transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries bundles the workflow persistence queries over a connection or
// transaction.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Workflow is one stored workflow row. Nodes and Edges hold the graph as
// JSONB verbatim; the wire codec lives in pkg/workflow.
type Workflow struct {
	ID          int64           `json:"-"`
	PublicID    string          `json:"id"`
	AgentID     *string         `json:"agent_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
	Nodes       json.RawMessage `json:"nodes"`
	Edges       json.RawMessage `json:"edges"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// LLM is one configured language model available to llm nodes.
type LLM struct {
	PublicID  string `json:"id"`
	Name      string `json:"name"`
	ModelName string `json:"model_name"`
	Provider  string `json:"provider"`
	Enabled   bool   `json:"enabled"`
}

// MCPTool is one registered MCP tool available to mcp_tool nodes.
type MCPTool struct {
	PublicID    string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EndpointURL string `json:"endpoint_url"`
	Enabled     bool   `json:"enabled"`
}

// RAGConnector is one knowledge base connector available to retriever
// nodes.
type RAGConnector struct {
	PublicID   string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Configured bool   `json:"configured"`
	Enabled    bool   `json:"enabled"`
}
