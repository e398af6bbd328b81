package workflow

import "time"

// Workflow status values as stored by the portal backend.
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Position is a node's canvas coordinate pair.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one node of the wire document. Link references an external
// entity (an LLM, MCP tool or RAG connector id) and is nil for kinds
// that do not invoke one. Config carries kind-specific parameters.
type Node struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Type     string         `json:"type"`
	Link     *string        `json:"link"`
	Position Position       `json:"position"`
	Config   map[string]any `json:"config"`
}

// Edge is a directed connection between two node ids.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Document is the whole-workflow wire format exchanged with the backend.
// Saves replace the document wholesale; there are no patch semantics.
type Document struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	AgentID     string    `json:"agent_id,omitempty"`
	Status      string    `json:"status,omitempty"`
	Nodes       []Node    `json:"nodes"`
	Edges       []Edge    `json:"edges"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// LLMOption is one selectable LLM for nodes of kind "llm".
type LLMOption struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ModelName string `json:"model_name"`
	Provider  string `json:"provider,omitempty"`
	Enabled   bool   `json:"enabled"`
}

// MCPToolOption is one selectable tool for nodes of kind "mcp_tool".
type MCPToolOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	EndpointURL string `json:"endpoint_url,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// RAGConnectorOption is one selectable knowledge base for nodes of kind
// "knowledgebase_retriever".
type RAGConnectorOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Configured bool   `json:"configured"`
	Enabled    bool   `json:"enabled"`
}

// NodeOptions carries the external reference lists backing the typed
// link selectors of the node configuration form.
type NodeOptions struct {
	LLMs          []LLMOption          `json:"llms"`
	MCPTools      []MCPToolOption      `json:"mcp_tools"`
	RAGConnectors []RAGConnectorOption `json:"rag_connectors"`
}

// TestRunResult is the outcome of a remote workflow test run.
type TestRunResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
