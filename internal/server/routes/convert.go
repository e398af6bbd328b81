package routes

import (
	"encoding/json"
	"fmt"

	"github.com/agentbridge/portal/internal/store"
	"github.com/agentbridge/portal/pkg/workflow"
)

// documentFromRow inflates a stored row into the wire document shape.
func documentFromRow(w store.Workflow) (*workflow.Document, error) {
	doc := &workflow.Document{
		ID:          w.PublicID,
		Name:        w.Name,
		Description: w.Description,
		Status:      w.Status,
		Nodes:       []workflow.Node{},
		Edges:       []workflow.Edge{},
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if w.AgentID != nil {
		doc.AgentID = *w.AgentID
	}
	if len(w.Nodes) > 0 {
		if err := json.Unmarshal(w.Nodes, &doc.Nodes); err != nil {
			return nil, fmt.Errorf("decode workflow nodes: %w", err)
		}
	}
	if len(w.Edges) > 0 {
		if err := json.Unmarshal(w.Edges, &doc.Edges); err != nil {
			return nil, fmt.Errorf("decode workflow edges: %w", err)
		}
	}
	return doc, nil
}

// graphColumns marshals a document's node and edge lists for the JSONB
// columns.
func graphColumns(doc *workflow.Document) (json.RawMessage, json.RawMessage, error) {
	if doc.Nodes == nil {
		doc.Nodes = []workflow.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []workflow.Edge{}
	}
	nodes, err := json.Marshal(doc.Nodes)
	if err != nil {
		return nil, nil, fmt.Errorf("encode workflow nodes: %w", err)
	}
	edges, err := json.Marshal(doc.Edges)
	if err != nil {
		return nil, nil, fmt.Errorf("encode workflow edges: %w", err)
	}
	return nodes, edges, nil
}
