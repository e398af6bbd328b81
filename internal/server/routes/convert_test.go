package routes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/agentbridge/portal/internal/store"
	"github.com/agentbridge/portal/pkg/workflow"
)

func TestDocumentFromRow(t *testing.T) {
	agentID := "agent-1"
	now := time.Now().UTC().Truncate(time.Second)
	row := store.Workflow{
		PublicID:    "wf-1",
		AgentID:     &agentID,
		Name:        "Support Flow",
		Description: "triage",
		Status:      workflow.StatusActive,
		Nodes:       json.RawMessage(`[{"id":"n1","label":"Start Here","type":"start","link":null,"position":{"x":1,"y":2},"config":{}}]`),
		Edges:       json.RawMessage(`[{"source":"n1","target":"n2"}]`),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	doc, err := documentFromRow(row)
	if err != nil {
		t.Fatalf("documentFromRow failed: %v", err)
	}
	if doc.ID != "wf-1" || doc.AgentID != "agent-1" || doc.Status != workflow.StatusActive {
		t.Errorf("unexpected document %+v", doc)
	}
	if len(doc.Nodes) != 1 || doc.Nodes[0].Type != workflow.KindStart {
		t.Errorf("unexpected nodes %+v", doc.Nodes)
	}
	if len(doc.Edges) != 1 || doc.Edges[0].Source != "n1" {
		t.Errorf("unexpected edges %+v", doc.Edges)
	}
}

func TestDocumentFromRowEmptyColumns(t *testing.T) {
	doc, err := documentFromRow(store.Workflow{PublicID: "wf-1", Name: "x"})
	if err != nil {
		t.Fatalf("documentFromRow failed: %v", err)
	}
	if doc.Nodes == nil || doc.Edges == nil {
		t.Error("empty columns should decode to empty lists, not nil")
	}
}

func TestDocumentFromRowBadJSON(t *testing.T) {
	_, err := documentFromRow(store.Workflow{
		PublicID: "wf-1",
		Nodes:    json.RawMessage(`{not json`),
	})
	if err == nil {
		t.Fatal("expected an error for corrupt node JSON")
	}
}

func TestGraphColumns(t *testing.T) {
	doc := workflow.DefaultDocument()
	nodes, edges, err := graphColumns(doc)
	if err != nil {
		t.Fatalf("graphColumns failed: %v", err)
	}

	var decodedNodes []workflow.Node
	if err := json.Unmarshal(nodes, &decodedNodes); err != nil {
		t.Fatalf("nodes column is not valid JSON: %v", err)
	}
	if len(decodedNodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(decodedNodes))
	}

	var decodedEdges []workflow.Edge
	if err := json.Unmarshal(edges, &decodedEdges); err != nil {
		t.Fatalf("edges column is not valid JSON: %v", err)
	}
	if len(decodedEdges) != 2 {
		t.Errorf("expected 2 edges, got %d", len(decodedEdges))
	}
}

func TestGraphColumnsNilSlices(t *testing.T) {
	nodes, edges, err := graphColumns(&workflow.Document{Name: "x"})
	if err != nil {
		t.Fatalf("graphColumns failed: %v", err)
	}
	if string(nodes) != "[]" || string(edges) != "[]" {
		t.Errorf("nil graphs should encode as empty arrays, got %s and %s", nodes, edges)
	}
}
