package workflow

import "testing"

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()
	if len(doc.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(doc.Nodes))
	}
	if len(doc.Edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(doc.Edges))
	}

	kinds := []string{KindStart, KindLLM, KindEnd}
	for i, n := range doc.Nodes {
		if n.Type != kinds[i] {
			t.Errorf("node %d: expected kind %q, got %q", i, kinds[i], n.Type)
		}
	}
	if doc.Edges[0].Source != "start-node" || doc.Edges[0].Target != "llm-node" {
		t.Errorf("unexpected first edge %+v", doc.Edges[0])
	}
	if doc.Edges[1].Source != "llm-node" || doc.Edges[1].Target != "end-node" {
		t.Errorf("unexpected second edge %+v", doc.Edges[1])
	}
	if doc.Status != StatusDraft {
		t.Errorf("expected draft status, got %q", doc.Status)
	}
	if err := ValidateConfig(KindLLM, doc.Nodes[1].Config); err != nil {
		t.Errorf("skeleton llm config should validate: %v", err)
	}
}

func TestAgentDefaultDocument(t *testing.T) {
	t.Run("with llm", func(t *testing.T) {
		doc := AgentDefaultDocument("agent-1", "Support Bot", "llm-1")
		if len(doc.Nodes) != 3 || len(doc.Edges) != 2 {
			t.Fatalf("expected 3 nodes and 2 edges, got %d and %d", len(doc.Nodes), len(doc.Edges))
		}
		llm := doc.Nodes[1]
		if llm.Type != KindLLM {
			t.Fatalf("expected middle node to be an llm, got %q", llm.Type)
		}
		if llm.Link == nil || *llm.Link != "llm-1" {
			t.Errorf("expected llm link %q, got %v", "llm-1", llm.Link)
		}
		for _, n := range doc.Nodes {
			if !IsDurableID(n.ID) {
				t.Errorf("agent default node %q should have a durable id", n.ID)
			}
		}
		if res := ValidateDocument(doc); !res.Valid() {
			t.Errorf("agent default workflow should validate, got %+v", res.Errors)
		}
	})

	t.Run("without llm", func(t *testing.T) {
		doc := AgentDefaultDocument("agent-1", "Support Bot", "")
		if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
			t.Fatalf("expected 2 nodes and 1 edge, got %d and %d", len(doc.Nodes), len(doc.Edges))
		}
		if res := ValidateDocument(doc); !res.Valid() {
			t.Errorf("agent default workflow should validate, got %+v", res.Errors)
		}
	})
}
