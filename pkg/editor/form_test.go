package editor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/agentbridge/portal/pkg/workflow"
)

func TestOpenNodeConfig(t *testing.T) {
	e := loadedEditor(t)
	e.LoadNodeOptions(context.Background(), &fakeAdapter{options: &workflow.NodeOptions{
		LLMs: []workflow.LLMOption{
			{ID: "llm-1", Name: "GPT-4", ModelName: "gpt-4"},
			{ID: "llm-2", Name: "Claude", ModelName: "claude-3"},
		},
	}})

	form, err := e.OpenNodeConfig("llm-node")
	if err != nil {
		t.Fatalf("OpenNodeConfig failed: %v", err)
	}
	if form.Name != "LLM Model" {
		t.Errorf("form should pre-fill the label, got %q", form.Name)
	}
	if form.Kind != workflow.KindLLM {
		t.Errorf("form should carry the kind, got %q", form.Kind)
	}
	if !form.LinkRequired {
		t.Error("llm nodes require a link")
	}
	if len(form.LinkOptions) != 2 {
		t.Fatalf("expected 2 link options, got %d", len(form.LinkOptions))
	}
	if form.LinkOptions[0].Label != "GPT-4 (gpt-4)" {
		t.Errorf("unexpected option label %q", form.LinkOptions[0].Label)
	}

	var props map[string]any
	if err := json.Unmarshal([]byte(form.Properties), &props); err != nil {
		t.Fatalf("properties should be valid JSON: %v", err)
	}
	if props["model"] != "gpt-4" {
		t.Errorf("properties should pre-fill from node config, got %v", props)
	}

	if e.SelectedNode() != "llm-node" {
		t.Error("opening the config should select the node")
	}

	if _, err := e.OpenNodeConfig("ghost"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestOpenNodeConfigEmptyProperties(t *testing.T) {
	e := loadedEditor(t)
	form, err := e.OpenNodeConfig("start-node")
	if err != nil {
		t.Fatalf("OpenNodeConfig failed: %v", err)
	}
	if form.Properties != "" {
		t.Errorf("nodes without config should yield empty properties, got %q", form.Properties)
	}
	if form.LinkRequired || len(form.LinkOptions) != 0 {
		t.Error("sentinel kinds have no link selector")
	}
}

func TestApplyNodeConfig(t *testing.T) {
	tests := []struct {
		name    string
		sub     NodeFormSubmission
		wantErr error
	}{
		{
			name: "valid submission",
			sub:  NodeFormSubmission{Name: "Primary LLM", Link: "llm-1", Properties: `{"model": "gpt-4", "temperature": 0.2}`},
		},
		{
			name:    "empty name",
			sub:     NodeFormSubmission{Name: "   ", Link: "llm-1"},
			wantErr: ErrNameRequired,
		},
		{
			name:    "missing required link",
			sub:     NodeFormSubmission{Name: "Primary LLM"},
			wantErr: ErrLinkRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := loadedEditor(t)
			err := e.ApplyNodeConfig("llm-node", tt.sub)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				n, _ := e.Node("llm-node")
				if n.Label != "LLM Model" {
					t.Error("failed submission must leave the node unchanged")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyNodeConfig failed: %v", err)
			}
			n, _ := e.Node("llm-node")
			if n.Label != "Primary LLM" {
				t.Errorf("label not applied, got %q", n.Label)
			}
			if n.Link == nil || *n.Link != "llm-1" {
				t.Errorf("link not applied, got %v", n.Link)
			}
			if n.Data["temperature"] != 0.2 {
				t.Errorf("properties not applied, got %v", n.Data)
			}
		})
	}
}

func TestApplyNodeConfigInvalidJSON(t *testing.T) {
	e := loadedEditor(t)
	before, _ := e.Node("llm-node")
	beforeModel := before.Data["model"]

	err := e.ApplyNodeConfig("llm-node", NodeFormSubmission{
		Name:       "Primary LLM",
		Link:       "llm-1",
		Properties: `{"model": "gpt-4",`,
	})
	if err == nil {
		t.Fatal("expected a parse error for malformed properties")
	}
	if !strings.Contains(err.Error(), "invalid properties JSON") {
		t.Errorf("unexpected error %q", err.Error())
	}
	after, _ := e.Node("llm-node")
	if after.Label != "LLM Model" || after.Data["model"] != beforeModel {
		t.Error("failed submission must leave the node unchanged")
	}
}

func TestApplyNodeConfigSchemaViolation(t *testing.T) {
	e := loadedEditor(t)
	err := e.ApplyNodeConfig("llm-node", NodeFormSubmission{
		Name:       "Primary LLM",
		Link:       "llm-1",
		Properties: `{"temperature": "hot"}`,
	})
	if err == nil {
		t.Fatal("expected a schema validation error")
	}
	n, _ := e.Node("llm-node")
	if n.Label != "LLM Model" {
		t.Error("failed submission must leave the node unchanged")
	}
}

func TestApplyNodeConfigReplacesWholesale(t *testing.T) {
	e := loadedEditor(t)
	if err := e.ApplyNodeConfig("llm-node", NodeFormSubmission{
		Name:       "Primary LLM",
		Link:       "llm-1",
		Properties: `{"model": "gpt-4o"}`,
	}); err != nil {
		t.Fatalf("ApplyNodeConfig failed: %v", err)
	}
	n, _ := e.Node("llm-node")
	if _, still := n.Data["temperature"]; still {
		t.Error("keys omitted from the submission should be dropped, not merged")
	}
	if n.Data["model"] != "gpt-4o" {
		t.Errorf("unexpected data %v", n.Data)
	}
}

func TestApplyNodeConfigClearsOptionalLink(t *testing.T) {
	e := loadedEditor(t)
	ct, _ := workflow.LookupComponentType(workflow.KindTransform)
	n := e.InsertNode(ct, workflow.Position{X: 10, Y: 10})

	if err := e.ApplyNodeConfig(n.ID, NodeFormSubmission{Name: "Reshape"}); err != nil {
		t.Fatalf("ApplyNodeConfig failed: %v", err)
	}
	got, _ := e.Node(n.ID)
	if got.Link != nil {
		t.Errorf("optional link should clear when omitted, got %v", got.Link)
	}
	if got.Label != "Reshape" {
		t.Errorf("label not applied, got %q", got.Label)
	}
}
