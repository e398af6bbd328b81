package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentbridge/portal/pkg/workflow"
)

func TestGetWorkflow(t *testing.T) {
	doc := workflow.DefaultDocument()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/workflows/default" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		json.NewEncoder(w).Encode(doc)
	}))
	defer server.Close()

	c := NewClient(ClientParams{BaseURL: server.URL, Token: "secret"})
	got, err := c.GetWorkflow(context.Background(), "default")
	if err != nil {
		t.Fatalf("GetWorkflow failed: %v", err)
	}
	if got.ID != doc.ID {
		t.Errorf("expected id %q, got %q", doc.ID, got.ID)
	}
	if len(got.Nodes) != len(doc.Nodes) {
		t.Errorf("expected %d nodes, got %d", len(doc.Nodes), len(got.Nodes))
	}
}

func TestSaveWorkflow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		var doc workflow.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		doc.Status = workflow.StatusActive
		json.NewEncoder(w).Encode(doc)
	}))
	defer server.Close()

	c := NewClient(ClientParams{BaseURL: server.URL})
	doc := workflow.DefaultDocument()
	saved, err := c.SaveWorkflow(context.Background(), doc.ID, doc)
	if err != nil {
		t.Fatalf("SaveWorkflow failed: %v", err)
	}
	if saved.Status != workflow.StatusActive {
		t.Errorf("expected status %q, got %q", workflow.StatusActive, saved.Status)
	}
}

func TestTestWorkflow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/workflows/agent-1/test" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(workflow.TestRunResult{Success: true, Message: "ok"})
	}))
	defer server.Close()

	c := NewClient(ClientParams{BaseURL: server.URL})
	result, err := c.TestWorkflow(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("TestWorkflow failed: %v", err)
	}
	if !result.Success {
		t.Errorf("expected success, got %+v", result)
	}
}

func TestNodeOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/workflows/node-options" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(workflow.NodeOptions{
			LLMs: []workflow.LLMOption{{ID: "llm-1", Name: "GPT-4", ModelName: "gpt-4"}},
		})
	}))
	defer server.Close()

	c := NewClient(ClientParams{BaseURL: server.URL})
	opts, err := c.NodeOptions(context.Background())
	if err != nil {
		t.Fatalf("NodeOptions failed: %v", err)
	}
	if len(opts.LLMs) != 1 || opts.LLMs[0].ID != "llm-1" {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Workflow not found"}`))
	}))
	defer server.Close()

	c := NewClient(ClientParams{BaseURL: server.URL})
	_, err := c.GetWorkflow(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	statusErr, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", statusErr.StatusCode)
	}
	if statusErr.Body == "" {
		t.Error("expected body snippet in error")
	}
}
