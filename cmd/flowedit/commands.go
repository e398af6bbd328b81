package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/agentbridge/portal/internal/util"
	"github.com/agentbridge/portal/pkg/client"
	"github.com/agentbridge/portal/pkg/editor"
	"github.com/agentbridge/portal/pkg/workflow"
)

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func buildClient(apiURL, token string) *client.Client {
	return client.NewClient(client.ClientParams{BaseURL: apiURL, Token: token})
}

func runShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	apiURL := fs.String("api-url", util.GetEnvString("PORTAL_API_URL", "http://localhost:8080"), "portal backend base URL")
	token := fs.String("token", util.GetEnvString("PORTAL_API_TOKEN", ""), "bearer token or master API key")
	agentID := fs.String("agent", "", "resolve the workflow through the owning agent id")
	asJSON := fs.Bool("json", false, "print the raw document instead of a summary")
	save := fs.Bool("save", false, "write the document back after loading (persists the skeleton on fallback)")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	workflowID := editor.ResolveWorkflowID(fs.Arg(0), *agentID)

	ctx, cancel := commandContext()
	defer cancel()

	e := editor.New(workflowID, *agentID)
	adapter := buildClient(*apiURL, *token)
	e.Load(ctx, adapter)

	if *save {
		saved, err := e.Save(ctx, adapter, e.Name(), e.Description())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("saved workflow %s\n", saved.ID)
	}

	if *asJSON {
		doc := e.Serialize(e.Name(), e.Description())
		doc.ID = e.WorkflowID()
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("Workflow: %s (%s)\n", e.Name(), e.WorkflowID())
	if e.Description() != "" {
		fmt.Printf("  %s\n", e.Description())
	}
	fmt.Printf("Nodes (%d):\n", len(e.Nodes()))
	for _, n := range e.Nodes() {
		link := ""
		if n.Link != nil {
			link = " -> " + *n.Link
		}
		fmt.Printf("  [%s] %s (%s)%s\n", n.ID, n.Label, n.Kind, link)
	}
	fmt.Printf("Edges (%d):\n", len(e.Edges()))
	for _, edge := range e.Edges() {
		fmt.Printf("  %s -> %s\n", edge.Source, edge.Target)
	}
}

func runValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	apiURL := fs.String("api-url", util.GetEnvString("PORTAL_API_URL", "http://localhost:8080"), "portal backend base URL")
	token := fs.String("token", util.GetEnvString("PORTAL_API_TOKEN", ""), "bearer token or master API key")
	file := fs.String("file", "", "validate a document from a JSON file instead of the backend")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	var doc *workflow.Document
	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		doc = new(workflow.Document)
		if err := json.Unmarshal(raw, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid workflow JSON: %v\n", err)
			os.Exit(1)
		}
	} else {
		workflowID := editor.ResolveWorkflowID(fs.Arg(0), "")
		ctx, cancel := commandContext()
		defer cancel()

		fetched, err := buildClient(*apiURL, *token).GetWorkflow(ctx, workflowID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		doc = fetched
	}

	res := workflow.ValidateDocument(doc)
	for _, issue := range res.Errors {
		fmt.Printf("error   %-22s %s\n", issue.Code, issue.Message)
	}
	for _, issue := range res.Warnings {
		fmt.Printf("warning %-22s %s\n", issue.Code, issue.Message)
	}
	if !res.Valid() {
		os.Exit(1)
	}
	fmt.Println("workflow is valid")
}

func runOptions(args []string) {
	fs := flag.NewFlagSet("options", flag.ExitOnError)
	apiURL := fs.String("api-url", util.GetEnvString("PORTAL_API_URL", "http://localhost:8080"), "portal backend base URL")
	token := fs.String("token", util.GetEnvString("PORTAL_API_TOKEN", ""), "bearer token or master API key")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	ctx, cancel := commandContext()
	defer cancel()

	opts, err := buildClient(*apiURL, *token).NodeOptions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("LLMs (%d):\n", len(opts.LLMs))
	for _, l := range opts.LLMs {
		fmt.Printf("  %s  %s (%s)\n", l.ID, l.Name, l.ModelName)
	}
	fmt.Printf("MCP tools (%d):\n", len(opts.MCPTools))
	for _, t := range opts.MCPTools {
		fmt.Printf("  %s  %s - %s\n", t.ID, t.Name, t.Description)
	}
	fmt.Printf("RAG connectors (%d):\n", len(opts.RAGConnectors))
	for _, r := range opts.RAGConnectors {
		fmt.Printf("  %s  %s (%s)\n", r.ID, r.Name, r.Type)
	}
}

func runSkeleton(args []string) {
	fs := flag.NewFlagSet("skeleton", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	out, err := json.MarshalIndent(workflow.DefaultDocument(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func runTest(args []string) {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	apiURL := fs.String("api-url", util.GetEnvString("PORTAL_API_URL", "http://localhost:8080"), "portal backend base URL")
	token := fs.String("token", util.GetEnvString("PORTAL_API_TOKEN", ""), "bearer token or master API key")
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	agentID := fs.Arg(0)
	if agentID == "" {
		fmt.Fprintln(os.Stderr, "Usage: flowedit test <agent-id>")
		os.Exit(2)
	}

	ctx, cancel := commandContext()
	defer cancel()

	result, err := buildClient(*apiURL, *token).TestWorkflow(ctx, agentID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !result.Success {
		fmt.Printf("test failed: %s\n", result.Message)
		os.Exit(1)
	}
	fmt.Printf("test passed: %s\n", result.Message)
}
