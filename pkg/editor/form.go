package editor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agentbridge/portal/pkg/workflow"
)

// LinkOption is one entry of the typed link selector.
type LinkOption struct {
	ID     string
	Label  string
	Detail string
}

// NodeForm is the pre-filled state of the node configuration form. Kind
// is shown read-only; Properties holds the node's remaining config as
// pretty-printed JSON, or the empty string when there is none.
type NodeForm struct {
	NodeID       string
	Name         string
	Kind         string
	Link         string
	LinkRequired bool
	LinkOptions  []LinkOption
	Properties   string
}

// NodeFormSubmission carries the user's edits back to the editor.
type NodeFormSubmission struct {
	Name       string
	Link       string
	Properties string
}

// OpenNodeConfig selects the node and returns the configuration form
// pre-filled from its current label, kind, link and config. This is the
// double-click path into the ConfiguringNode state.
func (e *Editor) OpenNodeConfig(id string) (*NodeForm, error) {
	if err := e.SelectNode(id); err != nil {
		return nil, err
	}
	n, _ := e.Node(id)

	form := &NodeForm{
		NodeID:       n.ID,
		Name:         n.Label,
		Kind:         n.Kind,
		LinkRequired: workflow.LinkRequired(n.Kind),
		LinkOptions:  e.linkOptions(n.Kind),
	}
	if n.Link != nil {
		form.Link = *n.Link
	}
	if len(n.Data) > 0 {
		pretty, err := json.MarshalIndent(n.Data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("render node properties: %w", err)
		}
		form.Properties = string(pretty)
	}
	return form, nil
}

// ApplyNodeConfig validates a form submission and, on success, replaces
// the node's label, link and config wholesale. Any validation failure
// leaves the node exactly as it was: a malformed properties blob fails
// the whole submission, and config keys omitted from the blob are lost
// on success rather than merged.
func (e *Editor) ApplyNodeConfig(id string, sub NodeFormSubmission) error {
	n, ok := e.Node(id)
	if !ok {
		return ErrNodeNotFound
	}
	if strings.TrimSpace(sub.Name) == "" {
		return ErrNameRequired
	}
	if workflow.LinkRequired(n.Kind) && sub.Link == "" {
		return ErrLinkRequired
	}

	parsed := map[string]any{}
	if strings.TrimSpace(sub.Properties) != "" {
		if err := json.Unmarshal([]byte(sub.Properties), &parsed); err != nil {
			return fmt.Errorf("invalid properties JSON: %w", err)
		}
	}
	if err := workflow.ValidateConfig(n.Kind, parsed); err != nil {
		return err
	}

	n.Label = sub.Name
	if sub.Link != "" {
		link := sub.Link
		n.Link = &link
	} else {
		n.Link = nil
	}
	n.Data = parsed
	return nil
}

// linkOptions projects the loaded node options into selector entries for
// the given kind. Kinds without a typed selector get none.
func (e *Editor) linkOptions(kind string) []LinkOption {
	switch kind {
	case workflow.KindLLM:
		out := make([]LinkOption, 0, len(e.options.LLMs))
		for _, llm := range e.options.LLMs {
			out = append(out, LinkOption{
				ID:     llm.ID,
				Label:  fmt.Sprintf("%s (%s)", llm.Name, llm.ModelName),
				Detail: llm.ModelName,
			})
		}
		return out
	case workflow.KindMCPTool:
		out := make([]LinkOption, 0, len(e.options.MCPTools))
		for _, tool := range e.options.MCPTools {
			out = append(out, LinkOption{ID: tool.ID, Label: tool.Name, Detail: tool.Description})
		}
		return out
	case workflow.KindKnowledgeRetriever:
		out := make([]LinkOption, 0, len(e.options.RAGConnectors))
		for _, conn := range e.options.RAGConnectors {
			out = append(out, LinkOption{ID: conn.ID, Label: conn.Name, Detail: "Type: " + conn.Type})
		}
		return out
	default:
		return nil
	}
}
