package editor

import (
	"fmt"

	"github.com/agentbridge/portal/pkg/workflow"
)

// Node is the canvas-side representation of a workflow node. Data holds
// the kind-specific config entries flattened onto the working node; label,
// kind and link live as fields and are split back out on serialization.
type Node struct {
	ID       string
	Kind     string
	Label    string
	Link     *string
	Position workflow.Position
	Data     map[string]any
}

// Sentinel reports whether the node is a start/end marker.
func (n *Node) Sentinel() bool {
	return workflow.IsSentinel(n.Kind)
}

// Edge is the canvas-side representation of a connection. ID is local to
// the editing session; the wire format carries only source and target.
// Animated and Directed are rendering annotations.
type Edge struct {
	ID       string
	Source   string
	Target   string
	Animated bool
	Directed bool
}

// Hydrate maps a wire document into canvas nodes and edges. Start and end
// nodes become sentinel markers with defaulted labels; every other node
// carries its label, kind, link and config entries as working data.
func Hydrate(doc *workflow.Document) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(doc.Nodes))
	for _, wn := range doc.Nodes {
		n := Node{
			ID:       wn.ID,
			Kind:     wn.Type,
			Label:    wn.Label,
			Position: wn.Position,
			Data:     map[string]any{},
		}
		switch wn.Type {
		case workflow.KindStart:
			if n.Label == "" {
				n.Label = "Start Here"
			}
		case workflow.KindEnd:
			if n.Label == "" {
				n.Label = "End Here"
			}
		default:
			if n.Label == "" {
				n.Label = wn.Type
			}
			n.Link = wn.Link
			for k, v := range wn.Config {
				n.Data[k] = v
			}
		}
		nodes = append(nodes, n)
	}

	edges := make([]Edge, 0, len(doc.Edges))
	for i, we := range doc.Edges {
		edges = append(edges, Edge{
			ID:       fmt.Sprintf("edge-%d", i),
			Source:   we.Source,
			Target:   we.Target,
			Animated: true,
			Directed: true,
		})
	}
	return nodes, edges
}

// DocumentMeta carries the save-dialog fields attached to a serialized
// document.
type DocumentMeta struct {
	Name        string
	Description string
	AgentID     string
}

// Serialize maps canvas state back into a wire document. Nodes that still
// carry a canvas-local placeholder id are assigned a durable id, and every
// edge endpoint is rewritten through the resulting old-to-new mapping so
// no edge references an id that does not appear in the node list. Sentinel
// nodes always serialize with an empty config and no link.
func Serialize(nodes []Node, edges []Edge, meta DocumentMeta) *workflow.Document {
	name := meta.Name
	if name == "" {
		name = "Untitled Workflow"
	}

	idMapping := make(map[string]string, len(nodes))
	wireNodes := make([]workflow.Node, 0, len(nodes))
	for _, n := range nodes {
		id := n.ID
		if !workflow.IsDurableID(id) {
			id = workflow.NewNodeID()
		}
		idMapping[n.ID] = id

		wn := workflow.Node{
			ID:       id,
			Label:    n.Label,
			Type:     n.Kind,
			Position: n.Position,
			Config:   map[string]any{},
		}
		if !n.Sentinel() {
			if wn.Label == "" {
				wn.Label = n.Kind + " node"
			}
			wn.Link = n.Link
			for k, v := range n.Data {
				wn.Config[k] = v
			}
		}
		wireNodes = append(wireNodes, wn)
	}

	wireEdges := make([]workflow.Edge, 0, len(edges))
	for _, e := range edges {
		source, target := e.Source, e.Target
		if mapped, ok := idMapping[source]; ok {
			source = mapped
		}
		if mapped, ok := idMapping[target]; ok {
			target = mapped
		}
		wireEdges = append(wireEdges, workflow.Edge{Source: source, Target: target})
	}

	return &workflow.Document{
		Name:        name,
		Description: meta.Description,
		AgentID:     meta.AgentID,
		Nodes:       wireNodes,
		Edges:       wireEdges,
	}
}
