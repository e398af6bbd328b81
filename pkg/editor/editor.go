package editor

import (
	"context"
	"fmt"

	"github.com/agentbridge/portal/pkg/logger"
	"github.com/agentbridge/portal/pkg/workflow"
)

// PersistenceAdapter is the backend boundary of an editing session. The
// editor never talks to the network itself; it hands document snapshots
// to the adapter and hydrates whatever comes back.
type PersistenceAdapter interface {
	GetWorkflow(ctx context.Context, id string) (*workflow.Document, error)
	SaveWorkflow(ctx context.Context, id string, doc *workflow.Document) (*workflow.Document, error)
	TestWorkflow(ctx context.Context, agentID string) (*workflow.TestRunResult, error)
	NodeOptions(ctx context.Context) (*workflow.NodeOptions, error)
}

// ResolveWorkflowID resolves the working workflow id for a session:
// explicit workflowId query parameter first, then the owning agent id,
// then the "default" sentinel.
func ResolveWorkflowID(queryWorkflowID, agentID string) string {
	if queryWorkflowID != "" {
		return queryWorkflowID
	}
	if agentID != "" {
		return agentID
	}
	return workflow.DefaultWorkflowID
}

// Editor owns the mutable state of one workflow editing session: the node
// and edge collections, the current selection, and the working ids. It is
// driven from a single goroutine; structural mutations are synchronous
// and only load, save and test suspend on the network.
type Editor struct {
	workflowID  string
	agentID     string
	name        string
	description string

	nodes []Node
	edges []Edge

	selectedNodeID string
	selectedEdgeID string

	options  workflow.NodeOptions
	nextEdge int
}

// New creates an editor for the given working ids with an empty canvas.
// Call Load to hydrate it.
func New(workflowID, agentID string) *Editor {
	return &Editor{
		workflowID: workflowID,
		agentID:    agentID,
	}
}

// WorkflowID returns the current working workflow id.
func (e *Editor) WorkflowID() string { return e.workflowID }

// AgentID returns the owning agent id, if any.
func (e *Editor) AgentID() string { return e.agentID }

// Name returns the loaded document name.
func (e *Editor) Name() string { return e.name }

// Description returns the loaded document description.
func (e *Editor) Description() string { return e.description }

// Nodes returns the current node collection.
func (e *Editor) Nodes() []Node { return e.nodes }

// Edges returns the current edge collection.
func (e *Editor) Edges() []Edge { return e.edges }

// Node returns the node with the given id.
func (e *Editor) Node(id string) (*Node, bool) {
	for i := range e.nodes {
		if e.nodes[i].ID == id {
			return &e.nodes[i], true
		}
	}
	return nil, false
}

// Edge returns the edge with the given local id.
func (e *Editor) Edge(id string) (*Edge, bool) {
	for i := range e.edges {
		if e.edges[i].ID == id {
			return &e.edges[i], true
		}
	}
	return nil, false
}

// SelectedNode returns the selected node id, or "" when none is selected.
func (e *Editor) SelectedNode() string { return e.selectedNodeID }

// SelectedEdge returns the selected edge id, or "" when none is selected.
func (e *Editor) SelectedEdge() string { return e.selectedEdgeID }

// NodeOptions returns the option lists loaded for the link selectors.
func (e *Editor) NodeOptions() workflow.NodeOptions { return e.options }

// Load fetches the working document and hydrates the canvas. When the
// fetch fails the editor falls back to the built-in start -> llm -> end
// skeleton under the "default" working id, so editing can proceed; at
// that point nothing has been persisted yet.
func (e *Editor) Load(ctx context.Context, adapter PersistenceAdapter) {
	doc, err := adapter.GetWorkflow(ctx, e.workflowID)
	if err != nil || doc == nil {
		logger.Warn("Failed to load workflow, falling back to default skeleton", "workflow_id", e.workflowID, "err", err)
		doc = workflow.DefaultDocument()
		e.workflowID = workflow.DefaultWorkflowID
	}
	e.hydrate(doc)
}

func (e *Editor) hydrate(doc *workflow.Document) {
	e.nodes, e.edges = Hydrate(doc)
	e.name = doc.Name
	e.description = doc.Description
	if doc.AgentID != "" {
		e.agentID = doc.AgentID
	}
	e.nextEdge = len(e.edges)
	e.selectedNodeID = ""
	e.selectedEdgeID = ""
}

// LoadNodeOptions fetches the external reference lists for the link
// selectors. Failure is non-fatal: the selectors render empty.
func (e *Editor) LoadNodeOptions(ctx context.Context, adapter PersistenceAdapter) {
	opts, err := adapter.NodeOptions(ctx)
	if err != nil || opts == nil {
		logger.Warn("Failed to load node options", "err", err)
		return
	}
	e.options = *opts
}

// InsertNode places a new node of the given palette type at a canvas
// position. The node gets a durable id immediately, the palette display
// name as its label, and an empty config. No connections are created.
func (e *Editor) InsertNode(ct workflow.ComponentType, at workflow.Position) Node {
	n := Node{
		ID:       workflow.NewNodeID(),
		Kind:     ct.ID,
		Label:    ct.Name,
		Position: at,
		Data:     map[string]any{},
	}
	e.nodes = append(e.nodes, n)
	return n
}

// MoveNode updates a node's canvas position.
func (e *Editor) MoveNode(id string, to workflow.Position) error {
	n, ok := e.Node(id)
	if !ok {
		return ErrNodeNotFound
	}
	n.Position = to
	return nil
}

// Connect appends a directed edge between two existing nodes. The attempt
// is rejected, with the edge set unchanged, when an endpoint is missing,
// source and target are the same node, an identical (source, target) edge
// already exists, or an endpoint's capabilities forbid the direction.
func (e *Editor) Connect(source, target string) (Edge, error) {
	if source == "" || target == "" {
		return Edge{}, ErrMissingEndpoint
	}
	if source == target {
		return Edge{}, ErrSelfConnection
	}
	src, ok := e.Node(source)
	if !ok {
		return Edge{}, fmt.Errorf("%w: source %q", ErrNodeNotFound, source)
	}
	dst, ok := e.Node(target)
	if !ok {
		return Edge{}, fmt.Errorf("%w: target %q", ErrNodeNotFound, target)
	}
	for _, existing := range e.edges {
		if existing.Source == source && existing.Target == target {
			return Edge{}, ErrDuplicateEdge
		}
	}
	if !workflow.KindCapabilities(src.Kind).AllowsOutgoing {
		return Edge{}, ErrOutgoingForbidden
	}
	if !workflow.KindCapabilities(dst.Kind).AllowsIncoming {
		return Edge{}, ErrIncomingForbidden
	}

	edge := Edge{
		ID:       fmt.Sprintf("edge-%d", e.nextEdge),
		Source:   source,
		Target:   target,
		Animated: true,
		Directed: true,
	}
	e.nextEdge++
	e.edges = append(e.edges, edge)
	return edge, nil
}

// SelectNode marks a node as selected and clears any edge selection.
func (e *Editor) SelectNode(id string) error {
	if _, ok := e.Node(id); !ok {
		return ErrNodeNotFound
	}
	e.selectedNodeID = id
	e.selectedEdgeID = ""
	return nil
}

// SelectEdge marks an edge as selected and clears any node selection.
func (e *Editor) SelectEdge(id string) error {
	if _, ok := e.Edge(id); !ok {
		return ErrEdgeNotFound
	}
	e.selectedEdgeID = id
	e.selectedNodeID = ""
	return nil
}

// ClearSelection drops both selections. Always succeeds.
func (e *Editor) ClearSelection() {
	e.selectedNodeID = ""
	e.selectedEdgeID = ""
}

// DeleteSelection removes the selected edge, or the selected node along
// with every edge touching it. Nodes whose capabilities mark them
// non-deletable are refused with no state change. With nothing selected
// this is a no-op.
func (e *Editor) DeleteSelection() error {
	if e.selectedEdgeID != "" {
		id := e.selectedEdgeID
		kept := e.edges[:0]
		for _, edge := range e.edges {
			if edge.ID != id {
				kept = append(kept, edge)
			}
		}
		e.edges = kept
		e.selectedEdgeID = ""
		return nil
	}

	if e.selectedNodeID == "" {
		return nil
	}

	n, ok := e.Node(e.selectedNodeID)
	if !ok {
		e.selectedNodeID = ""
		return ErrNodeNotFound
	}
	if !workflow.KindCapabilities(n.Kind).Deletable {
		return ErrNotDeletable
	}

	id := n.ID
	keptNodes := e.nodes[:0]
	for _, node := range e.nodes {
		if node.ID != id {
			keptNodes = append(keptNodes, node)
		}
	}
	e.nodes = keptNodes

	keptEdges := e.edges[:0]
	for _, edge := range e.edges {
		if edge.Source != id && edge.Target != id {
			keptEdges = append(keptEdges, edge)
		}
	}
	e.edges = keptEdges
	e.selectedNodeID = ""
	return nil
}

// Serialize projects the current canvas state into a wire document using
// the given save-dialog fields.
func (e *Editor) Serialize(name, description string) *workflow.Document {
	return Serialize(e.nodes, e.edges, DocumentMeta{
		Name:        name,
		Description: description,
		AgentID:     e.agentID,
	})
}

// Save serializes the canvas and hands the document to the adapter under
// the working workflow id. Structural validation errors reject the save
// before anything leaves the editor; transport failures are returned
// verbatim and leave canvas state untouched.
func (e *Editor) Save(ctx context.Context, adapter PersistenceAdapter, name, description string) (*workflow.Document, error) {
	doc := e.Serialize(name, description)
	if err := workflow.ValidateDocument(doc).Err(); err != nil {
		return nil, err
	}
	saved, err := adapter.SaveWorkflow(ctx, e.workflowID, doc)
	if err != nil {
		return nil, err
	}
	e.name = doc.Name
	e.description = doc.Description
	if saved != nil && saved.ID != "" {
		// The backend mints a durable public id when saving under the
		// "default" working id; adopt it for subsequent saves.
		e.workflowID = saved.ID
	}
	return saved, nil
}

// Test triggers a remote test run for the owning agent. Purely
// observational; the graph is not touched.
func (e *Editor) Test(ctx context.Context, adapter PersistenceAdapter) (*workflow.TestRunResult, error) {
	return adapter.TestWorkflow(ctx, e.agentID)
}
