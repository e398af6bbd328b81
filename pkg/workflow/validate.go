package workflow

import "fmt"

// Issue codes produced by ValidateDocument.
const (
	CodeNoStartNode       = "no_start_node"
	CodeMultipleStart     = "multiple_start_nodes"
	CodeNoEndNode         = "no_end_node"
	CodeMultipleEnd       = "multiple_end_nodes"
	CodeDuplicateNodeID   = "duplicate_node_id"
	CodeSelfConnection    = "self_connection"
	CodeDuplicateEdge     = "duplicate_edge"
	CodeUnknownEndpoint   = "unknown_endpoint"
	CodeUnknownKind       = "unknown_kind"
	CodeUnreachableNode   = "unreachable_node"
	CodeCapabilityBreach  = "capability_breach"
	CodeMissingNodeFields = "missing_node_fields"
)

// Issue is a single validation finding.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult aggregates findings from ValidateDocument. Errors
// block a save; warnings are surfaced but do not.
type ValidationResult struct {
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Valid reports whether the document may be persisted.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) addError(code, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Code: code, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(code, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Err returns an error describing the first blocking issue, nil when valid.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	if len(r.Errors) == 1 {
		return fmt.Errorf("workflow validation: %s", r.Errors[0].Message)
	}
	return fmt.Errorf("workflow validation: %s (and %d more errors)", r.Errors[0].Message, len(r.Errors)-1)
}

// ValidateDocument runs the structural checks applied before a save is
// accepted: exactly one start and one end node, unique node ids, edges
// referencing existing nodes, no self-loops or duplicate edges, and no
// edge leaving or entering a node whose capabilities forbid it. Nodes
// unreachable from the start node are reported as warnings only, since
// the execution engine skips them rather than failing.
func ValidateDocument(doc *Document) *ValidationResult {
	res := &ValidationResult{}
	if doc == nil {
		res.addError(CodeMissingNodeFields, "document is nil")
		return res
	}

	nodeByID := make(map[string]Node, len(doc.Nodes))
	var startID string
	starts, ends := 0, 0
	for _, n := range doc.Nodes {
		if n.ID == "" {
			res.addError(CodeMissingNodeFields, "node with empty id")
			continue
		}
		if _, dup := nodeByID[n.ID]; dup {
			res.addError(CodeDuplicateNodeID, "duplicate node id %q", n.ID)
			continue
		}
		nodeByID[n.ID] = n

		switch n.Type {
		case KindStart:
			starts++
			startID = n.ID
		case KindEnd:
			ends++
		default:
			if _, known := LookupComponentType(n.Type); !known {
				res.addWarning(CodeUnknownKind, "node %q has unknown kind %q", n.ID, n.Type)
			}
		}
	}

	switch {
	case starts == 0:
		res.addError(CodeNoStartNode, "workflow has no start node")
	case starts > 1:
		res.addError(CodeMultipleStart, "workflow has %d start nodes", starts)
	}
	switch {
	case ends == 0:
		res.addError(CodeNoEndNode, "workflow has no end node")
	case ends > 1:
		res.addError(CodeMultipleEnd, "workflow has %d end nodes", ends)
	}

	type edgeKey struct{ s, t string }
	seen := make(map[edgeKey]struct{}, len(doc.Edges))
	for _, e := range doc.Edges {
		if e.Source == e.Target {
			res.addError(CodeSelfConnection, "edge %q -> %q is a self-connection", e.Source, e.Target)
			continue
		}
		src, srcOK := nodeByID[e.Source]
		if !srcOK {
			res.addError(CodeUnknownEndpoint, "edge source %q is not a node in this workflow", e.Source)
		}
		dst, dstOK := nodeByID[e.Target]
		if !dstOK {
			res.addError(CodeUnknownEndpoint, "edge target %q is not a node in this workflow", e.Target)
		}
		k := edgeKey{e.Source, e.Target}
		if _, dup := seen[k]; dup {
			res.addError(CodeDuplicateEdge, "duplicate edge %q -> %q", e.Source, e.Target)
			continue
		}
		seen[k] = struct{}{}

		if srcOK && !KindCapabilities(src.Type).AllowsOutgoing {
			res.addError(CodeCapabilityBreach, "node %q (%s) does not allow outgoing edges", src.ID, src.Type)
		}
		if dstOK && !KindCapabilities(dst.Type).AllowsIncoming {
			res.addError(CodeCapabilityBreach, "node %q (%s) does not allow incoming edges", dst.ID, dst.Type)
		}
	}

	if starts == 1 {
		for _, n := range doc.Nodes {
			if n.ID == startID {
				continue
			}
			if _, ok := nodeByID[n.ID]; !ok {
				continue
			}
			if !reachable(doc.Edges, startID, n.ID) {
				res.addWarning(CodeUnreachableNode, "node %q is unreachable from the start node", n.ID)
			}
		}
	}

	return res
}

// reachable walks the directed edge set from src looking for dst.
func reachable(edges []Edge, src, dst string) bool {
	adj := make(map[string][]string, len(edges))
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	visited := map[string]bool{src: true}
	stack := []string{src}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range adj[u] {
			if v == dst {
				return true
			}
			if !visited[v] {
				visited[v] = true
				stack = append(stack, v)
			}
		}
	}
	return false
}
