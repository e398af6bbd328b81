package workflow

// DefaultWorkflowID is the sentinel working id used when no workflow id
// can be resolved or when loading an existing document failed.
const DefaultWorkflowID = "default"

// DefaultDocument returns the built-in start -> llm -> end skeleton used
// when a document cannot be loaded, so an editor session never begins on
// an empty canvas. Nothing has been persisted at that point.
func DefaultDocument() *Document {
	return &Document{
		Name:   "Untitled Workflow",
		Status: StatusDraft,
		Nodes: []Node{
			{
				ID:       "start-node",
				Label:    "Start Here",
				Type:     KindStart,
				Position: Position{X: 100, Y: 300},
				Config:   map[string]any{},
			},
			{
				ID:       "llm-node",
				Label:    "LLM Model",
				Type:     KindLLM,
				Position: Position{X: 400, Y: 300},
				Config: map[string]any{
					"model":       "gpt-4",
					"temperature": 0.7,
					"max_tokens":  1000,
				},
			},
			{
				ID:       "end-node",
				Label:    "End Here",
				Type:     KindEnd,
				Position: Position{X: 700, Y: 300},
				Config:   map[string]any{},
			},
		},
		Edges: []Edge{
			{Source: "start-node", Target: "llm-node"},
			{Source: "llm-node", Target: "end-node"},
		},
	}
}

// AgentDefaultDocument builds the default workflow persisted when an
// agent is created: start -> llm -> end when an LLM is available to link,
// start -> end otherwise.
func AgentDefaultDocument(agentID, agentName string, llmID string) *Document {
	start := Node{
		ID:       NewNodeID(),
		Label:    "Start",
		Type:     KindStart,
		Position: Position{X: 100, Y: 100},
		Config:   map[string]any{},
	}
	end := Node{
		ID:       NewNodeID(),
		Label:    "End",
		Type:     KindEnd,
		Position: Position{X: 500, Y: 100},
		Config:   map[string]any{},
	}

	doc := &Document{
		Name:        agentName + " - Default Workflow",
		Description: "Default workflow for agent " + agentName,
		AgentID:     agentID,
		Status:      StatusDraft,
	}

	if llmID == "" {
		end.Position = Position{X: 300, Y: 100}
		doc.Nodes = []Node{start, end}
		doc.Edges = []Edge{{Source: start.ID, Target: end.ID}}
		return doc
	}

	llm := Node{
		ID:       NewNodeID(),
		Label:    "LLM",
		Type:     KindLLM,
		Link:     &llmID,
		Position: Position{X: 300, Y: 100},
		Config:   map[string]any{"temperature": 0.7},
	}
	doc.Nodes = []Node{start, llm, end}
	doc.Edges = []Edge{
		{Source: start.ID, Target: llm.ID},
		{Source: llm.ID, Target: end.ID},
	}
	return doc
}
