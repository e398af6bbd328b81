package workflow

// Node kind identifiers. KindStart and KindEnd are the sentinel kinds
// every graph carries exactly once; the rest map to palette entries.
const (
	KindStart = "start"
	KindEnd   = "end"

	KindLLM                 = "llm"
	KindKnowledgeRetriever  = "knowledgebase_retriever"
	KindPromptRewriter      = "prompt_rewriter"
	KindInjectContext       = "inject_context"
	KindMCPToolSelector     = "mcp_tool_selector"
	KindMCPToolOrchestrator = "mcp_tool_orchestrator"
	KindMCPTool             = "mcp_tool"
	KindCondition           = "condition"
	KindTransform           = "transform"
	KindInput               = "input"
	KindOutput              = "output"
)

// ComponentType describes one palette entry. Color is rendering metadata
// only and has no effect on document semantics.
type ComponentType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Color       string `json:"color,omitempty"`
}

// Capabilities describes what mutating operations a node kind permits.
// Delete and connect handling consult these instead of comparing kind
// names in place.
type Capabilities struct {
	Deletable      bool
	AllowsIncoming bool
	AllowsOutgoing bool
}

var componentTypes = []ComponentType{
	{ID: KindLLM, Name: "LLM Model", Category: "AI Models", Description: "Large Language Model processing node", Color: "#1890ff"},
	{ID: KindKnowledgeRetriever, Name: "Knowledgebase Retriever", Category: "AI Models", Description: "Knowledge retrieval with search type options", Color: "#52c41a"},
	{ID: KindPromptRewriter, Name: "Prompt Rewriter", Category: "Processing", Description: "Rewrites and optimizes prompts for better results", Color: "#ff7a45"},
	{ID: KindInjectContext, Name: "Inject Conversation Context", Category: "Processing", Description: "Injects conversation history and context", Color: "#40a9ff"},
	{ID: KindMCPToolSelector, Name: "MCP Tool Selector", Category: "Tools", Description: "Selects appropriate MCP tools based on context", Color: "#722ed1"},
	{ID: KindMCPToolOrchestrator, Name: "MCP Tool Orchestrator", Category: "Tools", Description: "Orchestrates multiple MCP tool executions", Color: "#9254de"},
	{ID: KindMCPTool, Name: "MCP Tool", Category: "Tools", Description: "Model Context Protocol tool integration", Color: "#531dab"},
	{ID: KindCondition, Name: "Condition", Category: "Logic", Description: "Conditional branching logic", Color: "#fa8c16"},
	{ID: KindTransform, Name: "Transform", Category: "Processing", Description: "Data transformation and processing", Color: "#eb2f96"},
	{ID: KindInput, Name: "Input", Category: "IO", Description: "User input collection", Color: "#13c2c2"},
	{ID: KindOutput, Name: "Output", Category: "IO", Description: "Response output formatting", Color: "#f5222d"},
}

// ComponentTypes returns the static palette catalog. The returned slice
// must not be mutated.
func ComponentTypes() []ComponentType {
	return componentTypes
}

// LookupComponentType returns the palette entry for a kind id.
func LookupComponentType(id string) (ComponentType, bool) {
	for _, ct := range componentTypes {
		if ct.ID == id {
			return ct, true
		}
	}
	return ComponentType{}, false
}

// ComponentTypesByCategory groups the palette by category, preserving
// the catalog order inside each group.
func ComponentTypesByCategory() map[string][]ComponentType {
	grouped := make(map[string][]ComponentType)
	for _, ct := range componentTypes {
		grouped[ct.Category] = append(grouped[ct.Category], ct)
	}
	return grouped
}

// KindCapabilities returns the capability set for a node kind. Unknown
// kinds get the generic capability set so future kinds stay editable.
func KindCapabilities(kind string) Capabilities {
	switch kind {
	case KindStart:
		return Capabilities{Deletable: false, AllowsIncoming: false, AllowsOutgoing: true}
	case KindEnd:
		return Capabilities{Deletable: false, AllowsIncoming: true, AllowsOutgoing: false}
	default:
		return Capabilities{Deletable: true, AllowsIncoming: true, AllowsOutgoing: true}
	}
}

// IsSentinel reports whether kind is one of the start/end sentinels.
func IsSentinel(kind string) bool {
	return kind == KindStart || kind == KindEnd
}

// LinkRequired reports whether nodes of this kind must reference an
// external entity before the configuration form accepts a submit.
func LinkRequired(kind string) bool {
	switch kind {
	case KindLLM, KindMCPTool, KindKnowledgeRetriever:
		return true
	default:
		return false
	}
}
