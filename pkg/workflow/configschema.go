package workflow

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	tekuri "github.com/santhosh-tekuri/jsonschema/v6"
)

// LLMConfig is the typed parameter set for "llm" nodes.
type LLMConfig struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

// RetrieverConfig is the typed parameter set for "knowledgebase_retriever" nodes.
type RetrieverConfig struct {
	MaxResults          int            `json:"max_results,omitempty"`
	SimilarityThreshold float64        `json:"similarity_threshold,omitempty"`
	SearchType          string         `json:"search_type,omitempty"`
	Filters             map[string]any `json:"filters,omitempty"`
}

// MCPToolConfig is the typed parameter set for "mcp_tool" nodes.
type MCPToolConfig struct {
	Timeout    int `json:"timeout,omitempty"`
	RetryCount int `json:"retry_count,omitempty"`
}

// ConditionConfig is the typed parameter set for "condition" nodes.
type ConditionConfig struct {
	Expression string `json:"expression,omitempty"`
}

// configSchemaTypes maps node kinds to the Go type their config is
// validated against. Kinds absent here (and all unknown future kinds)
// keep opaque free-form config with parse-only validation.
var configSchemaTypes = map[string]any{
	KindLLM:                LLMConfig{},
	KindKnowledgeRetriever: RetrieverConfig{},
	KindMCPTool:            MCPToolConfig{},
	KindCondition:          ConditionConfig{},
}

var compileSchemas = sync.OnceValues(func() (map[string]*tekuri.Schema, error) {
	compiled := make(map[string]*tekuri.Schema, len(configSchemaTypes))
	for kind, value := range configSchemaTypes {
		s, err := compileConfigSchema(kind, value)
		if err != nil {
			return nil, fmt.Errorf("compile config schema for %q: %w", kind, err)
		}
		compiled[kind] = s
	}
	return compiled, nil
})

// GenerateConfigSchema reflects a JSON Schema from the given Go type.
// Additional properties are allowed so operator-supplied extras survive
// a round-trip untouched.
func GenerateConfigSchema(value any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}

	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return reflector.Reflect(reflect.New(t).Interface())
}

func compileConfigSchema(kind string, value any) (*tekuri.Schema, error) {
	raw, err := json.Marshal(GenerateConfigSchema(value))
	if err != nil {
		return nil, err
	}
	doc, err := tekuri.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, err
	}

	url := "portal://config-schemas/" + kind
	c := tekuri.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	return c.Compile(url)
}

// ValidateConfig checks a node's config map against the schema registered
// for its kind. Kinds without a schema accept any config.
func ValidateConfig(kind string, config map[string]any) error {
	schemas, err := compileSchemas()
	if err != nil {
		return err
	}
	schema, ok := schemas[kind]
	if !ok {
		return nil
	}
	if config == nil {
		config = map[string]any{}
	}

	// Round-trip through JSON so numbers arrive as json.Number, which
	// the validator library requires.
	raw, err := json.Marshal(config)
	if err != nil {
		return err
	}
	doc, err := tekuri.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return err
	}

	if err := schema.Validate(doc); err != nil {
		return configValidationError(kind, err)
	}
	return nil
}

// configValidationError flattens a validator error tree into a single
// message naming the offending config paths.
func configValidationError(kind string, err error) error {
	verr, ok := err.(*tekuri.ValidationError)
	if !ok {
		return fmt.Errorf("invalid %s config: %w", kind, err)
	}
	violations := collectViolations(verr)
	return fmt.Errorf("invalid %s config: %s", kind, strings.Join(violations, "; "))
}

func collectViolations(verr *tekuri.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}
	var out []string
	for _, cause := range verr.Causes {
		out = append(out, collectViolations(cause)...)
	}
	return out
}
