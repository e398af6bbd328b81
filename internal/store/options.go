package store

import "context"

const getEnabledLLMs = `
SELECT public_id, name, model_name, provider, enabled
FROM llms
WHERE enabled = true
ORDER BY name
`

func (q *Queries) GetEnabledLLMs(ctx context.Context) ([]LLM, error) {
	rows, err := q.db.Query(ctx, getEnabledLLMs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var llms []LLM
	for rows.Next() {
		var l LLM
		if err := rows.Scan(&l.PublicID, &l.Name, &l.ModelName, &l.Provider, &l.Enabled); err != nil {
			return nil, err
		}
		llms = append(llms, l)
	}
	return llms, rows.Err()
}

const getEnabledMCPTools = `
SELECT public_id, name, description, endpoint_url, enabled
FROM mcp_tools
WHERE enabled = true
ORDER BY name
`

func (q *Queries) GetEnabledMCPTools(ctx context.Context) ([]MCPTool, error) {
	rows, err := q.db.Query(ctx, getEnabledMCPTools)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []MCPTool
	for rows.Next() {
		var t MCPTool
		if err := rows.Scan(&t.PublicID, &t.Name, &t.Description, &t.EndpointURL, &t.Enabled); err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

const getConfiguredRAGConnectors = `
SELECT public_id, name, type, configured, enabled
FROM rag_connectors
WHERE enabled = true AND configured = true
ORDER BY name
`

func (q *Queries) GetConfiguredRAGConnectors(ctx context.Context) ([]RAGConnector, error) {
	rows, err := q.db.Query(ctx, getConfiguredRAGConnectors)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connectors []RAGConnector
	for rows.Next() {
		var r RAGConnector
		if err := rows.Scan(&r.PublicID, &r.Name, &r.Type, &r.Configured, &r.Enabled); err != nil {
			return nil, err
		}
		connectors = append(connectors, r)
	}
	return connectors, rows.Err()
}
