package store

import (
	"context"
	"encoding/json"
)

const getWorkflowByPublicId = `
SELECT id, public_id, agent_id, name, description, status, nodes, edges, created_at, updated_at
FROM workflows
WHERE public_id = $1
`

func (q *Queries) GetWorkflowByPublicId(ctx context.Context, publicID string) (Workflow, error) {
	row := q.db.QueryRow(ctx, getWorkflowByPublicId, publicID)
	var w Workflow
	err := row.Scan(
		&w.ID,
		&w.PublicID,
		&w.AgentID,
		&w.Name,
		&w.Description,
		&w.Status,
		&w.Nodes,
		&w.Edges,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

const getWorkflowByAgentId = `
SELECT id, public_id, agent_id, name, description, status, nodes, edges, created_at, updated_at
FROM workflows
WHERE agent_id = $1
ORDER BY updated_at DESC
LIMIT 1
`

func (q *Queries) GetWorkflowByAgentId(ctx context.Context, agentID string) (Workflow, error) {
	row := q.db.QueryRow(ctx, getWorkflowByAgentId, agentID)
	var w Workflow
	err := row.Scan(
		&w.ID,
		&w.PublicID,
		&w.AgentID,
		&w.Name,
		&w.Description,
		&w.Status,
		&w.Nodes,
		&w.Edges,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

const getWorkflows = `
SELECT id, public_id, agent_id, name, description, status, nodes, edges, created_at, updated_at
FROM workflows
ORDER BY updated_at DESC
`

func (q *Queries) GetWorkflows(ctx context.Context) ([]Workflow, error) {
	rows, err := q.db.Query(ctx, getWorkflows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workflows []Workflow
	for rows.Next() {
		var w Workflow
		if err := rows.Scan(
			&w.ID,
			&w.PublicID,
			&w.AgentID,
			&w.Name,
			&w.Description,
			&w.Status,
			&w.Nodes,
			&w.Edges,
			&w.CreatedAt,
			&w.UpdatedAt,
		); err != nil {
			return nil, err
		}
		workflows = append(workflows, w)
	}
	return workflows, rows.Err()
}

type CreateWorkflowParams struct {
	PublicID    string
	AgentID     *string
	Name        string
	Description string
	Status      string
	Nodes       json.RawMessage
	Edges       json.RawMessage
}

const createWorkflow = `
INSERT INTO workflows (public_id, agent_id, name, description, status, nodes, edges)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, public_id, agent_id, name, description, status, nodes, edges, created_at, updated_at
`

func (q *Queries) CreateWorkflow(ctx context.Context, arg CreateWorkflowParams) (Workflow, error) {
	row := q.db.QueryRow(ctx, createWorkflow,
		arg.PublicID,
		arg.AgentID,
		arg.Name,
		arg.Description,
		arg.Status,
		arg.Nodes,
		arg.Edges,
	)
	var w Workflow
	err := row.Scan(
		&w.ID,
		&w.PublicID,
		&w.AgentID,
		&w.Name,
		&w.Description,
		&w.Status,
		&w.Nodes,
		&w.Edges,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

type UpdateWorkflowParams struct {
	PublicID    string
	Name        string
	Description string
	Status      string
	Nodes       json.RawMessage
	Edges       json.RawMessage
}

const updateWorkflow = `
UPDATE workflows
SET name = $2, description = $3, status = $4, nodes = $5, edges = $6, updated_at = now()
WHERE public_id = $1
RETURNING id, public_id, agent_id, name, description, status, nodes, edges, created_at, updated_at
`

func (q *Queries) UpdateWorkflow(ctx context.Context, arg UpdateWorkflowParams) (Workflow, error) {
	row := q.db.QueryRow(ctx, updateWorkflow,
		arg.PublicID,
		arg.Name,
		arg.Description,
		arg.Status,
		arg.Nodes,
		arg.Edges,
	)
	var w Workflow
	err := row.Scan(
		&w.ID,
		&w.PublicID,
		&w.AgentID,
		&w.Name,
		&w.Description,
		&w.Status,
		&w.Nodes,
		&w.Edges,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

const deleteWorkflow = `
DELETE FROM workflows
WHERE public_id = $1
`

func (q *Queries) DeleteWorkflow(ctx context.Context, publicID string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteWorkflow, publicID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
