package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentbridge/portal/pkg/workflow"
)

// Client is the REST persistence adapter for the workflow subsystem. It
// transports document snapshots to and from the portal backend and never
// retains graph state of its own. No retry, debounce or cancellation is
// applied beyond the caller's context.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// ClientParams configures a Client. HTTPClient defaults to
// http.DefaultClient when nil.
type ClientParams struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a workflow API client.
func NewClient(params ClientParams) *Client {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		token:   params.Token,
		http:    httpClient,
	}
}

// GetWorkflow fetches one workflow document.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*workflow.Document, error) {
	var doc workflow.Document
	if err := c.do(ctx, http.MethodGet, "/api/workflows/"+id, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SaveWorkflow overwrites one workflow document wholesale and returns the
// stored version.
func (c *Client) SaveWorkflow(ctx context.Context, id string, doc *workflow.Document) (*workflow.Document, error) {
	var saved workflow.Document
	if err := c.do(ctx, http.MethodPut, "/api/workflows/"+id, doc, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// TestWorkflow triggers a remote test run for the given agent.
func (c *Client) TestWorkflow(ctx context.Context, agentID string) (*workflow.TestRunResult, error) {
	var result workflow.TestRunResult
	if err := c.do(ctx, http.MethodPost, "/api/workflows/"+agentID+"/test", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// NodeOptions fetches the external reference lists backing the typed
// link selectors.
func (c *Client) NodeOptions(ctx context.Context) (*workflow.NodeOptions, error) {
	var opts workflow.NodeOptions
	if err := c.do(ctx, http.MethodGet, "/api/workflows/node-options", nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(method, path, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s %s: %w", method, path, err)
	}
	return nil
}

// StatusError is returned for non-2xx responses, carrying the status code
// and a snippet of the response body.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func newStatusError(method, path string, resp *http.Response) *StatusError {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
	}
}
