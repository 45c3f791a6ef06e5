package tasklist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tareas/pkg/task"
)

// API is what the presenter needs from the gateway.
type API interface {
	List(ctx context.Context) ([]task.Task, error)
	Create(ctx context.Context, t task.NewTask) (int64, error)
	Delete(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
}

// Client talks to the gateway over HTTP.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a Client for the gateway rooted at base, e.g.
// "http://localhost:3000/" or "/" inside the browser.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{base: base, http: hc}
}

// List fetches every task in store order.
func (c *Client) List(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, "api/tareas", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create posts a new task and returns the id the store assigned.
func (c *Client) Create(ctx context.Context, t task.NewTask) (int64, error) {
	var out struct {
		ID *int64 `json:"id"`
	}
	if err := c.do(ctx, "create task", http.MethodPost, "api/tareas", t, &out); err != nil {
		return 0, err
	}
	// Store ids start at 1; zero means the server did not assign one.
	if out.ID == nil || *out.ID <= 0 {
		return 0, &StatusError{Op: "create task", Status: http.StatusCreated, Message: "response carried no id"}
	}
	return *out.ID, nil
}

// Delete removes a task. Any 2xx answer counts as success.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete task", http.MethodDelete, fmt.Sprintf("api/tareas/%d", id), nil, nil)
}

// Complete marks a task completed. Any 2xx answer counts as success.
func (c *Client) Complete(ctx context.Context, id int64) error {
	return c.do(ctx, "complete task", http.MethodPut, fmt.Sprintf("api/tareas/completar/%d", id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return &StatusError{Op: op, Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &StatusError{Op: op, Status: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}
