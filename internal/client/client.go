package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/phrazzld/tasktracker/internal/domain"
)

const (
	// DefaultListRetries is the number of retries for ListTasks.
	DefaultListRetries = 3
	// DefaultMutationRetries is the number of retries for create, update and delete.
	DefaultMutationRetries = 2
	// DefaultRetryInterval is the first backoff interval.
	DefaultRetryInterval = 200 * time.Millisecond
)

// Client talks to the /api/tasks endpoints of a task tracker server.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	listRetries     uint64
	mutationRetries uint64
	retryInterval   time.Duration
	logger          *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxRetries overrides the retry count of every operation.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) {
		c.listRetries = n
		c.mutationRetries = n
	}
}

// WithRetryInterval sets the initial backoff interval.
func WithRetryInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client for the server at baseURL, e.g. "http://localhost:3000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		listRetries:     DefaultListRetries,
		mutationRetries: DefaultMutationRetries,
		retryInterval:   DefaultRetryInterval,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("component", "task_client"))
	return c
}

type createRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type updateRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ListTasks returns every task in display order.
func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, c.listRetries, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// CreateTask creates a task and returns it with its server-assigned id.
func (c *Client) CreateTask(ctx context.Context, title string, completed bool) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, c.mutationRetries, http.MethodPost, "/api/tasks",
		createRequest{Title: title, Completed: completed}, &task)
	return task, err
}

// UpdateTask merges the fields set in patch into the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, c.mutationRetries, http.MethodPatch, "/api/tasks/"+url.PathEscape(id),
		updateRequest{Title: patch.Title, Completed: patch.Completed}, &task)
	return task, err
}

// DeleteTask removes the task with the given id. Unknown ids are not an error.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, c.mutationRetries, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, retries uint64, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	operation := func() error {
		return c.attempt(ctx, method, path, payload, out)
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, retries), ctx)

	notify := func(err error, wait time.Duration) {
		c.logger.Debug("retrying request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()))
	}

	return backoff.RetryNotify(operation, policy, notify)
}

// attempt performs one request. Errors wrapped in backoff.Permanent stop
// the retry loop.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("%w: %v", ErrUnexpected, err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: invalid response body: %v", ErrUnexpected, err))
		}
		return nil

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return backoff.Permanent(&APIError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp),
		})

	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)

	default:
		return backoff.Permanent(fmt.Errorf("%w: status %d", ErrUnexpected, resp.StatusCode))
	}
}

func readErrorMessage(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}

