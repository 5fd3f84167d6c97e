package todo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/TWRT/todolist/internal/models"
)

type Client struct {
	baseUrl    string
	httpClient *http.Client
}

func NewClient(baseUrl string, timeout time.Duration) *Client {
	return &Client{
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListOptions filters a task listing. Search is sent only when it has
// non-blank content; Completed is sent whenever it is set.
type ListOptions struct {
	Search    string
	Completed *bool
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if strings.TrimSpace(o.Search) != "" {
		q.Set("search", o.Search)
	}
	if o.Completed != nil {
		q.Set("completed", strconv.FormatBool(*o.Completed))
	}
	return q
}

func (c *Client) Create(ctx context.Context, task models.TaskInput) (*models.Task, error) {
	var created models.Task
	if err := c.do(ctx, "create task", http.MethodPost, c.baseUrl+"/Task/", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) List(ctx context.Context, opts ListOptions) ([]models.Task, error) {
	endpoint := c.baseUrl + "/Task/"
	if q := opts.query(); len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	tasks := []models.Task{}
	if err := c.do(ctx, "list tasks", http.MethodGet, endpoint, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, "get task", http.MethodGet, c.taskUrl(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) Update(ctx context.Context, id int64, task models.TaskInput) (*models.Task, error) {
	var updated models.Task
	if err := c.do(ctx, "update task", http.MethodPut, c.taskUrl(id), task, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete task", http.MethodDelete, c.taskUrl(id), nil, nil)
}

func (c *Client) taskUrl(id int64) string {
	return c.baseUrl + "/Task/" + strconv.FormatInt(id, 10) + "/"
}

// do sends one request. A non-2xx status becomes a RequestError carrying the
// server's message when the body has one.
func (c *Client) do(ctx context.Context, op, method, endpoint string, in any, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return newRequestError(op, 0, "", fmt.Errorf("marshal request (todo): %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return newRequestError(op, 0, "", fmt.Errorf("build request (todo): %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newRequestError(op, 0, "", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newRequestError(op, resp.StatusCode, "", fmt.Errorf("read response body (todo): %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiErrorBody
		_ = json.Unmarshal(respBody, &apiErr)
		return newRequestError(op, resp.StatusCode, apiErr.message(), nil)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return newRequestError(op, resp.StatusCode, "", fmt.Errorf("parse response (todo): %w", err))
	}
	return nil
}
