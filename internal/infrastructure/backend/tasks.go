package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taskdesk/taskdesk/internal/core/domain"
)

func taskPath(id string, rest ...string) string {
	p := "tasks/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func (c *Client) ListTasks(ctx context.Context, token string, limit int) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := c.do(ctx, request{
		op:     "list_tasks",
		method: http.MethodGet,
		path:   "tasks",
		query:  limitQuery(nil, limit),
		token:  token,
	}, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, token, id string) (*domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, request{op: "get_task", method: http.MethodGet, path: taskPath(id), token: token}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, token string, in domain.TaskInput) (*domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, request{op: "create_task", method: http.MethodPost, path: "tasks", token: token, body: in}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, token, id string, in domain.TaskInput) (*domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, request{op: "update_task", method: http.MethodPut, path: taskPath(id), token: token, body: in}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

type statusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

func (c *Client) UpdateTaskStatus(ctx context.Context, token, id string, status domain.TaskStatus) (*domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, request{
		op:     "update_task_status",
		method: http.MethodPut,
		path:   taskPath(id),
		token:  token,
		body:   statusRequest{Status: status},
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	return c.do(ctx, request{op: "delete_task", method: http.MethodDelete, path: taskPath(id), token: token}, nil)
}

type commentRequest struct {
	Text string `json:"text"`
}

func (c *Client) AddComment(ctx context.Context, token, id, text string) (*domain.Task, error) {
	var task domain.Task
	err := c.do(ctx, request{
		op:     "add_comment",
		method: http.MethodPost,
		path:   taskPath(id, "comments"),
		token:  token,
		body:   commentRequest{Text: text},
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) TaskStats(ctx context.Context, token string) (*domain.TaskStats, error) {
	var stats domain.TaskStats
	err := c.do(ctx, request{op: "task_stats", method: http.MethodGet, path: "tasks/stats/overview", token: token}, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
